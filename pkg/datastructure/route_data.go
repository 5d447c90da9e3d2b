package datastructure

// SegmentDetail. one traversed edge of a path
type SegmentDetail struct {
	SegmentID  string  `json:"segment_id"`
	From       Node    `json:"from"`
	To         Node    `json:"to"`
	Distance   float64 `json:"distance"`
	SafetyProb float64 `json:"safety_prob"`
}

// PathDetail. per edge breakdown of a path plus distance & safety statistics across its edges.
type PathDetail struct {
	Segments      []SegmentDetail `json:"segments"`
	TotalDistance float64         `json:"total_distance"`
	AvgSafety     float64         `json:"avg_safety"`
	MinSafety     float64         `json:"min_safety"`
	MaxSafety     float64         `json:"max_safety"`
	SafetyStd     float64         `json:"safety_std"`
}

func NewEmptyPathDetail() *PathDetail {
	return &PathDetail{
		Segments: make([]SegmentDetail, 0),
	}
}

func (pd *PathDetail) NumSegments() int {
	return len(pd.Segments)
}
