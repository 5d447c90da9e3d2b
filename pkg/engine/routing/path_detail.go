package routing

import (
	da "github.com/lintang-b-s/sheltr/pkg/datastructure"
	"github.com/lintang-b-s/sheltr/pkg/util"
)

// NewPathDetail aggregates the edges of path. a path with fewer than two vertices has an empty detail.
func NewPathDetail(g *da.Graph, path []da.Index) *da.PathDetail {
	detail := da.NewEmptyPathDetail()
	if len(path) < 2 {
		return detail
	}

	probs := make([]float64, 0, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		u, v := path[i], path[i+1]
		e, ok := g.GetEdge(u, v)
		if !ok {
			continue
		}
		detail.Segments = append(detail.Segments, da.SegmentDetail{
			SegmentID:  e.GetSegmentID(),
			From:       g.GetVertex(u),
			To:         g.GetVertex(v),
			Distance:   e.GetDistance(),
			SafetyProb: e.GetSafetyProb(),
		})
		detail.TotalDistance += e.GetDistance()
		probs = append(probs, e.GetSafetyProb())
	}

	if len(probs) == 0 {
		return detail
	}
	detail.AvgSafety = util.Mean(probs)
	detail.MinSafety, detail.MaxSafety = util.MinMax(probs)
	detail.SafetyStd = util.PopulationStd(probs)
	return detail
}
