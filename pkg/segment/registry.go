package segment

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/lintang-b-s/sheltr/pkg"
	"github.com/lintang-b-s/sheltr/pkg/util"
)

var (
	ErrInvalidSafetyProbability = errors.New("safety probability must be a number in [0,1]")
	ErrEmptySegmentID           = errors.New("segment id must not be empty")
)

// SafetyRecord. classifier output for one road segment
type SafetyRecord struct {
	segmentID  string
	safetyProb float64
	predSafe   int
}

func NewSafetyRecord(segmentID string, safetyProb float64, predSafe int) SafetyRecord {
	return SafetyRecord{
		segmentID:  util.NormalizeID(segmentID),
		safetyProb: safetyProb,
		predSafe:   predSafe,
	}
}

func (r SafetyRecord) GetSegmentID() string {
	return r.segmentID
}

func (r SafetyRecord) GetSafetyProb() float64 {
	return r.safetyProb
}

// GetPredSafe. hard label of the classifier, -1 when the source has none
func (r SafetyRecord) GetPredSafe() int {
	return r.predSafe
}

// Registry. per-segment safety probabilities, immutable after construction and safe for concurrent reads.
type Registry struct {
	records           []SafetyRecord
	safety            map[string]float64
	predSafe          map[string]int
	indexToID         map[string]string
	providesStableIds bool
}

// NewRegistry builds the registry from safety records. when the edge source does not provide stable ids,
// the position of each record is the internal index edges refer to.
func NewRegistry(records []SafetyRecord, providesStableIds bool) (*Registry, error) {
	r := &Registry{
		records:           records,
		safety:            make(map[string]float64, len(records)),
		predSafe:          make(map[string]int, len(records)),
		providesStableIds: providesStableIds,
	}
	if !providesStableIds {
		r.indexToID = make(map[string]string, len(records))
	}

	for i, rec := range records {
		if rec.segmentID == "" {
			return nil, fmt.Errorf("%w: record %d", ErrEmptySegmentID, i)
		}
		p := rec.safetyProb
		if math.IsNaN(p) || p < 0 || p > 1 {
			return nil, fmt.Errorf("%w: segment %s has %v", ErrInvalidSafetyProbability, rec.segmentID, p)
		}
		r.safety[rec.segmentID] = p
		r.predSafe[rec.segmentID] = rec.predSafe
		if !providesStableIds {
			r.indexToID[strconv.Itoa(i)] = rec.segmentID
		}
	}
	return r, nil
}

// SafetyOf returns the safety probability of segmentID, 0.5 for unknown segments.
func (r *Registry) SafetyOf(segmentID string) float64 {
	if p, ok := r.safety[util.NormalizeID(segmentID)]; ok {
		return p
	}
	return pkg.DEFAULT_SAFETY_PROBABILITY
}

// PredSafeOf returns the classifier's hard label for segmentID, thresholding the probability at 0.5
// when the source carried no label.
func (r *Registry) PredSafeOf(segmentID string) int {
	id := util.NormalizeID(segmentID)
	if label, ok := r.predSafe[id]; ok && label >= 0 {
		return label
	}
	if r.SafetyOf(id) >= pkg.DEFAULT_SAFETY_PROBABILITY {
		return 1
	}
	return 0
}

// HasSafety reports whether the classifier scored segmentID.
func (r *Registry) HasSafety(segmentID string) bool {
	_, ok := r.safety[util.NormalizeID(segmentID)]
	return ok
}

// Resolve translates an internal edge index to its stable segment id. the value is returned
// unchanged when ids are already stable or the index is unknown.
func (r *Registry) Resolve(internalIndex string) string {
	id := util.NormalizeID(internalIndex)
	if r.providesStableIds {
		return id
	}
	if segID, ok := r.indexToID[id]; ok {
		return segID
	}
	return id
}

func (r *Registry) ProvidesStableIds() bool {
	return r.providesStableIds
}

func (r *Registry) Records() []SafetyRecord {
	return r.records
}

func (r *Registry) Len() int {
	return len(r.safety)
}

// Stats. mean, min and max safety over all registered segments
func (r *Registry) Stats() (mean, min, max float64) {
	if len(r.safety) == 0 {
		return 0, 0, 0
	}
	probs := make([]float64, 0, len(r.safety))
	for _, p := range r.safety {
		probs = append(probs, p)
	}
	min, max = util.MinMax(probs)
	return util.Mean(probs), min, max
}
