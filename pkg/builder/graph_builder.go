package builder

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/sheltr/pkg/costfunction"
	"github.com/lintang-b-s/sheltr/pkg/datastructure"
)

var (
	ErrEmptyGraph = errors.New("graph has fewer than two nodes")
)

type SafetySource interface {
	SafetyOf(segmentID string) float64
	Resolve(internalIndex string) string
}

// GraphBuilder turns raw edge records into a weighted graph for one cost strategy.
// the records and the safety source are shared read-only, every Build returns a fresh graph.
type GraphBuilder struct {
	records []datastructure.EdgeRecord
	safety  SafetySource
}

func NewGraphBuilder(records []datastructure.EdgeRecord, safety SafetySource) *GraphBuilder {
	return &GraphBuilder{
		records: records,
		safety:  safety,
	}
}

func (gb *GraphBuilder) GetRecords() []datastructure.EdgeRecord {
	return gb.records
}

// Build weights every edge with both endpoints in component using cf. edges outside the component are dropped.
// segment ids are resolved to stable ids before the safety lookup, the built edges carry the resolved id.
func (gb *GraphBuilder) Build(component *datastructure.Component, cf costfunction.CostFunction) (*datastructure.Graph, error) {
	if component == nil || component.Size() < 2 {
		return nil, ErrEmptyGraph
	}

	g := datastructure.NewGraph(cf.GetStrategy().String())
	for _, rec := range gb.records {
		from, to := rec.GetFrom(), rec.GetTo()
		if !component.Contains(from) || !component.Contains(to) {
			continue
		}

		segID := gb.safety.Resolve(rec.GetSegmentID())
		safetyProb := gb.safety.SafetyOf(segID)
		weight := cf.GetWeight(costfunction.NewEdgeCost(rec.GetDistance(), safetyProb))

		if err := g.AddEdge(from, to, weight, rec.GetDistance(), safetyProb, segID); err != nil {
			return nil, fmt.Errorf("build %s graph: %w", cf.GetStrategy(), err)
		}
	}

	if g.NumberOfVertices() < 2 {
		return nil, ErrEmptyGraph
	}
	return g, nil
}
