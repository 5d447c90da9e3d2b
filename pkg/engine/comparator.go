package engine

import (
	"fmt"

	"github.com/lintang-b-s/sheltr/pkg/concurrent"
	"github.com/lintang-b-s/sheltr/pkg/costfunction"
	da "github.com/lintang-b-s/sheltr/pkg/datastructure"
	"go.uber.org/zap"
)

// Comparison. successful routes of each strategy for one (start, end) pair.
// a strategy that failed is absent from Results, Failures holds why.
type Comparison struct {
	Results  map[costfunction.Strategy]*RouteResult `json:"results"`
	Failures map[costfunction.Strategy]string       `json:"failures,omitempty"`
}

// StrategySummary. one row of a comparison table
type StrategySummary struct {
	Strategy      costfunction.Strategy `json:"strategy"`
	TotalDistance float64               `json:"total_distance"`
	TotalCost     float64               `json:"total_cost"`
	AvgSafety     float64               `json:"avg_safety"`
	MinSafety     float64               `json:"min_safety"`
	NumSegments   int                   `json:"num_segments"`
	// DistanceRatio. total distance relative to the distance strategy's route, 0 when that route is missing
	DistanceRatio float64 `json:"distance_ratio"`
}

type compareOutcome struct {
	strategy costfunction.Strategy
	result   *RouteResult
	err      error
}

// CompareStrategies routes start to end once per strategy. strategies run concurrently, each on its own graph.
func (e *Engine) CompareStrategies(start, end da.Node) *Comparison {
	strategies := costfunction.AllStrategies()
	outcomes := concurrent.RunAll(len(strategies), strategies,
		func(s costfunction.Strategy) compareOutcome {
			return e.compareOne(start, end, s)
		})

	cmp := &Comparison{
		Results:  make(map[costfunction.Strategy]*RouteResult, len(strategies)),
		Failures: make(map[costfunction.Strategy]string),
	}
	for _, out := range outcomes {
		switch {
		case out.err != nil:
			cmp.Failures[out.strategy] = out.err.Error()
			e.logger.Warn("strategy failed during comparison", zap.String("strategy", out.strategy.String()),
				zap.Error(out.err))
		case !out.result.Success:
			cmp.Failures[out.strategy] = string(out.result.FailureReason)
		default:
			cmp.Results[out.strategy] = out.result
		}
	}
	return cmp
}

func (e *Engine) compareOne(start, end da.Node, s costfunction.Strategy) (out compareOutcome) {
	out.strategy = s
	defer func() {
		if r := recover(); r != nil {
			out.result = nil
			out.err = fmt.Errorf("strategy %s panicked: %v", s, r)
		}
	}()
	out.result, out.err = e.FindRoute(start, end, s)
	return out
}

// Summaries returns one row per successful strategy, in strategy order.
func (c *Comparison) Summaries() []StrategySummary {
	baseline := 0.0
	if r, ok := c.Results[costfunction.DISTANCE]; ok {
		baseline = r.Detail.TotalDistance
	}

	rows := make([]StrategySummary, 0, len(c.Results))
	for _, s := range costfunction.AllStrategies() {
		r, ok := c.Results[s]
		if !ok {
			continue
		}
		row := StrategySummary{
			Strategy:      s,
			TotalDistance: r.Detail.TotalDistance,
			TotalCost:     r.TotalCost,
			AvgSafety:     r.Detail.AvgSafety,
			MinSafety:     r.Detail.MinSafety,
			NumSegments:   r.Detail.NumSegments(),
		}
		if baseline > 0 {
			row.DistanceRatio = r.Detail.TotalDistance / baseline
		}
		rows = append(rows, row)
	}
	return rows
}
