package engine

import (
	"math"

	"github.com/lintang-b-s/sheltr/pkg/costfunction"
	da "github.com/lintang-b-s/sheltr/pkg/datastructure"
	"golang.org/x/exp/rand"
)

const (
	topComponents       = 5
	nearestSegmentNodes = 8
)

// NetworkSummary. connectivity & safety statistics of the loaded road network
type NetworkSummary struct {
	NumEdgeRecords        int     `json:"num_edge_records"`
	NumNodes              int     `json:"num_nodes"`
	NumComponents         int     `json:"num_components"`
	LargestComponent      int     `json:"largest_component"`
	TopComponentSizes     []int   `json:"top_component_sizes"`
	MinComponentSize      int     `json:"min_component_size"`
	SelectedComponentSize int     `json:"selected_component_size"`
	GraphEdges            int     `json:"graph_edges"`
	Density               float64 `json:"density"`
	NumSegments           int     `json:"num_segments"`
	ProvidesStableIds     bool    `json:"provides_stable_ids"`
	MeanSafety            float64 `json:"mean_safety"`
	MinSafety             float64 `json:"min_safety"`
	MaxSafety             float64 `json:"max_safety"`
}

// NetworkSummary describes the components of the raw edge list and the distance graph built over the selected one.
func (e *Engine) NetworkSummary() NetworkSummary {
	ns := NetworkSummary{
		NumEdgeRecords:    e.edges.Len(),
		NumComponents:     len(e.components),
		TopComponentSizes: make([]int, 0, topComponents),
		MinComponentSize:  e.minComponentSize,
		NumSegments:       e.registry.Len(),
		ProvidesStableIds: e.edges.ProvidesStableIds(),
	}
	for i, c := range e.components {
		ns.NumNodes += c.Size()
		if i < topComponents {
			ns.TopComponentSizes = append(ns.TopComponentSizes, c.Size())
		}
	}
	if len(e.components) > 0 {
		ns.LargestComponent = e.components[0].Size()
	}
	if e.component != nil {
		ns.SelectedComponentSize = e.component.Size()
	}
	if g, err := e.Graph(costfunction.DISTANCE); err == nil {
		ns.GraphEdges = g.NumberOfEdges()
		ns.Density = g.Density()
	}
	ns.MeanSafety, ns.MinSafety, ns.MaxSafety = e.registry.Stats()
	return ns
}

// SegmentMatch. road segment closest to a query point
type SegmentMatch struct {
	SegmentID  string  `json:"segment_id"`
	From       da.Node `json:"from"`
	To         da.Node `json:"to"`
	Distance   float64 `json:"distance"`
	SafetyProb float64 `json:"safety_prob"`
	PredSafe   int     `json:"pred_safe"`
}

// NearestSegment returns the graph edge closest to p, searching the edges incident to the nodes nearest p.
func (e *Engine) NearestSegment(p da.Node) (*SegmentMatch, error) {
	sg, err := e.graphFor(costfunction.DISTANCE)
	if err != nil {
		return nil, err
	}
	g := sg.graph
	q := da.NewPoint(p.GetX(), p.GetY())

	var best *SegmentMatch
	bestDist := math.Inf(1)
	for _, cand := range sg.locator.NearestK(p.GetX(), p.GetY(), nearestSegmentNodes) {
		u := cand.GetIndex()
		from := g.GetVertex(u)
		g.ForOutEdgesOf(u, func(edge *da.Edge) {
			to := g.GetVertex(edge.GetHead())
			d := da.PointSegmentDistance(q, da.NewPoint(from.GetX(), from.GetY()), da.NewPoint(to.GetX(), to.GetY()))
			if d < bestDist {
				bestDist = d
				best = &SegmentMatch{
					SegmentID:  edge.GetSegmentID(),
					From:       from,
					To:         to,
					Distance:   d,
					SafetyProb: edge.GetSafetyProb(),
				}
			}
		})
	}
	if best == nil {
		return nil, ErrNoSegment
	}
	best.PredSafe = e.registry.PredSafeOf(best.SegmentID)
	return best, nil
}

// SampleRoutes routes n random node pairs of the selected component under strategy, returning the
// successful routes. the same seed draws the same pairs.
func (e *Engine) SampleRoutes(n int, seed uint64, strategy costfunction.Strategy) ([]*RouteResult, error) {
	if n < 0 {
		return nil, ErrNegativeSamples
	}
	sg, err := e.graphFor(strategy)
	if err != nil {
		return nil, err
	}
	nodes := sg.graph.GetVertices()
	if len(nodes) < 2 {
		return []*RouteResult{}, nil
	}

	rnd := rand.New(rand.NewSource(seed))
	routes := make([]*RouteResult, 0, n)
	for i := 0; i < n; i++ {
		s := rnd.Intn(len(nodes))
		t := rnd.Intn(len(nodes) - 1)
		if t >= s {
			t++
		}
		res, err := e.FindRoute(nodes[s], nodes[t], strategy)
		if err != nil {
			return nil, err
		}
		if res.Success {
			routes = append(routes, res)
		}
	}
	return routes, nil
}
