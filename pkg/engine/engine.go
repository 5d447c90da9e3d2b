package engine

import (
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/sheltr/pkg"
	"github.com/lintang-b-s/sheltr/pkg/builder"
	"github.com/lintang-b-s/sheltr/pkg/costfunction"
	da "github.com/lintang-b-s/sheltr/pkg/datastructure"
	"github.com/lintang-b-s/sheltr/pkg/engine/routing"
	"github.com/lintang-b-s/sheltr/pkg/loader"
	"github.com/lintang-b-s/sheltr/pkg/segment"
	"github.com/lintang-b-s/sheltr/pkg/spatialindex"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DEFAULT_GRAPH_CACHE_SIZE = 8
)

var (
	ErrNoSegment       = errors.New("no road segment near the query point")
	ErrNegativeSamples = errors.New("number of sample routes must not be negative")
)

// Recorder. observer of routing activity, implemented by *metrics.Metrics
type Recorder interface {
	ObserveRoute(strategy string, success bool, numSegments int, elapsed time.Duration)
	ObserveRouteError(strategy string)
	ObserveGraphBuild(strategy string, elapsed time.Duration)
	ObserveGraphCache(hit bool)
	ObserveSnap(distance float64)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRoute(string, bool, int, time.Duration) {}
func (nopRecorder) ObserveRouteError(string)                      {}
func (nopRecorder) ObserveGraphBuild(string, time.Duration)       {}
func (nopRecorder) ObserveGraphCache(bool)                        {}
func (nopRecorder) ObserveSnap(float64)                           {}

// strategyGraph. graph built for one cost strategy plus its nearest node index.
// read-only once cached; a rebuild replaces the entry and old readers keep their reference.
type strategyGraph struct {
	graph   *da.Graph
	locator *spatialindex.Rtree
	solver  *routing.Dijkstra
}

// RouteResult. route computed for one strategy
type RouteResult struct {
	Strategy costfunction.Strategy `json:"strategy"`
	*routing.Route
}

// Engine owns the immutable edge records, the segment registry & the ranked connected components,
// and builds one graph per cost strategy on demand.
type Engine struct {
	edges            *loader.EdgeSource
	registry         *segment.Registry
	builder          *builder.GraphBuilder
	components       []*da.Component
	component        *da.Component
	componentErr     error
	minComponentSize int

	graphCacheSize int
	graphs         *lru.Cache[costfunction.Strategy, *strategyGraph]
	group          singleflight.Group

	recorder Recorder
	logger   *zap.Logger
}

type Option func(*Engine)

func WithMinComponentSize(minSize int) Option {
	return func(e *Engine) {
		if minSize > 0 {
			e.minComponentSize = minSize
		}
	}
}

func WithGraphCacheSize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.graphCacheSize = size
		}
	}
}

func WithRecorder(rec Recorder) Option {
	return func(e *Engine) {
		if rec != nil {
			e.recorder = rec
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine ranks the connected components of the edge source once. a network with no component of the
// minimum size is not an error here, every route query on it reports an insufficient graph.
func NewEngine(edges *loader.EdgeSource, registry *segment.Registry, opts ...Option) (*Engine, error) {
	if edges == nil || registry == nil {
		return nil, errors.New("engine needs an edge source and a segment registry")
	}
	e := &Engine{
		edges:            edges,
		registry:         registry,
		builder:          builder.NewGraphBuilder(edges.GetRecords(), registry),
		minComponentSize: pkg.DEFAULT_MIN_COMPONENT_SIZE,
		graphCacheSize:   DEFAULT_GRAPH_CACHE_SIZE,
		recorder:         nopRecorder{},
		logger:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	graphs, err := lru.New[costfunction.Strategy, *strategyGraph](e.graphCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create graph cache: %w", err)
	}
	e.graphs = graphs

	e.components = da.FindConnectedComponents(edges.GetRecords())
	e.component, e.componentErr = da.SelectComponent(e.components, e.minComponentSize)
	return e, nil
}

func (e *Engine) GetRegistry() *segment.Registry {
	return e.registry
}

func (e *Engine) GetEdgeSource() *loader.EdgeSource {
	return e.edges
}

func (e *Engine) GetComponents() []*da.Component {
	return e.components
}

// GetComponent returns the component every graph is built over.
func (e *Engine) GetComponent() (*da.Component, error) {
	return e.component, e.componentErr
}

// graphFor returns the cached graph of strategy, building it at most once across concurrent callers.
func (e *Engine) graphFor(strategy costfunction.Strategy) (*strategyGraph, error) {
	if sg, ok := e.graphs.Get(strategy); ok {
		e.recorder.ObserveGraphCache(true)
		return sg, nil
	}
	e.recorder.ObserveGraphCache(false)

	if e.componentErr != nil {
		return nil, e.componentErr
	}

	v, err, _ := e.group.Do(strategy.String(), func() (interface{}, error) {
		if sg, ok := e.graphs.Get(strategy); ok {
			return sg, nil
		}
		start := time.Now()
		g, err := e.builder.Build(e.component, costfunction.NewCostFunction(strategy))
		if err != nil {
			return nil, err
		}
		rt := spatialindex.NewRtree()
		rt.Build(g.GetVertices())
		sg := &strategyGraph{
			graph:   g,
			locator: rt,
			solver:  routing.NewDijkstra(g, rt),
		}
		e.graphs.Add(strategy, sg)

		elapsed := time.Since(start)
		e.recorder.ObserveGraphBuild(strategy.String(), elapsed)
		e.logger.Debug("built graph", zap.String("strategy", strategy.String()),
			zap.Int("nodes", g.NumberOfVertices()), zap.Int("edges", g.NumberOfEdges()),
			zap.Duration("elapsed", elapsed))
		return sg, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*strategyGraph), nil
}

// Graph returns the weighted graph of strategy.
func (e *Engine) Graph(strategy costfunction.Strategy) (*da.Graph, error) {
	sg, err := e.graphFor(strategy)
	if err != nil {
		return nil, err
	}
	return sg.graph, nil
}

// FindRoute computes the cheapest route between start and end under strategy.
// an unreachable target or an insufficient network is returned as a failed route, only faults in the
// input data (e.g. a negative weight) are returned as errors.
func (e *Engine) FindRoute(start, end da.Node, strategy costfunction.Strategy) (*RouteResult, error) {
	begin := time.Now()
	sg, err := e.graphFor(strategy)
	if err != nil {
		if errors.Is(err, da.ErrNoComponent) || errors.Is(err, builder.ErrEmptyGraph) {
			route := routing.NewFailedRoute(routing.INSUFFICIENT_GRAPH,
				routing.SnapInfo{Query: start}, routing.SnapInfo{Query: end})
			e.recorder.ObserveRoute(strategy.String(), false, 0, time.Since(begin))
			return &RouteResult{Strategy: strategy, Route: route}, nil
		}
		e.recorder.ObserveRouteError(strategy.String())
		return nil, fmt.Errorf("build %s graph: %w", strategy, err)
	}

	route := sg.solver.ShortestPath(start, end)
	if route.StartSnap.Snapped {
		e.recorder.ObserveSnap(route.StartSnap.Distance)
	}
	if route.EndSnap.Snapped {
		e.recorder.ObserveSnap(route.EndSnap.Distance)
	}
	e.recorder.ObserveRoute(strategy.String(), route.Success, route.Detail.NumSegments(), time.Since(begin))
	return &RouteResult{Strategy: strategy, Route: route}, nil
}

// NearestNode returns the graph node closest to (x, y) in the distance graph.
func (e *Engine) NearestNode(x, y float64) (da.Node, float64, error) {
	sg, err := e.graphFor(costfunction.DISTANCE)
	if err != nil {
		return da.Node{}, 0, err
	}
	cands := sg.locator.NearestK(x, y, 1)
	if len(cands) == 0 {
		return da.Node{}, 0, builder.ErrEmptyGraph
	}
	return cands[0].GetNode(), cands[0].GetDistance(), nil
}
