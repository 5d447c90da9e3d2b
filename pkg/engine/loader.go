package engine

import (
	"time"

	"github.com/lintang-b-s/sheltr/pkg/costfunction"
	"github.com/lintang-b-s/sheltr/pkg/loader"
	"github.com/lintang-b-s/sheltr/pkg/segment"
	"go.uber.org/zap"
)

// Config. input files & routing settings the engine is loaded with
type Config struct {
	SegmentsFile      string
	GraphFile         string
	ProvidesStableIds bool
	MinComponentSize  int
	GraphCacheSize    int
}

// NewEngineFromFiles loads the segment safety and edge files and ranks the network components.
// the distance graph is built eagerly so a broken network is reported at startup.
func NewEngineFromFiles(cfg Config, logger *zap.Logger, rec Recorder) (*Engine, error) {
	start := time.Now()
	logger.Info("Reading segment safety from ", zap.String("segmentsFile", cfg.SegmentsFile))
	safety, err := loader.LoadSegmentSafety(cfg.SegmentsFile)
	if err != nil {
		return nil, err
	}
	registry, err := segment.NewRegistry(safety, cfg.ProvidesStableIds)
	if err != nil {
		return nil, err
	}
	mean, lo, hi := registry.Stats()
	logger.Info("Loaded segment safety", zap.Int("segments", registry.Len()),
		zap.Float64("mean", mean), zap.Float64("min", lo), zap.Float64("max", hi))

	logger.Info("Reading road graph from ", zap.String("graphFile", cfg.GraphFile),
		zap.Bool("providesStableIds", cfg.ProvidesStableIds))
	edges, err := loader.LoadEdges(cfg.GraphFile, cfg.ProvidesStableIds)
	if err != nil {
		return nil, err
	}

	e, err := NewEngine(edges, registry,
		WithMinComponentSize(cfg.MinComponentSize),
		WithGraphCacheSize(cfg.GraphCacheSize),
		WithRecorder(rec),
		WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	comp, err := e.GetComponent()
	if err != nil {
		logger.Warn("no connected component meets the minimum size, routes will fail",
			zap.Int("components", len(e.GetComponents())), zap.Int("minComponentSize", cfg.MinComponentSize))
		return e, nil
	}
	logger.Info("Selected connected component", zap.Int("edgeRecords", edges.Len()),
		zap.Int("components", len(e.GetComponents())), zap.Int("nodes", comp.Size()))

	if _, err := e.Graph(costfunction.DISTANCE); err != nil {
		return nil, err
	}
	logger.Info("Engine ready", zap.Duration("elapsed", time.Since(start)))
	return e, nil
}
