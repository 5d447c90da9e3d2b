package main

import (
	"context"
	"errors"
	"flag"

	"github.com/lintang-b-s/sheltr/pkg/costfunction"
	"github.com/lintang-b-s/sheltr/pkg/engine"
	"github.com/lintang-b-s/sheltr/pkg/geo"
	"github.com/lintang-b-s/sheltr/pkg/geometry"
	"github.com/lintang-b-s/sheltr/pkg/http"
	"github.com/lintang-b-s/sheltr/pkg/http/usecases"
	"github.com/lintang-b-s/sheltr/pkg/logger"
	"github.com/lintang-b-s/sheltr/pkg/metrics"
	"github.com/lintang-b-s/sheltr/pkg/safepoint"
	"github.com/lintang-b-s/sheltr/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	useRateLimit = flag.Bool("rate_limit", false, "enable the API_RATE_LIMIT / API_RATE_BURST request limiter")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	if err := util.ReadConfig(); err != nil {
		logger.Fatal("read config", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(registry)

	routingEngine, err := engine.NewEngineFromFiles(engine.Config{
		SegmentsFile:      viper.GetString("data.segments_file"),
		GraphFile:         viper.GetString("data.graph_file"),
		ProvidesStableIds: viper.GetBool("data.provides_stable_ids"),
		MinComponentSize:  viper.GetInt("routing.min_component_size"),
		GraphCacheSize:    viper.GetInt("routing.graph_cache_size"),
	}, logger, m)
	if err != nil {
		logger.Fatal("load routing engine", zap.Error(err))
	}

	proj, err := geo.NewProjector(viper.GetInt("routing.utm_zone"), viper.GetBool("routing.utm_northern"))
	if err != nil {
		logger.Fatal("utm projection", zap.Error(err))
	}
	logger.Info("Using projected coordinates", zap.Int("epsg", proj.EPSG()))

	var shapes geometry.ShapeSource
	if path := viper.GetString("data.geometry_file"); path != "" {
		idx, err := geometry.LoadShapes(path)
		if err != nil {
			logger.Warn("segment geometry not loaded, routes are drawn through graph nodes", zap.Error(err))
		} else {
			logger.Info("Loaded segment geometry", zap.String("geometryFile", path), zap.Int("shapes", idx.Len()))
			shapes = idx
		}
	}

	var safePoints usecases.SafePointStore
	store, err := safepoint.Load(viper.GetString("data.safepoints_file"), proj)
	switch {
	case errors.Is(err, safepoint.ErrNoSafePoints):
		logger.Warn("no safepoints configured, requests without an end point will fail")
	case err != nil:
		logger.Warn("safepoints not loaded", zap.Error(err))
	default:
		logger.Info("Loaded safepoints", zap.Int("count", store.Len()))
		safePoints = store
	}

	defaultStrategy := costfunction.ParseStrategyOrDistance(viper.GetString("routing.default_cost_function"))
	routingService := usecases.NewRoutingService(logger, routingEngine, safePoints, shapes, proj,
		defaultStrategy, viper.GetInt("routing.evacuation_center_limit"))

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	api := http.NewServer(logger)
	if _, err := api.Use(ctx, logger, *useRateLimit, routingService, registry); err != nil {
		logger.Fatal("start api", zap.Error(err))
	}

	signal := http.GracefulShutdown(api.Done())
	cleanup()
	if err := api.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("api stopped with error", zap.Error(err))
	}
	reason := "server stopped"
	if signal != nil {
		reason = signal.String()
	}
	logger.Info("Sheltr Routing Engine Server Stopped", zap.String("signal", reason))
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
