package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics. prometheus collectors of the routing engine
type Metrics struct {
	routeQueries     *prometheus.CounterVec
	routeDuration    *prometheus.HistogramVec
	pathSegmentCount prometheus.Histogram
	graphBuilds      *prometheus.CounterVec
	graphBuildTime   prometheus.Histogram
	graphCache       *prometheus.CounterVec
	snapDistance     prometheus.Histogram
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		routeQueries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sheltr_route_queries_total",
			Help: "Total route queries by cost strategy and result",
		}, []string{"strategy", "result"}),

		routeDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sheltr_route_query_duration_seconds",
			Help:    "Route query duration, including a lazy graph build on a cache miss",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"strategy"}),

		pathSegmentCount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sheltr_route_path_segments",
			Help:    "Number of segments in found routes",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		}),

		graphBuilds: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sheltr_graph_builds_total",
			Help: "Total weighted graph builds by cost strategy",
		}, []string{"strategy"}),

		graphBuildTime: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sheltr_graph_build_duration_seconds",
			Help:    "Weighted graph build duration",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		}),

		graphCache: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sheltr_graph_cache_lookups_total",
			Help: "Graph cache lookups by result (hit, miss)",
		}, []string{"result"}),

		snapDistance: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sheltr_snap_distance_meters",
			Help:    "Distance between a snapped query point and its graph node",
			Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000},
		}),
	}
}

func (m *Metrics) ObserveRoute(strategy string, success bool, numSegments int, elapsed time.Duration) {
	result := "success"
	if !success {
		result = "no_path"
	}
	m.routeQueries.WithLabelValues(strategy, result).Inc()
	m.routeDuration.WithLabelValues(strategy).Observe(elapsed.Seconds())
	if success {
		m.pathSegmentCount.Observe(float64(numSegments))
	}
}

func (m *Metrics) ObserveRouteError(strategy string) {
	m.routeQueries.WithLabelValues(strategy, "error").Inc()
}

func (m *Metrics) ObserveGraphBuild(strategy string, elapsed time.Duration) {
	m.graphBuilds.WithLabelValues(strategy).Inc()
	m.graphBuildTime.Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveGraphCache(hit bool) {
	if hit {
		m.graphCache.WithLabelValues("hit").Inc()
		return
	}
	m.graphCache.WithLabelValues("miss").Inc()
}

func (m *Metrics) ObserveSnap(distance float64) {
	m.snapDistance.Observe(distance)
}
