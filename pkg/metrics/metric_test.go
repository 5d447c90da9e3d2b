package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveRoute("safety", true, 12, 3*time.Millisecond)
	m.ObserveRoute("safety", false, 0, time.Millisecond)
	m.ObserveRouteError("distance")
	m.ObserveGraphBuild("safety", 40*time.Millisecond)
	m.ObserveGraphCache(true)
	m.ObserveGraphCache(false)
	m.ObserveGraphCache(true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.routeQueries.WithLabelValues("safety", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.routeQueries.WithLabelValues("safety", "no_path")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.routeQueries.WithLabelValues("distance", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.graphBuilds.WithLabelValues("safety")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.graphCache.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.graphCache.WithLabelValues("miss")))
}

func TestRouteDurationHelp(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.ObserveRoute("combined", true, 3, 2*time.Millisecond)

	families, err := reg.Gather()
	assert.NoError(t, err)
	help := ""
	for _, mf := range families {
		if mf.GetName() == "sheltr_route_query_duration_seconds" {
			help = mf.GetHelp()
		}
	}
	assert.Equal(t, "Route query duration, including a lazy graph build on a cache miss", help)
	assert.Equal(t, 1, testutil.CollectAndCount(m.routeDuration))
}
