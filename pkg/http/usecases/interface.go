package usecases

import (
	"github.com/lintang-b-s/sheltr/pkg/costfunction"
	"github.com/lintang-b-s/sheltr/pkg/datastructure"
	"github.com/lintang-b-s/sheltr/pkg/engine"
	"github.com/lintang-b-s/sheltr/pkg/safepoint"
	"github.com/lintang-b-s/sheltr/pkg/segment"
)

type RoutingEngine interface {
	FindRoute(start, end datastructure.Node, strategy costfunction.Strategy) (*engine.RouteResult, error)
	CompareStrategies(start, end datastructure.Node) *engine.Comparison
	NearestSegment(p datastructure.Node) (*engine.SegmentMatch, error)
	NetworkSummary() engine.NetworkSummary
	GetRegistry() *segment.Registry
}

type SafePointStore interface {
	Nearest(x, y float64) (safepoint.SafePoint, float64, error)
	EvacuationCenters(limit int) []safepoint.SafePoint
}

type Projector interface {
	ToPlanar(lat, lon float64) (float64, float64, error)
	ToGeographic(x, y float64) (float64, float64)
}
