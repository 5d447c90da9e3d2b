package usecases

import (
	"github.com/lintang-b-s/sheltr/pkg/engine"
	"github.com/lintang-b-s/sheltr/pkg/geo"
	"github.com/lintang-b-s/sheltr/pkg/geometry"
	"github.com/lintang-b-s/sheltr/pkg/guidance"
	"github.com/lintang-b-s/sheltr/pkg/util"
)

// newRouteResponse renders a successful route for the map frontend: lat/lon coordinates following the
// road shapes, the encoded polyline, turn-by-turn directions and km distance.
func (rs *RoutingService) newRouteResponse(res *engine.RouteResult) *RouteResponse {
	coords := geometry.RouteCoordinates(res.Detail, res.Path, rs.shapes, rs.proj)

	directions := []guidance.Direction{}
	var summary *guidance.Summary
	if len(coords) >= 2 {
		directions = rs.directionBuilder.GetDirections(coords, nil)
		summary = guidance.NewSummary(directions)
	}

	detail := res.Detail
	return &RouteResponse{
		Route:             geometry.LatLonPairs(coords),
		Polyline:          geo.PolylineFromCoords(coords),
		TotalDistance:     util.RoundFloat(detail.TotalDistance/1000, 3),
		SafetyScore:       detail.AvgSafety,
		FloodRisk:         1 - detail.AvgSafety,
		NumSegments:       detail.NumSegments(),
		CostFunction:      res.Strategy.String(),
		Segments:          detail.Segments,
		Directions:        directions,
		DirectionsSummary: summary,
		StartSnap:         rs.snapResponse(res.StartSnap.Snapped, res.StartSnap.Distance, res.StartSnap.Node),
		EndSnap:           rs.snapResponse(res.EndSnap.Snapped, res.EndSnap.Distance, res.EndSnap.Node),
	}
}
