package usecases

import (
	"errors"

	"github.com/lintang-b-s/sheltr/pkg/costfunction"
	"github.com/lintang-b-s/sheltr/pkg/datastructure"
	"github.com/lintang-b-s/sheltr/pkg/engine"
	"github.com/lintang-b-s/sheltr/pkg/geometry"
	"github.com/lintang-b-s/sheltr/pkg/guidance"
	"github.com/lintang-b-s/sheltr/pkg/safepoint"
	"github.com/lintang-b-s/sheltr/pkg/util"
	"go.uber.org/zap"
)

var (
	ErrPathNotFound      = errors.New("no path found")
	ErrNoSafePoints      = errors.New("no safepoints configured, provide an end point or configure safepoints")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)

type RoutingService struct {
	log                   *zap.Logger
	engine                RoutingEngine
	safePoints            SafePointStore
	shapes                geometry.ShapeSource
	proj                  Projector
	directionBuilder      *guidance.DirectionBuilder
	defaultStrategy       costfunction.Strategy
	evacuationCenterLimit int
}

// NewRoutingService. safePoints & shapes may be nil when those sources are not configured.
func NewRoutingService(log *zap.Logger, engine RoutingEngine, safePoints SafePointStore, shapes geometry.ShapeSource,
	proj Projector, defaultStrategy costfunction.Strategy, evacuationCenterLimit int) *RoutingService {
	return &RoutingService{
		log:                   log,
		engine:                engine,
		safePoints:            safePoints,
		shapes:                shapes,
		proj:                  proj,
		directionBuilder:      guidance.NewDirectionBuilder(guidance.DEFAULT_MIN_POINT_DISTANCE),
		defaultStrategy:       defaultStrategy,
		evacuationCenterLimit: evacuationCenterLimit,
	}
}

func (rs *RoutingService) strategyOf(name string) costfunction.Strategy {
	if name == "" {
		return rs.defaultStrategy
	}
	return costfunction.ParseStrategyOrDistance(name)
}

func (rs *RoutingService) toNode(p LatLon) (datastructure.Node, error) {
	x, y, err := rs.proj.ToPlanar(p.Latitude, p.Longitude)
	if err != nil {
		return datastructure.Node{}, util.WrapErrorf(ErrInvalidCoordinate, util.ErrBadParamInput, "%f,%f: %v",
			p.Latitude, p.Longitude, err)
	}
	n, err := datastructure.NewNodeChecked(x, y)
	if err != nil {
		return datastructure.Node{}, util.WrapErrorf(ErrInvalidCoordinate, util.ErrBadParamInput, "%f,%f: %v",
			p.Latitude, p.Longitude, err)
	}
	return n, nil
}

// CalculateRoute routes start to end. without an end the nearest safe point to start is the destination.
func (rs *RoutingService) CalculateRoute(start LatLon, end *LatLon, costFunction string) (*RouteResponse, error) {
	startNode, err := rs.toNode(start)
	if err != nil {
		return nil, err
	}

	var (
		endNode     datastructure.Node
		destination *EvacuationCenter
	)
	if end != nil {
		endNode, err = rs.toNode(*end)
		if err != nil {
			return nil, err
		}
	} else {
		if rs.safePoints == nil {
			return nil, util.WrapErrorf(ErrNoSafePoints, util.ErrBadParamInput, "route without an end point")
		}
		sp, _, err := rs.safePoints.Nearest(startNode.GetX(), startNode.GetY())
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrInternalServerError, "no valid safepoints available")
		}
		endNode = sp.Node
		center := newEvacuationCenter(sp)
		destination = &center
	}

	strategy := rs.strategyOf(costFunction)
	res, err := rs.engine.FindRoute(startNode, endNode, strategy)
	if err != nil {
		rs.log.Error("route computation failed", zap.String("strategy", strategy.String()), zap.Error(err))
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, util.MessageInternalServerError)
	}
	if !res.Success {
		return nil, util.WrapErrorf(ErrPathNotFound, util.ErrBadParamInput, "no path found from %s to %s (%s)",
			startNode, endNode, res.FailureReason)
	}

	resp := rs.newRouteResponse(res)
	resp.Destination = destination
	return resp, nil
}

// NearestSafeRoute routes from p to its nearest safe point.
func (rs *RoutingService) NearestSafeRoute(p LatLon, costFunction string) (*RouteResponse, error) {
	if rs.safePoints == nil {
		return nil, util.WrapErrorf(ErrNoSafePoints, util.ErrInternalServerError,
			"set SAFEPOINTS_PATH or place a safepoints file in the project root")
	}
	return rs.CalculateRoute(p, nil, costFunction)
}

// CompareRoutes routes start to end under every strategy.
func (rs *RoutingService) CompareRoutes(start, end LatLon) (*ComparisonResponse, error) {
	startNode, err := rs.toNode(start)
	if err != nil {
		return nil, err
	}
	endNode, err := rs.toNode(end)
	if err != nil {
		return nil, err
	}

	cmp := rs.engine.CompareStrategies(startNode, endNode)
	resp := &ComparisonResponse{
		Routes:   make(map[string]*RouteResponse, len(cmp.Results)),
		Failures: make(map[string]string, len(cmp.Failures)),
		Summary:  cmp.Summaries(),
	}
	for s, res := range cmp.Results {
		resp.Routes[s.String()] = rs.newRouteResponse(res)
	}
	for s, reason := range cmp.Failures {
		resp.Failures[s.String()] = reason
	}
	if len(resp.Routes) == 0 {
		return nil, util.WrapErrorf(ErrPathNotFound, util.ErrBadParamInput, "no strategy found a path from %s to %s",
			startNode, endNode)
	}
	return resp, nil
}

// Predict reports the flood safety of the road segment nearest p.
func (rs *RoutingService) Predict(p LatLon) (*PredictionResponse, error) {
	n, err := rs.toNode(p)
	if err != nil {
		return nil, err
	}
	m, err := rs.engine.NearestSegment(n)
	if err != nil {
		if errors.Is(err, engine.ErrNoSegment) {
			return nil, util.WrapErrorf(err, util.ErrNotFound, "no road segment near %f,%f", p.Latitude, p.Longitude)
		}
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, util.MessageInternalServerError)
	}
	return &PredictionResponse{
		Safe:              m.PredSafe,
		SafetyProbability: m.SafetyProb,
		RiskLevel:         riskLevel(m.PredSafe),
		SegmentID:         m.SegmentID,
		Distance:          util.RoundFloat(m.Distance, 2),
	}, nil
}

// EvacuationCenters lists the sampled evacuation centres, empty when no safe points are configured.
func (rs *RoutingService) EvacuationCenters() []EvacuationCenter {
	if rs.safePoints == nil {
		return []EvacuationCenter{}
	}
	points := rs.safePoints.EvacuationCenters(rs.evacuationCenterLimit)
	centers := make([]EvacuationCenter, len(points))
	for i, sp := range points {
		centers[i] = newEvacuationCenter(sp)
	}
	return centers
}

func (rs *RoutingService) Network() engine.NetworkSummary {
	return rs.engine.NetworkSummary()
}

func (rs *RoutingService) Health() HealthResponse {
	return HealthResponse{
		Status:           "healthy",
		RouterReady:      rs.engine != nil,
		SegmentsLoaded:   rs.engine != nil && rs.engine.GetRegistry().Len() > 0,
		SafePointsLoaded: rs.safePoints != nil,
		GeometryLoaded:   rs.shapes != nil,
	}
}

func (rs *RoutingService) shapeOf(segmentID string) ([]datastructure.Point, bool) {
	if rs.shapes == nil {
		return nil, false
	}
	return rs.shapes.GetShape(segmentID)
}

func newEvacuationCenter(sp safepoint.SafePoint) EvacuationCenter {
	return EvacuationCenter{
		ID:          sp.ID,
		Name:        sp.Name,
		Latitude:    sp.Coordinate.Lat,
		Longitude:   sp.Coordinate.Lon,
		Capacity:    sp.Capacity,
		SafetyScore: sp.SafetyScore,
	}
}

func riskLevel(predSafe int) string {
	if predSafe == 0 {
		return "high"
	}
	return "low"
}

func (rs *RoutingService) snapResponse(snapped bool, distance float64, n datastructure.Node) SnapResponse {
	lat, lon := rs.proj.ToGeographic(n.GetX(), n.GetY())
	return SnapResponse{
		Snapped:   snapped,
		Distance:  util.RoundFloat(distance, 2),
		Latitude:  lat,
		Longitude: lon,
	}
}
