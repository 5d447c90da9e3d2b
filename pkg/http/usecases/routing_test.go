package usecases

import (
	"errors"
	"testing"

	"github.com/lintang-b-s/sheltr/pkg/costfunction"
	da "github.com/lintang-b-s/sheltr/pkg/datastructure"
	"github.com/lintang-b-s/sheltr/pkg/engine"
	"github.com/lintang-b-s/sheltr/pkg/geometry"
	"github.com/lintang-b-s/sheltr/pkg/guidance"
	"github.com/lintang-b-s/sheltr/pkg/loader"
	"github.com/lintang-b-s/sheltr/pkg/safepoint"
	"github.com/lintang-b-s/sheltr/pkg/segment"
	"github.com/lintang-b-s/sheltr/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// plate carree: x = lon, y = lat
type flatProjector struct{}

func (flatProjector) ToPlanar(lat, lon float64) (float64, float64, error) {
	if lat < -90 || lat > 90 {
		return 0, 0, errors.New("latitude out of range")
	}
	return lon, lat, nil
}

func (flatProjector) ToGeographic(x, y float64) (float64, float64) {
	return y, x
}

var (
	nodeA = da.NewNode(0, 0)
	nodeB = da.NewNode(0, 0.01)
	nodeC = da.NewNode(0.01, 0.01)
	nodeD = da.NewNode(0.01, 0)
)

func newTestEngine(t *testing.T, opts ...engine.Option) *engine.Engine {
	t.Helper()
	type e struct {
		from, to da.Node
		seg      string
	}
	raw := []e{{nodeA, nodeB, "ab"}, {nodeA, nodeD, "ad"}, {nodeD, nodeC, "dc"}, {nodeB, nodeC, "bc"}}
	records := make([]da.EdgeRecord, 0, len(raw))
	for _, r := range raw {
		rec, err := da.NewEdgeRecord(r.from, r.to, 1000, r.seg)
		require.NoError(t, err)
		records = append(records, rec)
	}
	reg, err := segment.NewRegistry([]segment.SafetyRecord{
		segment.NewSafetyRecord("ab", 0.9, 1),
		segment.NewSafetyRecord("ad", 0.1, 0),
		segment.NewSafetyRecord("dc", 0.9, 1),
		segment.NewSafetyRecord("bc", 0.9, 1),
	}, true)
	require.NoError(t, err)

	eng, err := engine.NewEngine(loader.NewEdgeSource(records, true), reg, opts...)
	require.NoError(t, err)
	return eng
}

func newTestService(t *testing.T, store SafePointStore, shapes geometry.ShapeSource) *RoutingService {
	return NewRoutingService(zap.NewNop(), newTestEngine(t), store, shapes, flatProjector{}, costfunction.COMBINED, 10)
}

func TestCalculateRoute(t *testing.T) {
	rs := newTestService(t, nil, nil)

	resp, err := rs.CalculateRoute(LatLon{0, 0}, &LatLon{0.01, 0.01}, "safety")
	require.NoError(t, err)

	assert.Equal(t, "safety", resp.CostFunction)
	assert.Equal(t, [][2]float64{{0, 0}, {0.01, 0}, {0.01, 0.01}}, resp.Route)
	assert.NotEmpty(t, resp.Polyline)
	assert.Equal(t, 2.0, resp.TotalDistance)
	assert.Equal(t, 2, resp.NumSegments)
	assert.InDelta(t, 0.9, resp.SafetyScore, 1e-12)
	assert.InDelta(t, 0.1, resp.FloodRisk, 1e-12)
	assert.False(t, resp.StartSnap.Snapped)
	assert.Nil(t, resp.Destination)

	require.Len(t, resp.Directions, 3)
	assert.Equal(t, guidance.START, resp.Directions[0].Type)
	assert.Equal(t, guidance.TURN, resp.Directions[1].Type)
	assert.Equal(t, guidance.DESTINATION, resp.Directions[2].Type)
	require.NotNil(t, resp.DirectionsSummary)
	assert.Equal(t, 1, resp.DirectionsSummary.NumTurns)
}

func TestCalculateRouteStrategyNames(t *testing.T) {
	rs := newTestService(t, nil, nil)

	resp, err := rs.CalculateRoute(LatLon{0, 0}, &LatLon{0.01, 0.01}, "")
	require.NoError(t, err)
	assert.Equal(t, "combined", resp.CostFunction)

	resp, err = rs.CalculateRoute(LatLon{0, 0}, &LatLon{0.01, 0.01}, "fastest")
	require.NoError(t, err)
	assert.Equal(t, "distance", resp.CostFunction, "unknown names fall back to distance")
}

func TestCalculateRouteToNearestSafePoint(t *testing.T) {
	store := safepoint.NewStore([]safepoint.SafePoint{
		{ID: "0", Name: "Far School", Node: da.NewNode(5, 5), Coordinate: da.NewCoordinate(5, 5)},
		{ID: "1", Name: "Town Hall", Node: nodeC, Coordinate: da.NewCoordinate(0.01, 0.01), Capacity: 300},
	}, false)
	rs := newTestService(t, store, nil)

	resp, err := rs.CalculateRoute(LatLon{0, 0}, nil, "distance")
	require.NoError(t, err)
	require.NotNil(t, resp.Destination)
	assert.Equal(t, "Town Hall", resp.Destination.Name)
	assert.Equal(t, [2]float64{0.01, 0.01}, resp.Route[len(resp.Route)-1])

	nearest, err := rs.NearestSafeRoute(LatLon{0, 0}, "safety")
	require.NoError(t, err)
	assert.Equal(t, "Town Hall", nearest.Destination.Name)

	centers := rs.EvacuationCenters()
	assert.Len(t, centers, 2)
}

func TestCalculateRouteWithoutSafePoints(t *testing.T) {
	rs := newTestService(t, nil, nil)

	_, err := rs.CalculateRoute(LatLon{0, 0}, nil, "")
	require.Error(t, err)
	assert.ErrorIs(t, util.ErrorCode(err), util.ErrBadParamInput)

	_, err = rs.NearestSafeRoute(LatLon{0, 0}, "")
	assert.ErrorIs(t, util.ErrorCode(err), util.ErrInternalServerError)

	assert.Empty(t, rs.EvacuationCenters())
}

func TestCalculateRouteFailures(t *testing.T) {
	rs := newTestService(t, nil, nil)
	_, err := rs.CalculateRoute(LatLon{120, 0}, &LatLon{0, 0}, "")
	assert.ErrorIs(t, util.ErrorCode(err), util.ErrBadParamInput)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)

	tiny := NewRoutingService(zap.NewNop(), newTestEngine(t, engine.WithMinComponentSize(100)), nil, nil,
		flatProjector{}, costfunction.COMBINED, 10)
	_, err = tiny.CalculateRoute(LatLon{0, 0}, &LatLon{0.01, 0.01}, "")
	assert.ErrorIs(t, err, ErrPathNotFound)
	assert.ErrorIs(t, util.ErrorCode(err), util.ErrBadParamInput)
}

func TestCompareRoutes(t *testing.T) {
	rs := newTestService(t, nil, nil)

	resp, err := rs.CompareRoutes(LatLon{0, 0}, LatLon{0.01, 0.01})
	require.NoError(t, err)
	assert.Len(t, resp.Routes, 4)
	assert.Empty(t, resp.Failures)
	assert.Len(t, resp.Summary, 4)
	assert.Equal(t, "flood_risk", resp.Routes["flood_risk"].CostFunction)
}

func TestPredict(t *testing.T) {
	rs := newTestService(t, nil, nil)

	p, err := rs.Predict(LatLon{0.005, 0.0001})
	require.NoError(t, err)
	assert.Equal(t, "ab", p.SegmentID)
	assert.Equal(t, 1, p.Safe)
	assert.Equal(t, "low", p.RiskLevel)
	assert.Equal(t, 0.9, p.SafetyProbability)

	p, err = rs.Predict(LatLon{0.0001, 0.005})
	require.NoError(t, err)
	assert.Equal(t, "ad", p.SegmentID)
	assert.Equal(t, "high", p.RiskLevel)
}

func TestSegmentsGeoJSON(t *testing.T) {
	shapes := geometry.NewShapeIndex()
	shapes.Add("ab", []da.Point{da.NewPoint(0, 0), da.NewPoint(0, 0.005), da.NewPoint(0, 0.01)})
	rs := newTestService(t, nil, shapes)

	fc := rs.Segments()
	require.Len(t, fc.Features, 4)

	byID := make(map[string]int)
	for i, f := range fc.Features {
		byID[f.Properties["id"].(string)] = i
	}
	ab := fc.Features[byID["ab"]]
	require.NotNil(t, ab.Geometry)
	assert.True(t, ab.Geometry.IsLineString())
	assert.Equal(t, []float64{0, 0.005}, ab.Geometry.LineString[1])
	assert.Nil(t, fc.Features[byID["ad"]].Geometry)
	assert.Equal(t, "high", fc.Features[byID["ad"]].Properties["risk_level"])

	h := rs.Health()
	assert.True(t, h.RouterReady)
	assert.True(t, h.SegmentsLoaded)
	assert.True(t, h.GeometryLoaded)
	assert.False(t, h.SafePointsLoaded)
}
