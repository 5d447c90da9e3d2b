package geo

import (
	"testing"

	"github.com/lintang-b-s/sheltr/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-polyline"
)

func TestProjectorCentralMeridian(t *testing.T) {
	p, err := NewProjector(51, true)
	require.NoError(t, err)
	assert.Equal(t, 32651, p.EPSG())

	x, y, err := p.ToPlanar(0, 123)
	require.NoError(t, err)
	assert.InDelta(t, 500000.0, x, 1e-3)
	assert.InDelta(t, 0.0, y, 1e-3)

	// symmetric about the central meridian
	xw, yw, err := p.ToPlanar(14.6, 122)
	require.NoError(t, err)
	xe, ye, err := p.ToPlanar(14.6, 124)
	require.NoError(t, err)
	assert.InDelta(t, 500000-xw, xe-500000, 1e-3)
	assert.InDelta(t, yw, ye, 1e-3)
}

func TestProjectorRoundTrip(t *testing.T) {
	p, err := NewProjector(51, true)
	require.NoError(t, err)

	for _, c := range [][2]float64{
		{14.5995, 120.9842},
		{14.6760, 121.0437},
		{7.1907, 125.4553},
		{18.2, 121.5},
	} {
		x, y, err := p.ToPlanar(c[0], c[1])
		require.NoError(t, err)
		lat, lon := p.ToGeographic(x, y)
		assert.InDelta(t, c[0], lat, 1e-6)
		assert.InDelta(t, c[1], lon, 1e-6)
	}
}

func TestProjectorSouthern(t *testing.T) {
	p, err := NewProjector(51, false)
	require.NoError(t, err)
	assert.Equal(t, 32751, p.EPSG())

	x, y, err := p.ToPlanar(-8.5, 124.1)
	require.NoError(t, err)
	assert.Greater(t, y, 9000000.0)
	lat, lon := p.ToGeographic(x, y)
	assert.InDelta(t, -8.5, lat, 1e-6)
	assert.InDelta(t, 124.1, lon, 1e-6)
}

func TestProjectorPlanarDistanceMatchesGeodesic(t *testing.T) {
	p, err := NewProjector(51, true)
	require.NoError(t, err)

	a := datastructure.NewCoordinate(14.5995, 120.9842)
	b := datastructure.NewCoordinate(14.6095, 120.9942)
	ax, ay, err := p.ToPlanar(a.Lat, a.Lon)
	require.NoError(t, err)
	bx, by, err := p.ToPlanar(b.Lat, b.Lon)
	require.NoError(t, err)

	// scale factor is within 0.1% inside a zone
	planarDist := datastructure.NewNode(ax, ay).EuclideanDistance(datastructure.NewNode(bx, by))
	assert.InEpsilon(t, DistanceMeters(a, b), planarDist, 2e-3)
}

func TestInvalidZone(t *testing.T) {
	_, err := NewProjector(0, true)
	assert.ErrorIs(t, err, ErrInvalidUTMZone)

	p, err := NewProjector(51, true)
	require.NoError(t, err)
	_, _, err = p.ToPlanar(85, 120)
	assert.ErrorIs(t, err, ErrLatitudeOutOfUTM)
}

func TestDistanceMeters(t *testing.T) {
	a := datastructure.NewCoordinate(0, 0)
	b := datastructure.NewCoordinate(0, 1)

	// one degree of longitude on the equator
	assert.InDelta(t, 111195, DistanceMeters(a, b), 1)
	assert.Equal(t, 0.0, DistanceMeters(a, a))
}

func TestBearingAndTurns(t *testing.T) {
	assert.InDelta(t, 0, BearingTo(0, 0, 1, 0), 1e-9)
	assert.InDelta(t, 90, BearingTo(0, 0, 0, 1), 1e-9)
	assert.InDelta(t, 180, BearingTo(1, 0, 0, 0), 1e-9)

	tests := []struct {
		b1, b2, want float64
	}{
		{0, 90, 90},
		{0, 270, -90},
		{350, 10, 20},
		{10, 350, -20},
		{0, 180, 180},
		{180, 0, -180},
		{270, 90, -180},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TurnAngle(tt.b1, tt.b2), "turn %v -> %v", tt.b1, tt.b2)
	}
}

func TestCardinalDirection(t *testing.T) {
	tests := []struct {
		bearing float64
		want    string
	}{
		{10, "North"},
		{44, "Northeast"},
		{268, "West"},
		{355, "North"},
		// halfway sectors round to the even index
		{22.5, "North"},
		{67.5, "East"},
		{112.5, "Southeast"},
		{337.5, "North"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CardinalDirection(tt.bearing), "bearing %v", tt.bearing)
	}
}

func TestPolyline(t *testing.T) {
	coords := []datastructure.Coordinate{
		datastructure.NewCoordinate(38.5, -120.2),
		datastructure.NewCoordinate(40.7, -120.95),
		datastructure.NewCoordinate(43.252, -126.453),
	}
	enc := PolylineFromCoords(coords)
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", enc)

	dec, _, err := polyline.DecodeCoords([]byte(enc))
	require.NoError(t, err)
	require.Len(t, dec, 3)
	assert.InDelta(t, 43.252, dec[2][0], 1e-5)
}
