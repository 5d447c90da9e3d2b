package geo

import (
	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/sheltr/pkg/datastructure"
)

const earthRadiusM = 6371000.0

// DistanceMeters. great circle distance between a and b
func DistanceMeters(a, b datastructure.Coordinate) float64 {
	return s2.LatLngFromDegrees(a.Lat, a.Lon).Distance(s2.LatLngFromDegrees(b.Lat, b.Lon)).Radians() * earthRadiusM
}
