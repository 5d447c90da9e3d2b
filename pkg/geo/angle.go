package geo

import (
	"math"

	"github.com/lintang-b-s/sheltr/pkg/util"
)

/*
BearingTo. initial bearing of the great circle from p1 to p2, degrees in [0, 360).
https://www.movable-type.co.uk/scripts/latlong.html
*/
func BearingTo(p1Lat, p1Lon, p2Lat, p2Lon float64) float64 {
	dLon := util.DegreeToRadians(p2Lon - p1Lon)

	lat1 := util.DegreeToRadians(p1Lat)
	lat2 := util.DegreeToRadians(p2Lat)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) -
		math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	return math.Mod(util.RadiansToDegree(math.Atan2(y, x))+360, 360.0)
}

// TurnAngle. signed change of heading from bearing b1 to b2 in [-180, 180], positive is a right turn.
// a reversal keeps its sign: 0 -> 180 is 180 and 180 -> 0 is -180
func TurnAngle(b1, b2 float64) float64 {
	angle := math.Mod(b2-b1, 360)
	if angle > 180 {
		angle -= 360
	} else if angle < -180 {
		angle += 360
	}
	return angle
}

var cardinals = [...]string{"North", "Northeast", "East", "Southeast", "South", "Southwest", "West", "Northwest"}

// CardinalDirection. 8-wind compass name of bearing, halfway bearings round to the even sector
func CardinalDirection(bearing float64) string {
	b := math.Mod(math.Mod(bearing, 360)+360, 360)
	idx := int(math.RoundToEven(b/45)) % 8
	return cardinals[idx]
}
