package guidance

import (
	"fmt"
	"math"

	"github.com/lintang-b-s/sheltr/pkg/datastructure"
	"github.com/lintang-b-s/sheltr/pkg/geo"
	"github.com/lintang-b-s/sheltr/pkg/util"
)

type StepType string

const (
	START       StepType = "start"
	TURN        StepType = "turn"
	DESTINATION StepType = "destination"
)

const (
	DEFAULT_MIN_POINT_DISTANCE = 30.0 // meters
)

// Direction. one step of turn-by-turn directions. distances are meters rounded to 0.1.
type Direction struct {
	Step          int        `json:"step"`
	Instruction   string     `json:"instruction"`
	Distance      float64    `json:"distance"`
	TotalDistance float64    `json:"total_distance"`
	Coordinates   [2]float64 `json:"coordinates"`
	Bearing       float64    `json:"bearing"`
	TurnAngle     float64    `json:"turn_angle,omitempty"`
	Type          StepType   `json:"type"`
}

type DirectionBuilder struct {
	minPointDistance float64
}

func NewDirectionBuilder(minPointDistance float64) *DirectionBuilder {
	if minPointDistance <= 0 {
		minPointDistance = DEFAULT_MIN_POINT_DISTANCE
	}
	return &DirectionBuilder{minPointDistance: minPointDistance}
}

// simplify drops points closer than minPointDistance to the last kept point. the last point is always kept.
func (db *DirectionBuilder) simplify(coords []datastructure.Coordinate) []datastructure.Coordinate {
	if len(coords) < 2 {
		return coords
	}
	simplified := []datastructure.Coordinate{coords[0]}
	for i := 1; i < len(coords); i++ {
		last := simplified[len(simplified)-1]
		if geo.DistanceMeters(last, coords[i]) >= db.minPointDistance || i == len(coords)-1 {
			simplified = append(simplified, coords[i])
		}
	}
	return simplified
}

func bearing(a, b datastructure.Coordinate) float64 {
	return geo.BearingTo(a.Lat, a.Lon, b.Lat, b.Lon)
}

// GetDirections turns a drawn route into step by step directions. streetNames, if given, is indexed
// by simplified point and appended to turn instructions.
func (db *DirectionBuilder) GetDirections(coords []datastructure.Coordinate, streetNames []string) []Direction {
	if len(coords) < 2 {
		return []Direction{}
	}
	points := db.simplify(coords)

	initialBearing := bearing(points[0], points[1])
	directions := []Direction{{
		Step:        1,
		Instruction: fmt.Sprintf("Head %s", geo.CardinalDirection(initialBearing)),
		Coordinates: points[0].LatLonPair(),
		Bearing:     initialBearing,
		Type:        START,
	}}

	prevBearing := initialBearing
	totalDistance := 0.0
	for i := 1; i < len(points)-1; i++ {
		segDistance := geo.DistanceMeters(points[i-1], points[i])
		totalDistance += segDistance

		currBearing := bearing(points[i], points[i+1])
		turnAngle := geo.TurnAngle(prevBearing, currBearing)
		prevBearing = currBearing
		if math.Abs(turnAngle) <= SIGNIFICANT_TURN_ANGLE {
			continue
		}

		instruction := getTurnSign(turnAngle).Description()
		if i < len(streetNames) && streetNames[i] != "" {
			instruction += " onto " + streetNames[i]
		}
		directions = append(directions, Direction{
			Step:          len(directions) + 1,
			Instruction:   instruction,
			Distance:      util.RoundFloat(segDistance, 1),
			TotalDistance: util.RoundFloat(totalDistance, 1),
			Coordinates:   points[i].LatLonPair(),
			Bearing:       currBearing,
			TurnAngle:     util.RoundFloat(turnAngle, 1),
			Type:          TURN,
		})
	}

	finalDistance := geo.DistanceMeters(points[len(points)-2], points[len(points)-1])
	totalDistance += finalDistance
	directions = append(directions, Direction{
		Step:          len(directions) + 1,
		Instruction:   "You have arrived at your destination",
		Distance:      util.RoundFloat(finalDistance, 1),
		TotalDistance: util.RoundFloat(totalDistance, 1),
		Coordinates:   points[len(points)-1].LatLonPair(),
		Bearing:       prevBearing,
		Type:          DESTINATION,
	})
	return directions
}
