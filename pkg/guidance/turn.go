package guidance

import "math"

type TurnSign int

const (
	CONTINUE_ON_STREET TurnSign = iota
	TURN_SLIGHT_LEFT
	TURN_SLIGHT_RIGHT
	TURN_LEFT
	TURN_RIGHT
	TURN_SHARP_LEFT
	TURN_SHARP_RIGHT
)

const (
	// turns below this angle (degrees) produce no instruction
	SIGNIFICANT_TURN_ANGLE = 20.0
	SLIGHT_TURN_ANGLE      = 45.0
	TURN_ANGLE             = 135.0
)

// getTurnSign. turnAngle in degrees, positive turns right
func getTurnSign(turnAngle float64) TurnSign {
	absAngle := math.Abs(turnAngle)
	right := turnAngle > 0
	switch {
	case absAngle < SIGNIFICANT_TURN_ANGLE:
		return CONTINUE_ON_STREET
	case absAngle < SLIGHT_TURN_ANGLE:
		if right {
			return TURN_SLIGHT_RIGHT
		}
		return TURN_SLIGHT_LEFT
	case absAngle < TURN_ANGLE:
		if right {
			return TURN_RIGHT
		}
		return TURN_LEFT
	case right:
		return TURN_SHARP_RIGHT
	default:
		return TURN_SHARP_LEFT
	}
}

func (s TurnSign) Description() string {
	switch s {
	case TURN_SLIGHT_LEFT:
		return "Bear slight left"
	case TURN_SLIGHT_RIGHT:
		return "Bear slight right"
	case TURN_LEFT:
		return "Turn left"
	case TURN_RIGHT:
		return "Turn right"
	case TURN_SHARP_LEFT:
		return "Make a sharp left turn"
	case TURN_SHARP_RIGHT:
		return "Make a sharp right turn"
	default:
		return "Continue straight"
	}
}
