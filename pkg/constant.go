package pkg

const (
	DEFAULT_SAFETY_PROBABILITY = 0.5
	DEFAULT_MIN_COMPONENT_SIZE = 2

	SAFETY_COST_SCALE     = 1000.0
	FLOOD_RISK_COST_SCALE = 10000.0
	FLOOD_RISK_DIST_SCALE = 0.1

	// node keys are stored as integer micro-units of the planar coordinate
	COORD_KEY_PRECISION = 6
	COORD_KEY_SCALE     = 1e6
	// largest planar coordinate whose micro-unit key still fits an int64
	MAX_COORD_MAGNITUDE = 1e12
)

// safety class thresholds used when rendering/exporting routes
const (
	SAFE_CLASS_THRESHOLD     = 0.7
	MODERATE_CLASS_THRESHOLD = 0.4
)

type RiskClass uint8

const (
	LOW_RISK RiskClass = iota
	MODERATE_RISK
	HIGH_RISK
)

func GetRiskClass(safetyProb float64) RiskClass {
	switch {
	case safetyProb > SAFE_CLASS_THRESHOLD:
		return LOW_RISK
	case safetyProb > MODERATE_CLASS_THRESHOLD:
		return MODERATE_RISK
	default:
		return HIGH_RISK
	}
}

func (rc RiskClass) Color() string {
	switch rc {
	case LOW_RISK:
		return "green"
	case MODERATE_RISK:
		return "orange"
	default:
		return "red"
	}
}

func (rc RiskClass) String() string {
	switch rc {
	case LOW_RISK:
		return "low"
	case MODERATE_RISK:
		return "moderate"
	default:
		return "high"
	}
}
