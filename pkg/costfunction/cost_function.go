package costfunction

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownStrategy = errors.New("unknown cost strategy")
)

type EdgeAttributes interface {
	GetDistance() float64
	GetSafetyProb() float64
}

type CostFunction interface {
	GetWeight(e EdgeAttributes) float64
	GetStrategy() Strategy
}

// Strategy. closed set of edge cost strategies
type Strategy uint8

const (
	DISTANCE Strategy = iota
	SAFETY
	COMBINED
	FLOOD_RISK
)

var strategyNames = [...]string{
	DISTANCE:   "distance",
	SAFETY:     "safety",
	COMBINED:   "combined",
	FLOOD_RISK: "flood_risk",
}

// AllStrategies. order in which strategies are compared
func AllStrategies() []Strategy {
	return []Strategy{DISTANCE, SAFETY, COMBINED, FLOOD_RISK}
}

func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("strategy(%d)", uint8(s))
}

func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range strategyNames {
		if n == name {
			return Strategy(i), nil
		}
	}
	return DISTANCE, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// ParseStrategyOrDistance. unrecognized strategy names are routed by raw distance.
func ParseStrategyOrDistance(name string) Strategy {
	s, err := ParseStrategy(name)
	if err != nil {
		return DISTANCE
	}
	return s
}

// NewCostFunction returns the weight function of s. weights are non-negative for any
// distance >= 0 and safety probability in [0,1].
func NewCostFunction(s Strategy) CostFunction {
	switch s {
	case SAFETY:
		return NewSafetyCostFunction()
	case COMBINED:
		return NewCombinedCostFunction()
	case FLOOD_RISK:
		return NewFloodRiskCostFunction()
	default:
		return NewDistanceCostFunction()
	}
}
