package costfunction

import "github.com/lintang-b-s/sheltr/pkg"

func riskCost(safetyProb float64) float64 {
	return (1.0 - safetyProb) * pkg.SAFETY_COST_SCALE
}

type DistanceCostFunction struct{}

func NewDistanceCostFunction() *DistanceCostFunction {
	return &DistanceCostFunction{}
}

func (cf *DistanceCostFunction) GetWeight(e EdgeAttributes) float64 {
	return e.GetDistance()
}

func (cf *DistanceCostFunction) GetStrategy() Strategy {
	return DISTANCE
}

// SafetyCostFunction. (1 - p) * 1000, distance is ignored
type SafetyCostFunction struct{}

func NewSafetyCostFunction() *SafetyCostFunction {
	return &SafetyCostFunction{}
}

func (cf *SafetyCostFunction) GetWeight(e EdgeAttributes) float64 {
	return riskCost(e.GetSafetyProb())
}

func (cf *SafetyCostFunction) GetStrategy() Strategy {
	return SAFETY
}

// CombinedCostFunction. distance + (1 - p) * 1000
type CombinedCostFunction struct{}

func NewCombinedCostFunction() *CombinedCostFunction {
	return &CombinedCostFunction{}
}

func (cf *CombinedCostFunction) GetWeight(e EdgeAttributes) float64 {
	return e.GetDistance() + riskCost(e.GetSafetyProb())
}

func (cf *CombinedCostFunction) GetStrategy() Strategy {
	return COMBINED
}

// FloodRiskCostFunction. (1 - p) * 10000 + distance * 0.1
type FloodRiskCostFunction struct{}

func NewFloodRiskCostFunction() *FloodRiskCostFunction {
	return &FloodRiskCostFunction{}
}

func (cf *FloodRiskCostFunction) GetWeight(e EdgeAttributes) float64 {
	return (1.0-e.GetSafetyProb())*pkg.FLOOD_RISK_COST_SCALE + e.GetDistance()*pkg.FLOOD_RISK_DIST_SCALE
}

func (cf *FloodRiskCostFunction) GetStrategy() Strategy {
	return FLOOD_RISK
}

// EdgeCost. plain edge attributes, for weighting edges that are not in a graph yet
type EdgeCost struct {
	distance   float64
	safetyProb float64
}

func NewEdgeCost(distance, safetyProb float64) EdgeCost {
	return EdgeCost{distance: distance, safetyProb: safetyProb}
}

func (e EdgeCost) GetDistance() float64 {
	return e.distance
}

func (e EdgeCost) GetSafetyProb() float64 {
	return e.safetyProb
}
