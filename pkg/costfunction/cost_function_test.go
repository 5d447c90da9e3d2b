package costfunction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCostFunctionWeights(t *testing.T) {
	testCases := []struct {
		name     string
		strategy Strategy
		distance float64
		safety   float64
		want     float64
	}{
		{"distance", DISTANCE, 120, 0.2, 120},
		{"safety ignores distance", SAFETY, 120, 0.2, 800},
		{"safety fully safe", SAFETY, 500, 1, 0},
		{"combined", COMBINED, 120, 0.9, 220},
		{"flood risk", FLOOD_RISK, 100, 0.5, 5010},
		{"flood risk fully safe", FLOOD_RISK, 40, 1, 4},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			cf := NewCostFunction(tt.strategy)
			got := cf.GetWeight(NewEdgeCost(tt.distance, tt.safety))
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.Equal(t, tt.strategy, cf.GetStrategy())
		})
	}
}

func TestCostFunctionNonNegative(t *testing.T) {
	for _, s := range AllStrategies() {
		cf := NewCostFunction(s)
		for _, d := range []float64{0, 0.5, 10, 1e6} {
			for _, p := range []float64{0, 0.25, 0.5, 1} {
				assert.GreaterOrEqual(t, cf.GetWeight(NewEdgeCost(d, p)), 0.0, "%s d=%v p=%v", s, d, p)
			}
		}
	}
}

func TestParseStrategy(t *testing.T) {
	for _, s := range AllStrategies() {
		got, err := ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	got, err := ParseStrategy("  Flood_Risk ")
	require.NoError(t, err)
	assert.Equal(t, FLOOD_RISK, got)

	_, err = ParseStrategy("fastest")
	assert.ErrorIs(t, err, ErrUnknownStrategy)

	assert.Equal(t, DISTANCE, ParseStrategyOrDistance("fastest"))
	assert.Equal(t, SAFETY, ParseStrategyOrDistance("safety"))
}
