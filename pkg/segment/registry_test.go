package segment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrySafetyOf(t *testing.T) {
	r, err := NewRegistry([]SafetyRecord{
		NewSafetyRecord("101.0", 0.9, 1),
		NewSafetyRecord("102", 0.2, 0),
	}, true)
	require.NoError(t, err)

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, 0.9, r.SafetyOf("101"))
	assert.Equal(t, 0.9, r.SafetyOf("101.0"))
	assert.Equal(t, 0.2, r.SafetyOf("102"))
	assert.Equal(t, 0.5, r.SafetyOf("999"), "unknown segments default to neutral safety")
	assert.False(t, r.HasSafety("999"))

	assert.Equal(t, 1, r.PredSafeOf("101"))
	assert.Equal(t, 0, r.PredSafeOf("102"))
	assert.Equal(t, 1, r.PredSafeOf("999"), "unknown segments are neutral, thresholded as safe")
}

func TestRegistryResolve(t *testing.T) {
	records := []SafetyRecord{
		NewSafetyRecord("5012", 0.8, 1),
		NewSafetyRecord("5013", 0.1, 0),
	}

	t.Run("positional indices", func(t *testing.T) {
		r, err := NewRegistry(records, false)
		require.NoError(t, err)
		assert.Equal(t, "5012", r.Resolve("0"))
		assert.Equal(t, "5013", r.Resolve("1.0"))
		assert.Equal(t, "7", r.Resolve("7"), "unknown index is returned unchanged")
		assert.Equal(t, 0.1, r.SafetyOf(r.Resolve("1")))
	})

	t.Run("stable ids", func(t *testing.T) {
		r, err := NewRegistry(records, true)
		require.NoError(t, err)
		assert.Equal(t, "0", r.Resolve("0"))
		assert.Equal(t, "5012", r.Resolve("5012"))
	})
}

func TestRegistryRejectsInvalidProbability(t *testing.T) {
	for _, p := range []float64{-0.1, 1.01, math.NaN()} {
		_, err := NewRegistry([]SafetyRecord{NewSafetyRecord("1", p, 0)}, true)
		assert.ErrorIs(t, err, ErrInvalidSafetyProbability)
	}

	_, err := NewRegistry([]SafetyRecord{NewSafetyRecord(" ", 0.4, 0)}, true)
	assert.ErrorIs(t, err, ErrEmptySegmentID)
}

func TestRegistryStats(t *testing.T) {
	r, err := NewRegistry([]SafetyRecord{
		NewSafetyRecord("1", 0.2, 0),
		NewSafetyRecord("2", 0.4, 0),
		NewSafetyRecord("3", 0.9, 1),
	}, true)
	require.NoError(t, err)

	mean, min, max := r.Stats()
	assert.InDelta(t, 0.5, mean, 1e-9)
	assert.Equal(t, 0.2, min)
	assert.Equal(t, 0.9, max)
}
