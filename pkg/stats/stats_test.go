package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingFraction(t *testing.T) {
	nan := math.NaN()
	assert.Equal(t, 0.0, MissingFraction(nil))
	assert.Equal(t, 0.0, MissingFraction([]float64{1, 2, 3}))
	assert.Equal(t, 0.5, MissingFraction([]float64{1, nan, 2, nan}))
	assert.Equal(t, 1.0, MissingFraction([]float64{nan, nan}))
}

func TestProportionCI(t *testing.T) {
	lo, hi := ProportionCI(0.5, 100, 0.95)
	// z=1.96, half-width 1.96*sqrt(0.25/100) = 0.098
	assert.InDelta(t, 0.402, lo, 1e-3)
	assert.InDelta(t, 0.598, hi, 1e-3)

	// A wider level widens the interval.
	lo99, hi99 := ProportionCI(0.5, 100, 0.99)
	assert.Less(t, lo99, lo)
	assert.Greater(t, hi99, hi)

	// Bounds clamp to [0,1].
	lo, hi = ProportionCI(0.99, 10, 0.95)
	assert.GreaterOrEqual(t, lo, 0.0)
	assert.Equal(t, 1.0, hi)

	lo, hi = ProportionCI(0.5, 0, 0.95)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestStandardScaler(t *testing.T) {
	X := [][]float64{
		{1, 10},
		{2, 20},
		{3, 30},
		{4, 40},
	}
	s := NewStandardScaler()
	scaled, err := s.FitTransform(X)
	require.NoError(t, err)

	for j := 0; j < 2; j++ {
		sum := 0.0
		for i := range scaled {
			sum += scaled[i][j]
		}
		assert.InDelta(t, 0.0, sum/float64(len(scaled)), 1e-9, "column %d should center at zero", j)
	}

	// Transform of new data reuses the fitted moments.
	out, err := s.Transform([][]float64{{s.Mean[0], s.Mean[1]}})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, out[0][0], 1e-9)
	assert.InDelta(t, 0.0, out[0][1], 1e-9)
}

func TestStandardScalerConstantColumn(t *testing.T) {
	X := [][]float64{{5, 1}, {5, 2}, {5, 3}}
	s := NewStandardScaler()
	scaled, err := s.FitTransform(X)
	require.NoError(t, err)
	for i := range scaled {
		assert.Equal(t, 0.0, scaled[i][0], "constant column scales to zero, not NaN")
	}
}

func TestStandardScalerSkipsNaN(t *testing.T) {
	nan := math.NaN()
	X := [][]float64{{1}, {nan}, {3}}
	s := NewStandardScaler()
	scaled, err := s.FitTransform(X)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, s.Mean[0], 1e-9)
	assert.True(t, math.IsNaN(scaled[1][0]), "missing entries stay missing")
}

func TestStandardScalerUnfitted(t *testing.T) {
	_, err := NewStandardScaler().Transform([][]float64{{1}})
	assert.Error(t, err)
}
