package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickWeighted_Converges(t *testing.T) {
	rng := New(42)
	weights := []float64{3, 1}
	counts := [2]int{}
	const trials = 10000
	for range trials {
		counts[PickWeighted(rng, weights)]++
	}
	share := float64(counts[0]) / trials
	assert.InDelta(t, 0.75, share, 0.02)
	assert.InDelta(t, 0.25, 1-share, 0.02)
}

func TestPickWeighted_Degenerate(t *testing.T) {
	rng := New(7)
	assert.Equal(t, 0, PickWeighted(rng, []float64{0, 0, 0}))
	assert.Equal(t, 0, PickWeighted(rng, []float64{-1, math.NaN()}))
	assert.Equal(t, -1, PickWeighted(rng, nil))
}

func TestPickWeighted_SkipsZeroWeights(t *testing.T) {
	rng := New(3)
	for range 500 {
		require.Equal(t, 2, PickWeighted(rng, []float64{0, 0, 5, 0}))
	}
}

func TestNewSeedZeroMapsToOne(t *testing.T) {
	a, b := New(0), New(1)
	for range 10 {
		assert.Equal(t, b.Int63(), a.Int63())
	}
}

func TestNewSeed(t *testing.T) {
	_, err := NewSeed()
	require.NoError(t, err)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(math.NaN(), 0, 1))
	assert.Equal(t, 1.0, Clamp(4, 0, 1))
	assert.Equal(t, 0.3, Clamp(0.3, 0, 1))
	assert.Equal(t, 5.0, Lerp(0, 10, 0.5))
}
