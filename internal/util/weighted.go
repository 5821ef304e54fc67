package util

import (
	"math"
	"math/rand"
)

// PickWeighted draws an index proportionally to weights.
//
// The roll is spread over the total and weights are subtracted in order; the
// first candidate whose remainder drops to zero or below wins. Negative and NaN
// weights count as zero. When nothing carries weight the first index is
// returned so callers always get a usable answer.
func PickWeighted(rng *rand.Rand, weights []float64) int {
	if len(weights) == 0 {
		return -1
	}
	total := 0.0
	for _, w := range weights {
		total += sanitize(w)
	}
	if total <= 0 {
		return 0
	}
	remainder := rng.Float64() * total
	for i, w := range weights {
		w = sanitize(w)
		if w <= 0 {
			continue
		}
		remainder -= w
		if remainder <= 0 {
			return i
		}
	}
	// float drift: fall back to the last candidate that carried weight
	for i := len(weights) - 1; i >= 0; i-- {
		if sanitize(weights[i]) > 0 {
			return i
		}
	}
	return 0
}

func sanitize(w float64) float64 {
	if math.IsNaN(w) || w < 0 || math.IsInf(w, 0) {
		return 0
	}
	return w
}
