package util

import "math"

func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 { return Clamp(v, 0, 1) }

// Lerp blends a toward b by t in [0,1].
func Lerp(a, b, t float64) float64 { return a + (b-a)*Clamp01(t) }
