package utils

import "math"

// Round2 rounds to 2 decimal places, matching currency display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
