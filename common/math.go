package common

import "math"

const (
	BaseWidth  = 800
	BaseHeight = 600
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// MapRange linearly remaps v from [inMin, inMax] onto [outMin, outMax]. The
// result is not clamped, so values outside the input range extrapolate.
// A degenerate input range maps everything to outMin.
func MapRange(v, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	return outMin + (v-inMin)*(outMax-outMin)/(inMax-inMin)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
