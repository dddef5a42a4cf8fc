package chart

import (
	"math"

	"golang.org/x/exp/constraints"
)

func Ceil[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Ceil(float64(a)))
}

func Floor[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Floor(float64(a)))
}

// Clamp limits v to the closed interval [lo,hi]. If hi < lo, lo wins.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

// NormalizeDegrees maps any angle onto [0,360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// math.Mod of a tiny negative number can round back up to 360.
	if deg >= 360 {
		deg = 0
	}
	return deg
}
