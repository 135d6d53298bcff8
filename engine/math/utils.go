package math

import (
	gomath "math"

	"golang.org/x/exp/constraints"
)

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// InRange reports whether low <= f <= high.
func InRange[T constraints.Ordered](f, low, high T) bool {
	return f >= low && f <= high
}

func Abs[T constraints.Signed | constraints.Float](f T) T {
	if f < 0 {
		return -f
	}
	return f
}

func DegToRad(degrees float32) float32 {
	return degrees * gomath.Pi / 180.0
}

func Sqrt(x float32) float32 {
	return float32(gomath.Sqrt(float64(x)))
}
