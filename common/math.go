package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
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

func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// PingPong bounces t between 0 and length.
func PingPong(t, length float64) float64 {
	if length <= 0 {
		return 0
	}
	t = math.Mod(math.Abs(t), length*2)
	return length - math.Abs(t-length)
}

// MoveTowards moves current toward target by at most maxDelta.
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	return current + Sign(target-current)*maxDelta
}

// RoundToInt rounds half to even.
func RoundToInt(v float64) int {
	return int(math.RoundToEven(v))
}

// Direction returns the unit vector from -> to. When the points coincide
// it falls back to straight up.
func Direction(from, to cp.Vector) cp.Vector {
	d := to.Sub(from)
	length := d.Length()
	if length <= 1e-6 {
		return cp.Vector{X: 0, Y: 1}
	}
	return d.Mult(1 / length)
}
