package common

import "math"

const (
	// Gravity is the default downward acceleration in pixels per second squared.
	Gravity = 980.0

	DegToRad = math.Pi / 180
	RadToDeg = 180 / math.Pi

	Epsilon = 0.000001
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

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Approximately reports whether a and b differ by less than eps. A
// non-positive eps uses Epsilon.
func Approximately(a, b, eps float64) bool {
	if eps <= 0 {
		eps = Epsilon
	}
	return math.Abs(a-b) < eps
}

func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func Smoothstep(edge0, edge1, x float64) float64 {
	t := Clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// PingPong bounces t between 0 and length.
func PingPong(t, length float64) float64 {
	if length <= 0 {
		return 0
	}
	n := math.Mod(t, length*2)
	if n < 0 {
		n += length * 2
	}
	if n < length {
		return n
	}
	return length*2 - n
}
