package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Vector2 is the engine's 2D vector. It shares Chipmunk's value type so the
// arithmetic methods (Add, Sub, Mult, Dot, Length, Distance, ...) come from cp.
type Vector2 = cp.Vector

var (
	Zero  = Vector2{}
	One   = Vector2{X: 1, Y: 1}
	Up    = Vector2{X: 0, Y: -1}
	Down  = Vector2{X: 0, Y: 1}
	Left  = Vector2{X: -1, Y: 0}
	Right = Vector2{X: 1, Y: 0}
)

func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Normalized returns v scaled to unit length, or the zero vector when v has
// no length. cp.Vector.Normalize divides by a tiny epsilon instead.
func Normalized(v Vector2) Vector2 {
	l := v.Length()
	if l <= 0 {
		return Vector2{}
	}
	return Vector2{X: v.X / l, Y: v.Y / l}
}

func Div(v Vector2, s float64) Vector2 {
	return Vector2{X: v.X / s, Y: v.Y / s}
}

// FromAngle returns a vector of the given magnitude pointing along angle
// radians.
func FromAngle(angle, magnitude float64) Vector2 {
	return cp.ForAngle(angle).Mult(magnitude)
}

// Rotated rotates v by angle radians.
func Rotated(v Vector2, angle float64) Vector2 {
	return v.Rotate(cp.ForAngle(angle))
}

// Angle is the heading of v in radians.
func Angle(v Vector2) float64 {
	return math.Atan2(v.Y, v.X)
}

// AngleTo is the heading from a towards b in radians.
func AngleTo(a, b Vector2) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// ClampedLerp interpolates between a and b with t clamped to [0,1].
func ClampedLerp(a, b Vector2, t float64) Vector2 {
	return a.Lerp(b, Clamp01(t))
}

func Scale(v, s Vector2) Vector2 {
	return Vector2{X: v.X * s.X, Y: v.Y * s.Y}
}

func NearlyEqual(a, b Vector2, eps float64) bool {
	return Approximately(a.X, b.X, eps) && Approximately(a.Y, b.Y, eps)
}
