package common

import "github.com/jakecoffman/cp"

// AABB is an axis-aligned box in world space. Min is the top-left corner in
// screen (y-down) coordinates.
type AABB struct {
	Min Vector2
	Max Vector2
}

func AABBFromCenter(center, size Vector2) AABB {
	half := size.Mult(0.5)
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

func AABBFromRect(r Rect) AABB {
	return AABB{Min: Vec(r.X, r.Y), Max: Vec(r.X+r.Width, r.Y+r.Height)}
}

// BB converts to Chipmunk's bounding box. cp names the min Y edge B and
// the max Y edge T regardless of axis orientation.
func (a AABB) BB() cp.BB {
	return cp.BB{L: a.Min.X, B: a.Min.Y, R: a.Max.X, T: a.Max.Y}
}

func (a AABB) Width() float64 {
	return a.Max.X - a.Min.X
}

func (a AABB) Height() float64 {
	return a.Max.Y - a.Min.Y
}

func (a AABB) Center() Vector2 {
	return a.BB().Center()
}

// Intersects reports overlap, touching edges included.
func (a AABB) Intersects(b AABB) bool {
	return a.BB().Intersects(b.BB())
}

func (a AABB) Contains(p Vector2) bool {
	return a.BB().ContainsVect(p)
}

// Clamp returns the point inside the box closest to p.
func (a AABB) Clamp(p Vector2) Vector2 {
	return a.BB().ClampVect(&p)
}

func (a AABB) Expand(amount float64) AABB {
	return AABB{
		Min: Vec(a.Min.X-amount, a.Min.Y-amount),
		Max: Vec(a.Max.X+amount, a.Max.Y+amount),
	}
}

// Rect is a top-left anchored rectangle.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func RectFromCenter(center Vector2, width, height float64) Rect {
	return Rect{X: center.X - width/2, Y: center.Y - height/2, Width: width, Height: height}
}

func (r Rect) Left() float64    { return r.X }
func (r Rect) Right() float64   { return r.X + r.Width }
func (r Rect) Top() float64     { return r.Y }
func (r Rect) Bottom() float64  { return r.Y + r.Height }
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

func (r Rect) Center() Vector2 {
	return Vec(r.CenterX(), r.CenterY())
}

func (r Rect) Contains(p Vector2) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Intersects uses strict inequalities; rectangles sharing only an edge do
// not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && r.Right() > o.X && r.Y < o.Bottom() && r.Bottom() > o.Y
}
