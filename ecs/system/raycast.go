package system

import (
	"math"

	"github.com/milk9111/engine2d/common"
	"github.com/milk9111/engine2d/ecs"
	"github.com/milk9111/engine2d/ecs/component"
)

// faceTolerance decides which box face a slab hit landed on.
const faceTolerance = 0.01

type RaycastHit struct {
	Entity   *ecs.Entity
	Collider *component.Collider
	Point    common.Vector2
	Normal   common.Vector2
	Distance float64
}

// Raycast returns the nearest circle or box hit along direction within
// maxDistance. Capsules are ignored. A zero direction never hits.
func (ps *PhysicsSystem) Raycast(origin, direction common.Vector2, maxDistance float64, entities []*ecs.Entity) (RaycastHit, bool) {
	return Raycast(origin, direction, maxDistance, entities)
}

func Raycast(origin, direction common.Vector2, maxDistance float64, entities []*ecs.Entity) (RaycastHit, bool) {
	dir := common.Normalized(direction)
	if dir == common.Zero || maxDistance < 0 {
		return RaycastHit{}, false
	}

	var best RaycastHit
	hasHit := false
	closest := maxDistance

	for _, e := range entities {
		if e == nil || !e.Active {
			continue
		}
		c, ok := ecs.Get(e, component.ColliderComponent.Kind())
		if !ok {
			continue
		}
		tr, ok := ecs.Get(e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		var hit RaycastHit
		switch c.Shape {
		case component.ShapeCircle:
			hit, ok = rayCircle(origin, dir, maxDistance, c, *tr)
		case component.ShapeBox:
			hit, ok = rayBox(origin, dir, maxDistance, c, *tr)
		default:
			ok = false
		}
		if !ok {
			continue
		}
		if !hasHit || hit.Distance < closest {
			hit.Entity = e
			hit.Collider = c
			best = hit
			closest = hit.Distance
			hasHit = true
		}
	}

	return best, hasHit
}

func rayCircle(origin, dir common.Vector2, maxDistance float64, c *component.Collider, tr component.Transform) (RaycastHit, bool) {
	center := c.Center(tr)
	oc := origin.Sub(center)

	a := dir.Dot(dir)
	b := 2 * oc.Dot(dir)
	cc := oc.Dot(oc) - c.Radius*c.Radius

	disc := b*b - 4*a*cc
	if disc < 0 {
		return RaycastHit{}, false
	}

	t := (-b - math.Sqrt(disc)) / (2 * a)
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := origin.Add(dir.Mult(t))
	return RaycastHit{
		Point:    point,
		Normal:   common.Normalized(point.Sub(center)),
		Distance: t,
	}, true
}

// rayBox is the slab method. An origin inside the box reports the exit
// point.
func rayBox(origin, dir common.Vector2, maxDistance float64, c *component.Collider, tr component.Transform) (RaycastHit, bool) {
	rect := c.Rect(tr)

	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	if dir.X != 0 {
		t1 := (rect.Left() - origin.X) / dir.X
		t2 := (rect.Right() - origin.X) / dir.X
		tmin = math.Max(tmin, math.Min(t1, t2))
		tmax = math.Min(tmax, math.Max(t1, t2))
	} else if origin.X < rect.Left() || origin.X > rect.Right() {
		return RaycastHit{}, false
	}

	if dir.Y != 0 {
		t1 := (rect.Top() - origin.Y) / dir.Y
		t2 := (rect.Bottom() - origin.Y) / dir.Y
		tmin = math.Max(tmin, math.Min(t1, t2))
		tmax = math.Min(tmax, math.Max(t1, t2))
	} else if origin.Y < rect.Top() || origin.Y > rect.Bottom() {
		return RaycastHit{}, false
	}

	if tmax < 0 || tmin > tmax || tmin > maxDistance {
		return RaycastHit{}, false
	}

	t := tmin
	if t < 0 {
		t = tmax
	}
	if t > maxDistance {
		return RaycastHit{}, false
	}

	point := origin.Add(dir.Mult(t))
	normal := common.Down
	switch {
	case math.Abs(point.X-rect.Left()) < faceTolerance:
		normal = common.Left
	case math.Abs(point.X-rect.Right()) < faceTolerance:
		normal = common.Right
	case math.Abs(point.Y-rect.Top()) < faceTolerance:
		normal = common.Up
	}

	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}
