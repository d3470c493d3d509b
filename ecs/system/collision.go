package system

import (
	"math"

	"github.com/milk9111/engine2d/common"
	"github.com/milk9111/engine2d/ecs"
	"github.com/milk9111/engine2d/ecs/component"
)

// Collision is one contact found during detection. Normal is a unit vector
// pointing from EntityA toward EntityB.
type Collision struct {
	EntityA     *ecs.Entity
	EntityB     *ecs.Entity
	ColliderA   *component.Collider
	ColliderB   *component.Collider
	Normal      common.Vector2
	Penetration float64
	Point       common.Vector2
}

// Other returns the entity on the opposite side of the contact from e.
func (c Collision) Other(e *ecs.Entity) *ecs.Entity {
	if c.EntityA == e {
		return c.EntityB
	}
	return c.EntityA
}

// IsTrigger reports whether either side is a trigger volume.
func (c Collision) IsTrigger() bool {
	return c.ColliderA.IsTrigger || c.ColliderB.IsTrigger
}

type pairKey struct {
	a, b ecs.EntityID
}

func (c Collision) key() pairKey {
	return pairKey{a: c.EntityA.ID(), b: c.EntityB.ID()}
}

// CheckCollision runs the layer gate, broad phase and narrow phase for a
// single pair. Both entities need a Transform and a Collider.
func CheckCollision(a, b *ecs.Entity) (Collision, bool) {
	ca, ok := ecs.Get(a, component.ColliderComponent.Kind())
	if !ok {
		return Collision{}, false
	}
	cb, ok := ecs.Get(b, component.ColliderComponent.Kind())
	if !ok {
		return Collision{}, false
	}
	ta, ok := ecs.Get(a, component.TransformComponent.Kind())
	if !ok {
		return Collision{}, false
	}
	tb, ok := ecs.Get(b, component.TransformComponent.Kind())
	if !ok {
		return Collision{}, false
	}
	return checkPair(a, b, ca, cb, *ta, *tb)
}

func checkPair(a, b *ecs.Entity, ca, cb *component.Collider, ta, tb component.Transform) (Collision, bool) {
	if !ca.Interacts(cb) {
		return Collision{}, false
	}
	if !ca.Overlaps(cb, ta, tb) {
		return Collision{}, false
	}

	var (
		normal      common.Vector2
		penetration float64
		point       common.Vector2
		hit         bool
	)
	switch {
	case ca.Shape == component.ShapeCircle && cb.Shape == component.ShapeCircle:
		normal, penetration, point, hit = circleCircle(ca, cb, ta, tb)
	case ca.Shape == component.ShapeBox && cb.Shape == component.ShapeBox:
		normal, penetration, point, hit = boxBox(ca, cb, ta, tb)
	case ca.Shape == component.ShapeCircle && cb.Shape == component.ShapeBox:
		normal, penetration, point, hit = circleBox(ca, cb, ta, tb)
	case ca.Shape == component.ShapeBox && cb.Shape == component.ShapeCircle:
		normal, penetration, point, hit = circleBox(cb, ca, tb, ta)
		normal = normal.Neg()
	default:
		// capsules have no narrow phase
		return Collision{}, false
	}
	if !hit {
		return Collision{}, false
	}

	return Collision{
		EntityA:     a,
		EntityB:     b,
		ColliderA:   ca,
		ColliderB:   cb,
		Normal:      normal,
		Penetration: penetration,
		Point:       point,
	}, true
}

func circleCircle(ca, cb *component.Collider, ta, tb component.Transform) (common.Vector2, float64, common.Vector2, bool) {
	centerA := ca.Center(ta)
	centerB := cb.Center(tb)
	distance := centerA.Distance(centerB)
	radiusSum := ca.Radius + cb.Radius
	if distance >= radiusSum {
		return common.Zero, 0, common.Zero, false
	}

	normal := common.Normalized(centerB.Sub(centerA))
	if normal == common.Zero {
		// concentric circles: separate along +X
		normal = common.Right
	}
	return normal, radiusSum - distance, centerA.Add(normal.Mult(ca.Radius)), true
}

func boxBox(ca, cb *component.Collider, ta, tb component.Transform) (common.Vector2, float64, common.Vector2, bool) {
	rectA := ca.Rect(ta)
	rectB := cb.Rect(tb)
	if !rectA.Intersects(rectB) {
		return common.Zero, 0, common.Zero, false
	}

	overlapX := math.Min(rectA.Right()-rectB.Left(), rectB.Right()-rectA.Left())
	overlapY := math.Min(rectA.Bottom()-rectB.Top(), rectB.Bottom()-rectA.Top())

	var normal common.Vector2
	var penetration float64
	if overlapX < overlapY {
		penetration = overlapX
		normal = common.Right
		if rectB.CenterX() < rectA.CenterX() {
			normal = common.Left
		}
	} else {
		penetration = overlapY
		normal = common.Down
		if rectB.CenterY() < rectA.CenterY() {
			normal = common.Up
		}
	}

	point := rectA.Center().Lerp(rectB.Center(), 0.5)
	return normal, penetration, point, true
}

// circleBox tests circle c against box b and reports the normal pointing
// from the circle toward the box.
func circleBox(c, b *component.Collider, tc, tb component.Transform) (common.Vector2, float64, common.Vector2, bool) {
	center := c.Center(tc)
	rect := b.Rect(tb)

	closest := common.AABBFromRect(rect).Clamp(center)

	if closest == center {
		return circleInsideBox(c, rect, center)
	}

	distance := center.Distance(closest)
	if distance >= c.Radius {
		return common.Zero, 0, common.Zero, false
	}

	normal := common.Normalized(closest.Sub(center))
	return normal, c.Radius - distance, closest, true
}

// circleInsideBox picks the face nearest the circle center. The circle must
// travel out through that face, so the normal points the other way.
func circleInsideBox(c *component.Collider, rect common.Rect, center common.Vector2) (common.Vector2, float64, common.Vector2, bool) {
	left := center.X - rect.Left()
	right := rect.Right() - center.X
	top := center.Y - rect.Top()
	bottom := rect.Bottom() - center.Y

	depth := left
	normal := common.Right
	point := common.Vec(rect.Left(), center.Y)
	if right < depth {
		depth, normal, point = right, common.Left, common.Vec(rect.Right(), center.Y)
	}
	if top < depth {
		depth, normal, point = top, common.Down, common.Vec(center.X, rect.Top())
	}
	if bottom < depth {
		depth, normal, point = bottom, common.Up, common.Vec(center.X, rect.Bottom())
	}
	return normal, depth + c.Radius, point, true
}
