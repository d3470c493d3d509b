package component

import (
	"fmt"

	"github.com/milk9111/engine2d/common"
)

// ShapeKind tags which fields of a Collider are meaningful.
type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota + 1
	ShapeBox
	ShapeCapsule
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapeBox:
		return "box"
	case ShapeCapsule:
		return "capsule"
	default:
		return fmt.Sprintf("shape(%d)", uint8(k))
	}
}

// Collider is the collision shape attached to an entity.
//
// Circle uses Radius, Box uses Size, Capsule uses Radius and Height (the
// distance between the two cap centers). Offset is local to the entity
// transform. Two colliders interact only if LayersInteract accepts their
// Layer and Mask.
type Collider struct {
	Shape     ShapeKind
	Radius    float64
	Size      common.Vector2
	Height    float64
	Offset    common.Vector2
	IsTrigger bool
	Layer     uint32
	Mask      uint32
}

var ColliderComponent = NewComponent[Collider]()

func NewCircleCollider(radius float64) *Collider {
	return &Collider{Shape: ShapeCircle, Radius: radius, Layer: DefaultLayer, Mask: AllLayers}
}

func NewBoxCollider(width, height float64) *Collider {
	return &Collider{Shape: ShapeBox, Size: common.Vec(width, height), Layer: DefaultLayer, Mask: AllLayers}
}

func NewCapsuleCollider(radius, height float64) *Collider {
	return &Collider{Shape: ShapeCapsule, Radius: radius, Height: height, Layer: DefaultLayer, Mask: AllLayers}
}

// Center is the collider center in world space.
func (c *Collider) Center(t Transform) common.Vector2 {
	return t.Position.Add(c.Offset)
}

// Bounds is the world-space bounding box of the collider.
func (c *Collider) Bounds(t Transform) common.AABB {
	center := c.Center(t)
	switch c.Shape {
	case ShapeCircle:
		return common.AABBFromCenter(center, common.Vec(c.Radius*2, c.Radius*2))
	case ShapeBox:
		return common.AABBFromCenter(center, common.Scale(c.Size, t.EffectiveScale()))
	case ShapeCapsule:
		half := c.Height / 2
		return common.AABB{
			Min: common.Vec(center.X-c.Radius, center.Y-half-c.Radius),
			Max: common.Vec(center.X+c.Radius, center.Y+half+c.Radius),
		}
	default:
		return common.AABB{Min: center, Max: center}
	}
}

// Rect is the box collider's world rectangle, honouring transform scale.
func (c *Collider) Rect(t Transform) common.Rect {
	size := common.Scale(c.Size, t.EffectiveScale())
	return common.RectFromCenter(c.Center(t), size.X, size.Y)
}

// Interacts reports whether c and other pass the layer/mask gate.
func (c *Collider) Interacts(other *Collider) bool {
	return LayersInteract(c.Layer, c.Mask, other.Layer, other.Mask)
}

// Overlaps is a bounds-only overlap test.
func (c *Collider) Overlaps(other *Collider, ta, tb Transform) bool {
	return c.Bounds(ta).Intersects(other.Bounds(tb))
}
