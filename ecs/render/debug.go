package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/engine2d/common"
	"github.com/milk9111/engine2d/ecs"
	"github.com/milk9111/engine2d/ecs/component"
	"github.com/milk9111/engine2d/ecs/system"
	"golang.org/x/image/colornames"
)

const (
	debugStroke   = 1
	debugDotSize  = 4
	velocityScale = 0.1
	normalLength  = 12
)

// DebugOverlay draws colliders, body velocities and the contacts found by
// the physics system's last step. It only reads state.
type DebugOverlay struct {
	Physics        *system.PhysicsSystem
	View           View
	ShowVelocities bool
	ShowContacts   bool
}

func NewDebugOverlay(ps *system.PhysicsSystem) *DebugOverlay {
	return &DebugOverlay{Physics: ps, ShowVelocities: true, ShowContacts: true}
}

func (d *DebugOverlay) Draw(screen *ebiten.Image, entities []*ecs.Entity) {
	if d == nil || screen == nil {
		return
	}

	for _, e := range ecs.Filter(entities, component.ColliderComponent.ID(), component.TransformComponent.ID()) {
		c, _ := ecs.Get(e, component.ColliderComponent.Kind())
		tr, _ := ecs.Get(e, component.TransformComponent.Kind())
		rb, _ := ecs.Get(e, component.RigidBodyComponent.Kind())
		d.drawCollider(screen, c, *tr, ColliderColor(c, rb))
	}

	if d.ShowVelocities {
		for _, e := range ecs.Filter(entities, component.RigidBodyComponent.ID(), component.TransformComponent.ID()) {
			rb, _ := ecs.Get(e, component.RigidBodyComponent.Kind())
			if rb.Velocity == common.Zero {
				continue
			}
			tr, _ := ecs.Get(e, component.TransformComponent.Kind())
			d.line(screen, tr.Position, tr.Position.Add(rb.Velocity.Mult(velocityScale)), colornames.Orange)
		}
	}

	contacts := d.Physics.Collisions()
	if d.ShowContacts {
		for _, c := range contacts {
			x, y := d.View.ToScreen(c.Point)
			vector.FillRect(screen, x-debugDotSize/2, y-debugDotSize/2, debugDotSize, debugDotSize, colornames.Red, false)
			d.line(screen, c.Point, c.Point.Add(c.Normal.Mult(normalLength/d.View.zoom())), colornames.Red)
		}
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("entities: %d\ncontacts: %d", len(entities), len(contacts)), 10, 10)
}

func (d *DebugOverlay) drawCollider(screen *ebiten.Image, c *component.Collider, tr component.Transform, clr color.Color) {
	center := c.Center(tr)
	switch c.Shape {
	case component.ShapeCircle:
		d.circle(screen, center, c.Radius, clr)
		edge := center.Add(common.FromAngle(tr.Rotation, c.Radius))
		d.line(screen, center, edge, clr)
	case component.ShapeBox:
		r := c.Rect(tr)
		x, y := d.View.ToScreen(common.Vec(r.Left(), r.Top()))
		vector.StrokeRect(screen, x, y, d.View.Length(r.Width), d.View.Length(r.Height), debugStroke, clr, false)
	case component.ShapeCapsule:
		half := c.Height / 2
		top := center.Add(common.Vec(0, -half))
		bottom := center.Add(common.Vec(0, half))
		d.circle(screen, top, c.Radius, clr)
		d.circle(screen, bottom, c.Radius, clr)
		d.line(screen, top.Add(common.Vec(-c.Radius, 0)), bottom.Add(common.Vec(-c.Radius, 0)), clr)
		d.line(screen, top.Add(common.Vec(c.Radius, 0)), bottom.Add(common.Vec(c.Radius, 0)), clr)
	}
}

func (d *DebugOverlay) line(screen *ebiten.Image, a, b common.Vector2, clr color.Color) {
	x1, y1 := d.View.ToScreen(a)
	x2, y2 := d.View.ToScreen(b)
	vector.StrokeLine(screen, x1, y1, x2, y2, debugStroke, clr, true)
}

func (d *DebugOverlay) circle(screen *ebiten.Image, center common.Vector2, radius float64, clr color.Color) {
	if radius <= 0 || math.IsNaN(radius) {
		return
	}
	x, y := d.View.ToScreen(center)
	vector.StrokeCircle(screen, x, y, d.View.Length(radius), debugStroke, clr, true)
}

// ColliderColor picks the overlay colour for a collider by how the solver
// treats it.
func ColliderColor(c *component.Collider, rb *component.RigidBody) color.Color {
	switch {
	case c.IsTrigger:
		return colornames.Yellow
	case rb == nil || rb.IsStatic:
		return colornames.Gray
	case rb.IsKinematic:
		return colornames.Deepskyblue
	default:
		return colornames.Lime
	}
}
