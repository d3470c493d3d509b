package component

import "github.com/milk9111/engine2d/common"

// Transform is an entity's pose. Position is the entity origin; colliders
// and sprites are offset from it.
type Transform struct {
	Position common.Vector2
	Rotation float64
	Scale    common.Vector2
}

var TransformComponent = NewComponent[Transform]()

func NewTransform(x, y float64) *Transform {
	return &Transform{Position: common.Vec(x, y), Scale: common.One}
}

func (t *Transform) Translate(offset common.Vector2) {
	t.Position = t.Position.Add(offset)
}

func (t *Transform) Rotate(angle float64) {
	t.Rotation += angle
}

func (t *Transform) LookAt(target common.Vector2) {
	t.Rotation = common.AngleTo(t.Position, target)
}

// EffectiveScale treats a zero scale as identity so zero-valued transforms
// built with a struct literal still have size.
func (t Transform) EffectiveScale() common.Vector2 {
	s := t.Scale
	if s.X == 0 && s.Y == 0 {
		return common.One
	}
	return s
}

func (t Transform) LocalToWorld(local common.Vector2) common.Vector2 {
	p := common.Scale(local, t.EffectiveScale())
	p = common.Rotated(p, t.Rotation)
	return p.Add(t.Position)
}

func (t Transform) WorldToLocal(world common.Vector2) common.Vector2 {
	p := common.Rotated(world.Sub(t.Position), -t.Rotation)
	s := t.EffectiveScale()
	return common.Vec(p.X/s.X, p.Y/s.Y)
}
