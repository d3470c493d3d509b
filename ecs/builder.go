package ecs

import (
	"errors"

	"github.com/milk9111/engine2d/ecs/component"
)

// Builder assembles an entity fluently. The first error sticks and is
// returned from Build; later calls become no-ops.
type Builder struct {
	entity *Entity
	err    error
}

func NewBuilder() *Builder {
	return &Builder{entity: NewEntity()}
}

func (b *Builder) Tag(tag string) *Builder {
	b.entity.Tag = tag
	return b
}

func (b *Builder) Layer(layer string) *Builder {
	b.entity.Layer = layer
	return b
}

func (b *Builder) Active(active bool) *Builder {
	b.entity.Active = active
	return b
}

func (b *Builder) Transform(x, y float64) *Builder {
	return With(b, component.TransformComponent.Kind(), component.NewTransform(x, y))
}

func (b *Builder) RigidBody(rb *component.RigidBody) *Builder {
	if b.err == nil && rb != nil {
		if err := rb.Validate(); err != nil {
			b.err = err
			return b
		}
	}
	return With(b, component.RigidBodyComponent.Kind(), rb)
}

func (b *Builder) Collider(c *component.Collider) *Builder {
	return With(b, component.ColliderComponent.Kind(), c)
}

// Build returns the entity or the first error encountered.
func (b *Builder) Build() (*Entity, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.entity, nil
}

// Spawn builds the entity and stages it on w.
func (b *Builder) Spawn(w *World) (*Entity, error) {
	e, err := b.Build()
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, errors.New("ecs: spawn into nil world")
	}
	if err := w.AddEntity(e); err != nil {
		return nil, err
	}
	return e, nil
}

// With attaches value under kind to the entity being built.
func With[T any](b *Builder, kind component.ComponentKind[T], value *T) *Builder {
	if b.err != nil {
		return b
	}
	b.err = Add(b.entity, kind, value)
	return b
}
