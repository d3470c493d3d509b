package ecs

import (
	"strconv"
	"sync/atomic"

	"github.com/milk9111/engine2d/ecs/component"
)

// EntityID identifies an entity. IDs are assigned monotonically and never
// reused within a process.
type EntityID uint64

var nextEntityID atomic.Uint64

func (id EntityID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

func (id EntityID) Valid() bool {
	return id > 0
}

// DefaultLayer is the layer new entities start on.
const DefaultLayer = "default"

// Entity is an identity plus a component table holding at most one value per
// component kind. Entities are created detached and only take part in
// systems once committed to a World.
type Entity struct {
	id     EntityID
	Active bool
	Tag    string
	Layer  string

	components []any
}

func NewEntity() *Entity {
	return &Entity{
		id:     EntityID(nextEntityID.Add(1)),
		Active: true,
		Layer:  DefaultLayer,
	}
}

func (e *Entity) ID() EntityID {
	if e == nil {
		return 0
	}
	return e.id
}

func (e *Entity) String() string {
	if e == nil {
		return "entity(nil)"
	}
	return "entity_" + e.id.String()
}

// SetComponent stores value under id, replacing any previous value.
func (e *Entity) SetComponent(id component.ComponentID, value any) error {
	if e == nil {
		return ErrNilEntity
	}
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	idx := int(id)
	if idx >= len(e.components) {
		size := component.RegisteredKinds() + 1
		if size <= idx {
			size = idx + 1
		}
		grown := make([]any, size)
		copy(grown, e.components)
		e.components = grown
	}
	e.components[idx] = value
	return nil
}

// Component returns the value stored under id.
func (e *Entity) Component(id component.ComponentID) (any, bool) {
	if e == nil || int(id) >= len(e.components) {
		return nil, false
	}
	v := e.components[id]
	return v, v != nil
}

func (e *Entity) HasComponent(id component.ComponentID) bool {
	_, ok := e.Component(id)
	return ok
}

// RemoveComponent clears id and reports whether anything was removed.
func (e *Entity) RemoveComponent(id component.ComponentID) bool {
	if !e.HasComponent(id) {
		return false
	}
	e.components[id] = nil
	return true
}

// HasAll reports whether every id is present.
func (e *Entity) HasAll(ids ...component.ComponentID) bool {
	for _, id := range ids {
		if !e.HasComponent(id) {
			return false
		}
	}
	return true
}

// Components lists the attached values in kind order.
func (e *Entity) Components() []any {
	if e == nil {
		return nil
	}
	out := make([]any, 0, len(e.components))
	for _, v := range e.components {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

func (e *Entity) ClearComponents() {
	if e == nil {
		return
	}
	clear(e.components)
}
