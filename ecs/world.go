package ecs

import (
	"errors"
	"fmt"

	"github.com/milk9111/engine2d/ecs/component"
)

var (
	ErrNilEntity       = errors.New("ecs: entity is nil")
	ErrDuplicateEntity = errors.New("ecs: entity already in world")
)

// World owns the committed entity list, the pending add/remove lists and the
// system order.
//
// Entity additions and removals are staged and only committed at the start
// of the next Update, so systems never see the list change under them.
type World struct {
	entities      []*Entity
	index         map[EntityID]*Entity
	pendingAdd    []*Entity
	pendingRemove []*Entity

	scheduler Scheduler
	events    EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{index: map[EntityID]*Entity{}}
}

// AddEntity stages e for insertion on the next Update.
func (w *World) AddEntity(e *Entity) error {
	if e == nil {
		return ErrNilEntity
	}
	if w.has(e.id) || w.isPendingAdd(e) {
		return fmt.Errorf("%s: %w", e, ErrDuplicateEntity)
	}
	w.pendingAdd = append(w.pendingAdd, e)
	return nil
}

// RemoveEntity stages e for removal on the next Update. Removing an entity
// that is not in the world is a no-op.
func (w *World) RemoveEntity(e *Entity) {
	if e == nil {
		return
	}
	w.pendingRemove = append(w.pendingRemove, e)
}

// RemoveEntityByID stages the committed entity with id for removal and
// reports whether it was found.
func (w *World) RemoveEntityByID(id EntityID) bool {
	e, ok := w.Entity(id)
	if !ok {
		return false
	}
	w.RemoveEntity(e)
	return true
}

// Entity looks up a committed entity by id.
func (w *World) Entity(id EntityID) (*Entity, bool) {
	if w == nil {
		return nil, false
	}
	e, ok := w.index[id]
	return e, ok
}

// Entities returns a copy of the committed entity list in insertion order.
func (w *World) Entities() []*Entity {
	if w == nil {
		return nil
	}
	out := make([]*Entity, len(w.entities))
	copy(out, w.entities)
	return out
}

func (w *World) EntityCount() int {
	if w == nil {
		return 0
	}
	return len(w.entities)
}

// EntitiesWith returns committed active entities that carry every id.
func (w *World) EntitiesWith(ids ...component.ComponentID) []*Entity {
	if w == nil {
		return nil
	}
	return Filter(w.entities, ids...)
}

// EntitiesByTag returns committed active entities with the given tag.
func (w *World) EntitiesByTag(tag string) []*Entity {
	if w == nil {
		return nil
	}
	return WithTag(w.entities, tag)
}

// EntitiesByLayer returns committed active entities on the given layer.
func (w *World) EntitiesByLayer(layer string) []*Entity {
	if w == nil {
		return nil
	}
	var out []*Entity
	for _, e := range w.entities {
		if e.Active && e.Layer == layer {
			out = append(out, e)
		}
	}
	return out
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	w.scheduler.Add(s)
}

// RemoveSystem removes s from the update order.
func (w *World) RemoveSystem(s System) bool {
	return w.scheduler.Remove(s)
}

// Systems returns the systems in update order.
func (w *World) Systems() []System {
	return w.scheduler.Systems()
}

// Update commits pending additions then removals, runs every system once in
// order over the committed list, then discards the tick's events.
func (w *World) Update(dt float64) {
	if w == nil {
		return
	}
	w.commit()
	w.scheduler.Update(dt, w.entities)
	w.events.flush()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Clear drops every entity, pending change and system.
func (w *World) Clear() {
	if w == nil {
		return
	}
	clear(w.entities)
	w.entities = w.entities[:0]
	clear(w.index)
	w.pendingAdd = nil
	w.pendingRemove = nil
	w.scheduler.Clear()
	w.events.flush()
}

func (w *World) commit() {
	for _, e := range w.pendingAdd {
		if w.has(e.id) {
			continue
		}
		if w.index == nil {
			w.index = map[EntityID]*Entity{}
		}
		w.entities = append(w.entities, e)
		w.index[e.id] = e
	}
	w.pendingAdd = w.pendingAdd[:0]

	if len(w.pendingRemove) == 0 {
		return
	}
	removed := false
	for _, e := range w.pendingRemove {
		if w.has(e.id) {
			delete(w.index, e.id)
			removed = true
		}
	}
	w.pendingRemove = w.pendingRemove[:0]
	if !removed {
		return
	}

	kept := w.entities[:0]
	for _, e := range w.entities {
		if w.has(e.id) {
			kept = append(kept, e)
		}
	}
	clear(w.entities[len(kept):])
	w.entities = kept
}

func (w *World) has(id EntityID) bool {
	_, ok := w.index[id]
	return ok
}

func (w *World) isPendingAdd(e *Entity) bool {
	for _, p := range w.pendingAdd {
		if p == e {
			return true
		}
	}
	return false
}
