package ecs

import "github.com/milk9111/engine2d/ecs/component"

// System runs once per world tick over the committed entity list. Systems
// filter the list themselves; the slice must not be retained or mutated.
type System interface {
	Update(dt float64, entities []*Entity)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(dt float64, entities []*Entity)

func (f SystemFunc) Update(dt float64, entities []*Entity) {
	f(dt, entities)
}

// ComponentSystem runs update only over active entities carrying every
// required component.
type ComponentSystem struct {
	required []component.ComponentID
	update   func(dt float64, entities []*Entity)
}

func NewComponentSystem(update func(dt float64, entities []*Entity), required ...component.ComponentID) *ComponentSystem {
	return &ComponentSystem{
		required: append([]component.ComponentID(nil), required...),
		update:   update,
	}
}

func (s *ComponentSystem) Update(dt float64, entities []*Entity) {
	if s == nil || s.update == nil {
		return
	}
	s.update(dt, Filter(entities, s.required...))
}

// Scheduler runs systems in registration order.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Remove drops the first registration of system and reports whether one was
// found. Systems must be comparable to be removed.
func (s *Scheduler) Remove(system System) bool {
	for i, existing := range s.systems {
		if existing == system {
			s.systems = append(s.systems[:i], s.systems[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Scheduler) Update(dt float64, entities []*Entity) {
	for _, system := range s.systems {
		system.Update(dt, entities)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}

func (s *Scheduler) Len() int {
	return len(s.systems)
}

func (s *Scheduler) Clear() {
	s.systems = nil
}
