package ecs

import "github.com/milk9111/engine2d/ecs/component"

func Add[T any](e *Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	return e.SetComponent(kind.ID(), value)
}

func Remove[T any](e *Entity, kind component.ComponentKind[T]) bool {
	return e.RemoveComponent(kind.ID())
}

func Has[T any](e *Entity, kind component.ComponentKind[T]) bool {
	_, ok := Get(e, kind)
	return ok
}

// Get returns the component stored for kind. A missing component is a
// normal result, not an error.
func Get[T any](e *Entity, kind component.ComponentKind[T]) (*T, bool) {
	value, ok := e.Component(kind.ID())
	if !ok {
		return nil, false
	}
	cast, ok := value.(*T)
	if !ok {
		return nil, false
	}
	return cast, true
}
