package ecs

import "github.com/milk9111/engine2d/ecs/component"

// Filter returns the active entities that carry every id, preserving order.
func Filter(entities []*Entity, ids ...component.ComponentID) []*Entity {
	out := make([]*Entity, 0, len(entities))
	for _, e := range entities {
		if e == nil || !e.Active {
			continue
		}
		if e.HasAll(ids...) {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first active entity carrying every id.
func First(entities []*Entity, ids ...component.ComponentID) (*Entity, bool) {
	for _, e := range entities {
		if e != nil && e.Active && e.HasAll(ids...) {
			return e, true
		}
	}
	return nil, false
}

// WithTag returns the active entities whose tag matches.
func WithTag(entities []*Entity, tag string) []*Entity {
	var out []*Entity
	for _, e := range entities {
		if e != nil && e.Active && e.Tag == tag {
			out = append(out, e)
		}
	}
	return out
}
