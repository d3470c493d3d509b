package ecs

import "github.com/milk9111/engine2d/pool"

// NewEntityPool returns a pool of detached entities. Freed entities lose
// their components, tag and layer but keep their id, so an entity must be
// committed out of every world before it is freed.
func NewEntityPool(initial int) *pool.Pool[*Entity] {
	return pool.New(NewEntity, ResetEntity, initial)
}

// ResetEntity restores e to the state NewEntity leaves it in, apart from its
// id.
func ResetEntity(e *Entity) {
	if e == nil {
		return
	}
	e.ClearComponents()
	e.Active = true
	e.Tag = ""
	e.Layer = DefaultLayer
}
