package system

import (
	"github.com/milk9111/engine2d/ecs"
	"github.com/milk9111/engine2d/ecs/component"
	"github.com/milk9111/engine2d/pool"
)

// LifetimeSystem counts TTL components down by simulated time and removes
// expired entities from the world. With a pool attached, removed entities
// are freed into it on the following tick, once the world has committed the
// removal.
type LifetimeSystem struct {
	world   *ecs.World
	pool    *pool.Pool[*ecs.Entity]
	expired []*ecs.Entity
}

func NewLifetimeSystem(w *ecs.World, p *pool.Pool[*ecs.Entity]) *LifetimeSystem {
	return &LifetimeSystem{world: w, pool: p}
}

func (s *LifetimeSystem) Update(dt float64, entities []*ecs.Entity) {
	if s == nil || s.world == nil {
		return
	}

	if s.pool != nil {
		for _, e := range s.expired {
			if _, live := s.world.Entity(e.ID()); !live {
				s.pool.Free(e)
			}
		}
	}
	s.expired = s.expired[:0]

	for _, e := range ecs.Filter(entities, component.TTLComponent.ID()) {
		ttl, _ := ecs.Get(e, component.TTLComponent.Kind())
		ttl.Remaining -= dt
		if ttl.Remaining > 0 {
			continue
		}
		if ttl.OnExpire != nil {
			ttl.OnExpire()
		}
		s.world.RemoveEntity(e)
		s.expired = append(s.expired, e)
	}
}
