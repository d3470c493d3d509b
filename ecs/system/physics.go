package system

import (
	"github.com/milk9111/engine2d/common"
	"github.com/milk9111/engine2d/ecs"
	"github.com/milk9111/engine2d/ecs/component"
)

const (
	DefaultIterations  = 4
	DefaultRestitution = 0.3
)

// Event types pushed to the physics event queue.
const (
	EventCollisionEnter = "collision_enter"
	EventCollisionStay  = "collision_stay"
	EventCollisionExit  = "collision_exit"
)

// CollisionEvent is the payload of collision events. Collision is nil for
// exit events.
type CollisionEvent struct {
	A, B      *ecs.Entity
	Collision *Collision
}

type PhysicsConfig struct {
	Gravity     common.Vector2
	Iterations  int
	Restitution float64

	// StaticResponse lets static and body-less colliders reflect the
	// velocity of dynamic bodies hitting them. Off, only pairs of
	// non-static bodies exchange impulses.
	StaticResponse bool

	// Events receives collision transitions when set.
	Events *ecs.EventQueue
}

func DefaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{
		Gravity:     common.Vec(0, common.Gravity),
		Iterations:  DefaultIterations,
		Restitution: DefaultRestitution,
	}
}

// PhysicsSystem integrates rigid bodies, detects and resolves collisions
// between colliders and tracks contact pairs across ticks.
type PhysicsSystem struct {
	Gravity        common.Vector2
	Iterations     int
	Restitution    float64
	StaticResponse bool

	events     *ecs.EventQueue
	collisions []Collision
	previous   map[pairKey]Collision

	onEnter []func(Collision)
	onStay  []func(Collision)
	onExit  []func(a, b *ecs.Entity)
}

func NewPhysicsSystem(cfg PhysicsConfig) *PhysicsSystem {
	if cfg.Iterations <= 0 {
		cfg.Iterations = DefaultIterations
	}
	if cfg.Restitution < 0 {
		cfg.Restitution = 0
	}
	return &PhysicsSystem{
		Gravity:        cfg.Gravity,
		Iterations:     cfg.Iterations,
		Restitution:    cfg.Restitution,
		StaticResponse: cfg.StaticResponse,
		events:         cfg.Events,
		previous:       make(map[pairKey]Collision),
	}
}

func (ps *PhysicsSystem) OnCollisionEnter(fn func(Collision)) {
	if fn != nil {
		ps.onEnter = append(ps.onEnter, fn)
	}
}

func (ps *PhysicsSystem) OnCollisionStay(fn func(Collision)) {
	if fn != nil {
		ps.onStay = append(ps.onStay, fn)
	}
}

func (ps *PhysicsSystem) OnCollisionExit(fn func(a, b *ecs.Entity)) {
	if fn != nil {
		ps.onExit = append(ps.onExit, fn)
	}
}

// SetEventQueue routes collision transitions to q; nil disables it.
func (ps *PhysicsSystem) SetEventQueue(q *ecs.EventQueue) {
	ps.events = q
}

// Collisions returns the contacts found by the last Update. The slice is
// owned by the system and is replaced on the next tick.
func (ps *PhysicsSystem) Collisions() []Collision {
	if ps == nil {
		return nil
	}
	return ps.collisions
}

func (ps *PhysicsSystem) Update(dt float64, entities []*ecs.Entity) {
	if ps == nil {
		return
	}

	bodies := ecs.Filter(entities, component.RigidBodyComponent.ID(), component.TransformComponent.ID())
	ps.applyForces(bodies)
	ps.integrate(bodies, dt)

	previous := ps.collisions
	ps.collisions = ps.detect(ecs.Filter(entities, component.ColliderComponent.ID(), component.TransformComponent.ID()))
	ps.resolve(ps.collisions)
	ps.dispatch(previous, ps.collisions)
}

func (ps *PhysicsSystem) applyForces(bodies []*ecs.Entity) {
	for _, e := range bodies {
		rb, _ := ecs.Get(e, component.RigidBodyComponent.Kind())
		if !rb.Movable() {
			continue
		}
		if rb.UseGravity {
			rb.Acceleration = rb.Acceleration.Add(ps.Gravity.Mult(rb.GravityScale))
		}
		rb.Velocity = rb.Velocity.Mult(1 - rb.Drag)
		rb.AngularVelocity *= 1 - rb.AngularDrag
	}
}

// integrate is semi-implicit Euler. Kinematic bodies are moved by their
// velocity, never by forces, so scripts and navigation can drive them.
func (ps *PhysicsSystem) integrate(bodies []*ecs.Entity, dt float64) {
	for _, e := range bodies {
		rb, _ := ecs.Get(e, component.RigidBodyComponent.Kind())
		if rb.IsStatic {
			continue
		}
		tr, _ := ecs.Get(e, component.TransformComponent.Kind())

		if !rb.IsKinematic {
			rb.Velocity = rb.Velocity.Add(rb.Acceleration.Mult(dt))
		}
		tr.Position = tr.Position.Add(rb.Velocity.Mult(dt))
		tr.Rotation += rb.AngularVelocity * dt
		rb.Acceleration = common.Zero
	}
}

func (ps *PhysicsSystem) detect(colliders []*ecs.Entity) []Collision {
	var out []Collision
	for i := 0; i < len(colliders); i++ {
		a := colliders[i]
		ca, _ := ecs.Get(a, component.ColliderComponent.Kind())
		ta, _ := ecs.Get(a, component.TransformComponent.Kind())
		for j := i + 1; j < len(colliders); j++ {
			b := colliders[j]
			cb, _ := ecs.Get(b, component.ColliderComponent.Kind())
			tb, _ := ecs.Get(b, component.TransformComponent.Kind())
			if c, ok := checkPair(a, b, ca, cb, *ta, *tb); ok {
				out = append(out, c)
			}
		}
	}
	return out
}

func (ps *PhysicsSystem) resolve(collisions []Collision) {
	iterations := ps.Iterations
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	for range iterations {
		for i := range collisions {
			ps.resolveOne(&collisions[i], iterations)
		}
	}
}

func (ps *PhysicsSystem) resolveOne(c *Collision, iterations int) {
	if c.IsTrigger() {
		return
	}

	rbA, hasA := ecs.Get(c.EntityA, component.RigidBodyComponent.Kind())
	rbB, hasB := ecs.Get(c.EntityB, component.RigidBodyComponent.Kind())
	ta, _ := ecs.Get(c.EntityA, component.TransformComponent.Kind())
	tb, _ := ecs.Get(c.EntityB, component.TransformComponent.Kind())

	correction := c.Normal.Mult(c.Penetration / float64(iterations))
	movableA := hasA && rbA.Movable()
	movableB := hasB && rbB.Movable()

	switch {
	case movableA && movableB:
		massA := rbA.EffectiveMass()
		massB := rbB.EffectiveMass()
		total := massA + massB
		ta.Position = ta.Position.Sub(correction.Mult(massB / total))
		tb.Position = tb.Position.Add(correction.Mult(massA / total))
	case movableA:
		ta.Position = ta.Position.Sub(correction)
	case movableB:
		tb.Position = tb.Position.Add(correction)
	}

	if !hasA || !hasB || rbA.IsStatic || rbB.IsStatic {
		if ps.StaticResponse {
			ps.reflect(c, rbA, rbB, hasA, hasB)
		}
		return
	}
	velocityAlongNormal := rbB.Velocity.Sub(rbA.Velocity).Dot(c.Normal)
	if velocityAlongNormal >= 0 {
		return
	}
	impulse := c.Normal.Mult(-(1 + ps.Restitution) * velocityAlongNormal)
	if !rbA.IsKinematic {
		rbA.Velocity = rbA.Velocity.Sub(common.Div(impulse, rbA.EffectiveMass()))
	}
	if !rbB.IsKinematic {
		rbB.Velocity = rbB.Velocity.Add(common.Div(impulse, rbB.EffectiveMass()))
	}
}

// reflect bounces a dynamic body off an immovable one.
func (ps *PhysicsSystem) reflect(c *Collision, rbA, rbB *component.RigidBody, hasA, hasB bool) {
	switch {
	case hasA && rbA.Movable() && (!hasB || rbB.IsStatic):
		vn := rbA.Velocity.Neg().Dot(c.Normal)
		if vn < 0 {
			rbA.Velocity = rbA.Velocity.Add(c.Normal.Mult((1 + ps.Restitution) * vn))
		}
	case hasB && rbB.Movable() && (!hasA || rbA.IsStatic):
		vn := rbB.Velocity.Dot(c.Normal)
		if vn < 0 {
			rbB.Velocity = rbB.Velocity.Sub(c.Normal.Mult((1 + ps.Restitution) * vn))
		}
	}
}

func (ps *PhysicsSystem) dispatch(previous, collisions []Collision) {
	current := make(map[pairKey]Collision, len(collisions))
	for i := range collisions {
		c := collisions[i]
		key := c.key()
		current[key] = c
		if _, ok := ps.previous[key]; ok {
			for _, fn := range ps.onStay {
				fn(c)
			}
			ps.push(EventCollisionStay, c.EntityA, c.EntityB, &collisions[i])
			continue
		}
		for _, fn := range ps.onEnter {
			fn(c)
		}
		ps.push(EventCollisionEnter, c.EntityA, c.EntityB, &collisions[i])
	}

	for _, prev := range previous {
		if _, ok := current[prev.key()]; ok {
			continue
		}
		for _, fn := range ps.onExit {
			fn(prev.EntityA, prev.EntityB)
		}
		ps.push(EventCollisionExit, prev.EntityA, prev.EntityB, nil)
	}

	ps.previous = current
}

func (ps *PhysicsSystem) push(typ string, a, b *ecs.Entity, c *Collision) {
	if ps.events == nil {
		return
	}
	ps.events.Push(ecs.Event{Type: typ, Data: CollisionEvent{A: a, B: b, Collision: c}})
}
