package system

import (
	"testing"

	"github.com/milk9111/engine2d/common"
	"github.com/milk9111/engine2d/ecs"
	"github.com/milk9111/engine2d/ecs/component"
)

func spawn(t *testing.T, x, y float64, c *component.Collider, rb *component.RigidBody) *ecs.Entity {
	t.Helper()
	e := ecs.NewEntity()
	if err := ecs.Add(e, component.TransformComponent.Kind(), component.NewTransform(x, y)); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	if c != nil {
		if err := ecs.Add(e, component.ColliderComponent.Kind(), c); err != nil {
			t.Fatalf("add collider: %v", err)
		}
	}
	if rb != nil {
		if err := ecs.Add(e, component.RigidBodyComponent.Kind(), rb); err != nil {
			t.Fatalf("add rigidbody: %v", err)
		}
	}
	return e
}

// floating is a dynamic body with gravity and drag disabled.
func floating() *component.RigidBody {
	rb := component.NewRigidBody()
	rb.UseGravity = false
	rb.Drag = 0
	rb.AngularDrag = 0
	return rb
}

func position(e *ecs.Entity) common.Vector2 {
	tr, _ := ecs.Get(e, component.TransformComponent.Kind())
	return tr.Position
}

func velocity(e *ecs.Entity) common.Vector2 {
	rb, _ := ecs.Get(e, component.RigidBodyComponent.Kind())
	return rb.Velocity
}

func TestCheckCollisionShapes(t *testing.T) {
	cases := []struct {
		name        string
		a, b        *ecs.Entity
		hit         bool
		normal      common.Vector2
		penetration float64
	}{
		{
			name:        "circle_circle",
			a:           spawn(t, 0, 0, component.NewCircleCollider(5), nil),
			b:           spawn(t, 8, 0, component.NewCircleCollider(5), nil),
			hit:         true,
			normal:      common.Vec(1, 0),
			penetration: 2,
		},
		{
			name: "circle_circle_touching",
			a:    spawn(t, 0, 0, component.NewCircleCollider(5), nil),
			b:    spawn(t, 10, 0, component.NewCircleCollider(5), nil),
			hit:  false,
		},
		{
			name:        "box_box_points_a_to_b",
			a:           spawn(t, 0, 0, component.NewBoxCollider(10, 10), nil),
			b:           spawn(t, 8, 2, component.NewBoxCollider(10, 10), nil),
			hit:         true,
			normal:      common.Vec(1, 0),
			penetration: 2,
		},
		{
			name:        "box_box_vertical",
			a:           spawn(t, 0, 9, component.NewBoxCollider(10, 10), nil),
			b:           spawn(t, 1, 0, component.NewBoxCollider(10, 10), nil),
			hit:         true,
			normal:      common.Vec(0, -1),
			penetration: 1,
		},
		{
			name:        "circle_box",
			a:           spawn(t, 0, 0, component.NewCircleCollider(5), nil),
			b:           spawn(t, 8, 0, component.NewBoxCollider(8, 8), nil),
			hit:         true,
			normal:      common.Vec(1, 0),
			penetration: 1,
		},
		{
			name:        "box_circle",
			a:           spawn(t, 8, 0, component.NewBoxCollider(8, 8), nil),
			b:           spawn(t, 0, 0, component.NewCircleCollider(5), nil),
			hit:         true,
			normal:      common.Vec(-1, 0),
			penetration: 1,
		},
		{
			name:        "circle_center_inside_box",
			a:           spawn(t, 0, 0, component.NewCircleCollider(2), nil),
			b:           spawn(t, 3, 0, component.NewBoxCollider(10, 10), nil),
			hit:         true,
			normal:      common.Vec(1, 0),
			penetration: 4,
		},
		{
			name: "capsule_never_collides",
			a:    spawn(t, 0, 0, component.NewCapsuleCollider(5, 10), nil),
			b:    spawn(t, 0, 0, component.NewCircleCollider(5), nil),
			hit:  false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := CheckCollision(c.a, c.b)
			if ok != c.hit {
				t.Fatalf("hit = %v, want %v", ok, c.hit)
			}
			if !ok {
				return
			}
			if !common.NearlyEqual(got.Normal, c.normal, 1e-9) {
				t.Fatalf("normal = %v, want %v", got.Normal, c.normal)
			}
			if !common.Approximately(got.Penetration, c.penetration, 1e-9) {
				t.Fatalf("penetration = %v, want %v", got.Penetration, c.penetration)
			}
			if got.EntityA != c.a || got.EntityB != c.b {
				t.Fatalf("entity order not preserved")
			}
			if got.Other(c.a) != c.b {
				t.Fatalf("Other returned the wrong entity")
			}
		})
	}
}

func TestLayerMaskGate(t *testing.T) {
	ca := component.NewCircleCollider(5)
	ca.Layer, ca.Mask = 1, 2
	cb := component.NewCircleCollider(5)
	cb.Layer, cb.Mask = 2, 2

	a := spawn(t, 0, 0, ca, nil)
	b := spawn(t, 1, 0, cb, nil)
	if _, ok := CheckCollision(a, b); ok {
		t.Fatalf("one-sided mask should not collide")
	}
	cb.Mask = 1
	if _, ok := CheckCollision(a, b); !ok {
		t.Fatalf("mutual masks should collide")
	}
}

func TestResolutionStaticAbsorbs(t *testing.T) {
	ps := NewPhysicsSystem(DefaultPhysicsConfig())
	wall := spawn(t, 0, 0, component.NewCircleCollider(5), component.NewStaticBody())
	ball := spawn(t, 8, 0, component.NewCircleCollider(5), floating())

	ps.Update(0, []*ecs.Entity{wall, ball})

	if position(wall) != common.Zero {
		t.Fatalf("static body moved to %v", position(wall))
	}
	if !common.NearlyEqual(position(ball), common.Vec(10, 0), 1e-9) {
		t.Fatalf("dynamic body at %v, want (10,0)", position(ball))
	}
}

func TestStaticResponse(t *testing.T) {
	cases := []struct {
		name     string
		response bool
		wall     *component.RigidBody
		want     common.Vector2
	}{
		{name: "off_keeps_velocity", response: false, wall: component.NewStaticBody(), want: common.Vec(-10, 0)},
		{name: "static_reflects", response: true, wall: component.NewStaticBody(), want: common.Vec(3, 0)},
		{name: "bodyless_reflects", response: true, wall: nil, want: common.Vec(3, 0)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultPhysicsConfig()
			cfg.StaticResponse = tc.response
			ps := NewPhysicsSystem(cfg)

			rb := floating()
			rb.Velocity = common.Vec(-10, 0)
			ball := spawn(t, 8, 0, component.NewCircleCollider(5), rb)
			wall := spawn(t, 0, 0, component.NewCircleCollider(5), tc.wall)

			ps.Update(0, []*ecs.Entity{ball, wall})

			if !common.NearlyEqual(velocity(ball), tc.want, 1e-9) {
				t.Fatalf("velocity = %v, want %v", velocity(ball), tc.want)
			}
			if position(wall) != common.Zero {
				t.Fatalf("wall moved to %v", position(wall))
			}
		})
	}
}

func TestResolutionSplitsByMass(t *testing.T) {
	cases := []struct {
		name         string
		massA, massB float64
		wantA, wantB float64
	}{
		{"equal", 1, 1, -1, 9},
		{"heavy_a_moves_less", 3, 1, -0.5, 9.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ps := NewPhysicsSystem(DefaultPhysicsConfig())
			rbA, rbB := floating(), floating()
			rbA.Mass, rbB.Mass = c.massA, c.massB
			a := spawn(t, 0, 0, component.NewCircleCollider(5), rbA)
			b := spawn(t, 8, 0, component.NewCircleCollider(5), rbB)

			ps.Update(0, []*ecs.Entity{a, b})

			if !common.Approximately(position(a).X, c.wantA, 1e-9) || !common.Approximately(position(b).X, c.wantB, 1e-9) {
				t.Fatalf("positions = %v %v, want %v %v", position(a).X, position(b).X, c.wantA, c.wantB)
			}
		})
	}
}

func TestBodylessColliderIsImmovable(t *testing.T) {
	ps := NewPhysicsSystem(DefaultPhysicsConfig())
	post := spawn(t, 0, 0, component.NewCircleCollider(5), nil)
	ball := spawn(t, 8, 0, component.NewCircleCollider(5), floating())

	ps.Update(0, []*ecs.Entity{post, ball})

	if position(post) != common.Zero {
		t.Fatalf("body-less collider moved")
	}
	if !common.NearlyEqual(position(ball), common.Vec(10, 0), 1e-9) {
		t.Fatalf("ball at %v", position(ball))
	}
}

func TestImpulseOnApproach(t *testing.T) {
	ps := NewPhysicsSystem(DefaultPhysicsConfig())
	rbA, rbB := floating(), floating()
	rbA.Velocity = common.Vec(10, 0)
	rbB.Velocity = common.Vec(-10, 0)
	a := spawn(t, 0, 0, component.NewCircleCollider(5), rbA)
	b := spawn(t, 8, 0, component.NewCircleCollider(5), rbB)

	ps.Update(0, []*ecs.Entity{a, b})

	if !common.NearlyEqual(velocity(a), common.Vec(-16, 0), 1e-9) {
		t.Fatalf("velocity A = %v, want (-16,0)", velocity(a))
	}
	if !common.NearlyEqual(velocity(b), common.Vec(16, 0), 1e-9) {
		t.Fatalf("velocity B = %v, want (16,0)", velocity(b))
	}
}

func TestSeparatingBodiesKeepVelocity(t *testing.T) {
	ps := NewPhysicsSystem(DefaultPhysicsConfig())
	rbA, rbB := floating(), floating()
	rbA.Velocity = common.Vec(-1, 0)
	rbB.Velocity = common.Vec(1, 0)
	a := spawn(t, 0, 0, component.NewCircleCollider(5), rbA)
	b := spawn(t, 8, 0, component.NewCircleCollider(5), rbB)

	ps.Update(0, []*ecs.Entity{a, b})

	if velocity(a) != common.Vec(-1, 0) || velocity(b) != common.Vec(1, 0) {
		t.Fatalf("separating velocities changed: %v %v", velocity(a), velocity(b))
	}
}

func TestIntegration(t *testing.T) {
	ps := NewPhysicsSystem(DefaultPhysicsConfig())

	falling := component.NewRigidBody()
	falling.Drag = 0
	dropped := spawn(t, 0, 0, nil, falling)

	kin := component.NewRigidBody()
	kin.IsKinematic = true
	kin.Velocity = common.Vec(10, 0)
	mover := spawn(t, 0, 0, nil, kin)

	static := spawn(t, 0, 0, nil, component.NewStaticBody())

	ps.Update(0.5, []*ecs.Entity{dropped, mover, static})

	if !common.NearlyEqual(velocity(dropped), common.Vec(0, 490), 1e-9) {
		t.Fatalf("falling velocity = %v", velocity(dropped))
	}
	if !common.NearlyEqual(position(dropped), common.Vec(0, 245), 1e-9) {
		t.Fatalf("falling position = %v", position(dropped))
	}
	if falling.Acceleration != common.Zero {
		t.Fatalf("acceleration should reset after integration")
	}
	if !common.NearlyEqual(position(mover), common.Vec(5, 0), 1e-9) {
		t.Fatalf("kinematic body should follow velocity without gravity, at %v", position(mover))
	}
	if position(static) != common.Zero {
		t.Fatalf("static body moved")
	}
}

func TestTriggersReportButDoNotResolve(t *testing.T) {
	ps := NewPhysicsSystem(DefaultPhysicsConfig())
	zone := component.NewCircleCollider(5)
	zone.IsTrigger = true
	a := spawn(t, 0, 0, zone, nil)
	b := spawn(t, 8, 0, component.NewCircleCollider(5), floating())

	entered := 0
	ps.OnCollisionEnter(func(c Collision) { entered++ })
	ps.Update(0, []*ecs.Entity{a, b})

	if entered != 1 {
		t.Fatalf("enter callbacks = %d, want 1", entered)
	}
	if position(b) != common.Vec(8, 0) {
		t.Fatalf("trigger contact should not move bodies, b at %v", position(b))
	}
}

func TestCollisionLifecycleEvents(t *testing.T) {
	queue := &ecs.EventQueue{}
	cfg := DefaultPhysicsConfig()
	cfg.Events = queue
	ps := NewPhysicsSystem(cfg)

	a := spawn(t, 0, 0, component.NewCircleCollider(5), nil)
	b := spawn(t, 8, 0, component.NewCircleCollider(5), nil)
	entities := []*ecs.Entity{a, b}

	var log []string
	ps.OnCollisionEnter(func(Collision) { log = append(log, "enter") })
	ps.OnCollisionStay(func(Collision) { log = append(log, "stay") })
	ps.OnCollisionExit(func(x, y *ecs.Entity) {
		if x != a || y != b {
			t.Errorf("exit entities out of order")
		}
		log = append(log, "exit")
	})

	ps.Update(0.016, entities)
	ps.Update(0.016, entities)
	tr, _ := ecs.Get(b, component.TransformComponent.Kind())
	tr.Position = common.Vec(100, 0)
	ps.Update(0.016, entities)
	ps.Update(0.016, entities)

	want := []string{"enter", "stay", "exit"}
	if len(log) != len(want) {
		t.Fatalf("events = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("events = %v, want %v", log, want)
		}
	}

	events := queue.Drain()
	if len(events) != 3 {
		t.Fatalf("queued %d events, want 3", len(events))
	}
	if events[0].Type != EventCollisionEnter || events[2].Type != EventCollisionExit {
		t.Fatalf("unexpected event types %q .. %q", events[0].Type, events[2].Type)
	}
	exit, ok := events[2].Data.(CollisionEvent)
	if !ok || exit.Collision != nil || exit.A != a {
		t.Fatalf("exit payload = %+v", events[2].Data)
	}
	if len(ps.Collisions()) != 0 {
		t.Fatalf("no contacts expected after separation")
	}
}

func TestInactiveEntitiesIgnored(t *testing.T) {
	ps := NewPhysicsSystem(DefaultPhysicsConfig())
	a := spawn(t, 0, 0, component.NewCircleCollider(5), nil)
	b := spawn(t, 8, 0, component.NewCircleCollider(5), floating())
	b.Active = false

	ps.Update(0, []*ecs.Entity{a, b})
	if len(ps.Collisions()) != 0 {
		t.Fatalf("inactive entity should not collide")
	}
}

func TestRaycast(t *testing.T) {
	near := spawn(t, 10, 0, component.NewCircleCollider(5), nil)
	far := spawn(t, 20, 0, component.NewCircleCollider(5), nil)
	box := spawn(t, 0, 30, component.NewBoxCollider(10, 10), nil)
	capsule := spawn(t, 0, -20, component.NewCapsuleCollider(5, 10), nil)
	entities := []*ecs.Entity{far, near, box, capsule}

	cases := []struct {
		name     string
		dir      common.Vector2
		max      float64
		hit      *ecs.Entity
		distance float64
		normal   common.Vector2
	}{
		{"nearest_circle_wins", common.Vec(2, 0), 100, near, 5, common.Vec(-1, 0)},
		{"box_top_face", common.Vec(0, 1), 100, box, 25, common.Vec(0, -1)},
		{"capsule_ignored", common.Vec(0, -1), 100, nil, 0, common.Zero},
		{"beyond_max_distance", common.Vec(1, 0), 3, nil, 0, common.Zero},
		{"zero_direction", common.Zero, 100, nil, 0, common.Zero},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			hit, ok := Raycast(common.Zero, c.dir, c.max, entities)
			if c.hit == nil {
				if ok {
					t.Fatalf("unexpected hit on %v", hit.Entity)
				}
				return
			}
			if !ok {
				t.Fatalf("expected a hit")
			}
			if hit.Entity != c.hit {
				t.Fatalf("hit %v, want %v", hit.Entity, c.hit)
			}
			if !common.Approximately(hit.Distance, c.distance, 1e-9) {
				t.Fatalf("distance = %v, want %v", hit.Distance, c.distance)
			}
			if !common.NearlyEqual(hit.Normal, c.normal, 1e-9) {
				t.Fatalf("normal = %v, want %v", hit.Normal, c.normal)
			}
		})
	}
}

func TestRaycastFromInsideBox(t *testing.T) {
	box := spawn(t, 0, 0, component.NewBoxCollider(10, 10), nil)
	hit, ok := Raycast(common.Zero, common.Vec(1, 0), 100, []*ecs.Entity{box})
	if !ok {
		t.Fatalf("expected exit hit")
	}
	if !common.Approximately(hit.Distance, 5, 1e-9) || hit.Normal != common.Vec(1, 0) {
		t.Fatalf("hit = %+v", hit)
	}
}
