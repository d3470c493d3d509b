package system

import (
	"errors"
	"testing"

	"github.com/milk9111/engine2d/common"
	"github.com/milk9111/engine2d/ecs"
	"github.com/milk9111/engine2d/ecs/component"
)

func scripted(t *testing.T, sc *component.Script) *ecs.Entity {
	t.Helper()
	e := spawn(t, 10, 20, nil, floating())
	if err := ecs.Add(e, component.ScriptComponent.Kind(), sc); err != nil {
		t.Fatalf("add script: %v", err)
	}
	return e
}

func TestScriptDrivesBodyAndKeepsState(t *testing.T) {
	src := `
update := func(engine, state, dt) {
	if is_undefined(state.ticks) {
		state.ticks = 0
	}
	state.ticks += 1
	pos := engine.get_position()
	engine.set_velocity(pos[0] + state.ticks, dt)
}
`
	w := ecs.NewWorld()
	sys := NewScriptSystem(w, nil)
	e := scripted(t, &component.Script{Source: src})

	sys.Update(0.5, []*ecs.Entity{e})
	sys.Update(0.5, []*ecs.Entity{e})

	if got := velocity(e); got != common.Vec(12, 0.5) {
		t.Fatalf("velocity = %v", got)
	}
	sc, _ := ecs.Get(e, component.ScriptComponent.Kind())
	if sc.State["ticks"] != 2 {
		t.Fatalf("state = %v", sc.State)
	}
}

func TestScriptEmitAndDestroy(t *testing.T) {
	src := `
update := func(engine, state, dt) {
	engine.emit("spotted", {tag: engine.tag()})
	engine.destroy()
}
`
	w := ecs.NewWorld()
	sys := NewScriptSystem(w, nil)
	e := scripted(t, &component.Script{Source: src})
	e.Tag = "sentry"
	if err := w.AddEntity(e); err != nil {
		t.Fatalf("add entity: %v", err)
	}
	w.Update(0)

	sys.Update(0.1, w.Entities())

	events := w.Events().OfType(EventScript)
	if len(events) != 1 {
		t.Fatalf("expected one script event, got %d", len(events))
	}
	evt := events[0].Data.(ScriptEvent)
	if evt.Entity != e || evt.Name != "spotted" {
		t.Fatalf("event = %+v", evt)
	}
	if data, _ := evt.Data.(map[string]any); data["tag"] != "sentry" {
		t.Fatalf("event data = %v", evt.Data)
	}

	w.Update(0)
	if w.EntityCount() != 0 {
		t.Fatalf("destroy did not remove the entity")
	}
}

func TestScriptLoaderAndInvalidate(t *testing.T) {
	sources := map[string]string{
		"move.tengo": `update := func(engine, state, dt) { engine.set_velocity(1, 0) }`,
	}
	loads := 0
	loader := func(path string) ([]byte, error) {
		loads++
		src, ok := sources[path]
		if !ok {
			return nil, errors.New("not found")
		}
		return []byte(src), nil
	}

	sys := NewScriptSystem(ecs.NewWorld(), loader)
	e := scripted(t, &component.Script{Path: "move.tengo"})

	sys.Update(0.1, []*ecs.Entity{e})
	sys.Update(0.1, []*ecs.Entity{e})
	if loads != 1 {
		t.Fatalf("expected compiled script to be cached, loads=%d", loads)
	}
	if got := velocity(e); got != common.Vec(1, 0) {
		t.Fatalf("velocity = %v", got)
	}

	sources["move.tengo"] = `update := func(engine, state, dt) { engine.set_velocity(0, 2) }`
	sys.Invalidate("move.tengo")
	sys.Update(0.1, []*ecs.Entity{e})
	if loads != 2 {
		t.Fatalf("expected reload after invalidate, loads=%d", loads)
	}
	if got := velocity(e); got != common.Vec(0, 2) {
		t.Fatalf("velocity after reload = %v", got)
	}
}

func TestScriptFailuresAreSkipped(t *testing.T) {
	cases := []struct {
		name   string
		script component.Script
	}{
		{name: "syntax", script: component.Script{Source: `update := func(engine, state, dt) {`}},
		{name: "missing_update", script: component.Script{Source: `x := 1`}},
		{name: "runtime", script: component.Script{Source: `update := func(engine, state, dt) { return 1 / 0 }`}},
		{name: "divide_by_zero", script: component.Script{Source: `update := func(engine, state, dt) { x := 0; return 1 / x }`}},
		{name: "missing_file", script: component.Script{Path: "nope.tengo"}},
		{name: "empty", script: component.Script{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			loads := 0
			loader := func(path string) ([]byte, error) {
				loads++
				return nil, errors.New("not found")
			}
			sys := NewScriptSystem(ecs.NewWorld(), loader)
			sc := tc.script
			e := scripted(t, &sc)

			sys.Update(0.1, []*ecs.Entity{e})
			sys.Update(0.1, []*ecs.Entity{e})

			if got := velocity(e); got != common.Zero {
				t.Fatalf("failing script changed velocity: %v", got)
			}
			if loads > 1 {
				t.Fatalf("failing script retried: loads=%d", loads)
			}
		})
	}
}

func TestScriptFaultDoesNotStopOtherScripts(t *testing.T) {
	sys := NewScriptSystem(ecs.NewWorld(), nil)
	bad := scripted(t, &component.Script{Source: `update := func(engine, state, dt) { x := 0; return 1 / x }`})
	good := scripted(t, &component.Script{Source: `update := func(engine, state, dt) { engine.set_velocity(3, 4) }`})

	sys.Update(0.1, []*ecs.Entity{bad, good})

	if got := velocity(good); got != common.Vec(3, 4) {
		t.Fatalf("healthy script velocity = %v", got)
	}
	if _, ok := sys.failed[bad.ID()]; !ok {
		t.Fatalf("faulting script not marked failed")
	}
}

func TestScriptSeesPreviousContacts(t *testing.T) {
	src := `
update := func(engine, state, dt) {
	state.seen = len(engine.collisions())
	for c in engine.collisions() {
		state.tag = c.tag
		state.nx = c.normal[0]
		state.trigger = c.trigger
	}
}
`
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(PhysicsConfig{})
	sys := NewScriptSystem(w, nil)
	sys.UsePhysics(ps)

	other := spawn(t, 0, 0, component.NewCircleCollider(5), component.NewStaticBody())
	other.Tag = "rock"
	e := scripted(t, &component.Script{Source: src})
	tr, _ := ecs.Get(e, component.TransformComponent.Kind())
	tr.Position = common.Vec(8, 0)
	if err := ecs.Add(e, component.ColliderComponent.Kind(), component.NewCircleCollider(5)); err != nil {
		t.Fatalf("add collider: %v", err)
	}
	entities := []*ecs.Entity{other, e}

	sys.Update(1.0/60, entities)
	sc, _ := ecs.Get(e, component.ScriptComponent.Kind())
	if sc.State["seen"] != 0 {
		t.Fatalf("contacts before physics ran: %v", sc.State)
	}

	ps.Update(1.0/60, entities)
	sys.Update(1.0/60, entities)

	if sc.State["seen"] != 1 || sc.State["tag"] != "rock" {
		t.Fatalf("state = %v", sc.State)
	}
	// other is A, so the normal seen from e points back toward -X
	if sc.State["nx"] != -1.0 {
		t.Fatalf("normal x = %v, want -1", sc.State["nx"])
	}
	if sc.State["trigger"] != false {
		t.Fatalf("trigger = %v", sc.State["trigger"])
	}
}
