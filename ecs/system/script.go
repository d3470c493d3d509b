package system

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/engine2d/common"
	"github.com/milk9111/engine2d/ecs"
	"github.com/milk9111/engine2d/ecs/component"
)

// EventScript is the event type pushed by a script's emit call.
const EventScript = "script"

// ScriptEvent is the payload of EventScript events.
type ScriptEvent struct {
	Entity *ecs.Entity
	Name   string
	Data   any
}

// ScriptLoader resolves a script path to its source.
type ScriptLoader func(path string) ([]byte, error)

var errNoScriptSource = errors.New("script has neither source nor path")

const scriptDispatch = `
update(__engine, __state, __dt)
`

type scriptRuntime struct {
	key       string
	path      string
	compiled  *tengo.Compiled
	stateData *tengo.Map
}

// ScriptSystem runs each entity's tengo script once per tick. A script must
// define update(engine, state, dt). Compiled scripts are cached per entity
// until Invalidate drops them. Failing scripts are logged once and skipped
// until they change.
type ScriptSystem struct {
	world   *ecs.World
	load    ScriptLoader
	physics *PhysicsSystem
	cache   map[ecs.EntityID]*scriptRuntime
	failed  map[ecs.EntityID]string
}

func NewScriptSystem(w *ecs.World, load ScriptLoader) *ScriptSystem {
	return &ScriptSystem{
		world:  w,
		load:   load,
		cache:  map[ecs.EntityID]*scriptRuntime{},
		failed: map[ecs.EntityID]string{},
	}
}

// UsePhysics exposes ps's contacts to scripts through engine.collisions().
// Scripts running before physics see the previous tick's contacts.
func (s *ScriptSystem) UsePhysics(ps *PhysicsSystem) {
	s.physics = ps
}

// Invalidate drops compiled scripts loaded from path so the next tick
// recompiles them. An empty path drops everything.
func (s *ScriptSystem) Invalidate(path string) {
	for id, rt := range s.cache {
		if path == "" || rt.path == path {
			delete(s.cache, id)
		}
	}
	for id, key := range s.failed {
		if path == "" || key == path {
			delete(s.failed, id)
		}
	}
}

func (s *ScriptSystem) Update(dt float64, entities []*ecs.Entity) {
	if s == nil {
		return
	}

	scripted := ecs.Filter(entities, component.ScriptComponent.ID())
	seen := make(map[ecs.EntityID]struct{}, len(scripted))
	for _, e := range scripted {
		seen[e.ID()] = struct{}{}
		sc, _ := ecs.Get(e, component.ScriptComponent.Kind())

		key := scriptKey(sc)
		if s.failed[e.ID()] == key {
			continue
		}

		rt, err := s.runtime(e, sc, key)
		if err != nil {
			s.fail(e, key, err)
			continue
		}
		if err := rt.run(buildScriptEngine(s.world, s.physics, e), dt); err != nil {
			s.fail(e, key, err)
			continue
		}
		sc.State = stateToAny(rt.stateData)
	}

	for id := range s.cache {
		if _, ok := seen[id]; !ok {
			delete(s.cache, id)
		}
	}
}

func (s *ScriptSystem) fail(e *ecs.Entity, key string, err error) {
	s.failed[e.ID()] = key
	delete(s.cache, e.ID())
	log.Printf("ScriptSystem: %s: %v", e, err)
}

// scriptKey identifies the script revision an entity asks for.
func scriptKey(sc *component.Script) string {
	if sc.Source != "" {
		return "source:" + sc.Source
	}
	return sc.Path
}

func (s *ScriptSystem) runtime(e *ecs.Entity, sc *component.Script, key string) (*scriptRuntime, error) {
	if rt, ok := s.cache[e.ID()]; ok && rt.key == key {
		return rt, nil
	}

	var src []byte
	switch {
	case sc.Source != "":
		src = []byte(sc.Source)
	case strings.TrimSpace(sc.Path) != "":
		if s.load == nil {
			return nil, fmt.Errorf("load %s: no script loader", sc.Path)
		}
		b, err := s.load(sc.Path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", sc.Path, err)
		}
		src = b
	default:
		return nil, errNoScriptSource
	}

	rt, err := compileScript(src, sc.State)
	if err != nil {
		return nil, err
	}
	rt.key = key
	if sc.Source == "" {
		rt.path = sc.Path
	}
	s.cache[e.ID()] = rt
	return rt, nil
}

func compileScript(src []byte, state map[string]any) (*scriptRuntime, error) {
	full := append(append([]byte{}, src...), scriptDispatch...)
	script := tengo.NewScript(full)
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__dt", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}

	stateData := &tengo.Map{Value: map[string]tengo.Object{}}
	for k, v := range state {
		obj, err := tengo.FromInterface(v)
		if err != nil {
			return nil, fmt.Errorf("state %q: %w", k, err)
		}
		stateData.Value[k] = obj
	}

	return &scriptRuntime{compiled: compiled, stateData: stateData}, nil
}

// run executes one tick. Faults raised inside the VM come back as errors.
func (rt *scriptRuntime) run(engine *tengo.ImmutableMap, dt float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("script panic: %v", r)
		}
	}()

	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	if err := rt.compiled.Set("__dt", dt); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func stateToAny(m *tengo.Map) map[string]any {
	out := make(map[string]any, len(m.Value))
	for k, v := range m.Value {
		out[k] = objectToAny(v)
	}
	return out
}

func vectorObject(v common.Vector2) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: v.X}, &tengo.Float{Value: v.Y}}}
}

// vectorArgs reads an (x, y) pair from either two numbers or one array.
func vectorArgs(args []tengo.Object) (common.Vector2, bool) {
	if len(args) == 1 {
		if arr, ok := args[0].(*tengo.Array); ok {
			args = arr.Value
		}
	}
	if len(args) < 2 {
		return common.Zero, false
	}
	x, okX := tengo.ToFloat64(args[0])
	y, okY := tengo.ToFloat64(args[1])
	if !okX || !okY {
		return common.Zero, false
	}
	return common.Vec(x, y), true
}

// contactObjects lists e's contacts as seen from e: the normal points from
// e toward the other entity.
func contactObjects(ps *PhysicsSystem, e *ecs.Entity) *tengo.Array {
	out := &tengo.Array{}
	for _, c := range ps.Collisions() {
		if c.EntityA != e && c.EntityB != e {
			continue
		}
		other := c.Other(e)
		normal := c.Normal
		if c.EntityB == e {
			normal = normal.Neg()
		}
		out.Value = append(out.Value, &tengo.ImmutableMap{Value: map[string]tengo.Object{
			"id":          &tengo.Int{Value: int64(other.ID())},
			"tag":         &tengo.String{Value: other.Tag},
			"normal":      vectorObject(normal),
			"penetration": &tengo.Float{Value: c.Penetration},
			"trigger":     boolObject(c.IsTrigger()),
		}})
	}
	return out
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func buildScriptEngine(w *ecs.World, ps *PhysicsSystem, e *ecs.Entity) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	body := func() (*component.RigidBody, bool) {
		return ecs.Get(e, component.RigidBodyComponent.Kind())
	}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		tr, ok := ecs.Get(e, component.TransformComponent.Kind())
		if !ok {
			return vectorObject(common.Zero), nil
		}
		return vectorObject(tr.Position), nil
	}}

	values["set_position"] = &tengo.UserFunction{Name: "set_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		tr, ok := ecs.Get(e, component.TransformComponent.Kind())
		v, okArgs := vectorArgs(args)
		if !ok || !okArgs {
			return tengo.FalseValue, nil
		}
		tr.Position = v
		return tengo.TrueValue, nil
	}}

	values["get_velocity"] = &tengo.UserFunction{Name: "get_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		rb, ok := body()
		if !ok {
			return vectorObject(common.Zero), nil
		}
		return vectorObject(rb.Velocity), nil
	}}

	values["set_velocity"] = &tengo.UserFunction{Name: "set_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		rb, ok := body()
		v, okArgs := vectorArgs(args)
		if !ok || !okArgs || rb.IsStatic {
			return tengo.FalseValue, nil
		}
		rb.Velocity = v
		return tengo.TrueValue, nil
	}}

	values["add_force"] = &tengo.UserFunction{Name: "add_force", Value: func(args ...tengo.Object) (tengo.Object, error) {
		rb, ok := body()
		v, okArgs := vectorArgs(args)
		if !ok || !okArgs {
			return tengo.FalseValue, nil
		}
		rb.AddForce(v)
		return tengo.TrueValue, nil
	}}

	values["add_impulse"] = &tengo.UserFunction{Name: "add_impulse", Value: func(args ...tengo.Object) (tengo.Object, error) {
		rb, ok := body()
		v, okArgs := vectorArgs(args)
		if !ok || !okArgs {
			return tengo.FalseValue, nil
		}
		rb.AddImpulse(v)
		return tengo.TrueValue, nil
	}}

	values["tag"] = &tengo.UserFunction{Name: "tag", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: e.Tag}, nil
	}}

	values["find_position"] = &tengo.UserFunction{Name: "find_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if w == nil || len(args) < 1 {
			return tengo.UndefinedValue, nil
		}
		for _, other := range w.EntitiesByTag(objectAsString(args[0])) {
			if tr, ok := ecs.Get(other, component.TransformComponent.Kind()); ok {
				return vectorObject(tr.Position), nil
			}
		}
		return tengo.UndefinedValue, nil
	}}

	values["collisions"] = &tengo.UserFunction{Name: "collisions", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return contactObjects(ps, e), nil
	}}

	values["emit"] = &tengo.UserFunction{Name: "emit", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if w == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		var data any
		if len(args) > 1 {
			data = objectToAny(args[1])
		}
		w.Events().Push(ecs.Event{Type: EventScript, Data: ScriptEvent{Entity: e, Name: name, Data: data}})
		return tengo.TrueValue, nil
	}}

	values["destroy"] = &tengo.UserFunction{Name: "destroy", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if w == nil {
			return tengo.FalseValue, nil
		}
		w.RemoveEntity(e)
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.ImmutableMap:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
