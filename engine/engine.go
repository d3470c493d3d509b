// Package engine assembles a world with the standard system order from a
// config, a prefab library and an input source.
package engine

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/milk9111/engine2d/config"
	"github.com/milk9111/engine2d/ecs"
	"github.com/milk9111/engine2d/ecs/component"
	"github.com/milk9111/engine2d/ecs/system"
	"github.com/milk9111/engine2d/input"
	"github.com/milk9111/engine2d/pool"
	"github.com/milk9111/engine2d/prefabs"
)

// Engine owns a world and its systems. Systems run in this order: control,
// scripts, navigation, physics, lifetime.
type Engine struct {
	Config  config.Config
	World   *ecs.World
	Library *prefabs.Library
	Pool    *pool.Pool[*ecs.Entity]

	Control    *system.ControlSystem
	Scripts    *system.ScriptSystem
	Navigation *system.NavigationSystem
	Physics    *system.PhysicsSystem
	Lifetime   *system.LifetimeSystem
}

// New validates cfg and wires the systems. src may be nil for headless
// runs.
func New(cfg config.Config, lib *prefabs.Library, src input.Source) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if lib == nil {
		lib = prefabs.NewLibrary(cfg.PrefabDir)
	}

	w := ecs.NewWorld()
	e := &Engine{
		Config:  cfg,
		World:   w,
		Library: lib,
		Pool:    ecs.NewEntityPool(0),
	}

	physCfg := cfg.PhysicsSystemConfig()
	physCfg.Events = w.Events()

	cell := cfg.Pathfinding.CellSize
	gridW := int(math.Ceil(float64(cfg.Window.Width) / cell))
	gridH := int(math.Ceil(float64(cfg.Window.Height) / cell))

	e.Control = system.NewControlSystem(src)
	e.Scripts = system.NewScriptSystem(w, lib.LoadScript)
	e.Navigation = system.NewNavigationSystem(gridW, gridH, cell, cfg.PathfinderOptions())
	e.Physics = system.NewPhysicsSystem(physCfg)
	e.Lifetime = system.NewLifetimeSystem(w, e.Pool)
	e.Scripts.UsePhysics(e.Physics)

	w.AddSystem(e.Control)
	w.AddSystem(e.Scripts)
	w.AddSystem(e.Navigation)
	w.AddSystem(e.Physics)
	w.AddSystem(e.Lifetime)
	return e, nil
}

// LoadScene stages every placement of scene.
func (e *Engine) LoadScene(scene string) error {
	spawned, err := e.Library.SpawnScene(e.World, scene)
	if err != nil {
		return fmt.Errorf("engine: scene %s: %w", scene, err)
	}
	log.Printf("Engine: loaded scene %s with %d entities", scene, len(spawned))
	return nil
}

// Spawn builds prefab name at (x, y), reusing a pooled entity when one is
// free.
func (e *Engine) Spawn(name string, x, y float64) (*ecs.Entity, error) {
	built, err := e.Library.Build(name, x, y)
	if err != nil {
		return nil, err
	}
	ent := e.Pool.Obtain()
	ent.Tag = built.Tag
	ent.Layer = built.Layer
	ent.Active = built.Active
	for id := component.ComponentID(1); int(id) <= component.RegisteredKinds(); id++ {
		value, ok := built.Component(id)
		if !ok {
			continue
		}
		if err := ent.SetComponent(id, value); err != nil {
			e.Pool.Free(ent)
			return nil, err
		}
	}
	if err := e.World.AddEntity(ent); err != nil {
		e.Pool.Free(ent)
		return nil, err
	}
	return ent, nil
}

func (e *Engine) Update(dt float64) {
	e.World.Update(dt)
}

// Reload reacts to a changed prefab or script file.
func (e *Engine) Reload(path string) {
	name := e.Library.Name(path)
	if strings.HasSuffix(name, ".tengo") {
		e.Scripts.Invalidate(name)
		log.Printf("Engine: reloading script %s", name)
		return
	}
	e.Library.Invalidate(name)
	log.Printf("Engine: reloading prefab %s", name)
}
