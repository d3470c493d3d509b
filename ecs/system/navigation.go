package system

import (
	"math"

	"github.com/milk9111/engine2d/common"
	"github.com/milk9111/engine2d/ecs"
	"github.com/milk9111/engine2d/ecs/component"
	"github.com/milk9111/engine2d/pathfinding"
)

const (
	defaultRepathFrames = 15
	// waypoint is reached within this fraction of a cell
	arriveFraction = 0.25
)

// NavigationSystem plans grid paths for PathAgent entities. The walkable
// grid covers width x height cells of cellSize starting at the world origin
// and is rebuilt from static colliders whenever an agent replans.
type NavigationSystem struct {
	cellSize float64
	grid     *pathfinding.Grid
	finder   *pathfinding.Pathfinder
}

func NewNavigationSystem(width, height int, cellSize float64, opts pathfinding.Options) *NavigationSystem {
	if cellSize <= 0 {
		cellSize = 32
	}
	grid := pathfinding.NewGrid(width, height)
	return &NavigationSystem{
		cellSize: cellSize,
		grid:     grid,
		finder:   pathfinding.NewPathfinder(grid, opts),
	}
}

func (ns *NavigationSystem) Grid() *pathfinding.Grid {
	return ns.grid
}

func (ns *NavigationSystem) Update(dt float64, entities []*ecs.Entity) {
	if ns == nil {
		return
	}

	agents := ecs.Filter(entities, component.PathAgentComponent.ID(), component.TransformComponent.ID())
	if len(agents) == 0 {
		return
	}

	gridBuilt := false
	for _, e := range agents {
		agent, _ := ecs.Get(e, component.PathAgentComponent.Kind())
		tr, _ := ecs.Get(e, component.TransformComponent.Kind())

		if agent.RepathFrames <= 0 {
			agent.RepathFrames = defaultRepathFrames
		}
		agent.FrameCounter++
		if agent.Path == nil || agent.FrameCounter%agent.RepathFrames == 0 {
			if !gridBuilt {
				ns.rebuildGrid(entities)
				gridBuilt = true
			}
			ns.replan(agent, tr.Position, ns.targetPosition(agent, entities))
		}

		ns.steer(e, agent, tr, dt)
	}
}

func (ns *NavigationSystem) targetPosition(agent *component.PathAgent, entities []*ecs.Entity) common.Vector2 {
	if agent.TargetTag == "" {
		return agent.Target
	}
	for _, e := range ecs.WithTag(entities, agent.TargetTag) {
		if tr, ok := ecs.Get(e, component.TransformComponent.Kind()); ok {
			return tr.Position
		}
	}
	return agent.Target
}

func (ns *NavigationSystem) replan(agent *component.PathAgent, from, to common.Vector2) {
	start := ns.cell(from)
	goal := ns.cell(to)

	path, ok := ns.finder.FindPath(start.X, start.Y, goal.X, goal.Y)
	if !ok {
		agent.Path = make([]common.Vector2, 0)
		agent.NextWaypoint = 0
		return
	}
	if agent.Smooth {
		path = ns.finder.SmoothPath(path)
	}

	agent.Path = agent.Path[:0]
	for _, p := range path {
		agent.Path = append(agent.Path, ns.cellCenter(p))
	}
	// the first waypoint is the cell the agent stands in
	agent.NextWaypoint = 0
	if len(agent.Path) > 1 {
		agent.NextWaypoint = 1
	}
}

// steer drives a dynamic body through its velocity and moves anything else
// directly.
func (ns *NavigationSystem) steer(e *ecs.Entity, agent *component.PathAgent, tr *component.Transform, dt float64) {
	rb, hasBody := ecs.Get(e, component.RigidBodyComponent.Kind())

	for !agent.Arrived() && tr.Position.Distance(agent.Path[agent.NextWaypoint]) <= ns.cellSize*arriveFraction {
		agent.NextWaypoint++
	}
	if agent.Arrived() || agent.Speed <= 0 {
		if hasBody && !rb.UseGravity {
			rb.Velocity = common.Zero
		}
		return
	}

	dir := common.Normalized(agent.Path[agent.NextWaypoint].Sub(tr.Position))
	if hasBody && !rb.IsStatic {
		rb.Velocity = dir.Mult(agent.Speed)
		return
	}
	step := math.Min(agent.Speed*dt, tr.Position.Distance(agent.Path[agent.NextWaypoint]))
	tr.Position = tr.Position.Add(dir.Mult(step))
}

// rebuildGrid blocks every cell touched by a solid static collider.
// Body-less colliders count as static.
func (ns *NavigationSystem) rebuildGrid(entities []*ecs.Entity) {
	ns.grid.Reset()
	for _, e := range ecs.Filter(entities, component.ColliderComponent.ID(), component.TransformComponent.ID()) {
		if rb, ok := ecs.Get(e, component.RigidBodyComponent.Kind()); ok && !rb.IsStatic {
			continue
		}
		c, _ := ecs.Get(e, component.ColliderComponent.Kind())
		if c.IsTrigger {
			continue
		}
		tr, _ := ecs.Get(e, component.TransformComponent.Kind())
		b := c.Bounds(*tr)

		lo := ns.rawCell(b.Min)
		hi := ns.rawCell(b.Max.Sub(common.Vec(0.001, 0.001)))
		if hi.X < 0 || hi.Y < 0 || lo.X >= ns.grid.Width() || lo.Y >= ns.grid.Height() {
			continue
		}
		lo, hi = ns.clampCell(lo), ns.clampCell(hi)
		ns.grid.SetRegion(lo.X, lo.Y, hi.X, hi.Y, false)
	}
}

func (ns *NavigationSystem) rawCell(p common.Vector2) pathfinding.Point {
	return pathfinding.Point{
		X: int(math.Floor(p.X / ns.cellSize)),
		Y: int(math.Floor(p.Y / ns.cellSize)),
	}
}

func (ns *NavigationSystem) clampCell(c pathfinding.Point) pathfinding.Point {
	c.X = max(0, min(c.X, ns.grid.Width()-1))
	c.Y = max(0, min(c.Y, ns.grid.Height()-1))
	return c
}

// cell maps a world position to a grid cell, clamped to the grid. Only
// agents and targets use it; obstacles outside the grid are dropped.
func (ns *NavigationSystem) cell(p common.Vector2) pathfinding.Point {
	return ns.clampCell(ns.rawCell(p))
}

func (ns *NavigationSystem) cellCenter(p pathfinding.Point) common.Vector2 {
	half := ns.cellSize * 0.5
	return common.Vec(float64(p.X)*ns.cellSize+half, float64(p.Y)*ns.cellSize+half)
}
