package system

import (
	"github.com/milk9111/engine2d/common"
	"github.com/milk9111/engine2d/ecs"
	"github.com/milk9111/engine2d/ecs/component"
	"github.com/milk9111/engine2d/input"
)

// PlayerTag marks entities driven by ControlSystem.
const PlayerTag = "player"

// ControlSystem polls the input source once per tick and turns the snapshot
// into velocity for entities tagged PlayerTag that carry a Controller and a
// RigidBody. Bodies with gravity only steer horizontally and jump; others
// move freely on both axes.
type ControlSystem struct {
	source input.Source
	poller *input.Poller
}

func NewControlSystem(src input.Source) *ControlSystem {
	return &ControlSystem{
		source: src,
		poller: input.NewPoller(input.ActionLeft, input.ActionRight, input.ActionUp, input.ActionDown, input.ActionJump),
	}
}

// Snapshot returns the state captured on the last tick.
func (s *ControlSystem) Snapshot() input.Snapshot {
	return s.poller.Last()
}

func (s *ControlSystem) Update(dt float64, entities []*ecs.Entity) {
	if s == nil {
		return
	}
	snap := s.poller.Poll(s.source)
	move := common.Vec(
		snap.Axis(input.ActionLeft, input.ActionRight),
		snap.Axis(input.ActionUp, input.ActionDown),
	)
	jump := snap.JustPressed(input.ActionJump)

	for _, e := range ecs.Filter(entities, component.ControllerComponent.ID(), component.RigidBodyComponent.ID()) {
		if e.Tag != PlayerTag {
			continue
		}
		ctrl, _ := ecs.Get(e, component.ControllerComponent.Kind())
		rb, _ := ecs.Get(e, component.RigidBodyComponent.Kind())

		if in, ok := ecs.Get(e, component.InputComponent.Kind()); ok {
			in.Move = move
			in.Action = jump
		}

		if rb.IsStatic {
			continue
		}
		if rb.UseGravity {
			rb.Velocity.X = move.X * ctrl.Speed
			if jump && ctrl.JumpSpeed > 0 {
				rb.Velocity.Y = -ctrl.JumpSpeed
			}
			continue
		}
		rb.Velocity = common.Normalized(move).Mult(ctrl.Speed)
	}
}
