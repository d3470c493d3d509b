package component

import "github.com/milk9111/engine2d/common"

// Input stores the control intent derived from this frame's input snapshot.
type Input struct {
	Move   common.Vector2
	Action bool
}

var InputComponent = NewComponent[Input]()

// Controller marks an entity as driven by player input.
type Controller struct {
	Speed     float64
	JumpSpeed float64
}

var ControllerComponent = NewComponent[Controller]()
