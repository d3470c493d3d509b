package component

import (
	"errors"
	"fmt"

	"github.com/milk9111/engine2d/common"
)

// MinMass is the smallest mass the physics system divides by. Bodies
// configured with zero or negative mass are treated as having MinMass.
const MinMass = 1e-6

var ErrInvalidMass = errors.New("physics: mass must be positive for non-static bodies")

// RigidBody stores per-entity dynamics state.
type RigidBody struct {
	Velocity        common.Vector2
	Acceleration    common.Vector2
	Mass            float64
	Drag            float64
	AngularVelocity float64
	AngularDrag     float64
	IsKinematic     bool
	IsStatic        bool
	UseGravity      bool
	GravityScale    float64
}

var RigidBodyComponent = NewComponent[RigidBody]()

func NewRigidBody() *RigidBody {
	return &RigidBody{
		Mass:         1,
		Drag:         0.01,
		AngularDrag:  0.01,
		UseGravity:   true,
		GravityScale: 1,
	}
}

func NewStaticBody() *RigidBody {
	rb := NewRigidBody()
	rb.IsStatic = true
	rb.UseGravity = false
	return rb
}

// Validate reports configuration the solver cannot honour.
func (rb *RigidBody) Validate() error {
	if rb == nil {
		return ErrNilComponent
	}
	if !rb.IsStatic && rb.Mass <= 0 {
		return fmt.Errorf("mass %v: %w", rb.Mass, ErrInvalidMass)
	}
	if rb.Drag < 0 || rb.Drag >= 1 {
		return fmt.Errorf("physics: drag %v outside [0,1)", rb.Drag)
	}
	if rb.AngularDrag < 0 || rb.AngularDrag >= 1 {
		return fmt.Errorf("physics: angular drag %v outside [0,1)", rb.AngularDrag)
	}
	return nil
}

// EffectiveMass clamps Mass to MinMass.
func (rb *RigidBody) EffectiveMass() float64 {
	if rb.Mass < MinMass {
		return MinMass
	}
	return rb.Mass
}

// Movable reports whether the solver may displace this body.
func (rb *RigidBody) Movable() bool {
	return rb != nil && !rb.IsStatic && !rb.IsKinematic
}

func (rb *RigidBody) AddForce(force common.Vector2) {
	if !rb.Movable() {
		return
	}
	rb.Acceleration = rb.Acceleration.Add(common.Div(force, rb.EffectiveMass()))
}

func (rb *RigidBody) AddImpulse(impulse common.Vector2) {
	if !rb.Movable() {
		return
	}
	rb.Velocity = rb.Velocity.Add(common.Div(impulse, rb.EffectiveMass()))
}

func (rb *RigidBody) AddTorque(torque float64) {
	if !rb.Movable() {
		return
	}
	rb.AngularVelocity += torque / rb.EffectiveMass()
}
