package component

import "github.com/jakecoffman/cp"

// Body is the slice of a rigid body the controller needs. The host's
// integrator owns the body; the controller only reads and writes velocity
// and adds continuous acceleration for the next step.
type Body interface {
	Velocity() cp.Vector
	SetVelocity(x, y float64)
	// AddAcceleration applies a continuous, mass-independent acceleration
	// for the next integration step.
	AddAcceleration(x, y float64)
	Mass() float64
}

// GroundQuery reports whether the agent is grounded this tick.
type GroundQuery interface {
	OnGround() bool
}

// GroundFunc adapts a plain function to GroundQuery.
type GroundFunc func() bool

func (f GroundFunc) OnGround() bool {
	if f == nil {
		return false
	}
	return f()
}

// EffectHook is invoked with no arguments when a jump starts.
type EffectHook func()

func isGrounded(g GroundQuery) bool {
	return g != nil && g.OnGround()
}
