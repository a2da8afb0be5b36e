package fsm

import (
	"log"

	"github.com/milk9111/charcore/component"
)

// State is one live state owned by a Machine.
type State interface {
	Kind() Kind
	Name() string
	Enter(ctx *Context)
	Exit(ctx *Context)
	Update(ctx *Context, dt float64)
	FixedUpdate(ctx *Context, dt float64)
	LateUpdate(ctx *Context, dt float64)
	// OnTrigger runs before the transition table is consulted.
	OnTrigger(ctx *Context, t Trigger)
}

// Context gives states access to the character's collaborators.
type Context struct {
	Body     component.Body
	Ground   component.GroundQuery
	Movement *component.Movement
	Jump     *component.Jump
	Effect   component.EffectHook
	// Ambient is the host integrator's own gravity.
	Ambient float64
	Logger  *log.Logger
}

func (c *Context) logger() *log.Logger {
	if c == nil || c.Logger == nil {
		return log.Default()
	}
	return c.Logger
}

func (c *Context) grounded() bool {
	return c != nil && c.Ground != nil && c.Ground.OnGround()
}

// provision creates default components for any that are missing.
func (c *Context) provision(state Kind) {
	if c == nil {
		return
	}
	if c.Movement == nil {
		c.logger().Printf("fsm: warning: %s: movement component missing, using defaults", state)
		c.Movement = component.NewMovement(component.DefaultMovementConfig(), c.Body, c.Ground)
	}
	if c.Jump == nil {
		c.logger().Printf("fsm: warning: %s: jump component missing, using defaults", state)
		c.Jump = component.NewJump(component.DefaultJumpConfig(), c.Body, c.Ground, c.Ambient)
		c.Jump.SetEffect(c.Effect)
	}
}

// stepFrame runs the components' frame tick.
func (c *Context) stepFrame(dt float64) {
	if c == nil {
		return
	}
	c.Movement.Update(dt)
	c.Jump.Update(dt)
}

// stepFixed runs the components' physics tick with a single vertical owner.
func (c *Context) stepFixed(dt float64) {
	if c == nil || c.Body == nil {
		return
	}
	owner := component.OwnerFor(c.grounded(), c.Jump.Jumping(), c.Body.Velocity().Y)
	c.Movement.FixedUpdate(dt, owner)
	c.Jump.FixedUpdate(dt, owner)
	c.Movement.SyncVertical(c.Body.Velocity().Y)
}
