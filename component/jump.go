package component

import (
	"math"

	"github.com/milk9111/charcore/common"
)

// riseCeiling caps upward velocity in the per-tick clamp.
const riseCeiling = 100

// JumpConfig holds the jump arc and timing tunables.
type JumpConfig struct {
	JumpHeight   float64
	TimeToApex   float64
	UpwardMult   float64
	DownwardMult float64
	JumpCutOff   float64
	MaxAirJumps  int
	VariableJump bool
	SpeedLimit   float64
	CoyoteTime   float64
	JumpBuffer   float64
}

func DefaultJumpConfig() JumpConfig {
	return JumpConfig{
		JumpHeight:   7.3,
		TimeToApex:   0.4,
		UpwardMult:   1,
		DownwardMult: 6.17,
		JumpCutOff:   3,
		MaxAirJumps:  0,
		VariableJump: true,
		SpeedLimit:   20,
		CoyoteTime:   0.15,
		JumpBuffer:   0.15,
	}
}

// DeriveArc returns the gravity and launch speed that reach height at
// timeToApex seconds.
func DeriveArc(height, timeToApex float64) (gravity, speed float64) {
	if timeToApex <= 0 {
		return 0, 0
	}
	gravity = -2 * height / (timeToApex * timeToApex)
	speed = math.Abs(gravity) * timeToApex
	return gravity, speed
}

// Jump shapes the vertical velocity of a body: launch, variable height,
// fall multiplier, coyote time, jump buffer and a single air jump.
type Jump struct {
	cfg     JumpConfig
	body    Body
	ground  GroundQuery
	effect  EffectHook
	ambient float64

	gravity   float64
	jumpSpeed float64

	onGround     bool
	desiredJump  bool
	pressingJump bool
	jumping      bool
	canJumpAgain bool

	coyoteLeft float64
	bufferLeft float64
	multiplier float64
}

// NewJump derives the arc from cfg. ambient is the host's own gravity, which
// the shaping force compensates for.
func NewJump(cfg JumpConfig, body Body, ground GroundQuery, ambient float64) *Jump {
	j := &Jump{body: body, ground: ground, ambient: ambient, multiplier: 1}
	j.SetConfig(cfg)
	return j
}

// SetConfig swaps the tunables and re-derives gravity and jump speed.
func (j *Jump) SetConfig(cfg JumpConfig) {
	if j == nil {
		return
	}
	j.cfg = cfg
	j.gravity, j.jumpSpeed = DeriveArc(cfg.JumpHeight, cfg.TimeToApex)
}

func (j *Jump) Config() JumpConfig {
	if j == nil {
		return JumpConfig{}
	}
	return j.cfg
}

// SetEffect installs the cosmetic hook fired on every successful launch.
func (j *Jump) SetEffect(fn EffectHook) {
	if j == nil {
		return
	}
	j.effect = fn
}

func (j *Jump) Gravity() float64 {
	if j == nil {
		return 0
	}
	return j.gravity
}

func (j *Jump) JumpSpeed() float64 {
	if j == nil {
		return 0
	}
	return j.jumpSpeed
}

func (j *Jump) Jumping() bool      { return j != nil && j.jumping }
func (j *Jump) CanJumpAgain() bool { return j != nil && j.canJumpAgain }
func (j *Jump) Pressing() bool     { return j != nil && j.pressingJump }
func (j *Jump) Buffered() bool     { return j != nil && j.desiredJump }

// GravityMultiplier is the multiplier chosen on the last fixed tick.
func (j *Jump) GravityMultiplier() float64 {
	if j == nil {
		return 0
	}
	return j.multiplier
}

// Update runs on the frame tick: ground sample, jump buffer and coyote time.
func (j *Jump) Update(dt float64) {
	if j == nil {
		return
	}
	j.onGround = isGrounded(j.ground)

	if j.desiredJump {
		j.bufferLeft -= dt
		if j.bufferLeft <= 0 {
			j.desiredJump = false
			j.bufferLeft = 0
		}
	}

	switch {
	case j.onGround && !j.jumping:
		j.coyoteLeft = j.cfg.CoyoteTime
		j.canJumpAgain = false
	case !j.onGround && !j.jumping:
		if j.coyoteLeft > 0 {
			j.coyoteLeft -= dt
		}
		j.canJumpAgain = j.coyoteLeft > 0
	}
}

// FixedUpdate runs on the physics tick. Landing is detected every tick; the
// shaping force is only applied while Jump owns the vertical channel. The
// fall clamp always applies.
func (j *Jump) FixedUpdate(dt float64, owner VerticalOwner) {
	if j == nil || j.body == nil {
		return
	}
	grounded := isGrounded(j.ground)
	v := j.body.Velocity()

	if grounded && v.Y <= VerticalEpsilon && j.jumping {
		j.Land()
	}

	if owner == VerticalJump {
		desired := j.DesiredGravity(v.Y)
		j.body.AddAcceleration(0, (desired-j.ambient)*j.body.Mass())
	}

	j.ClampFall()
}

// ClampFall floors the body's vertical velocity at -SpeedLimit. Hosts call it
// again after their integrator step so sampled velocities respect the limit.
func (j *Jump) ClampFall() {
	if j == nil || j.body == nil {
		return
	}
	v := j.body.Velocity()
	clamped := common.Clamp(v.Y, -j.cfg.SpeedLimit, riseCeiling)
	if clamped != v.Y {
		j.body.SetVelocity(v.X, clamped)
	}
}

// DesiredGravity picks the gravity for a given vertical velocity and records
// the multiplier used.
func (j *Jump) DesiredGravity(vy float64) float64 {
	if j == nil {
		return 0
	}
	switch {
	case vy > VerticalEpsilon:
		if j.pressingJump && j.jumping && j.cfg.VariableJump {
			j.multiplier = j.cfg.UpwardMult
		} else {
			j.multiplier = j.cfg.JumpCutOff
		}
	case vy < -VerticalEpsilon:
		j.multiplier = j.cfg.DownwardMult
	default:
		j.multiplier = 1
	}
	return j.gravity * j.multiplier
}

// StartJumping launches when grounded or holding the air-jump credit.
// Otherwise the press is buffered for JumpBuffer seconds.
func (j *Jump) StartJumping() bool {
	if j == nil {
		return false
	}
	j.desiredJump = true
	j.pressingJump = true
	if j.doJump() {
		return true
	}
	j.bufferLeft = j.cfg.JumpBuffer
	if j.bufferLeft <= 0 {
		j.desiredJump = false
	}
	return false
}

// CancelJumping marks the jump button as released.
func (j *Jump) CancelJumping() {
	if j == nil {
		return
	}
	j.pressingJump = false
}

// ConsumeBufferedJump launches a jump pressed shortly before touching down.
func (j *Jump) ConsumeBufferedJump() bool {
	if j == nil || !j.desiredJump || !isGrounded(j.ground) {
		return false
	}
	return j.doJump()
}

// Land clears the in-flight jump and the air-jump credit.
func (j *Jump) Land() {
	if j == nil {
		return
	}
	j.jumping = false
	j.canJumpAgain = false
}

func (j *Jump) doJump() bool {
	if j.body == nil {
		return false
	}
	v := j.body.Velocity()
	grounded := isGrounded(j.ground) && (!j.jumping || v.Y <= VerticalEpsilon)
	if !grounded && !j.canJumpAgain {
		return false
	}

	j.desiredJump = false
	j.bufferLeft = 0
	if grounded {
		j.canJumpAgain = j.cfg.MaxAirJumps > 0
	} else {
		j.canJumpAgain = false
	}
	j.jumping = true
	j.coyoteLeft = 0
	j.body.SetVelocity(v.X, j.jumpSpeed)
	if j.effect != nil {
		j.effect()
	}
	return true
}
