package component

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcore/common"
)

// pressThreshold is the squared axis magnitude above which a direction counts as held.
const pressThreshold = 0.01

// MovementConfig holds the horizontal tuning surface.
type MovementConfig struct {
	MaxSpeed           float64
	MaxAcceleration    float64
	MaxDeceleration    float64
	MaxTurnSpeed       float64
	MaxAirAcceleration float64
	MaxAirDeceleration float64
	MaxAirTurnSpeed    float64
	// Friction is subtracted from MaxSpeed when computing the target speed.
	Friction float64
	// Gravity feeds the vertical accumulator while Movement owns the vertical channel.
	Gravity float64
	// UseAcceleration ramps velocity with the rates on the ground too. When
	// false the agent snaps to the target speed on the ground and only ramps
	// in the air.
	UseAcceleration bool
}

// DefaultMovementConfig returns the stock tuning.
func DefaultMovementConfig() MovementConfig {
	return MovementConfig{
		MaxSpeed:           10,
		MaxAcceleration:    52,
		MaxDeceleration:    52,
		MaxTurnSpeed:       80,
		MaxAirAcceleration: 0,
		MaxAirDeceleration: 0,
		MaxAirTurnSpeed:    80,
		Gravity:            -9.81,
		UseAcceleration:    false,
	}
}

// Movement integrates horizontal velocity from a 2D input axis.
type Movement struct {
	cfg    MovementConfig
	body   Body
	ground GroundQuery

	input    cp.Vector
	desired  cp.Vector
	velocity cp.Vector
	vertical float64
	onGround bool
	pressing bool

	lastOwner VerticalOwner
}

func NewMovement(cfg MovementConfig, body Body, ground GroundQuery) *Movement {
	return &Movement{cfg: cfg, body: body, ground: ground}
}

func (m *Movement) Config() MovementConfig {
	if m == nil {
		return MovementConfig{}
	}
	return m.cfg
}

// SetConfig swaps the tuning. Current velocity is kept.
func (m *Movement) SetConfig(cfg MovementConfig) {
	if m == nil {
		return
	}
	m.cfg = cfg
	m.refreshDesired()
}

// SetInput records the latest movement axis.
func (m *Movement) SetInput(axis cp.Vector) {
	if m == nil {
		return
	}
	m.input = axis
	m.pressing = axis.LengthSq() > pressThreshold
	m.refreshDesired()
}

func (m *Movement) Input() cp.Vector {
	if m == nil {
		return cp.Vector{}
	}
	return m.input
}

// Pressing reports whether a direction is currently held.
func (m *Movement) Pressing() bool {
	return m != nil && m.pressing
}

func (m *Movement) OnGround() bool {
	return m != nil && m.onGround
}

// Velocity is the velocity written on the last fixed tick.
func (m *Movement) Velocity() cp.Vector {
	if m == nil {
		return cp.Vector{}
	}
	return m.velocity
}

// Desired is the target horizontal velocity for the current input.
func (m *Movement) Desired() cp.Vector {
	if m == nil {
		return cp.Vector{}
	}
	return m.desired
}

// Vertical returns the internal vertical accumulator.
func (m *Movement) Vertical() float64 {
	if m == nil {
		return 0
	}
	return m.vertical
}

// Update runs on the frame tick.
func (m *Movement) Update(dt float64) {
	if m == nil {
		return
	}
	m.refreshDesired()
}

// FixedUpdate runs on the physics tick. The vertical component is only
// written when owner is VerticalMovement.
func (m *Movement) FixedUpdate(dt float64, owner VerticalOwner) {
	if m == nil || m.body == nil {
		return
	}
	m.onGround = isGrounded(m.ground)
	m.refreshDesired()

	current := m.body.Velocity()
	vy := current.Y
	if owner == VerticalMovement {
		if m.lastOwner == VerticalJump {
			m.vertical = current.Y
		}
		if m.onGround {
			m.vertical = 0
		} else {
			m.vertical += m.cfg.Gravity * dt
		}
		vy = m.vertical
	} else {
		m.vertical = current.Y
	}
	m.lastOwner = owner

	m.velocity = cp.Vector{X: current.X, Y: vy}
	if m.cfg.UseAcceleration || !m.onGround {
		m.velocity.X = common.MoveTowards(m.velocity.X, m.desired.X, m.maxSpeedChange(dt))
	} else {
		m.velocity.X = m.desired.X
	}
	m.body.SetVelocity(m.velocity.X, m.velocity.Y)
}

// SyncVertical aligns the accumulator with the body after the tick's last
// vertical write (the fall clamp).
func (m *Movement) SyncVertical(vy float64) {
	if m == nil {
		return
	}
	m.vertical = vy
	m.velocity.Y = vy
}

func (m *Movement) refreshDesired() {
	speed := math.Max(m.cfg.MaxSpeed-m.cfg.Friction, 0)
	m.desired = cp.Vector{X: m.input.X * speed}
}

// maxSpeedChange picks deceleration, acceleration or turn rate from the
// ground or air set and scales it by dt.
func (m *Movement) maxSpeedChange(dt float64) float64 {
	accel, decel, turn := m.cfg.MaxAcceleration, m.cfg.MaxDeceleration, m.cfg.MaxTurnSpeed
	if !m.onGround {
		accel, decel, turn = m.cfg.MaxAirAcceleration, m.cfg.MaxAirDeceleration, m.cfg.MaxAirTurnSpeed
	}
	if !m.pressing {
		return decel * dt
	}
	// Turn rate only when already moving against the input. From rest the
	// acceleration rate applies in either direction.
	if m.velocity.X != 0 && common.Sign(m.input.X) != common.Sign(m.velocity.X) {
		return turn * dt
	}
	return accel * dt
}
