package prefabs

import (
	"errors"
	"fmt"

	"github.com/milk9111/charcore/component"
	"github.com/milk9111/charcore/fsm"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSpec wraps every validation failure.
var ErrInvalidSpec = errors.New("invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type CharacterSpec struct {
	Name     string       `yaml:"name"`
	Movement MovementSpec `yaml:"movement"`
	Jump     JumpSpec     `yaml:"jump"`
	Body     BodySpec     `yaml:"body"`
	World    WorldSpec    `yaml:"world"`
	States   []string     `yaml:"states"`
}

type MovementSpec struct {
	MaxSpeed           float64 `yaml:"max_speed"`
	MaxAcceleration    float64 `yaml:"max_acceleration"`
	MaxDeceleration    float64 `yaml:"max_deceleration"`
	MaxTurnSpeed       float64 `yaml:"max_turn_speed"`
	MaxAirAcceleration float64 `yaml:"max_air_acceleration"`
	MaxAirDeceleration float64 `yaml:"max_air_deceleration"`
	MaxAirTurnSpeed    float64 `yaml:"max_air_turn_speed"`
	Friction           float64 `yaml:"friction"`
	Gravity            float64 `yaml:"gravity"`
	UseAcceleration    bool    `yaml:"use_acceleration"`
}

type JumpSpec struct {
	JumpHeight         float64 `yaml:"jump_height"`
	TimeToJumpApex     float64 `yaml:"time_to_jump_apex"`
	UpwardMultiplier   float64 `yaml:"upward_multiplier"`
	DownwardMultiplier float64 `yaml:"downward_multiplier"`
	JumpCutOff         float64 `yaml:"jump_cutoff"`
	MaxAirJumps        int     `yaml:"max_air_jumps"`
	VariableJumpHeight bool    `yaml:"variable_jump_height"`
	SpeedLimit         float64 `yaml:"speed_limit"`
	CoyoteTime         float64 `yaml:"coyote_time"`
	JumpBuffer         float64 `yaml:"jump_buffer"`
}

// BodySpec sizes the character's rigid body in meters.
type BodySpec struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Mass        float64 `yaml:"mass"`
	ProbeLength float64 `yaml:"probe_length"`
	ProbeInset  float64 `yaml:"probe_inset"`
}

type WorldSpec struct {
	Gravity        float64        `yaml:"gravity"`
	FixedDT        float64        `yaml:"fixed_dt"`
	PixelsPerMeter float64        `yaml:"pixels_per_meter"`
	Spawn          PointSpec      `yaml:"spawn"`
	Platforms      []PlatformSpec `yaml:"platforms"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// PlatformSpec is an axis-aligned static box. X/Y is the bottom-left corner.
type PlatformSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// LoadCharacterSpec loads and validates a character prefab.
func LoadCharacterSpec(name string) (*CharacterSpec, error) {
	spec, err := LoadSpec[CharacterSpec](name)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return &spec, nil
}

// Validate reports every violated constraint at once.
func (s *CharacterSpec) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil spec", ErrInvalidSpec)
	}
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidSpec}, args...)...))
	}

	m := s.Movement
	if m.MaxSpeed < 0 {
		bad("movement.max_speed must be >= 0, got %v", m.MaxSpeed)
	}
	rates := []struct {
		name string
		v    float64
	}{
		{"max_acceleration", m.MaxAcceleration},
		{"max_deceleration", m.MaxDeceleration},
		{"max_turn_speed", m.MaxTurnSpeed},
		{"max_air_acceleration", m.MaxAirAcceleration},
		{"max_air_deceleration", m.MaxAirDeceleration},
		{"max_air_turn_speed", m.MaxAirTurnSpeed},
		{"friction", m.Friction},
	}
	for _, r := range rates {
		if r.v < 0 {
			bad("movement.%s must be >= 0, got %v", r.name, r.v)
		}
	}

	j := s.Jump
	if j.JumpHeight <= 0 {
		bad("jump.jump_height must be > 0, got %v", j.JumpHeight)
	}
	if j.TimeToJumpApex <= 0 {
		bad("jump.time_to_jump_apex must be > 0, got %v", j.TimeToJumpApex)
	}
	if j.UpwardMultiplier < 0 || j.DownwardMultiplier < 0 || j.JumpCutOff < 0 {
		bad("jump multipliers must be >= 0")
	}
	if j.MaxAirJumps < 0 || j.MaxAirJumps > 1 {
		bad("jump.max_air_jumps must be 0 or 1, got %d", j.MaxAirJumps)
	}
	if j.SpeedLimit <= 0 {
		bad("jump.speed_limit must be > 0, got %v", j.SpeedLimit)
	}
	if j.CoyoteTime < 0 || j.CoyoteTime > 0.3 {
		bad("jump.coyote_time must be in [0, 0.3], got %v", j.CoyoteTime)
	}
	if j.JumpBuffer < 0 || j.JumpBuffer > 0.3 {
		bad("jump.jump_buffer must be in [0, 0.3], got %v", j.JumpBuffer)
	}

	if s.Body.Width <= 0 || s.Body.Height <= 0 {
		bad("body size must be positive, got %vx%v", s.Body.Width, s.Body.Height)
	}
	if s.Body.Mass <= 0 {
		bad("body.mass must be > 0, got %v", s.Body.Mass)
	}
	if s.World.FixedDT <= 0 {
		bad("world.fixed_dt must be > 0, got %v", s.World.FixedDT)
	}
	for i, p := range s.World.Platforms {
		if p.W <= 0 || p.H <= 0 {
			bad("world.platforms[%d] size must be positive", i)
		}
	}

	if len(s.States) == 0 {
		bad("states must list at least one state")
	}
	for i, name := range s.States {
		if _, ok := fsm.ParseKind(name); !ok {
			bad("states[%d]: unknown state %q", i, name)
		}
	}

	return errors.Join(errs...)
}

func (m MovementSpec) Config() component.MovementConfig {
	return component.MovementConfig{
		MaxSpeed:           m.MaxSpeed,
		MaxAcceleration:    m.MaxAcceleration,
		MaxDeceleration:    m.MaxDeceleration,
		MaxTurnSpeed:       m.MaxTurnSpeed,
		MaxAirAcceleration: m.MaxAirAcceleration,
		MaxAirDeceleration: m.MaxAirDeceleration,
		MaxAirTurnSpeed:    m.MaxAirTurnSpeed,
		Friction:           m.Friction,
		Gravity:            m.Gravity,
		UseAcceleration:    m.UseAcceleration,
	}
}

func (j JumpSpec) Config() component.JumpConfig {
	return component.JumpConfig{
		JumpHeight:   j.JumpHeight,
		TimeToApex:   j.TimeToJumpApex,
		UpwardMult:   j.UpwardMultiplier,
		DownwardMult: j.DownwardMultiplier,
		JumpCutOff:   j.JumpCutOff,
		MaxAirJumps:  j.MaxAirJumps,
		VariableJump: j.VariableJumpHeight,
		SpeedLimit:   j.SpeedLimit,
		CoyoteTime:   j.CoyoteTime,
		JumpBuffer:   j.JumpBuffer,
	}
}

// Prototypes converts the state list. Unknown names are skipped; Validate
// reports them.
func (s *CharacterSpec) Prototypes() []fsm.Prototype {
	if s == nil {
		return nil
	}
	out := make([]fsm.Prototype, 0, len(s.States))
	for _, name := range s.States {
		if k, ok := fsm.ParseKind(name); ok {
			out = append(out, fsm.Prototype{Kind: k})
		}
	}
	return out
}
