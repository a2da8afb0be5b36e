package character

import (
	"fmt"
	"log"
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcore/component"
	"github.com/milk9111/charcore/config"
	"github.com/milk9111/charcore/fsm"
	"github.com/milk9111/charcore/juice"
	"github.com/milk9111/charcore/physics"
	"github.com/milk9111/charcore/prefabs"
)

// Options tune how a character is assembled.
type Options struct {
	// GroundProbe selects config.ProbeCP or config.ProbeResolv.
	GroundProbe string
	Logger      *log.Logger
}

// Character wires one body, its ground query, the movement and jump
// components and the state machine into a single controllable agent.
type Character struct {
	spec *prefabs.CharacterSpec

	World    *physics.World
	Body     *physics.Body
	Ground   component.GroundQuery
	Movement *component.Movement
	Jump     *component.Jump
	Machine  *fsm.Machine
	Bus      *component.InputBus
	Squash   *juice.Squash

	logger *log.Logger
}

// New builds a character and its world from spec. The machine is not
// started.
func New(spec *prefabs.CharacterSpec, opts Options) (*Character, error) {
	if spec == nil {
		return nil, fmt.Errorf("character: nil spec")
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("character: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	world := physics.NewWorld(spec.World)
	// spawn is the feet position.
	center := cp.Vector{X: spec.World.Spawn.X, Y: spec.World.Spawn.Y + spec.Body.Height/2}
	body := world.AddCharacter(spec.Body, center)

	var ground component.GroundQuery
	switch opts.GroundProbe {
	case "", config.ProbeCP:
		ground = physics.NewProbe(world, body, spec.Body.ProbeLength, spec.Body.ProbeInset)
	case config.ProbeResolv:
		ground = physics.NewResolvProbe(world, body, spec.Body.ProbeLength, spec.Body.ProbeInset)
	default:
		return nil, fmt.Errorf("character: unknown ground probe %q", opts.GroundProbe)
	}

	c := &Character{
		spec:     spec,
		World:    world,
		Body:     body,
		Ground:   ground,
		Movement: component.NewMovement(spec.Movement.Config(), body, ground),
		Jump:     component.NewJump(spec.Jump.Config(), body, ground, world.Gravity()),
		Bus:      &component.InputBus{},
		Squash:   juice.NewSquash(1.25, 0.08, 0.18),
		logger:   logger,
	}
	c.Jump.SetEffect(c.Squash.Trigger)

	ctx := &fsm.Context{
		Body:     body,
		Ground:   ground,
		Movement: c.Movement,
		Jump:     c.Jump,
		Effect:   c.Squash.Trigger,
		Ambient:  world.Gravity(),
		Logger:   logger,
	}
	c.Machine = fsm.NewMachine(spec.Prototypes(), ctx, c.Bus)
	return c, nil
}

// Load reads a character prefab and builds it.
func Load(name string, opts Options) (*Character, error) {
	spec, err := prefabs.LoadCharacterSpec(name)
	if err != nil {
		return nil, err
	}
	return New(spec, opts)
}

func (c *Character) Spec() *prefabs.CharacterSpec {
	if c == nil {
		return nil
	}
	return c.spec
}

// FixedDT is the prefab's physics step.
func (c *Character) FixedDT() float64 {
	if c == nil || c.spec == nil {
		return 0
	}
	return c.spec.World.FixedDT
}

func (c *Character) Start() {
	if c == nil {
		return
	}
	c.Machine.Start()
}

func (c *Character) Stop() {
	if c == nil {
		return
	}
	c.Machine.Stop()
}

// Update is the frame tick.
func (c *Character) Update(dt float64) {
	if c == nil {
		return
	}
	c.Machine.Update(dt)
	c.Squash.Update(dt)
}

// FixedUpdate runs the state machine's physics tick, steps the world and
// applies the fall clamp to the integrated velocity.
func (c *Character) FixedUpdate(dt float64) {
	if c == nil {
		return
	}
	c.Machine.FixedUpdate(dt)
	c.World.Step(dt)
	c.Jump.ClampFall()
}

func (c *Character) LateUpdate(dt float64) {
	if c == nil {
		return
	}
	c.Machine.LateUpdate(dt)
}

// Step runs one frame, one fixed and one late tick of dt.
func (c *Character) Step(dt float64) {
	c.Update(dt)
	c.FixedUpdate(dt)
	c.LateUpdate(dt)
}

// Reload pushes new tunables into the live components. Body, world and state
// list changes need a restart and are reported, not applied.
func (c *Character) Reload(spec *prefabs.CharacterSpec) error {
	if c == nil {
		return fmt.Errorf("character: nil character")
	}
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("character: reload: %w", err)
	}
	c.Movement.SetConfig(spec.Movement.Config())
	c.Jump.SetConfig(spec.Jump.Config())

	if spec.Body != c.spec.Body {
		c.logger.Printf("character: warning: body changes apply on restart")
	}
	if !slices.Equal(spec.States, c.spec.States) {
		c.logger.Printf("character: warning: state list changes apply on restart")
	}
	c.spec.Movement = spec.Movement
	c.spec.Jump = spec.Jump
	c.logger.Printf("character: reloaded %s (gravity=%.2f jump_speed=%.2f)", spec.Name, c.Jump.Gravity(), c.Jump.JumpSpeed())
	return nil
}

func (c *Character) Publish(ev component.InputEvent) {
	if c == nil {
		return
	}
	c.Bus.Publish(ev)
}

func (c *Character) RequestTransition(name string) bool {
	if c == nil {
		return false
	}
	return c.Machine.RequestTransition(name)
}

func (c *Character) StartJumping() bool {
	if c == nil {
		return false
	}
	return c.Jump.StartJumping()
}

func (c *Character) CancelJumping() {
	if c == nil {
		return
	}
	c.Jump.CancelJumping()
}

// StateName is the active state's name, or "" when none is active.
func (c *Character) StateName() string {
	if c == nil {
		return ""
	}
	if s := c.Machine.Active(); s != nil {
		return s.Name()
	}
	return ""
}

func (c *Character) Grounded() bool {
	return c != nil && c.Ground != nil && c.Ground.OnGround()
}

func (c *Character) Velocity() cp.Vector {
	if c == nil {
		return cp.Vector{}
	}
	return c.Body.Velocity()
}

func (c *Character) Position() cp.Vector {
	if c == nil {
		return cp.Vector{}
	}
	return c.Body.Position()
}
