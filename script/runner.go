package script

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcore/component"
	"github.com/milk9111/charcore/prefabs"
)

// ErrNoStep is returned for scripts that do not define a step function.
var ErrNoStep = errors.New("script does not define step")

// Target is the character a script drives.
type Target interface {
	Publish(ev component.InputEvent)
	RequestTransition(name string) bool
	StartJumping() bool
	CancelJumping()
	StateName() string
	Grounded() bool
	Velocity() cp.Vector
	Position() cp.Vector
}

const stepDispatchScript = `
if __run {
	step(__engine, __state, __tick)
}
`

// Runner calls a script's step(engine, state, tick) once per fixed tick.
type Runner struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	tick     int
	done     bool
	logger   *log.Logger
}

// Load compiles an embedded or on-disk script by name.
func Load(name string, logger *log.Logger) (*Runner, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return Compile(name, src, logger)
}

// Compile builds a runner from source.
func Compile(name string, src []byte, logger *log.Logger) (*Runner, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := checkStep(name, src); err != nil {
		return nil, err
	}

	full := string(src) + "\n" + stepDispatchScript
	s := tengo.NewScript([]byte(full))
	_ = s.Add("__run", false)
	_ = s.Add("__engine", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	_ = s.Add("__tick", 0)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}

	r := &Runner{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
		logger:   logger,
	}

	// run top-level declarations once so globals like ticks are readable
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("script: init %s: %w", name, err)
	}
	return r, nil
}

// checkStep compiles src without the dispatcher, which would otherwise fail
// on an unresolved step, and confirms step is defined.
func checkStep(name string, src []byte) error {
	s := tengo.NewScript(src)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	compiled, err := s.Compile()
	if err != nil {
		return fmt.Errorf("script: compile %s: %w", name, err)
	}
	if err := compiled.Run(); err != nil {
		return fmt.Errorf("script: init %s: %w", name, err)
	}
	if !compiled.IsDefined("step") {
		return fmt.Errorf("script: %s: %w", name, ErrNoStep)
	}
	return nil
}

func (r *Runner) Name() string {
	if r == nil {
		return ""
	}
	return r.name
}

// Tick is the number of steps run so far.
func (r *Runner) Tick() int {
	if r == nil {
		return 0
	}
	return r.tick
}

// Done reports whether the script called finish().
func (r *Runner) Done() bool {
	return r != nil && r.done
}

// Ticks returns the script's optional `ticks` global.
func (r *Runner) Ticks() (int, bool) {
	if r == nil || !r.compiled.IsDefined("ticks") {
		return 0, false
	}
	n, ok := tengo.ToInt(r.compiled.Get("ticks").Object())
	return n, ok && n > 0
}

// Step runs step(engine, state, tick) against t and advances the tick.
func (r *Runner) Step(t Target) error {
	if r == nil || r.compiled == nil {
		return fmt.Errorf("script: nil runner")
	}
	if r.done {
		return nil
	}
	if err := r.compiled.Set("__run", true); err != nil {
		return err
	}
	if err := r.compiled.Set("__engine", r.engine(t)); err != nil {
		return err
	}
	if err := r.compiled.Set("__state", r.state); err != nil {
		return err
	}
	if err := r.compiled.Set("__tick", r.tick); err != nil {
		return err
	}
	if err := r.compiled.Run(); err != nil {
		return fmt.Errorf("script: %s tick %d: %w", r.name, r.tick, err)
	}
	r.tick++
	return nil
}

func (r *Runner) engine(t Target) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}
	fn := func(name string, f tengo.CallableFunc) {
		values[name] = &tengo.UserFunction{Name: name, Value: f}
	}

	fn("move", func(args ...tengo.Object) (tengo.Object, error) {
		if t == nil {
			return tengo.FalseValue, nil
		}
		var axis cp.Vector
		if len(args) > 0 {
			axis.X, _ = tengo.ToFloat64(args[0])
		}
		if len(args) > 1 {
			axis.Y, _ = tengo.ToFloat64(args[1])
		}
		t.Publish(component.MoveEvent(axis))
		return tengo.TrueValue, nil
	})

	fn("press_jump", func(args ...tengo.Object) (tengo.Object, error) {
		if t == nil {
			return tengo.FalseValue, nil
		}
		t.Publish(component.JumpPressEvent())
		return tengo.TrueValue, nil
	})

	fn("release_jump", func(args ...tengo.Object) (tengo.Object, error) {
		if t == nil {
			return tengo.FalseValue, nil
		}
		t.Publish(component.JumpReleaseEvent())
		return tengo.TrueValue, nil
	})

	fn("transition", func(args ...tengo.Object) (tengo.Object, error) {
		if t == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		return boolObject(t.RequestTransition(name)), nil
	})

	fn("start_jumping", func(args ...tengo.Object) (tengo.Object, error) {
		if t == nil {
			return tengo.FalseValue, nil
		}
		return boolObject(t.StartJumping()), nil
	})

	fn("cancel_jumping", func(args ...tengo.Object) (tengo.Object, error) {
		if t == nil {
			return tengo.FalseValue, nil
		}
		t.CancelJumping()
		return tengo.TrueValue, nil
	})

	fn("state", func(args ...tengo.Object) (tengo.Object, error) {
		if t == nil {
			return &tengo.String{Value: ""}, nil
		}
		return &tengo.String{Value: t.StateName()}, nil
	})

	fn("grounded", func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(t != nil && t.Grounded()), nil
	})

	fn("velocity", func(args ...tengo.Object) (tengo.Object, error) {
		var v cp.Vector
		if t != nil {
			v = t.Velocity()
		}
		return vectorObject(v), nil
	})

	fn("position", func(args ...tengo.Object) (tengo.Object, error) {
		var p cp.Vector
		if t != nil {
			p = t.Position()
		}
		return vectorObject(p), nil
	})

	fn("finish", func(args ...tengo.Object) (tengo.Object, error) {
		r.done = true
		return tengo.TrueValue, nil
	})

	fn("log", func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		r.logger.Printf("script: %s tick=%d: %s", r.name, r.tick, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	})

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func vectorObject(v cp.Vector) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: v.X}, &tengo.Float{Value: v.Y}}}
}
