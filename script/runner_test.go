package script

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcore/component"
)

type fakeTarget struct {
	events      []component.InputEvent
	transitions []string
	starts      int
	cancels     int
	state       string
	grounded    bool
}

func (f *fakeTarget) Publish(ev component.InputEvent) { f.events = append(f.events, ev) }
func (f *fakeTarget) RequestTransition(name string) bool {
	f.transitions = append(f.transitions, name)
	return name != "bogus"
}
func (f *fakeTarget) StartJumping() bool  { f.starts++; return f.grounded }
func (f *fakeTarget) CancelJumping()      { f.cancels++ }
func (f *fakeTarget) StateName() string   { return f.state }
func (f *fakeTarget) Grounded() bool      { return f.grounded }
func (f *fakeTarget) Velocity() cp.Vector { return cp.Vector{X: 1, Y: 2} }
func (f *fakeTarget) Position() cp.Vector { return cp.Vector{X: 3, Y: 4} }

func compile(t *testing.T, src string) (*Runner, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	r, err := Compile("test", []byte(src), log.New(&logs, "", 0))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return r, &logs
}

func TestRunnerEngineCalls(t *testing.T) {
	r, logs := compile(t, `
step := func(engine, state, tick) {
	if tick == 0 {
		engine.move(1)
		engine.press_jump()
	}
	if tick == 1 {
		engine.release_jump()
		engine.move(0)
		state.ok = engine.transition("MoveState")
		state.bad = engine.transition("bogus")
	}
	if tick == 2 {
		state.jumped = engine.start_jumping()
		engine.cancel_jumping()
		v := engine.velocity()
		p := engine.position()
		engine.log("state", engine.state(), v[1], p[0])
		engine.finish()
	}
}
`)
	target := &fakeTarget{state: "idle", grounded: true}
	for i := 0; i < 5; i++ {
		if err := r.Step(target); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	if r.Tick() != 3 || !r.Done() {
		t.Fatalf("expected finish after 3 ticks, got tick=%d done=%v", r.Tick(), r.Done())
	}
	if len(target.events) != 4 {
		t.Fatalf("expected 4 input events, got %d", len(target.events))
	}
	if ev := target.events[0]; ev.Kind != component.InputMove || ev.Axis.X != 1 {
		t.Fatalf("expected move right first, got %+v", ev)
	}
	if ev := target.events[1]; ev.Kind != component.InputJump || ev.Phase != component.PhaseStarted {
		t.Fatalf("expected jump press, got %+v", ev)
	}
	if ev := target.events[3]; ev.Phase != component.PhaseCanceled {
		t.Fatalf("expected canceled move, got %+v", ev)
	}
	if len(target.transitions) != 2 || target.starts != 1 || target.cancels != 1 {
		t.Fatalf("unexpected calls: %+v", target)
	}
	if got := r.state.Value["ok"]; got == nil || got.IsFalsy() {
		t.Fatalf("expected transition result stored in state")
	}
	if got := r.state.Value["bad"]; got == nil || !got.IsFalsy() {
		t.Fatalf("expected failed transition result stored in state")
	}
	if !strings.Contains(logs.String(), "script: test tick=2: state idle 2 3") {
		t.Fatalf("unexpected log output %q", logs.String())
	}
}

func TestRunnerTicks(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want int
		ok   bool
	}{
		{"declared", "ticks := 90\nstep := func(e, s, t) {}", 90, true},
		{"missing", "step := func(e, s, t) {}", 0, false},
		{"zero", "ticks := 0\nstep := func(e, s, t) {}", 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, _ := compile(t, c.src)
			got, ok := r.Ticks()
			if ok != c.ok || (ok && got != c.want) {
				t.Fatalf("Ticks() = %d, %v; want %d, %v", got, ok, c.want, c.ok)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile("nostep", []byte("x := 1"), nil)
	if !errors.Is(err, ErrNoStep) {
		t.Fatalf("expected ErrNoStep, got %v", err)
	}

	_, err = Compile("broken", []byte("step := func(e, s, t) {"), nil)
	if err == nil || !strings.Contains(err.Error(), "script: compile broken") {
		t.Fatalf("expected compile error, got %v", err)
	}
}

func TestRuntimeErrorIsWrapped(t *testing.T) {
	r, _ := compile(t, `
step := func(engine, state, tick) {
	notfn := 1
	notfn()
}
`)
	err := r.Step(&fakeTarget{})
	if err == nil || !strings.Contains(err.Error(), "script: test tick 0") {
		t.Fatalf("expected wrapped runtime error, got %v", err)
	}
}

func TestEmbeddedScriptsCompile(t *testing.T) {
	for _, name := range []string{"walk_and_jump", "idle.tengo", "scripts/idle"} {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(name, log.New(&bytes.Buffer{}, "", 0)); err != nil {
				t.Fatalf("load %s: %v", name, err)
			}
		})
	}
}
