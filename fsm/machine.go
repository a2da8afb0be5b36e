package fsm

import (
	"log"

	"github.com/milk9111/charcore/component"
)

// TickPhase selects which state callback a Tick forwards to.
type TickPhase uint8

const (
	TickUpdate TickPhase = iota
	TickFixedUpdate
	TickLateUpdate
)

func (p TickPhase) String() string {
	switch p {
	case TickUpdate:
		return "update"
	case TickFixedUpdate:
		return "fixed_update"
	case TickLateUpdate:
		return "late_update"
	default:
		return "unknown"
	}
}

// Prototype is one entry of the authored state list. The first entry is the
// default state.
type Prototype struct {
	Kind Kind
}

// Observer is notified of every state change, exit before enter.
type Observer interface {
	OnExit(k Kind)
	OnEnter(k Kind)
}

// arena holds one live state per kind for a single machine.
type arena struct {
	idle idleState
	move moveState
	jump jumpState
}

// Machine drives a character through its states. It is not safe for
// concurrent use; all calls happen on the simulation thread.
type Machine struct {
	prototypes []Prototype
	ctx        *Context
	bus        *component.InputBus
	subID      int
	observer   Observer

	arena  arena
	live   [kindCount]State
	active State
}

// NewMachine builds a machine over ctx. prototypes is copied. bus may be nil
// when input is fed through Dispatch directly.
func NewMachine(prototypes []Prototype, ctx *Context, bus *component.InputBus) *Machine {
	if ctx == nil {
		ctx = &Context{}
	}
	return &Machine{
		prototypes: append([]Prototype(nil), prototypes...),
		ctx:        ctx,
		bus:        bus,
	}
}

// DefaultPrototypes is the stock state list with Idle as default.
func DefaultPrototypes() []Prototype {
	return []Prototype{{Kind: KindIdle}, {Kind: KindMove}, {Kind: KindJump}}
}

func (m *Machine) logger() *log.Logger {
	return m.ctx.logger()
}

func (m *Machine) SetObserver(o Observer) {
	if m == nil {
		return
	}
	m.observer = o
}

// Context returns the machine's collaborators.
func (m *Machine) Context() *Context {
	if m == nil {
		return nil
	}
	return m.ctx
}

// Active returns the active state or nil.
func (m *Machine) Active() State {
	if m == nil {
		return nil
	}
	return m.active
}

// ActiveKind reports the active kind. ok is false when no state is active.
func (m *Machine) ActiveKind() (k Kind, ok bool) {
	if m == nil || m.active == nil {
		return 0, false
	}
	return m.active.Kind(), true
}

// State returns the live state for k, or nil when k was not in the
// prototype list.
func (m *Machine) State(k Kind) State {
	if m == nil || !k.Valid() {
		return nil
	}
	return m.live[k]
}

// Start instantiates one live state per prototype and enters the default.
// With no prototypes the machine logs an error and stays inactive.
func (m *Machine) Start() {
	if m == nil {
		return
	}
	if m.active != nil {
		m.logger().Printf("fsm: warning: machine already started")
		return
	}
	if len(m.prototypes) == 0 {
		m.logger().Printf("fsm: error: no state prototypes, machine has no active state")
		return
	}

	m.live = [kindCount]State{}
	for i, p := range m.prototypes {
		if !p.Kind.Valid() {
			m.logger().Printf("fsm: error: prototype %d has unknown kind %d", i, p.Kind)
			continue
		}
		if m.live[p.Kind] != nil {
			m.logger().Printf("fsm: warning: duplicate prototype %s at index %d ignored", p.Kind, i)
			continue
		}
		m.live[p.Kind] = m.instantiate(p.Kind)
	}

	def := m.prototypes[0].Kind
	if !def.Valid() || m.live[def] == nil {
		m.logger().Printf("fsm: error: default state %s unavailable, machine has no active state", def)
		m.live = [kindCount]State{}
		return
	}

	if m.bus != nil && m.subID == 0 {
		m.subID = m.bus.Subscribe(m.Dispatch)
	}
	m.enter(m.live[def])
}

// Stop exits the active state and drops the input subscription.
func (m *Machine) Stop() {
	if m == nil {
		return
	}
	if m.subID != 0 {
		m.bus.Unsubscribe(m.subID)
		m.subID = 0
	}
	if m.active == nil {
		return
	}
	m.exit()
	m.active = nil
}

func (m *Machine) instantiate(k Kind) State {
	switch k {
	case KindIdle:
		m.arena.idle = idleState{groundState{m: m}}
		return &m.arena.idle
	case KindMove:
		m.arena.move = moveState{groundState{m: m, moving: true}}
		return &m.arena.move
	case KindJump:
		m.arena.jump = jumpState{m: m}
		return &m.arena.jump
	}
	return nil
}

// Tick forwards one phase to the active state.
func (m *Machine) Tick(phase TickPhase, dt float64) {
	if m == nil || m.active == nil {
		return
	}
	switch phase {
	case TickUpdate:
		m.active.Update(m.ctx, dt)
	case TickFixedUpdate:
		m.active.FixedUpdate(m.ctx, dt)
	case TickLateUpdate:
		m.active.LateUpdate(m.ctx, dt)
	}
}

func (m *Machine) Update(dt float64)      { m.Tick(TickUpdate, dt) }
func (m *Machine) FixedUpdate(dt float64) { m.Tick(TickFixedUpdate, dt) }
func (m *Machine) LateUpdate(dt float64)  { m.Tick(TickLateUpdate, dt) }

// RequestTransition changes to the live state named name. Unknown names are
// logged and leave the active state unchanged.
func (m *Machine) RequestTransition(name string) bool {
	if m == nil {
		return false
	}
	k, ok := ParseKind(name)
	if !ok || m.live[k] == nil {
		m.logger().Printf("fsm: error: unknown transition target %q", name)
		return false
	}
	return m.ChangeToState(m.live[k])
}

// Transition changes to the live state of kind k.
func (m *Machine) Transition(k Kind) bool {
	if m == nil {
		return false
	}
	if !k.Valid() || m.live[k] == nil {
		m.logger().Printf("fsm: error: state %s not instantiated", k)
		return false
	}
	return m.ChangeToState(m.live[k])
}

// ChangeToState exits the active state and enters target in one call.
// target must be one of this machine's live states.
func (m *Machine) ChangeToState(target State) bool {
	if m == nil || target == nil {
		return false
	}
	k := target.Kind()
	if !k.Valid() || m.live[k] != target {
		m.logger().Printf("fsm: error: state %s does not belong to this machine", target.Name())
		return false
	}
	if m.active != nil {
		m.exit()
	}
	m.enter(target)
	return true
}

func (m *Machine) exit() {
	if m.observer != nil {
		m.observer.OnExit(m.active.Kind())
	}
	m.active.Exit(m.ctx)
}

func (m *Machine) enter(s State) {
	m.active = s
	if m.observer != nil {
		m.observer.OnEnter(s.Kind())
	}
	s.Enter(m.ctx)
}

// Dispatch routes one input event. The axis is always recorded so air
// control works in every state; the active state then reacts to the
// derived trigger.
func (m *Machine) Dispatch(ev component.InputEvent) {
	if m == nil || m.active == nil {
		return
	}
	if ev.Kind == component.InputMove {
		m.ctx.Movement.SetInput(ev.Axis)
	}
	m.fire(TriggerFor(ev, m.ctx.Movement.Pressing()))
}

func (m *Machine) fire(t Trigger) {
	if t == TriggerNone {
		return
	}
	m.active.OnTrigger(m.ctx, t)
	next, ok := Next(m.active.Kind(), t)
	if !ok {
		return
	}
	m.Transition(next)
}
