package component

import "github.com/jakecoffman/cp"

// InputKind identifies which input stream an event came from.
type InputKind uint8

const (
	InputMove InputKind = iota + 1
	InputJump
)

// InputPhase mirrors the start/update/cancel lifecycle of an input action.
type InputPhase uint8

const (
	PhaseStarted InputPhase = iota + 1
	PhasePerformed
	PhaseCanceled
)

// InputEvent is one discrete delivery from an input stream. Axis is only
// meaningful for InputMove; a canceled move carries a zero axis.
type InputEvent struct {
	Kind  InputKind
	Phase InputPhase
	Axis  cp.Vector
}

// MoveEvent builds a move event for axis, canceling when the axis is zero.
func MoveEvent(axis cp.Vector) InputEvent {
	if axis.LengthSq() == 0 {
		return InputEvent{Kind: InputMove, Phase: PhaseCanceled}
	}
	return InputEvent{Kind: InputMove, Phase: PhasePerformed, Axis: axis}
}

// JumpPressEvent is the jump button going down.
func JumpPressEvent() InputEvent {
	return InputEvent{Kind: InputJump, Phase: PhaseStarted}
}

// JumpReleaseEvent is the jump button coming up.
func JumpReleaseEvent() InputEvent {
	return InputEvent{Kind: InputJump, Phase: PhaseCanceled}
}

// InputHandler receives published input events.
type InputHandler func(InputEvent)

// InputBus fans input events out to subscribers in subscription order.
// It is not safe for concurrent use; it runs on the simulation thread.
type InputBus struct {
	nextID   int
	handlers []busHandler
}

type busHandler struct {
	id int
	fn InputHandler
}

// Subscribe registers fn and returns an id for Unsubscribe.
func (b *InputBus) Subscribe(fn InputHandler) int {
	if b == nil || fn == nil {
		return 0
	}
	b.nextID++
	b.handlers = append(b.handlers, busHandler{id: b.nextID, fn: fn})
	return b.nextID
}

// Unsubscribe removes the handler with id. It reports whether one was removed.
func (b *InputBus) Unsubscribe(id int) bool {
	if b == nil || id <= 0 {
		return false
	}
	for i, h := range b.handlers {
		if h.id == id {
			b.handlers = append(b.handlers[:i], b.handlers[i+1:]...)
			return true
		}
	}
	return false
}

// Publish delivers ev to every subscriber.
func (b *InputBus) Publish(ev InputEvent) {
	if b == nil {
		return
	}
	for _, h := range b.handlers {
		h.fn(ev)
	}
}

// Len returns the number of active subscriptions.
func (b *InputBus) Len() int {
	if b == nil {
		return 0
	}
	return len(b.handlers)
}
