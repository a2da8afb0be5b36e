package fsm

import "github.com/milk9111/charcore/component"

// Trigger is an input-derived or physics-derived event that may move the
// machine to another state.
type Trigger uint8

const (
	TriggerNone Trigger = iota
	TriggerAxisNonZero
	TriggerAxisZero
	TriggerJumpPressed
	TriggerJumpReleased
	TriggerLanded
	triggerCount
)

var triggerNames = [triggerCount]string{
	TriggerNone:         "none",
	TriggerAxisNonZero:  "axis_nonzero",
	TriggerAxisZero:     "axis_zero",
	TriggerJumpPressed:  "jump_pressed",
	TriggerJumpReleased: "jump_released",
	TriggerLanded:       "landed",
}

func (t Trigger) String() string {
	if t >= triggerCount {
		return "unknown"
	}
	return triggerNames[t]
}

type edge struct {
	to Kind
	ok bool
}

func to(k Kind) edge { return edge{to: k, ok: true} }

// transitions is the full legal transition set. Missing entries are ignored.
var transitions = [kindCount][triggerCount]edge{
	KindIdle: {
		TriggerAxisNonZero: to(KindMove),
		TriggerJumpPressed: to(KindJump),
	},
	KindMove: {
		TriggerAxisZero:    to(KindIdle),
		TriggerJumpPressed: to(KindJump),
	},
	KindJump: {
		TriggerJumpPressed:  to(KindJump),
		TriggerJumpReleased: to(KindIdle),
		TriggerLanded:       to(KindIdle),
	},
}

// Next looks up the target for trigger t fired in state from.
func Next(from Kind, t Trigger) (Kind, bool) {
	if from >= kindCount || t >= triggerCount {
		return 0, false
	}
	e := transitions[from][t]
	return e.to, e.ok
}

// TriggerFor maps an input event to its trigger. pressing reports whether the
// movement axis counts as held after the event was applied.
func TriggerFor(ev component.InputEvent, pressing bool) Trigger {
	switch ev.Kind {
	case component.InputMove:
		if pressing {
			return TriggerAxisNonZero
		}
		return TriggerAxisZero
	case component.InputJump:
		switch ev.Phase {
		case component.PhaseStarted:
			return TriggerJumpPressed
		case component.PhaseCanceled:
			return TriggerJumpReleased
		}
	}
	return TriggerNone
}
