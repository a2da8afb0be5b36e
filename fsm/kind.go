package fsm

import "strings"

// Kind is the closed set of character states.
type Kind uint8

const (
	KindIdle Kind = iota
	KindMove
	KindJump
	kindCount
)

var kindNames = [kindCount]string{
	KindIdle: "idle",
	KindMove: "move",
	KindJump: "jump",
}

func (k Kind) String() string {
	if k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

func (k Kind) Valid() bool { return k < kindCount }

// ParseKind resolves a state name. Matching is case-insensitive and accepts
// an optional "State" suffix, so "Idle", "idle" and "IdleState" are equal.
func ParseKind(name string) (Kind, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimSuffix(n, "state")
	for k, s := range kindNames {
		if s == n {
			return Kind(k), true
		}
	}
	return 0, false
}
