package component

// VerticalEpsilon separates rising/falling from neutral vertical velocity.
const VerticalEpsilon = 0.01

// VerticalOwner names the single component allowed to author the vertical
// velocity channel during a fixed tick.
type VerticalOwner uint8

const (
	VerticalMovement VerticalOwner = iota
	VerticalJump
)

func (o VerticalOwner) String() string {
	switch o {
	case VerticalJump:
		return "jump"
	default:
		return "movement"
	}
}

// OwnerFor picks the vertical owner for this tick. Jump owns the channel
// from launch until it lands: while jumping and either airborne or still
// moving upward off the floor.
func OwnerFor(grounded, jumping bool, vy float64) VerticalOwner {
	if jumping && (!grounded || vy > VerticalEpsilon) {
		return VerticalJump
	}
	return VerticalMovement
}
