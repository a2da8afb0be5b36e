package physics

import "github.com/jakecoffman/cp"

// probeSkin starts the rays slightly inside the body so a resting body still
// hits the floor it stands on.
const probeSkin = 0.05

// Probe reports ground contact by casting two short rays down from the
// character's feet against the ground layer.
type Probe struct {
	world  *World
	body   *Body
	length float64
	inset  float64
	filter cp.ShapeFilter
}

func NewProbe(w *World, b *Body, length, inset float64) *Probe {
	if length <= 0 {
		length = 0.1
	}
	return &Probe{
		world:  w,
		body:   b,
		length: length,
		inset:  inset,
		filter: cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, CategoryGround),
	}
}

func (p *Probe) OnGround() bool {
	if p == nil || p.world == nil || p.world.space == nil || p.body == nil {
		return false
	}
	pos := p.body.Position()
	w, _ := p.body.Size()
	bottom := p.body.Bottom()
	half := w/2 - p.inset
	for _, x := range [2]float64{pos.X - half, pos.X + half} {
		start := cp.Vector{X: x, Y: bottom + probeSkin}
		end := cp.Vector{X: x, Y: bottom - p.length}
		if hit := p.world.space.SegmentQueryFirst(start, end, 0, p.filter); hit.Shape != nil {
			return true
		}
	}
	return false
}
