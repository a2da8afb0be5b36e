package physics

import "github.com/jakecoffman/cp"

// Body adapts a Chipmunk body to component.Body.
type Body struct {
	body   *cp.Body
	shape  *cp.Shape
	width  float64
	height float64
}

func (b *Body) Velocity() cp.Vector {
	if b == nil || b.body == nil {
		return cp.Vector{}
	}
	return b.body.Velocity()
}

func (b *Body) SetVelocity(x, y float64) {
	if b == nil || b.body == nil {
		return
	}
	b.body.SetVelocity(x, y)
}

// AddAcceleration accumulates force for the next step. Chipmunk clears
// forces after every step.
func (b *Body) AddAcceleration(x, y float64) {
	if b == nil || b.body == nil {
		return
	}
	f := cp.Vector{X: x, Y: y}.Mult(b.body.Mass())
	b.body.SetForce(b.body.Force().Add(f))
}

func (b *Body) Mass() float64 {
	if b == nil || b.body == nil {
		return 0
	}
	return b.body.Mass()
}

// Position is the center of the body.
func (b *Body) Position() cp.Vector {
	if b == nil || b.body == nil {
		return cp.Vector{}
	}
	return b.body.Position()
}

func (b *Body) SetPosition(p cp.Vector) {
	if b == nil || b.body == nil {
		return
	}
	b.body.SetPosition(p)
}

func (b *Body) Size() (w, h float64) {
	if b == nil {
		return 0, 0
	}
	return b.width, b.height
}

// Bottom returns the y of the body's feet.
func (b *Body) Bottom() float64 {
	return b.Position().Y - b.height/2
}

// CP exposes the Chipmunk body.
func (b *Body) CP() *cp.Body {
	if b == nil {
		return nil
	}
	return b.body
}
