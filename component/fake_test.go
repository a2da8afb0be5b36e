package component

import "github.com/jakecoffman/cp"

type fakeBody struct {
	vel   cp.Vector
	mass  float64
	accel cp.Vector
	sets  int
}

func (b *fakeBody) Velocity() cp.Vector { return b.vel }
func (b *fakeBody) SetVelocity(x, y float64) {
	b.vel = cp.Vector{X: x, Y: y}
	b.sets++
}
func (b *fakeBody) AddAcceleration(x, y float64) {
	b.accel = b.accel.Add(cp.Vector{X: x, Y: y})
}
func (b *fakeBody) Mass() float64 { return b.mass }

type fakeGround struct{ on bool }

func (g *fakeGround) OnGround() bool { return g.on }
