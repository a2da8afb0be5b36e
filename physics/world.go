package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcore/prefabs"
)

// Shape filter categories.
const (
	CategoryGround uint = 1 << iota
	CategoryCharacter
)

// World owns the Chipmunk space and the static platforms. Y points up and
// units are meters.
type World struct {
	space     *cp.Space
	gravity   float64
	platforms []prefabs.PlatformSpec
}

// NewWorld builds a space with the prefab's gravity and static platforms.
func NewWorld(spec prefabs.WorldSpec) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	// meters, not pixels
	space.SetCollisionSlop(0.01)
	space.SetGravity(cp.Vector{X: 0, Y: spec.Gravity})

	w := &World{
		space:   space,
		gravity: spec.Gravity,
	}
	for _, p := range spec.Platforms {
		w.AddPlatform(p)
	}
	return w
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Gravity is the ambient vertical gravity applied to every dynamic body.
func (w *World) Gravity() float64 {
	if w == nil {
		return 0
	}
	return w.gravity
}

func (w *World) Platforms() []prefabs.PlatformSpec {
	if w == nil {
		return nil
	}
	return w.platforms
}

// AddPlatform adds a static box on the ground layer.
func (w *World) AddPlatform(p prefabs.PlatformSpec) {
	if w == nil || w.space == nil || p.W <= 0 || p.H <= 0 {
		return
	}
	bb := cp.BB{L: p.X, B: p.Y, R: p.X + p.W, T: p.Y + p.H}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategoryGround, cp.ALL_CATEGORIES))
	w.space.AddShape(shape)
	w.platforms = append(w.platforms, p)
}

// AddCharacter creates the character's body centered on spawn. Rotation is
// locked.
func (w *World) AddCharacter(spec prefabs.BodySpec, spawn cp.Vector) *Body {
	if w == nil || w.space == nil {
		return nil
	}
	mass := spec.Mass
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(spawn)
	shape := cp.NewBox(body, spec.Width, spec.Height, 0)
	shape.SetFriction(0)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategoryCharacter, cp.ALL_CATEGORIES))

	w.space.AddBody(body)
	w.space.AddShape(shape)
	return &Body{body: body, shape: shape, width: spec.Width, height: spec.Height}
}

// Step advances the simulation.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil {
		return
	}
	w.space.Step(dt)
}
