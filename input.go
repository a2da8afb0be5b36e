package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcore/component"
)

const stickDeadzone = 0.2

// Input polls keyboard and gamepad each frame and publishes the changes as
// events. Move events go out only when the axis changes.
type Input struct {
	axis    float64
	holding bool
}

func NewInput() *Input {
	return &Input{}
}

type frameInput struct {
	moveX       float64
	jumpHeld    bool
	jumpPressed bool
}

func readInput() frameInput {
	var f frameInput

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		f.moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		f.moveX += 1
	}
	f.jumpHeld = ebiten.IsKeyPressed(ebiten.KeySpace)
	f.jumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			f.moveX = leftX
		}

		f.jumpHeld = f.jumpHeld || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		f.jumpPressed = f.jumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}

	return f
}

// Update reads devices and publishes onto publish.
func (in *Input) Update(publish func(component.InputEvent)) {
	if in == nil || publish == nil {
		return
	}
	in.apply(readInput(), publish)
}

func (in *Input) apply(f frameInput, publish func(component.InputEvent)) {
	if f.moveX != in.axis {
		in.axis = f.moveX
		publish(component.MoveEvent(cp.Vector{X: f.moveX}))
	}

	if f.jumpPressed && !in.holding {
		in.holding = true
		publish(component.JumpPressEvent())
	}
	// Keyboard and gamepad may overlap; release once nothing holds jump.
	if in.holding && !f.jumpHeld {
		in.holding = false
		publish(component.JumpReleaseEvent())
	}
}
