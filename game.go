package main

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/charcore/character"
	"github.com/milk9111/charcore/common"
	"github.com/milk9111/charcore/config"
	"github.com/milk9111/charcore/prefabs"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	// Frames are capped so a stall does not spiral into a burst of fixed ticks.
	maxFixedSteps = 5
)

type Game struct {
	frames int

	opts    config.Options
	input   *Input
	char    *character.Character
	watcher *prefabs.Watcher

	accumulator float64
	camX        float64
}

func NewGame(opts config.Options, char *character.Character, watcher *prefabs.Watcher) *Game {
	char.Start()
	return &Game{
		opts:    opts,
		input:   NewInput(),
		char:    char,
		watcher: watcher,
	}
}

func (g *Game) Update() error {
	g.frames++
	g.pollWatcher()

	dt := 1.0 / 60
	if tps := ebiten.ActualTPS(); tps > 0 {
		dt = 1 / tps
	}

	g.input.Update(g.char.Publish)
	g.char.Update(dt)

	fixed := g.char.FixedDT()
	g.accumulator += dt
	for steps := 0; g.accumulator >= fixed && steps < maxFixedSteps; steps++ {
		g.char.FixedUpdate(fixed)
		g.accumulator -= fixed
	}
	if g.accumulator > fixed {
		g.accumulator = 0
	}

	g.char.LateUpdate(dt)
	g.follow()
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("game: watcher: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	if filepath.Base(path) != filepath.Base(g.opts.Character) {
		return
	}
	spec, err := prefabs.LoadCharacterSpec(g.opts.Character)
	if err != nil {
		log.Printf("game: reload %s: %v", path, err)
		return
	}
	if err := g.char.Reload(spec); err != nil {
		log.Printf("game: reload %s: %v", path, err)
		return
	}
	log.Printf("game: reloaded %s", path)
}

func (g *Game) follow() {
	ppm := g.char.Spec().World.PixelsPerMeter
	target := g.char.Position().X*ppm - baseWidth/2
	if target < 0 {
		target = 0
	}
	g.camX = float64(common.Lerp(float32(g.camX), float32(target), 0.15))
}

// toScreen maps a world rectangle given by its bottom-left corner to screen
// space. World Y grows upward.
func (g *Game) toScreen(x, y, w, h float64) (float32, float32, float32, float32) {
	ppm := g.char.Spec().World.PixelsPerMeter
	sx := x*ppm - g.camX
	sy := baseHeight - (y+h)*ppm
	return float32(sx), float32(sy), float32(w * ppm), float32(h * ppm)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	for _, p := range g.char.World.Platforms() {
		x, y, w, h := g.toScreen(p.X, p.Y, p.W, p.H)
		vector.FillRect(screen, x, y, w, h, colornames.Slategray, false)
		if g.opts.Debug {
			vector.StrokeRect(screen, x, y, w, h, 1, colornames.Lightgrey, false)
		}
	}

	g.drawCharacter(screen)

	msg := fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS())
	if g.opts.Debug {
		v := g.char.Velocity()
		msg += fmt.Sprintf("\nstate: %s\nvelocity: (%.2f, %.2f)\ngrounded: %t\njumping: %t",
			g.char.StateName(), v.X, v.Y, g.char.Grounded(), g.char.Jump.Jumping())
	}
	ebitenutil.DebugPrint(screen, msg)
}

func (g *Game) drawCharacter(screen *ebiten.Image) {
	w, h := g.char.Body.Size()
	sx, sy := g.char.Squash.Scale()
	w *= sx
	h *= sy
	pos := g.char.Position()
	// Squash keeps the feet planted.
	bottom := g.char.Body.Bottom()
	x, y, sw, sh := g.toScreen(pos.X-w/2, bottom, w, h)

	var clr color.Color = colornames.Crimson
	if !g.char.Grounded() {
		clr = colornames.Orange
	}
	vector.FillRect(screen, x, y, sw, sh, clr, false)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
