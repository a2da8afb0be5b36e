package juice

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Squash stretches the sprite vertically when a jump starts and eases it
// back to rest. Horizontal scale compensates to keep the area constant.
type Squash struct {
	stretch float32
	out     float32
	back    float32

	tweens []*gween.Tween
	scaleY float32
	count  int
}

// NewSquash peaks at stretch after out seconds and settles after back seconds.
func NewSquash(stretch, out, back float32) *Squash {
	return &Squash{stretch: stretch, out: out, back: back, scaleY: 1}
}

// Trigger restarts the effect. Its signature matches component.EffectHook.
func (s *Squash) Trigger() {
	if s == nil {
		return
	}
	s.tweens = []*gween.Tween{
		gween.New(1, s.stretch, s.out, ease.OutQuad),
		gween.New(s.stretch, 1, s.back, ease.OutBounce),
	}
	s.count++
}

// Update advances the running tween.
func (s *Squash) Update(dt float64) {
	if s == nil || len(s.tweens) == 0 {
		return
	}
	v, done := s.tweens[0].Update(float32(dt))
	s.scaleY = v
	if done {
		s.tweens = s.tweens[1:]
		if len(s.tweens) == 0 {
			s.scaleY = 1
		}
	}
}

func (s *Squash) Active() bool {
	return s != nil && len(s.tweens) > 0
}

// Triggered counts Trigger calls.
func (s *Squash) Triggered() int {
	if s == nil {
		return 0
	}
	return s.count
}

// Scale returns the current sprite scale.
func (s *Squash) Scale() (x, y float64) {
	if s == nil || s.scaleY <= 0 {
		return 1, 1
	}
	return 1 / float64(s.scaleY), float64(s.scaleY)
}
