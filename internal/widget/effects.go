// ABOUTME: Hover and click feedback effects driven by tweens
// ABOUTME: Animates alpha and scale on injected targets, no engine coupling
package widget

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Fadeable is anything whose opacity can be animated
type Fadeable interface {
	SetAlpha(alpha float64)
}

// Scalable is anything whose scale can be animated
type Scalable interface {
	SetScale(scale float64)
}

// HoverGlow brightens a target while the pointer is over it and dims
// it back when the pointer leaves. Re-entering mid-fade retargets the
// tween from the current alpha, so there is no jump.
type HoverGlow struct {
	target Fadeable

	dim      float64
	lit      float64
	duration float64

	alpha float64
	tween *gween.Tween
}

// NewHoverGlow creates a glow effect resting at the dim alpha
func NewHoverGlow(target Fadeable, dim, lit, duration float64) *HoverGlow {
	if duration <= 0 {
		duration = 0.15
	}

	g := &HoverGlow{
		target:   target,
		dim:      dim,
		lit:      lit,
		duration: duration,
		alpha:    dim,
	}
	target.SetAlpha(dim)
	return g
}

// PointerEnter starts fading toward the lit alpha
func (g *HoverGlow) PointerEnter() {
	g.tween = gween.New(float32(g.alpha), float32(g.lit), float32(g.duration), ease.OutQuad)
}

// PointerLeave starts fading back toward the dim alpha
func (g *HoverGlow) PointerLeave() {
	g.tween = gween.New(float32(g.alpha), float32(g.dim), float32(g.duration), ease.OutQuad)
}

// Update advances the effect by dt seconds
func (g *HoverGlow) Update(dt float64) {
	if g.tween == nil {
		return
	}

	alpha, done := g.tween.Update(float32(dt))
	g.alpha = float64(alpha)
	g.target.SetAlpha(g.alpha)

	if done {
		g.tween = nil
	}
}

// Alpha returns the current alpha
func (g *HoverGlow) Alpha() float64 {
	return g.alpha
}

// ClickPulse squashes a target down and springs it back on press.
// A press while the pulse is still running restarts it.
type ClickPulse struct {
	target Scalable

	rest    float64
	pressed float64
	down    float64
	up      float64

	scale float64
	seq   *gween.Sequence
}

// NewClickPulse creates a pulse effect resting at the given scale
func NewClickPulse(target Scalable, rest, pressed, downDur, upDur float64) *ClickPulse {
	if downDur <= 0 {
		downDur = 0.06
	}
	if upDur <= 0 {
		upDur = 0.12
	}

	p := &ClickPulse{
		target:  target,
		rest:    rest,
		pressed: pressed,
		down:    downDur,
		up:      upDur,
		scale:   rest,
	}
	target.SetScale(rest)
	return p
}

// Press starts the down-up pulse from the current scale
func (p *ClickPulse) Press() {
	p.seq = gween.NewSequence(
		gween.New(float32(p.scale), float32(p.pressed), float32(p.down), ease.OutQuad),
		gween.New(float32(p.pressed), float32(p.rest), float32(p.up), ease.OutBack),
	)
}

// Update advances the effect by dt seconds
func (p *ClickPulse) Update(dt float64) {
	if p.seq == nil {
		return
	}

	scale, _, done := p.seq.Update(float32(dt))
	p.scale = float64(scale)
	p.target.SetScale(p.scale)

	if done {
		p.scale = p.rest
		p.target.SetScale(p.rest)
		p.seq = nil
	}
}

// Scale returns the current scale
func (p *ClickPulse) Scale() float64 {
	return p.scale
}

// Active reports whether a pulse is still running
func (p *ClickPulse) Active() bool {
	return p.seq != nil
}
