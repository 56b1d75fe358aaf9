// Package scene simulates and draws the heart bloom: particles spawned
// along a heart outline, two rotating text rings and a glow overlay.
package scene

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/iburimskiy/heartbloom/internal/config"
	"github.com/iburimskiy/heartbloom/internal/heart"
	"github.com/iburimskiy/heartbloom/internal/render"
)

// RingTexts holds the text and palette of the two rings.
type RingTexts struct {
	Inner, Outer string
	Accent, Base color.NRGBA
}

// DefaultRingTexts matches config.Default.
var DefaultRingTexts = RingTexts{
	Inner:  "Em yêu anh • Em yêu anh •",
	Outer:  "Gửi cho crush để tỏ tình • Tokitoki.love •",
	Accent: color.NRGBA{R: 0xff, G: 0x8f, B: 0xb3, A: 0xff},
	Base:   color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
}

// Glow gradient stops, centre to rim.
var glowStops = []render.Stop{
	{Offset: 0, Color: color.NRGBA{R: 255, G: 120, B: 160, A: 64}},
	{Offset: 0.6, Color: color.NRGBA{R: 120, G: 30, B: 80, A: 10}},
	{Offset: 1, Color: color.NRGBA{}},
}

// Scene owns the live particles and the two rings. It is not safe for
// concurrent use; every spawn and frame must run on the same goroutine.
type Scene struct {
	rng       *rand.Rand
	particles []Particle
	rings     [2]*TextRing
}

// New creates an empty scene with the two rings.
func New(rng *rand.Rand, texts RingTexts) *Scene {
	return &Scene{
		rng: rng,
		rings: [2]*TextRing{
			NewTextRing(texts.Inner, 110, 0.03, 16, texts.Accent, texts.Base),
			NewTextRing(texts.Outer, 170, -0.02, 14, texts.Accent, texts.Base),
		},
	}
}

// Len is the number of live particles.
func (s *Scene) Len() int { return len(s.particles) }

// Particles returns a copy of the live particles.
func (s *Scene) Particles() []Particle {
	return append([]Particle(nil), s.particles...)
}

// Rings returns the two rings.
func (s *Scene) Rings() []*TextRing { return s.rings[:] }

// BloomCenter is where every heart is centred for a w×h surface, and the
// curve scale used there.
func BloomCenter(w, h float64) (cx, cy, scale float64) {
	return w / 2, h * config.BloomCenterY, math.Min(w, h) / config.HeartScaleDiv
}

// SpawnHeartParticles appends count particles jittered around random
// points of the heart curve, coloured from the bloom palette.
func (s *Scene) SpawnHeartParticles(cx, cy, scale float64, count int) {
	s.spawn(cx, cy, scale, count, &BloomPalette)
}

// spawnDefault is SpawnHeartParticles leaving colour to the particle.
func (s *Scene) spawnDefault(cx, cy, scale float64, count int) {
	s.spawn(cx, cy, scale, count, nil)
}

func (s *Scene) spawn(cx, cy, scale float64, count int, palette *Palette) {
	for i := 0; i < count; i++ {
		t := s.rng.Float64() * 2 * math.Pi
		p := heart.Point(t, scale)
		jitter := between(s.rng, 0, config.JitterR)
		angle := t + between(s.rng, -config.JitterTh, config.JitterTh)
		x := cx + p.X + math.Cos(angle)*jitter
		y := cy + p.Y + math.Sin(angle)*jitter

		var c *color.NRGBA
		if palette != nil {
			col := palette.Sample(s.rng)
			c = &col
		}
		s.particles = append(s.particles, NewParticle(s.rng, x, y, c))
	}
}

// Bloom is the initial burst.
func (s *Scene) Bloom(w, h float64) {
	cx, cy, scale := BloomCenter(w, h)
	s.SpawnHeartParticles(cx, cy, scale, config.BloomCount)
}

// Trickle is the periodic top-up.
func (s *Scene) Trickle(w, h float64) {
	cx, cy, scale := BloomCenter(w, h)
	s.SpawnHeartParticles(cx, cy, scale, config.TrickleCount)
}

// Click spawns a burst at the bloom centre; the pointer position is
// deliberately not used.
func (s *Scene) Click(w, h float64) {
	cx, cy, scale := BloomCenter(w, h)
	s.SpawnHeartParticles(cx, cy, scale, config.ClickCount)
}

// Beat spawns a small burst in the default palette, used for soundtrack beats.
func (s *Scene) Beat(w, h float64) {
	cx, cy, scale := BloomCenter(w, h)
	s.spawnDefault(cx, cy, scale, config.BeatCount)
}

// Frame advances the scene by dt seconds and draws it onto surf.
func (s *Scene) Frame(surf render.Surface, dt float64) {
	w, h := surf.Size()
	surf.Clear()

	s.drawSparkles(surf, w, h)

	rcx, rcy := w/2, h*config.RingCenterY
	for _, r := range s.rings {
		r.Update(dt)
		r.Draw(surf, rcx, rcy)
	}

	s.stepParticles(surf, dt)
	s.drawGlow(surf, w, h)
}

func (s *Scene) drawSparkles(surf render.Surface, w, h float64) {
	for i := 0; i < config.SparkleCount; i++ {
		a := between(s.rng, config.SparkleAlphaMin, config.SparkleAlphaMax)
		c := render.WithAlpha(color.NRGBA{R: 255, G: 255, B: 255, A: 255}, a)
		x := s.rng.Float64() * w
		y := s.rng.Float64() * h
		sw := s.rng.Float64() * config.SparkleMaxSize
		sh := s.rng.Float64() * config.SparkleMaxSize
		surf.FillRect(x, y, sw, sh, c)
	}
}

// stepParticles updates and draws every particle, then keeps only the
// live ones in place.
func (s *Scene) stepParticles(surf render.Surface, dt float64) {
	live := s.particles[:0]
	for i := range s.particles {
		p := &s.particles[i]
		p.Update(dt)
		p.Draw(surf)
		if !p.Dead() {
			live = append(live, *p)
		}
	}
	clear(s.particles[len(live):])
	s.particles = live
}

func (s *Scene) drawGlow(surf render.Surface, w, h float64) {
	cx, cy := w/2, h*config.BloomCenterY
	r := math.Min(w, h) / config.GlowRadiusDiv
	render.Scoped(surf, func() {
		surf.SetBlend(render.BlendLighter)
		surf.FillRadialGradient(cx, cy, config.GlowInner, r, glowStops)
	})
}
