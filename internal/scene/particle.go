package scene

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/iburimskiy/heartbloom/internal/config"
	"github.com/iburimskiy/heartbloom/internal/render"
)

// Particle is a single fading point sprite.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Age    float64
	Life   float64
	Size   float64
	Color  color.NRGBA
}

// NewParticle creates a particle at (x, y). A nil colour samples the
// default palette.
func NewParticle(rng *rand.Rand, x, y float64, c *color.NRGBA) Particle {
	p := Particle{
		X:    x,
		Y:    y,
		VX:   between(rng, config.VXMin, config.VXMax),
		VY:   between(rng, config.VYMin, config.VYMax),
		Life: between(rng, config.LifeMin, config.LifeMax),
		Size: between(rng, config.SizeMin, config.SizeMax),
	}
	if c != nil {
		p.Color = *c
	} else {
		p.Color = DefaultPalette.Sample(rng)
	}
	return p
}

// Update ages the particle and integrates gravity-biased motion.
// Velocities are expressed per frame at 60 fps.
func (p *Particle) Update(dt float64) {
	p.Age += dt
	p.VY += config.Gravity * dt
	p.X += p.VX * config.FrameRate * dt
	p.Y += p.VY * config.FrameRate * dt
}

// remaining is the fraction of life left, clamped at 0.
func (p *Particle) remaining() float64 {
	return math.Max(0, 1-p.Age/p.Life)
}

// Opacity is the draw opacity: fast fade towards the end of life.
func (p *Particle) Opacity() float64 {
	return math.Pow(p.remaining(), config.FadeExponent)
}

// Radius grows the sprite slightly as it fades.
func (p *Particle) Radius() float64 {
	return p.Size * (1 + (1-p.remaining())*config.GrowOnFade)
}

func (p *Particle) Draw(s render.Surface) {
	render.Scoped(s, func() {
		s.SetAlpha(p.Opacity())
		s.FillCircle(p.X, p.Y, p.Radius(), p.Color)
	})
}

func (p *Particle) Dead() bool {
	return p.Age >= p.Life
}
