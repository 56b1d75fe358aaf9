package scene

import (
	"image/color"
	"math"
	"math/rand/v2"
)

// NewRand returns the seeded source a Scene draws all its randomness from.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func between(rng *rand.Rand, a, b float64) float64 {
	return a + rng.Float64()*(b-a)
}

// Palette describes the random pinkish-red colours given to particles.
// Red is always 255; green and blue are uniform in [min, max).
type Palette struct {
	GreenMin, GreenMax float64
	BlueMin, BlueMax   float64
}

var (
	// BloomPalette colours particles spawned along the heart outline.
	BloomPalette = Palette{GreenMin: 30, GreenMax: 160, BlueMin: 70, BlueMax: 220}
	// DefaultPalette colours particles created without an explicit colour.
	DefaultPalette = Palette{GreenMin: 50, GreenMax: 180, BlueMin: 100, BlueMax: 255}
)

// Sample draws one opaque colour from p.
func (p Palette) Sample(rng *rand.Rand) color.NRGBA {
	g := math.Floor(between(rng, p.GreenMin, p.GreenMax))
	b := math.Floor(between(rng, p.BlueMin, p.BlueMax))
	return color.NRGBA{R: 255, G: uint8(g), B: uint8(b), A: 255}
}

// Contains reports whether c could have been sampled from p.
func (p Palette) Contains(c color.NRGBA) bool {
	g, b := float64(c.G), float64(c.B)
	return c.R == 255 && c.A == 255 &&
		g >= p.GreenMin && g < p.GreenMax &&
		b >= p.BlueMin && b < p.BlueMax
}
