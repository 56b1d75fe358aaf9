package scene

import (
	"image/color"
	"math"

	"github.com/iburimskiy/heartbloom/internal/config"
	"github.com/iburimskiy/heartbloom/internal/render"
)

// TextRing is a ring of characters rotating at a constant angular speed.
type TextRing struct {
	Text     []rune
	Radius   float64
	Speed    float64 // radians per second, signed
	Angle    float64
	FontSize float64
	Accent   color.NRGBA
	Base     color.NRGBA
}

// NewTextRing builds a ring starting at angle 0.
func NewTextRing(text string, radius, speed, fontSize float64, accent, base color.NRGBA) *TextRing {
	return &TextRing{
		Text:     []rune(text),
		Radius:   radius,
		Speed:    speed,
		FontSize: fontSize,
		Accent:   accent,
		Base:     base,
	}
}

// Update advances the angle. It is left unbounded; trig handles the wrap.
func (r *TextRing) Update(dt float64) {
	r.Angle += r.Speed * dt
}

// Anchor returns where glyph i sits in the ring's own frame, before the
// ring rotation, and the rotation applied to the glyph itself.
func (r *TextRing) Anchor(i int) (x, y, rot float64) {
	theta := float64(i) / float64(len(r.Text)) * 2 * math.Pi
	return math.Cos(theta) * r.Radius, math.Sin(theta) * r.Radius, theta + math.Pi/2
}

// ColorAt returns the colour of glyph i; every fifth glyph is accented.
func (r *TextRing) ColorAt(i int) color.NRGBA {
	if i%config.RingAccentEvery == 0 {
		return r.Accent
	}
	return r.Base
}

func (r *TextRing) Draw(s render.Surface, cx, cy float64) {
	render.Scoped(s, func() {
		s.Translate(cx, cy)
		s.Rotate(r.Angle)
		s.SetFontSize(r.FontSize)
		for i, ch := range r.Text {
			x, y, rot := r.Anchor(i)
			render.Scoped(s, func() {
				s.Translate(x, y)
				s.Rotate(rot)
				s.SetAlpha(config.RingAlpha)
				s.FillText(string(ch), 0, 0, r.ColorAt(i))
			})
		}
	})
}
