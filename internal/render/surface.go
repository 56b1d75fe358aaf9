// Package render defines the 2D drawing surface the bloom is composited on.
//
// A Surface mirrors the small subset of a 2D canvas API the effect needs:
// clearing, filled primitives, rotated text and radial gradients, plus a
// draw state (transform, opacity, blend mode, font size) that is saved and
// restored as a stack. Backends embed a Stack to get that state handling.
package render

import "image/color"

// Blend selects how filled pixels combine with the destination.
type Blend int

const (
	// BlendSourceOver is normal alpha compositing.
	BlendSourceOver Blend = iota
	// BlendLighter adds source colour onto the destination.
	BlendLighter
)

func (b Blend) String() string {
	switch b {
	case BlendSourceOver:
		return "source-over"
	case BlendLighter:
		return "lighter"
	}
	return "unknown"
}

// Stop is one colour stop of a radial gradient. Offset is in [0, 1].
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// Surface is a drawing target with canvas-like state semantics.
// Coordinates passed to fill operations are in the current local frame.
type Surface interface {
	// Size returns the logical width and height of the surface.
	Size() (w, h float64)
	Clear()

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(theta float64)
	SetAlpha(a float64)
	SetBlend(b Blend)
	SetFontSize(px float64)

	FillCircle(x, y, r float64, c color.NRGBA)
	FillRect(x, y, w, h float64, c color.NRGBA)
	// FillText draws s centred on (x, y) in the current frame.
	FillText(s string, x, y float64, c color.NRGBA)
	// FillRadialGradient fills the circle of radius r1 around (x, y) with
	// a gradient running from r0 to r1.
	FillRadialGradient(x, y, r0, r1 float64, stops []Stop)
}

// Scoped runs fn between Save and Restore so state changes made inside fn
// never leak, even if fn panics.
func Scoped(s Surface, fn func()) {
	s.Save()
	defer s.Restore()
	fn()
}
