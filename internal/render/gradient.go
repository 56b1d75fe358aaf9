package render

import (
	"image/color"
	"math"
)

// ColorAt samples stops at offset t. Stops must be sorted by Offset.
// Outside the covered range the nearest end stop is returned.
func ColorAt(stops []Stop, t float64) color.NRGBA {
	if len(stops) == 0 {
		return color.NRGBA{}
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		if t > stops[i].Offset {
			continue
		}
		a, b := stops[i-1], stops[i]
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return lerpNRGBA(a.Color, b.Color, (t-a.Offset)/span)
	}
	return stops[len(stops)-1].Color
}

// RadialOffset maps distance d from the centre onto the [0, 1] gradient
// offset of a gradient running from r0 to r1.
func RadialOffset(d, r0, r1 float64) float64 {
	if r1 <= r0 {
		return 1
	}
	return clamp01((d - r0) / (r1 - r0))
}

// WithAlpha returns c with its alpha multiplied by a.
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(math.Round(float64(c.A) * clamp01(a)))
	return c
}

func lerpNRGBA(a, b color.NRGBA, t float64) color.NRGBA {
	l := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.NRGBA{R: l(a.R, b.R), G: l(a.G, b.G), B: l(a.B, b.B), A: l(a.A, b.A)}
}
