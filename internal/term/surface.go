// Package term renders the bloom in a terminal. The logical canvas is
// scaled onto a pixel grid of cols × 2·rows, each cell showing two
// vertically stacked pixels with the upper half block glyph.
package term

import (
	"image/color"
	"math"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/heartbloom/internal/render"
)

const upperHalf = '▀'

type glyph struct {
	r   rune
	col colorful.Color
}

// Surface is a software raster that implements render.Surface.
type Surface struct {
	render.Stack

	w, h       float64 // logical size
	cols, rows int
	pw, ph     int // pixel grid
	base       render.Matrix
	px         []colorful.Color
	glyphs     map[int]glyph
}

// NewSurface creates a surface for a w×h logical canvas on a cols×rows terminal.
func NewSurface(w, h float64, cols, rows int) *Surface {
	s := &Surface{w: w, h: h}
	s.Resize(cols, rows)
	return s
}

// Resize fits the logical canvas into the new terminal size, centred and
// uniformly scaled.
func (s *Surface) Resize(cols, rows int) {
	s.cols, s.rows = max(cols, 1), max(rows, 1)
	s.pw, s.ph = s.cols, s.rows*2
	s.px = make([]colorful.Color, s.pw*s.ph)
	s.glyphs = make(map[int]glyph)

	k := math.Min(float64(s.pw)/s.w, float64(s.ph)/s.h)
	ox := (float64(s.pw) - s.w*k) / 2
	oy := (float64(s.ph) - s.h*k) / 2
	s.base = render.Identity.Translated(ox, oy).Scaled(k)
	s.SetBase(s.base)
}

// Begin resets the draw state for a new frame.
func (s *Surface) Begin() {
	s.SetBase(s.base)
}

func (s *Surface) Size() (float64, float64) { return s.w, s.h }

func (s *Surface) Clear() {
	clear(s.px)
	clear(s.glyphs)
}

// Pixel returns the colour at pixel (x, y) of the grid.
func (s *Surface) Pixel(x, y int) colorful.Color {
	return s.px[y*s.pw+x]
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func (s *Surface) blend(i int, src colorful.Color, a float64, mode render.Blend) {
	dst := s.px[i]
	switch mode {
	case render.BlendLighter:
		s.px[i] = colorful.Color{
			R: math.Min(1, dst.R+src.R*a),
			G: math.Min(1, dst.G+src.G*a),
			B: math.Min(1, dst.B+src.B*a),
		}
	default:
		s.px[i] = dst.BlendRgb(src, a)
	}
}

// shade visits every pixel whose centre lies in the device-space box and
// lets fn decide its colour and coverage.
func (s *Surface) shade(x0, y0, x1, y1 float64, fn func(px, py float64) (colorful.Color, float64, bool)) {
	st := s.Current()
	ix0, iy0 := max(int(math.Floor(x0)), 0), max(int(math.Floor(y0)), 0)
	ix1, iy1 := min(int(math.Ceil(x1)), s.pw), min(int(math.Ceil(y1)), s.ph)
	for y := iy0; y < iy1; y++ {
		for x := ix0; x < ix1; x++ {
			c, a, ok := fn(float64(x)+0.5, float64(y)+0.5)
			if !ok || a <= 0 {
				continue
			}
			s.blend(y*s.pw+x, c, a*st.Alpha, st.Blend)
		}
	}
}

func (s *Surface) FillCircle(x, y, r float64, c color.NRGBA) {
	m := s.Current().Matrix
	cx, cy := m.Apply(x, y)
	r *= m.ScaleFactor()
	// Keep sub-pixel sprites visible as a single dim pixel.
	r = math.Max(r, 0.5)
	src, a := toColorful(c), float64(c.A)/255
	s.shade(cx-r, cy-r, cx+r, cy+r, func(px, py float64) (colorful.Color, float64, bool) {
		return src, a, math.Hypot(px-cx, py-cy) <= r
	})
}

func (s *Surface) FillRect(x, y, w, h float64, c color.NRGBA) {
	m := s.Current().Matrix
	x0, y0 := m.Apply(x, y)
	x1, y1 := m.Apply(x+w, y+h)
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	src, a := toColorful(c), float64(c.A)/255
	// Sub-pixel rects still light the pixel they sit in, at reduced coverage.
	cover := math.Min(1, (x1-x0)*(y1-y0))
	if x1-x0 < 1 || y1-y0 < 1 {
		x1, y1 = x0+1, y0+1
	}
	s.shade(x0, y0, x1, y1, func(px, py float64) (colorful.Color, float64, bool) {
		return src, a * cover, true
	})
}

// FillText places the glyph unrotated at the cell containing its centre;
// terminals cannot rotate characters.
func (s *Surface) FillText(str string, x, y float64, c color.NRGBA) {
	st := s.Current()
	px, py := st.Matrix.Apply(x, y)
	col, row := int(math.Floor(px)), int(math.Floor(py/2))
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return
	}
	r, _ := utf8.DecodeRuneInString(str)
	if r == utf8.RuneError {
		return
	}
	s.glyphs[row*s.cols+col] = glyph{r: r, col: colorful.Color{}.BlendRgb(toColorful(c), st.Alpha)}
}

func (s *Surface) FillRadialGradient(x, y, r0, r1 float64, stops []render.Stop) {
	m := s.Current().Matrix
	cx, cy := m.Apply(x, y)
	k := m.ScaleFactor()
	r0, r1 = r0*k, r1*k
	s.shade(cx-r1, cy-r1, cx+r1, cy+r1, func(px, py float64) (colorful.Color, float64, bool) {
		d := math.Hypot(px-cx, py-cy)
		if d > r1 {
			return colorful.Color{}, 0, false
		}
		c := render.ColorAt(stops, render.RadialOffset(d, r0, r1))
		return toColorful(c), float64(c.A) / 255, true
	})
}

func cellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Flush copies the raster onto screen; it does not call Show.
func (s *Surface) Flush(screen tcell.Screen) {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			top := s.Pixel(col, row*2)
			bottom := s.Pixel(col, row*2+1)
			if g, ok := s.glyphs[row*s.cols+col]; ok {
				bg := top.BlendRgb(bottom, 0.5)
				style := tcell.StyleDefault.Foreground(cellColor(g.col)).Background(cellColor(bg))
				screen.SetContent(col, row, g.r, nil, style)
				continue
			}
			style := tcell.StyleDefault.Foreground(cellColor(top)).Background(cellColor(bottom))
			screen.SetContent(col, row, upperHalf, nil, style)
		}
	}
}

var _ render.Surface = (*Surface)(nil)
