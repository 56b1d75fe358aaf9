package game

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/iburimskiy/heartbloom/internal/render"
)

// Number of segments used to tessellate full circles.
const circleSegments = 48

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Surface draws render operations onto an ebiten image.
type Surface struct {
	render.Stack

	dst  *ebiten.Image
	w, h float64
	font *text.GoTextFaceSource
}

// NewSurface loads the glyph face used for ring text.
func NewSurface() (*Surface, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &Surface{font: src}, nil
}

// Begin targets dst for the next frame and resets the draw state.
func (s *Surface) Begin(dst *ebiten.Image) {
	s.dst = dst
	b := dst.Bounds()
	s.w, s.h = float64(b.Dx()), float64(b.Dy())
	s.Stack.Reset()
}

func (s *Surface) Size() (float64, float64) { return s.w, s.h }

func (s *Surface) Clear() { s.dst.Clear() }

func ebitenBlend(b render.Blend) ebiten.Blend {
	if b == render.BlendLighter {
		return ebiten.BlendLighter
	}
	return ebiten.BlendSourceOver
}

// toGeoM converts a render transform into ebiten's matrix type.
func toGeoM(m render.Matrix) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m.A)
	g.SetElement(0, 1, m.C)
	g.SetElement(0, 2, m.E)
	g.SetElement(1, 0, m.B)
	g.SetElement(1, 1, m.D)
	g.SetElement(1, 2, m.F)
	return g
}

func (s *Surface) FillCircle(x, y, r float64, c color.NRGBA) {
	st := s.Current()
	c = render.WithAlpha(c, st.Alpha)
	if c.A == 0 {
		return
	}
	cx, cy := st.Matrix.Apply(x, y)
	r *= st.Matrix.ScaleFactor()
	if st.Blend == render.BlendSourceOver {
		vector.DrawFilledCircle(s.dst, float32(cx), float32(cy), float32(r), c, true)
		return
	}
	var path vector.Path
	path.Arc(float32(cx), float32(cy), float32(r), 0, 2*math.Pi, vector.Clockwise)
	s.fillPath(&path, c, st.Blend)
}

func (s *Surface) FillRect(x, y, w, h float64, c color.NRGBA) {
	st := s.Current()
	c = render.WithAlpha(c, st.Alpha)
	if c.A == 0 || w <= 0 || h <= 0 {
		return
	}
	var path vector.Path
	corners := [4][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	for i, p := range corners {
		px, py := st.Matrix.Apply(p[0], p[1])
		if i == 0 {
			path.MoveTo(float32(px), float32(py))
		} else {
			path.LineTo(float32(px), float32(py))
		}
	}
	path.Close()
	s.fillPath(&path, c, st.Blend)
}

func (s *Surface) fillPath(path *vector.Path, c color.NRGBA, blend render.Blend) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, a := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = r, g, b, a
	}
	s.dst.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{
		Blend:     ebitenBlend(blend),
		AntiAlias: true,
	})
}

func (s *Surface) FillText(str string, x, y float64, c color.NRGBA) {
	st := s.Current()
	face := &text.GoTextFace{Source: s.font, Size: st.FontSize}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(toGeoM(st.Matrix))
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(float32(st.Alpha))
	op.Blend = ebitenBlend(st.Blend)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(s.dst, str, face, op)
}

func (s *Surface) FillRadialGradient(x, y, r0, r1 float64, stops []render.Stop) {
	st := s.Current()
	vs, is := gradientMesh(st.Matrix, x, y, r0, r1, stops, st.Alpha)
	s.dst.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{
		Blend:     ebitenBlend(st.Blend),
		AntiAlias: true,
	})
}

// gradientMesh tessellates a filled radial gradient as concentric rings,
// one per stop, so vertex colour interpolation reproduces the stops
// exactly along every radius.
func gradientMesh(m render.Matrix, x, y, r0, r1 float64, stops []render.Stop, alpha float64) ([]ebiten.Vertex, []uint16) {
	radii := []float64{r0}
	for _, st := range stops {
		if r := r0 + st.Offset*(r1-r0); r > radii[len(radii)-1] {
			radii = append(radii, r)
		}
	}

	vertex := func(px, py float64, c color.NRGBA) ebiten.Vertex {
		dx, dy := m.Apply(px, py)
		c = render.WithAlpha(c, alpha)
		return ebiten.Vertex{
			DstX: float32(dx), DstY: float32(dy),
			SrcX: 1, SrcY: 1,
			ColorR: float32(c.R) / 255, ColorG: float32(c.G) / 255,
			ColorB: float32(c.B) / 255, ColorA: float32(c.A) / 255,
		}
	}

	vs := []ebiten.Vertex{vertex(x, y, render.ColorAt(stops, 0))}
	for _, r := range radii {
		c := render.ColorAt(stops, render.RadialOffset(r, r0, r1))
		for i := 0; i < circleSegments; i++ {
			sin, cos := math.Sincos(float64(i) / circleSegments * 2 * math.Pi)
			vs = append(vs, vertex(x+cos*r, y+sin*r, c))
		}
	}

	ring := func(k, i int) uint16 { return uint16(1 + k*circleSegments + i%circleSegments) }
	var is []uint16
	for i := 0; i < circleSegments; i++ {
		is = append(is, 0, ring(0, i), ring(0, i+1))
	}
	for k := 0; k+1 < len(radii); k++ {
		for i := 0; i < circleSegments; i++ {
			a, b := ring(k, i), ring(k, i+1)
			c, d := ring(k+1, i), ring(k+1, i+1)
			is = append(is, a, c, b, b, c, d)
		}
	}
	return vs, is
}

var _ render.Surface = (*Surface)(nil)
