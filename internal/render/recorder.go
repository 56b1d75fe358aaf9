package render

import "image/color"

// OpKind identifies a recorded fill operation.
type OpKind int

const (
	OpClear OpKind = iota
	OpCircle
	OpRect
	OpText
	OpGradient
)

// Op is one fill operation together with the state it was issued under.
type Op struct {
	Kind  OpKind
	State State

	X, Y, W, H float64 // rect; X, Y also circle, text and gradient centre
	R0, R      float64 // circle radius in R; gradient radii in R0, R
	Text       string
	Color      color.NRGBA
	Stops      []Stop
}

// Device maps the op's local (X, Y) through its transform.
func (o Op) Device() (float64, float64) {
	return o.State.Matrix.Apply(o.X, o.Y)
}

// Recorder is a Surface that keeps every operation in memory. It backs
// headless tests of everything that draws.
type Recorder struct {
	Stack
	W, H float64
	Ops  []Op
}

// NewRecorder returns a recorder with the given logical size.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

func (r *Recorder) Clear() { r.add(Op{Kind: OpClear}) }

func (r *Recorder) FillCircle(x, y, rad float64, c color.NRGBA) {
	r.add(Op{Kind: OpCircle, X: x, Y: y, R: rad, Color: c})
}

func (r *Recorder) FillRect(x, y, w, h float64, c color.NRGBA) {
	r.add(Op{Kind: OpRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) FillText(s string, x, y float64, c color.NRGBA) {
	r.add(Op{Kind: OpText, X: x, Y: y, Text: s, Color: c})
}

func (r *Recorder) FillRadialGradient(x, y, r0, r1 float64, stops []Stop) {
	r.add(Op{Kind: OpGradient, X: x, Y: y, R0: r0, R: r1, Stops: append([]Stop(nil), stops...)})
}

// Reset forgets recorded ops and draw state.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.Stack.Reset()
}

// Filter returns the recorded ops of the given kind in issue order.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

func (r *Recorder) add(op Op) {
	op.State = r.Current()
	r.Ops = append(r.Ops, op)
}

var _ Surface = (*Recorder)(nil)
