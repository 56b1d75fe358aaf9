package render

// State is the draw state that Save and Restore operate on.
type State struct {
	Matrix   Matrix
	Alpha    float64
	Blend    Blend
	FontSize float64
}

// DefaultFontSize is used until SetFontSize is called.
const DefaultFontSize = 16

func defaultState() State {
	return State{Matrix: Identity, Alpha: 1, Blend: BlendSourceOver, FontSize: DefaultFontSize}
}

// Stack implements the state half of Surface. The zero value is ready to use.
type Stack struct {
	cur   State
	saved []State
	init  bool
}

func (s *Stack) ensure() {
	if !s.init {
		s.cur = defaultState()
		s.init = true
	}
}

// Current returns the effective draw state.
func (s *Stack) Current() State {
	s.ensure()
	return s.cur
}

// Depth reports how many states are saved.
func (s *Stack) Depth() int {
	return len(s.saved)
}

func (s *Stack) Save() {
	s.ensure()
	s.saved = append(s.saved, s.cur)
}

// Restore pops the last saved state. An unbalanced Restore is ignored,
// as on a canvas.
func (s *Stack) Restore() {
	s.ensure()
	if len(s.saved) == 0 {
		return
	}
	s.cur = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

// Reset drops all saved states and returns to the default state.
func (s *Stack) Reset() {
	s.cur = defaultState()
	s.saved = s.saved[:0]
	s.init = true
}

// SetBase replaces the transform of the default state, e.g. a device
// scale. It also resets the stack.
func (s *Stack) SetBase(m Matrix) {
	s.Reset()
	s.cur.Matrix = m
}

func (s *Stack) Translate(x, y float64) {
	s.ensure()
	s.cur.Matrix = s.cur.Matrix.Translated(x, y)
}

func (s *Stack) Rotate(theta float64) {
	s.ensure()
	s.cur.Matrix = s.cur.Matrix.Rotated(theta)
}

func (s *Stack) SetAlpha(a float64) {
	s.ensure()
	s.cur.Alpha = clamp01(a)
}

func (s *Stack) SetBlend(b Blend) {
	s.ensure()
	s.cur.Blend = b
}

func (s *Stack) SetFontSize(px float64) {
	s.ensure()
	s.cur.FontSize = px
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
