package render

import "math"

// Matrix is a 2D affine transform:
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity is the transform that maps every point to itself.
var Identity = Matrix{A: 1, D: 1}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// Mul returns m·n, the transform that applies n first and then m.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Translated prepends a translation in the local frame.
func (m Matrix) Translated(x, y float64) Matrix {
	return m.Mul(Matrix{A: 1, D: 1, E: x, F: y})
}

// Rotated prepends a rotation by theta radians in the local frame.
func (m Matrix) Rotated(theta float64) Matrix {
	sin, cos := math.Sincos(theta)
	return m.Mul(Matrix{A: cos, B: sin, C: -sin, D: cos})
}

// Scaled prepends a uniform scale in the local frame.
func (m Matrix) Scaled(k float64) Matrix {
	return m.Mul(Matrix{A: k, D: k})
}

// Angle returns the rotation component of m.
func (m Matrix) Angle() float64 {
	return math.Atan2(m.B, m.A)
}

// ScaleFactor returns the length a unit vector has after m.
func (m Matrix) ScaleFactor() float64 {
	return math.Hypot(m.A, m.B)
}
