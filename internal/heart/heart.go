// Package heart evaluates the parametric heart curve that particles bloom along.
package heart

import "math"

// Vec is a 2D offset in canvas units, y pointing down.
type Vec struct {
	X, Y float64
}

// Point maps t (period 2π) to a point on the heart outline scaled by scale.
// The curve points down on screen, so y is negated.
func Point(t, scale float64) Vec {
	s := math.Sin(t)
	x := 16 * s * s * s
	y := 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
	return Vec{X: x * scale, Y: -y * scale}
}

// Len returns the distance of v from the origin.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}
