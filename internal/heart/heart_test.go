package heart

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestPoint_KnownValues(t *testing.T) {
	tests := []struct {
		name  string
		t     float64
		scale float64
		want  Vec
	}{
		{"top cusp", 0, 1, Vec{0, -5}},
		{"bottom tip", math.Pi, 1, Vec{0, 17}},
		{"right lobe", math.Pi / 2, 1, Vec{16, -4}},
		{"left lobe", -math.Pi / 2, 1, Vec{-16, -4}},
		{"scaled", math.Pi / 2, 10, Vec{160, -40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Point(tt.t, tt.scale)
			if math.Abs(got.X-tt.want.X) > eps || math.Abs(got.Y-tt.want.Y) > eps {
				t.Errorf("Point(%v, %v) = %+v, want %+v", tt.t, tt.scale, got, tt.want)
			}
		})
	}
}

func TestPoint_Periodic(t *testing.T) {
	for i := 0; i < 200; i++ {
		x := -20 + float64(i)*0.2
		a := Point(x, 7.5)
		b := Point(x+2*math.Pi, 7.5)
		if math.Abs(a.X-b.X) > 1e-9 || math.Abs(a.Y-b.Y) > 1e-9 {
			t.Fatalf("Point(%v) = %+v, Point(%v+2π) = %+v", x, a, x, b)
		}
	}
}

func TestPoint_Symmetric(t *testing.T) {
	for i := 0; i < 50; i++ {
		x := float64(i) * 0.1
		a := Point(x, 1)
		b := Point(-x, 1)
		if math.Abs(a.X+b.X) > eps || math.Abs(a.Y-b.Y) > eps {
			t.Fatalf("heart not mirror symmetric at t=%v: %+v vs %+v", x, a, b)
		}
	}
}
