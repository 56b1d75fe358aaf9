package game

import (
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/faiface/beep"

	"github.com/iburimskiy/heartbloom/internal/config"
	"github.com/iburimskiy/heartbloom/internal/render"
)

func constStreamer(v float64) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{v, v}
		}
		return len(samples), true
	})
}

func TestLevelTap_Snapshot(t *testing.T) {
	n := 0.0
	src := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			n++
			samples[i] = [2]float64{n, -n}
		}
		return len(samples), true
	})
	tap := newLevelTap(src, 8)

	if got := tap.snapshot(4); len(got) != 0 {
		t.Fatalf("snapshot of empty tap = %v", got)
	}

	buf := make([][2]float64, 5)
	tap.Stream(buf)
	got := tap.snapshot(10)
	if len(got) != 5 || got[0][0] != 1 || got[4][0] != 5 {
		t.Fatalf("snapshot after 5 samples = %v", got)
	}

	tap.Stream(buf) // wraps: samples 6..10, ring holds 3..10
	got = tap.snapshot(3)
	if len(got) != 3 || got[0][0] != 8 || got[2][0] != 10 {
		t.Errorf("snapshot(3) = %v, want 8..10", got)
	}
	got = tap.snapshot(100)
	if len(got) != 8 || got[0][0] != 3 || got[7][0] != 10 {
		t.Errorf("snapshot(100) = %v, want 3..10", got)
	}
}

func TestLevelTap_RMS(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want float64
	}{
		{"silence", 0, 0},
		{"full scale", 1, 1},
		{"quiet", 0.1, math.Pow(0.1, 0.3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tap := newLevelTap(constStreamer(tt.v), 64)
			tap.Stream(make([][2]float64, 64))
			if got := tap.rms(32); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("rms() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBeatDetector(t *testing.T) {
	b := newBeatDetector()
	start := time.Unix(0, 0)
	at := func(ms int) time.Time { return start.Add(time.Duration(ms) * time.Millisecond) }

	steps := []struct {
		ms    int
		level float64
		want  bool
	}{
		{0, 0.1, false},
		{100, 0.5, true},  // rising edge
		{150, 0.6, false}, // still loud
		{200, 0.1, false}, // re-arm
		{300, 0.5, false}, // inside cooldown
		{450, 0.3, false}, // between thresholds
		{600, 0.5, true},
		{700, 0.5, false},
	}
	for _, s := range steps {
		if got := b.observe(s.level, at(s.ms)); got != s.want {
			t.Errorf("observe(%v) at %dms = %v, want %v", s.level, s.ms, got, s.want)
		}
	}
}

func TestSoundtrack_Idle(t *testing.T) {
	a := &soundtrack{}
	if a.loaded() || a.playing() {
		t.Error("empty soundtrack reports loaded")
	}
	if a.level() != 0 || a.position() != 0 {
		t.Error("empty soundtrack reports audio")
	}
	a.togglePause()
	if a.paused {
		t.Error("togglePause without audio changed state")
	}
	if err := a.load(t.TempDir() + "/missing.mp3"); err == nil {
		t.Error("load() of a missing file succeeded")
	}
}

func TestFormatDuration(t *testing.T) {
	if got := formatDuration(83 * time.Second); got != "01:23" {
		t.Errorf("formatDuration() = %q", got)
	}
}

func TestToGeoM(t *testing.T) {
	m := render.Identity.Translated(30, 40).Rotated(0.7).Translated(5, -2)
	g := toGeoM(m)
	for _, p := range [][2]float64{{0, 0}, {1, 0}, {3, 7}} {
		wx, wy := m.Apply(p[0], p[1])
		gx, gy := g.Apply(p[0], p[1])
		if math.Abs(wx-gx) > 1e-9 || math.Abs(wy-gy) > 1e-9 {
			t.Errorf("GeoM.Apply(%v) = (%v, %v), want (%v, %v)", p, gx, gy, wx, wy)
		}
	}
}

func TestGradientMesh(t *testing.T) {
	stops := []render.Stop{
		{Offset: 0, Color: color.NRGBA{R: 255, G: 120, B: 160, A: 64}},
		{Offset: 0.6, Color: color.NRGBA{R: 120, G: 30, B: 80, A: 10}},
		{Offset: 1, Color: color.NRGBA{}},
	}
	vs, is := gradientMesh(render.Identity, 100, 50, config.GlowInner, 110, stops, 1)

	// centre + 3 rings (r0, 0.6, rim)
	if want := 1 + 3*circleSegments; len(vs) != want {
		t.Fatalf("len(vertices) = %d, want %d", len(vs), want)
	}
	if want := 3*circleSegments + 2*6*circleSegments; len(is) != want {
		t.Fatalf("len(indices) = %d, want %d", len(is), want)
	}
	for _, i := range is {
		if int(i) >= len(vs) {
			t.Fatalf("index %d out of range", i)
		}
	}
	if vs[0].DstX != 100 || vs[0].DstY != 50 {
		t.Errorf("centre vertex at (%v, %v)", vs[0].DstX, vs[0].DstY)
	}
	for _, v := range vs[1+2*circleSegments:] {
		if v.ColorA != 0 {
			t.Fatalf("rim vertex alpha = %v, want 0", v.ColorA)
		}
		if d := math.Hypot(float64(v.DstX)-100, float64(v.DstY)-50); math.Abs(d-110) > 1e-3 {
			t.Fatalf("rim vertex at radius %v, want 110", d)
		}
	}
	mid := vs[1+circleSegments]
	if math.Abs(float64(mid.ColorA)-10.0/255) > 1e-6 {
		t.Errorf("0.6 ring alpha = %v, want %v", mid.ColorA, 10.0/255)
	}
}
