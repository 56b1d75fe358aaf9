package term

import (
	"context"
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/heartbloom/internal/config"
	"github.com/iburimskiy/heartbloom/internal/render"
	"github.com/iburimskiy/heartbloom/internal/scene"
)

func TestSurface_ScalesLogicalCanvas(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int
		wantScale  float64
	}{
		{"wide terminal", 200, 30, 0.1},
		{"tall terminal", 80, 100, 0.1},
		{"exact", 80, 30, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSurface(800, 600, tt.cols, tt.rows)
			m := s.Current().Matrix
			if got := m.ScaleFactor(); math.Abs(got-tt.wantScale) > 1e-12 {
				t.Errorf("scale = %v, want %v", got, tt.wantScale)
			}
			// The logical centre maps to the pixel grid centre.
			x, y := m.Apply(400, 300)
			if math.Abs(x-float64(tt.cols)/2) > 1e-9 || math.Abs(y-float64(tt.rows)) > 1e-9 {
				t.Errorf("centre maps to (%v, %v)", x, y)
			}
			if w, h := s.Size(); w != 800 || h != 600 {
				t.Errorf("Size() = %vx%v", w, h)
			}
		})
	}
}

func TestSurface_FillCircle(t *testing.T) {
	s := NewSurface(100, 100, 100, 50)
	s.FillCircle(50, 50, 3, color.NRGBA{R: 255, A: 255})
	if p := s.Pixel(50, 50); p.R != 1 || p.G != 0 {
		t.Errorf("centre pixel = %+v, want red", p)
	}
	if p := s.Pixel(50, 56); p.R != 0 {
		t.Errorf("pixel outside circle = %+v, want black", p)
	}
}

func TestSurface_AlphaAndBlend(t *testing.T) {
	s := NewSurface(10, 10, 10, 5)
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	render.Scoped(s, func() {
		s.SetAlpha(0.5)
		s.FillRect(0, 0, 10, 10, white)
	})
	if p := s.Pixel(3, 3); math.Abs(p.R-0.5) > 1e-9 {
		t.Fatalf("half alpha white over black = %+v", p)
	}

	render.Scoped(s, func() {
		s.SetBlend(render.BlendLighter)
		s.SetAlpha(0.4)
		s.FillRect(0, 0, 10, 10, white)
	})
	if p := s.Pixel(3, 3); math.Abs(p.R-0.9) > 1e-9 {
		t.Errorf("lighter blend = %+v, want 0.9", p)
	}

	render.Scoped(s, func() {
		s.SetBlend(render.BlendLighter)
		s.FillRect(0, 0, 10, 10, white)
	})
	if p := s.Pixel(3, 3); p.R != 1 {
		t.Errorf("lighter blend must saturate, got %+v", p)
	}

	s.Clear()
	if p := s.Pixel(3, 3); p.R != 0 {
		t.Errorf("Clear() left %+v", p)
	}
}

func TestSurface_GradientFadesOut(t *testing.T) {
	s := NewSurface(100, 100, 100, 50)
	stops := []render.Stop{
		{Offset: 0, Color: color.NRGBA{R: 255, A: 255}},
		{Offset: 1, Color: color.NRGBA{}},
	}
	s.FillRadialGradient(50, 50, 0, 40, stops)
	centre := s.Pixel(50, 50).R
	mid := s.Pixel(70, 50).R
	if !(centre > mid && mid > 0) {
		t.Errorf("gradient not fading: centre %v mid %v", centre, mid)
	}
	if p := s.Pixel(95, 50); p.R != 0 {
		t.Errorf("pixel outside gradient = %+v", p)
	}
}

func TestSurface_FillText(t *testing.T) {
	s := NewSurface(20, 20, 20, 10)
	s.Translate(5, 7)
	s.Rotate(1.2)
	s.FillText("ư", 0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	g, ok := s.glyphs[3*20+5]
	if !ok || g.r != 'ư' {
		t.Fatalf("glyph not placed at cell (5, 3): %+v", s.glyphs)
	}
	s.FillText("x", -50, 0, color.NRGBA{A: 255})
	if len(s.glyphs) != 1 {
		t.Errorf("off-screen glyph was placed")
	}
}

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("sim.Init() = %v", err)
	}
	sim.SetSize(cols, rows)
	t.Cleanup(sim.Fini)
	return sim
}

func newLoop() *scene.Loop {
	return scene.NewLoop(scene.New(scene.NewRand(1), scene.DefaultRingTexts))
}

func TestRun_DrawsUntilCancelled(t *testing.T) {
	sim := newSimScreen(t, 80, 30)
	loop := newLoop()
	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()

	if err := run(ctx, sim, loop, 800, 600); err != nil {
		t.Fatalf("run() = %v", err)
	}
	if !loop.Stopped() {
		t.Error("loop not stopped after run returned")
	}
	if loop.Scene.Len() < config.BloomCount {
		t.Errorf("Len() = %d, want at least the initial bloom", loop.Scene.Len())
	}

	cells, _, _ := sim.GetContents()
	blocks := 0
	for _, c := range cells {
		if len(c.Runes) > 0 && c.Runes[0] == upperHalf {
			blocks++
		}
	}
	if blocks == 0 {
		t.Error("no frame was flushed to the screen")
	}
}

func TestRun_ClickThenQuit(t *testing.T) {
	sim := newSimScreen(t, 80, 30)
	loop := newLoop()

	sim.InjectMouse(10, 5, tcell.Button1, tcell.ModNone)
	sim.InjectMouse(10, 5, tcell.ButtonNone, tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	done := make(chan error, 1)
	go func() { done <- run(context.Background(), sim, loop, 800, 600) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run() = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run() did not return after q")
	}
	if want := config.BloomCount + config.ClickCount; loop.Scene.Len() != want {
		t.Errorf("Len() = %d, want %d", loop.Scene.Len(), want)
	}
}
