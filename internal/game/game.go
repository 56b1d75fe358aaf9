// Package game hosts the heart bloom in an ebiten window, with an optional
// looping soundtrack whose beats add extra blooms.
package game

import (
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/heartbloom/internal/config"
	"github.com/iburimskiy/heartbloom/internal/scene"
)

type game struct {
	settings config.Settings
	loop     *scene.Loop
	surface  *Surface

	// audio
	audio *soundtrack
	beats *beatDetector

	// input edge detection
	touchIDs []ebiten.TouchID

	lastErr error
	now     func() time.Time
}

// newGame builds the window game around loop. The initial bloom happens here.
func newGame(settings config.Settings, loop *scene.Loop) (*game, error) {
	surface, err := NewSurface()
	if err != nil {
		return nil, err
	}
	g := &game{
		settings: settings,
		loop:     loop,
		surface:  surface,
		audio:    &soundtrack{},
		beats:    newBeatDetector(),
		now:      time.Now,
	}
	if settings.Soundtrack != "" {
		if err := g.audio.load(settings.Soundtrack); err != nil {
			// Non-fatal, the bloom runs without sound
			log.Printf("[Audio] %v", err)
			g.lastErr = err
		}
	}
	g.loop.Start(g.now(), float64(settings.Width), float64(settings.Height))
	return g, nil
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.shutdown()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.audio.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		if err := g.audio.openDialog(); err != nil {
			log.Printf("[Audio] %v", err)
			g.lastErr = err
		} else {
			g.lastErr = nil
		}
	}

	if g.clicked() {
		g.loop.Click()
	}

	if g.audio.playing() && g.beats.observe(g.audio.level(), g.now()) {
		g.loop.Beat()
	}
	return nil
}

// clicked reports a new left click or touch inside the canvas.
func (g *game) clicked() bool {
	bounds := image.Rect(0, 0, g.settings.Width, g.settings.Height)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if image.Pt(ebiten.CursorPosition()).In(bounds) {
			return true
		}
	}
	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		if image.Pt(ebiten.TouchPosition(id)).In(bounds) {
			return true
		}
	}
	return false
}

func (g *game) Draw(screen *ebiten.Image) {
	g.surface.Begin(screen)
	g.loop.Tick(g.now(), g.surface)

	ebitenutil.DebugPrintAt(screen, g.status(), 12, 12)
}

// status is the one-line help and state shown in the corner.
func (g *game) status() string {
	status := fmt.Sprintf("%d particles | ", g.loop.Scene.Len())
	switch {
	case !g.audio.loaded():
		status += "O: open music"
	case g.audio.paused:
		status += fmt.Sprintf("Paused %s %s - Space to play", g.audio.name, formatDuration(g.audio.position()))
	default:
		status += fmt.Sprintf("Playing %s %s - Space to pause", g.audio.name, formatDuration(g.audio.position()))
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	return status
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.settings.Width, g.settings.Height
}

func (g *game) shutdown() {
	g.loop.Stop()
	g.audio.close()
	log.Printf("[Scene] stopped with %d live particles", g.loop.Scene.Len())
}

// Run opens the window and blocks until it is closed.
func Run(settings config.Settings, loop *scene.Loop) error {
	ebiten.SetWindowSize(settings.Width, settings.Height)
	ebiten.SetWindowTitle(settings.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g, err := newGame(settings, loop)
	if err != nil {
		return err
	}
	err = ebiten.RunGame(g)
	if !loop.Stopped() {
		// Window closed by the user rather than Esc/Q
		g.shutdown()
	}
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
