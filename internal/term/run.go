package term

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/heartbloom/internal/scene"
)

const frameInterval = time.Second / 60

// Run drives loop on the terminal until ctx is cancelled or the user
// quits with Esc, q or Ctrl-C. A left click anywhere blooms.
func Run(ctx context.Context, loop *scene.Loop, w, h float64) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	return run(ctx, screen, loop, w, h)
}

func run(ctx context.Context, screen tcell.Screen, loop *scene.Loop, w, h float64) error {
	screen.EnableMouse(tcell.MouseButtonEvents)
	screen.HideCursor()
	screen.Clear()

	cols, rows := screen.Size()
	surface := NewSurface(w, h, cols, rows)
	loop.Start(time.Now(), w, h)
	defer loop.Stop()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	var buttons tcell.ButtonMask
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuit(ev) {
					log.Printf("[Term] quit with %d live particles", loop.Scene.Len())
					return nil
				}
			case *tcell.EventMouse:
				pressed := ev.Buttons() & tcell.Button1
				if pressed != 0 && buttons&tcell.Button1 == 0 {
					loop.Click()
				}
				buttons = ev.Buttons()
			case *tcell.EventResize:
				cols, rows := ev.Size()
				surface.Resize(cols, rows)
				screen.Sync()
			}
		case now := <-ticker.C:
			surface.Begin()
			loop.Tick(now, surface)
			surface.Flush(screen)
			screen.Show()
		}
	}
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
