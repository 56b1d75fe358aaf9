package scene

import (
	"log"
	"time"

	"github.com/iburimskiy/heartbloom/internal/config"
	"github.com/iburimskiy/heartbloom/internal/render"
)

// Loop drives a Scene from a host's refresh callback: it owns the frame
// clock and the periodic trickle, and routes clicks into the scene.
type Loop struct {
	Scene *Scene

	clock   *Clock
	trickle *Interval
	w, h    float64
	stopped bool
}

// NewLoop wraps scene; nothing spawns until Start.
func NewLoop(scene *Scene) *Loop {
	return &Loop{Scene: scene}
}

// Start performs the initial bloom on a w×h surface and arms the clock
// and the trickle timer at now.
func (l *Loop) Start(now time.Time, w, h float64) {
	l.w, l.h = w, h
	l.clock = NewClock(now)
	l.trickle = NewInterval(now, config.TricklePeriod)
	l.stopped = false
	l.Scene.Bloom(w, h)
	log.Printf("[Scene] initial bloom: %d particles on %.0fx%.0f", l.Scene.Len(), w, h)
}

// Tick runs one refresh: due trickles first, then one frame drawn on surf.
func (l *Loop) Tick(now time.Time, surf render.Surface) {
	if l.stopped || l.clock == nil {
		return
	}
	l.w, l.h = surf.Size()
	for n := l.trickle.Due(now); n > 0; n-- {
		l.Scene.Trickle(l.w, l.h)
	}
	l.Scene.Frame(surf, l.clock.Step(now))
}

// Click handles a pointer click anywhere on the surface.
func (l *Loop) Click() {
	if l.stopped {
		return
	}
	l.Scene.Click(l.w, l.h)
}

// Beat handles a soundtrack beat.
func (l *Loop) Beat() {
	if l.stopped {
		return
	}
	l.Scene.Beat(l.w, l.h)
}

// Stop cancels the trickle timer and turns further ticks into no-ops.
func (l *Loop) Stop() {
	if l.trickle != nil {
		l.trickle.Stop()
	}
	l.stopped = true
}

// Stopped reports whether Stop was called.
func (l *Loop) Stopped() bool { return l.stopped }
