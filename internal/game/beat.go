package game

import (
	"time"

	"github.com/iburimskiy/heartbloom/internal/config"
)

// beatDetector turns a smoothed loudness signal into discrete beats: a beat
// fires when the level rises through BeatOn, and the detector re-arms only
// after the level falls below BeatOff and the cooldown has passed.
type beatDetector struct {
	armed bool
	last  time.Time
}

func newBeatDetector() *beatDetector {
	return &beatDetector{armed: true}
}

func (b *beatDetector) observe(level float64, now time.Time) bool {
	if level < config.BeatOff {
		b.armed = true
		return false
	}
	if !b.armed || level < config.BeatOn {
		return false
	}
	if !b.last.IsZero() && now.Sub(b.last) < config.BeatCooldown {
		return false
	}
	b.armed = false
	b.last = now
	return true
}
