package scene

import (
	"math"
	"time"

	"github.com/iburimskiy/heartbloom/internal/config"
)

// Clock turns wall-clock frame timestamps into integration steps, capped
// so a stall never produces one huge step.
type Clock struct {
	last time.Time
	max  float64
}

// NewClock starts a clock at now with the default step cap.
func NewClock(now time.Time) *Clock {
	return &Clock{last: now, max: config.MaxFrameStep}
}

// Step returns the seconds since the previous call, at most the cap.
// A timestamp earlier than the previous one yields 0.
func (c *Clock) Step(now time.Time) float64 {
	dt := now.Sub(c.last).Seconds()
	c.last = now
	return math.Max(0, math.Min(c.max, dt))
}

// Interval fires once per elapsed period of wall-clock time, regardless
// of how often it is polled.
type Interval struct {
	period  time.Duration
	next    time.Time
	stopped bool
}

// NewInterval schedules the first firing one period after start.
func NewInterval(start time.Time, period time.Duration) *Interval {
	return &Interval{period: period, next: start.Add(period)}
}

// Due returns how many periods have elapsed up to now since the last call.
func (iv *Interval) Due(now time.Time) int {
	if iv.stopped {
		return 0
	}
	n := 0
	for !now.Before(iv.next) {
		n++
		iv.next = iv.next.Add(iv.period)
	}
	return n
}

// Stop cancels all future firings.
func (iv *Interval) Stop() { iv.stopped = true }
