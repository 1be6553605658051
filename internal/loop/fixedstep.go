package loop

import "time"

// FixedStep gates a host's own update cadence down to a fixed tick period.
// It never owes more than one step: time lost to a stall is dropped instead of
// being replayed as a burst of ticks.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep firing once per period. The first call
// to ShouldStep fires immediately.
func NewFixedStep(period time.Duration) *FixedStep {
	fs := &FixedStep{}
	fs.SetPeriod(period)
	fs.accumulator = fs.step
	return fs
}

// SetPeriod changes the tick period.
func (f *FixedStep) SetPeriod(period time.Duration) {
	if period <= 0 {
		period = time.Second / DefaultRate
	}
	f.step = period
}

// Period returns the tick period.
func (f *FixedStep) Period() time.Duration { return f.step }

// ShouldStep reports whether a tick is due at now.
func (f *FixedStep) ShouldStep(now time.Time) bool {
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	if delta < 0 {
		delta = 0
	}
	f.last = now
	f.accumulator += delta
	if f.accumulator < f.step {
		return false
	}
	f.accumulator -= f.step
	if f.accumulator > f.step {
		f.accumulator = f.step
	}
	return true
}
