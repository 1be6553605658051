package loop

import "time"

// ManualTimer is a Timer that fires only when Fire is called. It drives
// headless runs where ticks are counted rather than timed.
type ManualTimer struct {
	period time.Duration
	fn     func()
	armed  int
}

// Every records fn as the active callback.
func (m *ManualTimer) Every(period time.Duration, fn func()) func() {
	m.period = period
	m.fn = fn
	m.armed++
	gen := m.armed
	return func() {
		if m.armed == gen {
			m.fn = nil
		}
	}
}

// Fire invokes the active callback and reports whether one was armed.
func (m *ManualTimer) Fire() bool {
	if m.fn == nil {
		return false
	}
	m.fn()
	return true
}

// Active reports whether a callback is armed.
func (m *ManualTimer) Active() bool { return m.fn != nil }

// Period returns the period of the last Every call.
func (m *ManualTimer) Period() time.Duration { return m.period }

// ManualFrames is a FrameRequester whose refreshes are triggered by Fire.
type ManualFrames struct {
	fn  func(ts float64)
	seq int
}

// RequestFrame arms fn for the next Fire.
func (m *ManualFrames) RequestFrame(fn func(ts float64)) func() {
	m.fn = fn
	m.seq++
	seq := m.seq
	return func() {
		if m.seq == seq {
			m.fn = nil
		}
	}
}

// Fire runs the pending frame callback, if any, with timestamp ts.
func (m *ManualFrames) Fire(ts float64) bool {
	fn := m.fn
	if fn == nil {
		return false
	}
	m.fn = nil
	fn(ts)
	return true
}

// Pending reports whether a frame callback is armed.
func (m *ManualFrames) Pending() bool { return m.fn != nil }
