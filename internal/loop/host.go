package loop

import (
	"sync"
	"sync/atomic"
	"time"
)

// Timer is a repeating host timer. Every arms fn to fire once per period until
// the returned stop function is called.
type Timer interface {
	Every(period time.Duration, fn func()) (stop func())
}

// FrameRequester is a refresh-synchronized, one-shot callback primitive.
// RequestFrame arms fn for the next display refresh; fn receives a timestamp in
// milliseconds. Implementations must not call fn before RequestFrame returns.
type FrameRequester interface {
	RequestFrame(fn func(ts float64)) (cancel func())
}

// Dispatch hands fn to the host's event thread. It reports false when the host
// is no longer accepting work.
type Dispatch func(fn func()) bool

// TickerTimer implements Timer with a goroutine per armed callback. Ticks are
// handed to the host through dispatch; while a dispatched tick has not run
// yet, further ticks are dropped rather than queued.
type TickerTimer struct {
	dispatch Dispatch
}

// NewTickerTimer returns a TickerTimer that runs callbacks through dispatch.
// A nil dispatch runs callbacks on the ticker goroutine.
func NewTickerTimer(dispatch Dispatch) *TickerTimer {
	if dispatch == nil {
		dispatch = func(fn func()) bool { fn(); return true }
	}
	return &TickerTimer{dispatch: dispatch}
}

// Every starts a ticker goroutine firing fn once per period.
func (t *TickerTimer) Every(period time.Duration, fn func()) func() {
	if period <= 0 {
		period = time.Second / DefaultRate
	}
	done := make(chan struct{})
	var pending atomic.Bool
	var stopped atomic.Bool
	run := func() {
		pending.Store(false)
		if !stopped.Load() {
			fn()
		}
	}
	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if !pending.CompareAndSwap(false, true) {
					continue
				}
				if !t.dispatch(run) {
					pending.Store(false)
				}
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			stopped.Store(true)
			close(done)
		})
	}
}

// AfterFrames emulates a refresh-synchronized callback with a fixed frame
// interval for hosts that have no vsync signal.
type AfterFrames struct {
	interval time.Duration
	dispatch Dispatch
	clock    func() float64
}

// NewAfterFrames returns a FrameRequester firing once per interval. Callbacks
// are handed to dispatch and receive timestamps from clock.
func NewAfterFrames(interval time.Duration, dispatch Dispatch, clock func() float64) *AfterFrames {
	if dispatch == nil {
		dispatch = func(fn func()) bool { fn(); return true }
	}
	if clock == nil {
		clock = MonotonicClock()
	}
	return &AfterFrames{interval: interval, dispatch: dispatch, clock: clock}
}

// RequestFrame arms fn for the next emulated refresh. A refresh the host
// refuses to accept is retried one interval later.
func (a *AfterFrames) RequestFrame(fn func(ts float64)) func() {
	var cancelled atomic.Bool
	var fire func()
	fire = func() {
		if cancelled.Load() {
			return
		}
		ok := a.dispatch(func() {
			if !cancelled.Load() {
				fn(a.clock())
			}
		})
		if !ok {
			time.AfterFunc(a.interval, fire)
		}
	}
	timer := time.AfterFunc(a.interval, fire)
	return func() {
		cancelled.Store(true)
		timer.Stop()
	}
}

// MonotonicClock returns a clock reporting milliseconds since its creation.
func MonotonicClock() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start)) / float64(time.Millisecond)
	}
}
