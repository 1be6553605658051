// Package loop sequences simulation ticks and render passes on top of host
// scheduling primitives.
package loop

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRate is the tick rate, in Hz, used when none is configured.
const DefaultRate = 60

var (
	// ErrInvalidRate is returned for non-positive tick rates.
	ErrInvalidRate = errors.New("tick rate must be positive")
	// ErrNoTimer is returned when no host timer is provided.
	ErrNoTimer = errors.New("no host timer")
)

// Strategy selects how ticks and renders are scheduled.
type Strategy int

const (
	// Decoupled advances on the timer and renders on the refresh callback chain.
	Decoupled Strategy = iota
	// FixedInterval advances and then renders from the same timer callback.
	FixedInterval
)

func (s Strategy) String() string {
	switch s {
	case Decoupled:
		return "decoupled"
	case FixedInterval:
		return "fixed"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps a strategy name to its value.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "decoupled", "raf":
		return Decoupled, nil
	case "fixed", "interval":
		return FixedInterval, nil
	}
	return 0, fmt.Errorf("unknown loop strategy %q", name)
}

// Advancer is the simulation step driven by the controller.
type Advancer interface {
	Advance(ms float64)
}

// Options configures a Controller.
type Options struct {
	// Rate is the target tick rate in Hz.
	Rate     float64
	Strategy Strategy
	Timer    Timer
	// Frames may be nil, in which case Decoupled falls back to FixedInterval.
	Frames FrameRequester
	// Clock returns monotonic milliseconds; MonotonicClock is used when nil.
	Clock func() float64
}

// Stats counts controller activity since construction.
type Stats struct {
	Ticks     uint64
	Coalesced uint64
	Frames    uint64
	Renders   uint64
	LastTick  float64
}

// Controller drives an Advancer and a render function. Advance is never run
// reentrantly, and a render never overlaps an advance.
type Controller struct {
	sim      Advancer
	render   func()
	timer    Timer
	frames   FrameRequester
	strategy Strategy
	period   time.Duration
	clock    func() float64

	mu          sync.Mutex
	running     bool
	gen         uint64
	stopTimer   func()
	cancelFrame func()
	last        float64

	// step serializes advance and render.
	step sync.Mutex

	ticks     atomic.Uint64
	coalesced atomic.Uint64
	frameRuns atomic.Uint64
	renders   atomic.Uint64
}

// NewController validates opts and returns a stopped controller.
func NewController(sim Advancer, render func(), opts Options) (*Controller, error) {
	if sim == nil {
		return nil, errors.New("loop: nil simulation")
	}
	if opts.Rate <= 0 {
		return nil, fmt.Errorf("loop: %w: %v", ErrInvalidRate, opts.Rate)
	}
	if opts.Timer == nil {
		return nil, fmt.Errorf("loop: %w", ErrNoTimer)
	}
	if render == nil {
		render = func() {}
	}
	strategy := opts.Strategy
	if strategy == Decoupled && opts.Frames == nil {
		log.Printf("loop: no refresh callback available, using %s strategy", FixedInterval)
		strategy = FixedInterval
	}
	clock := opts.Clock
	if clock == nil {
		clock = MonotonicClock()
	}
	return &Controller{
		sim:      sim,
		render:   render,
		timer:    opts.Timer,
		frames:   opts.Frames,
		strategy: strategy,
		period:   time.Duration(float64(time.Second) / opts.Rate),
		clock:    clock,
	}, nil
}

// Strategy returns the strategy in effect.
func (c *Controller) Strategy() Strategy { return c.strategy }

// Period returns the tick period.
func (c *Controller) Period() time.Duration { return c.period }

// Running reports whether the controller is started.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Start arms the tick timer and, for the decoupled strategy, the render chain.
// Starting a running controller is a no-op. A stopped controller can be
// started again.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	stop := c.timer.Every(c.period, func() { c.tick(gen) })
	if !c.adopt(gen, func() { c.stopTimer = stop }) {
		stop()
		return
	}
	if c.strategy == Decoupled {
		c.armFrame(gen)
	}
}

// Stop cancels the timer and any pending frame. After Stop returns no new
// advance or render is started by this controller until the next Start.
func (c *Controller) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	c.gen++
	stop, cancel := c.stopTimer, c.cancelFrame
	c.stopTimer, c.cancelFrame = nil, nil
	c.mu.Unlock()

	if stop != nil {
		stop()
	}
	if cancel != nil {
		cancel()
	}
}

// RenderNow renders immediately, outside of the regular cadence.
func (c *Controller) RenderNow() { c.RenderAfter(nil) }

// RenderAfter runs prepare and then renders, with no advance or render in
// between. Hosts use it to swap state the render reads, such as the surface.
func (c *Controller) RenderAfter(prepare func()) {
	c.step.Lock()
	defer c.step.Unlock()
	if prepare != nil {
		prepare()
	}
	c.draw()
}

// Do runs fn while no advance or render is in progress.
func (c *Controller) Do(fn func()) {
	c.step.Lock()
	defer c.step.Unlock()
	fn()
}

// Stats returns a snapshot of the activity counters.
func (c *Controller) Stats() Stats {
	c.mu.Lock()
	last := c.last
	c.mu.Unlock()
	return Stats{
		Ticks:     c.ticks.Load(),
		Coalesced: c.coalesced.Load(),
		Frames:    c.frameRuns.Load(),
		Renders:   c.renders.Load(),
		LastTick:  last,
	}
}

func (c *Controller) tick(gen uint64) {
	if !c.step.TryLock() {
		c.coalesced.Add(1)
		return
	}
	defer c.step.Unlock()

	ts, ok := c.stamp(gen)
	if !ok {
		return
	}
	c.sim.Advance(ts)
	c.ticks.Add(1)
	if c.strategy == FixedInterval && c.live(gen) {
		c.draw()
	}
}

func (c *Controller) frame(gen uint64) func(ts float64) {
	return func(float64) {
		if !c.live(gen) {
			return
		}
		c.step.Lock()
		c.draw()
		c.step.Unlock()
		c.frameRuns.Add(1)
		c.armFrame(gen)
	}
}

func (c *Controller) armFrame(gen uint64) {
	if !c.live(gen) {
		return
	}
	cancel := c.frames.RequestFrame(c.frame(gen))
	if !c.adopt(gen, func() { c.cancelFrame = cancel }) && cancel != nil {
		cancel()
	}
}

// adopt runs set under the lock if gen is still the live generation.
func (c *Controller) adopt(gen uint64, set func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running || c.gen != gen {
		return false
	}
	set()
	return true
}

func (c *Controller) live(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running && c.gen == gen
}

// stamp returns a non-decreasing timestamp for a tick of generation gen.
func (c *Controller) stamp(gen uint64) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running || c.gen != gen {
		return 0, false
	}
	ts := c.clock()
	if ts < c.last {
		ts = c.last
	}
	c.last = ts
	return ts, true
}

func (c *Controller) draw() {
	c.render()
	c.renders.Add(1)
}
