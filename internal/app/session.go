package app

import (
	"errors"
	"fmt"

	"tris/internal/core"
	"tris/internal/loop"
	"tris/internal/render"
	"tris/internal/viewport"
)

// ErrNoSurface is returned when a session is created without a drawing surface.
var ErrNoSurface = errors.New("no drawing surface")

// Host bundles the display and scheduling primitives a session runs on.
type Host struct {
	Surface render.Surface
	Timer   loop.Timer
	// Frames is optional; without it the loop uses the fixed-interval strategy.
	Frames loop.FrameRequester
	Clock  func() float64
}

// Session owns one game session: the playfield collaborator, the viewport
// mapping, the renderer and the loop that drives them. It is not safe for use
// from multiple goroutines except through the loop itself.
type Session struct {
	sim      core.Sim
	surface  render.Surface
	mapper   *viewport.Mapper
	renderer *render.Renderer
	loop     *loop.Controller
	closed   bool
}

// NewSession wires sim onto host. Configuration errors are returned before
// anything is scheduled.
func NewSession(cfg *Config, sim core.Sim, host Host) (*Session, error) {
	if sim == nil {
		return nil, errors.New("session: nil sim")
	}
	if host.Surface == nil {
		return nil, fmt.Errorf("session: %w", ErrNoSurface)
	}
	mapper, err := viewport.New(sim.Size())
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	s := &Session{
		sim:      sim,
		surface:  host.Surface,
		mapper:   mapper,
		renderer: render.NewRenderer(cfg.Style()),
	}
	ctrl, err := loop.NewController(sim, s.Render, loop.Options{
		Rate:     cfg.TPS,
		Strategy: cfg.LoopStrategy(),
		Timer:    host.Timer,
		Frames:   host.Frames,
		Clock:    host.Clock,
	})
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	s.loop = ctrl
	return s, nil
}

// Start lays the playfield out for the current surface size, draws the first
// frame and starts the loop.
func (s *Session) Start() {
	if s.closed {
		return
	}
	s.relayout()
	s.loop.Start()
}

// Stop halts the loop. The session can be started again.
func (s *Session) Stop() { s.loop.Stop() }

// Close ends the session.
func (s *Session) Close() {
	s.loop.Stop()
	s.closed = true
}

// Resize handles a host window size change: the surface backing store follows
// the window, the cell size is recomputed from the new surface size and a
// frame is drawn immediately.
func (s *Session) Resize(w, h int) {
	s.loop.RenderAfter(func() {
		if r, ok := s.surface.(render.Resizer); ok {
			r.Resize(w, h)
		}
		s.mapper.Resize(s.surface.Size())
	})
}

func (s *Session) relayout() {
	s.loop.RenderAfter(func() {
		s.mapper.Resize(s.surface.Size())
	})
}

// Render draws the current playfield with the current cell size.
func (s *Session) Render() {
	s.renderer.Render(s.surface, s.sim, s.mapper.CellSize())
}

// CellSize returns the current pixels per cell.
func (s *Session) CellSize() float64 {
	var cell float64
	s.loop.Do(func() { cell = s.mapper.CellSize() })
	return cell
}

// Sim returns the playfield collaborator.
func (s *Session) Sim() core.Sim { return s.sim }

// Surface returns the drawing surface.
func (s *Session) Surface() render.Surface { return s.surface }

// Running reports whether the loop is started.
func (s *Session) Running() bool { return s.loop.Running() }

// Strategy returns the loop strategy in effect.
func (s *Session) Strategy() loop.Strategy { return s.loop.Strategy() }

// Stats returns loop statistics.
func (s *Session) Stats() loop.Stats { return s.loop.Stats() }
