// Package stack is a demo playfield collaborator: single blocks drop down
// random columns, settle on the stack and full rows are thrown away. It stands
// in for a real game engine when running the viewer on its own.
package stack

import (
	"image/color"
	"strconv"

	"tris/internal/core"
)

// Config controls the Stack playfield.
type Config struct {
	Width  int
	Height int
	Seed   int64
	// DropMs is the time between two downward steps of the falling block.
	DropMs float64
	// MaxCatchUp bounds the steps replayed by a single Advance after a stall.
	MaxCatchUp int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Width: 10, Height: 20, Seed: 42, DropMs: 60, MaxCatchUp: 8}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["drop_ms"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.DropMs = parsed
		}
	}
	if v, ok := cfg["max_catch_up"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.MaxCatchUp = parsed
		}
	}
	return c
}

// palette maps block ids to colors; id 0 is never drawn.
var palette = [...]color.RGBA{
	{R: 51, G: 26, B: 26, A: 255},
	{R: 51, G: 128, B: 77, A: 255},
	{R: 102, G: 51, B: 26, A: 255},
	{R: 102, G: 51, B: 128, A: 255},
	{R: 51, G: 26, B: 153, A: 255},
	{R: 153, G: 51, B: 26, A: 255},
	{R: 51, G: 153, B: 77, A: 255},
	{R: 179, G: 51, B: 153, A: 255},
}

// Stack drops single blocks onto a growing pile.
type Stack struct {
	*core.Grid
	cfg Config
	rng *core.RNG
	ids []uint8

	started  bool
	lastStep float64

	x, y int
	id   uint8

	lines  int
	resets int
}

// New returns an empty Stack playfield.
func New(cfg Config) (*Stack, error) {
	g, err := core.NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	if cfg.DropMs <= 0 {
		cfg.DropMs = DefaultConfig().DropMs
	}
	if cfg.MaxCatchUp <= 0 {
		cfg.MaxCatchUp = DefaultConfig().MaxCatchUp
	}
	return &Stack{
		Grid: g,
		cfg:  cfg,
		rng:  core.NewRNG(cfg.Seed),
		ids:  make([]uint8, cfg.Width*cfg.Height),
	}, nil
}

// Name returns the simulation identifier.
func (s *Stack) Name() string { return "stack" }

// Lines returns the number of rows thrown away so far.
func (s *Stack) Lines() int { return s.lines }

// Resets returns how often the pile reached the top and was cleared.
func (s *Stack) Resets() int { return s.resets }

// CellColor returns the color of the block occupying (x, y).
func (s *Stack) CellColor(x, y int) (color.Color, bool) {
	id := s.ids[s.Index(x, y)]
	if id == 0 {
		return nil, false
	}
	return palette[id], true
}

// Advance moves the falling block by the number of drop steps elapsed since
// the previous step.
func (s *Stack) Advance(ms float64) {
	if !s.started {
		s.started = true
		s.lastStep = ms
		s.spawn()
		return
	}
	steps := int((ms - s.lastStep) / s.cfg.DropMs)
	if steps <= 0 {
		return
	}
	if steps > s.cfg.MaxCatchUp {
		steps = s.cfg.MaxCatchUp
		s.lastStep = ms
	} else {
		s.lastStep += float64(steps) * s.cfg.DropMs
	}
	for i := 0; i < steps; i++ {
		s.fall()
	}
}

func (s *Stack) fall() {
	if s.y+1 < s.Height() && !s.At(s.x, s.y+1) {
		s.put(s.x, s.y, false, 0)
		s.y++
		s.put(s.x, s.y, true, s.id)
		return
	}
	s.throwLines()
	s.spawn()
}

func (s *Stack) spawn() {
	s.x = s.rng.IntN(s.Width())
	s.y = 0
	s.id = 1 + s.rng.Uint8n(uint8(len(palette)-1))
	if s.At(s.x, s.y) {
		s.Clear()
		clear(s.ids)
		s.resets++
	}
	s.put(s.x, s.y, true, s.id)
}

func (s *Stack) throwLines() {
	for y := s.Height() - 1; y >= 0; {
		if !s.RowFull(y) {
			y--
			continue
		}
		s.ShiftDown(y)
		w := s.Width()
		end := s.Index(0, y) + w
		copy(s.ids[w:end], s.ids[:end-w])
		clear(s.ids[:w])
		s.lines++
	}
}

func (s *Stack) put(x, y int, occupied bool, id uint8) {
	s.Set(x, y, occupied)
	s.ids[s.Index(x, y)] = id
}

func init() {
	core.Register("stack", func(cfg map[string]string) (core.Sim, error) {
		s, err := New(FromMap(cfg))
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}
