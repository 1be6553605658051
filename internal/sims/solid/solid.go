// Package solid provides a playfield with every cell occupied. It is the
// static pattern used to check sizing and outlines.
package solid

import (
	"strconv"

	"tris/internal/core"
)

// Config controls the Solid playfield dimensions.
type Config struct {
	Width  int
	Height int
}

// DefaultConfig returns the standard 10x20 playfield.
func DefaultConfig() Config {
	return Config{Width: 10, Height: 20}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable values keep the default; range checks happen in New.
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
	return c
}

// Solid is a playfield whose cells are all occupied.
type Solid struct {
	*core.Grid
	last float64
}

// New returns a filled playfield.
func New(cfg Config) (*Solid, error) {
	g, err := core.NewFilledGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	return &Solid{Grid: g}, nil
}

// Name returns the simulation identifier.
func (s *Solid) Name() string { return "solid" }

// Advance records the timestamp; the pattern never changes.
func (s *Solid) Advance(ms float64) { s.last = ms }

// LastAdvance returns the timestamp of the most recent Advance.
func (s *Solid) LastAdvance() float64 { return s.last }

func init() {
	core.Register("solid", func(cfg map[string]string) (core.Sim, error) {
		s, err := New(FromMap(cfg))
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}
