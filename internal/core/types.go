package core

import (
	"image/color"
	"sort"
)

// Size describes the dimensions of a playfield grid.
type Size struct {
	W int
	H int
}

// Cells is the read path onto a playfield.
type Cells interface {
	Size() Size
	At(x, y int) bool
}

// Sim is the game-state collaborator that owns the playfield contents. Advance
// receives a monotonic timestamp in milliseconds and is the only writer of the
// grid.
type Sim interface {
	Cells
	Name() string
	Advance(ms float64)
}

// Colorer is implemented by sims that color individual cells. ok is false for
// cells that should use the configured fill color.
type Colorer interface {
	CellColor(x, y int) (c color.Color, ok bool)
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// SimNames lists the registered simulations in sorted order.
func SimNames() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
