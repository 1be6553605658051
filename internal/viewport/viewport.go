// Package viewport maps a fixed playfield grid onto a resizable surface.
package viewport

import (
	"fmt"

	"tris/internal/core"
)

// CellSize returns the side of one grid cell in pixels such that the whole
// grid fits on the surface: min(sw/gw, sh/gh). Degenerate inputs yield 0.
func CellSize(sw, sh float64, gw, gh int) float64 {
	if sw <= 0 || sh <= 0 || gw <= 0 || gh <= 0 {
		return 0
	}
	return min(sw/float64(gw), sh/float64(gh))
}

// Mapper tracks the current cell size for a grid of fixed dimensions.
type Mapper struct {
	grid core.Size
	cell float64
}

// New returns a Mapper for a grid of the given dimensions. The cell size is 0
// until the first Resize.
func New(grid core.Size) (*Mapper, error) {
	if grid.W <= 0 || grid.H <= 0 {
		return nil, fmt.Errorf("viewport: %w: got %dx%d", core.ErrInvalidSize, grid.W, grid.H)
	}
	return &Mapper{grid: grid}, nil
}

// Resize recomputes the cell size for new surface dimensions and returns it.
func (m *Mapper) Resize(sw, sh int) float64 {
	m.cell = CellSize(float64(sw), float64(sh), m.grid.W, m.grid.H)
	return m.cell
}

// CellSize returns the cell size computed by the last Resize.
func (m *Mapper) CellSize() float64 { return m.cell }
