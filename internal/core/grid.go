package core

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is returned when a grid is requested with non-positive
// dimensions.
var ErrInvalidSize = errors.New("grid dimensions must be positive")

// OutOfRangeError is the panic value raised by cell access outside the grid.
type OutOfRangeError struct {
	X, Y int
	Size Size
}

func (e OutOfRangeError) Error() string {
	return fmt.Sprintf("cell (%d,%d) outside %dx%d grid", e.X, e.Y, e.Size.W, e.Size.H)
}

// Grid stores a fixed-size 2D occupancy grid in row-major order. The
// dimensions never change after construction; only cell contents do.
type Grid struct {
	w, h int
	data []bool
}

// NewGrid allocates an empty grid with the given dimensions.
func NewGrid(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, w, h)
	}
	return &Grid{w: w, h: h, data: make([]bool, w*h)}, nil
}

// NewFilledGrid allocates a grid with every cell occupied.
func NewFilledGrid(w, h int) (*Grid, error) {
	g, err := NewGrid(w, h)
	if err != nil {
		return nil, err
	}
	g.Fill(true)
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// Size returns the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.w, H: g.h} }

// Index returns the linear slice index for coordinates (x, y). It panics with
// an OutOfRangeError when the coordinates fall outside the grid.
func (g *Grid) Index(x, y int) int {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		panic(OutOfRangeError{X: x, Y: y, Size: g.Size()})
	}
	return y*g.w + x
}

// At reports whether the cell at (x, y) is occupied.
func (g *Grid) At(x, y int) bool { return g.data[g.Index(x, y)] }

// Set updates the cell at (x, y).
func (g *Grid) Set(x, y int, v bool) { g.data[g.Index(x, y)] = v }

// Fill sets every cell to v.
func (g *Grid) Fill(v bool) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clear empties the grid.
func (g *Grid) Clear() { g.Fill(false) }

// Occupied counts the occupied cells.
func (g *Grid) Occupied() int {
	n := 0
	for _, c := range g.data {
		if c {
			n++
		}
	}
	return n
}

// RowFull reports whether every cell in row y is occupied.
func (g *Grid) RowFull(y int) bool {
	start := g.Index(0, y)
	for _, c := range g.data[start : start+g.w] {
		if !c {
			return false
		}
	}
	return true
}

// ShiftDown removes row y and moves every row above it down by one, leaving
// an empty row at the top.
func (g *Grid) ShiftDown(y int) {
	end := g.Index(0, y) + g.w
	copy(g.data[g.w:end], g.data[:end-g.w])
	for i := 0; i < g.w; i++ {
		g.data[i] = false
	}
}
