package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridRejectsNonPositiveSize(t *testing.T) {
	for _, tc := range []struct{ w, h int }{{0, 20}, {10, 0}, {-1, 5}, {3, -2}} {
		g, err := NewGrid(tc.w, tc.h)
		assert.Nil(t, g)
		assert.True(t, errors.Is(err, ErrInvalidSize), "%dx%d: %v", tc.w, tc.h, err)
	}
}

func TestFilledGridOccupiesEveryCell(t *testing.T) {
	g, err := NewFilledGrid(10, 20)
	require.NoError(t, err)

	assert.Equal(t, Size{W: 10, H: 20}, g.Size())
	assert.Equal(t, 200, g.Occupied())
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if !g.At(x, y) {
				t.Fatalf("cell (%d,%d) not occupied", x, y)
			}
		}
	}
}

func TestOutOfRangeAccessPanics(t *testing.T) {
	g, err := NewGrid(4, 3)
	require.NoError(t, err)

	cases := [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {10, 10}}
	for _, c := range cases {
		func() {
			defer func() {
				r := recover()
				require.NotNil(t, r, "expected panic for (%d,%d)", c[0], c[1])
				oor, ok := r.(OutOfRangeError)
				require.True(t, ok, "panic value %T", r)
				assert.Equal(t, c[0], oor.X)
				assert.Equal(t, c[1], oor.Y)
				assert.Equal(t, Size{W: 4, H: 3}, oor.Size)
			}()
			g.At(c[0], c[1])
		}()
	}
	assert.Panics(t, func() { g.Set(4, 0, true) })
}

func TestSetDoesNotChangeDimensions(t *testing.T) {
	g, err := NewGrid(16, 30)
	require.NoError(t, err)

	g.Set(0, 0, true)
	g.Set(15, 29, true)
	g.Fill(true)
	g.Clear()

	assert.Equal(t, 16, g.Width())
	assert.Equal(t, 30, g.Height())
	assert.Equal(t, 0, g.Occupied())
}

func TestShiftDownThrowsLine(t *testing.T) {
	g, err := NewGrid(3, 4)
	require.NoError(t, err)

	g.Set(1, 1, true)
	for x := 0; x < 3; x++ {
		g.Set(x, 2, true)
	}
	g.Set(0, 3, true)
	require.True(t, g.RowFull(2))

	g.ShiftDown(2)

	assert.False(t, g.RowFull(2))
	assert.True(t, g.At(1, 2), "row above the removed line moves down")
	assert.False(t, g.At(1, 1))
	assert.True(t, g.At(0, 3), "rows below the removed line stay put")
	assert.Equal(t, 2, g.Occupied())
}
