package render

import (
	"image/color"

	"tris/internal/core"
)

// Style holds the colors used to draw playfield cells.
type Style struct {
	Fill         color.Color
	Outline      color.Color
	OutlineWidth float64
	// Empty paints unoccupied cells when set.
	Empty color.Color
}

// DefaultStyle returns the dark fill, pale outline look of the web build.
func DefaultStyle() Style {
	return Style{
		Fill:         color.RGBA{R: 20, G: 20, B: 30, A: 255},
		Outline:      color.RGBA{R: 170, G: 190, B: 180, A: 255},
		OutlineWidth: 2,
	}
}

// Renderer draws the occupied cells of a playfield onto a Surface.
type Renderer struct {
	style Style
}

// NewRenderer returns a renderer using the provided style.
func NewRenderer(style Style) *Renderer {
	return &Renderer{style: style}
}

// Style returns the renderer style.
func (r *Renderer) Style() Style { return r.style }

// Render clears the surface and draws every occupied cell as a filled,
// outlined square of side cellSize whose top-left corner sits at
// (x*cellSize, y*cellSize). Nothing is drawn when the surface has no area, the
// grid has no cells or cellSize is not positive.
func (r *Renderer) Render(s Surface, cells core.Cells, cellSize float64) {
	if s == nil || cells == nil || cellSize <= 0 {
		return
	}
	sw, sh := s.Size()
	size := cells.Size()
	if sw <= 0 || sh <= 0 || size.W <= 0 || size.H <= 0 {
		return
	}

	s.ClearRect(0, 0, float64(sw), float64(sh))

	colorer, _ := cells.(core.Colorer)
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			px, py := float64(x)*cellSize, float64(y)*cellSize
			if !cells.At(x, y) {
				if r.style.Empty != nil {
					s.FillRect(px, py, cellSize, cellSize, r.style.Empty)
				}
				continue
			}
			fill := r.style.Fill
			if colorer != nil {
				if c, ok := colorer.CellColor(x, y); ok {
					fill = c
				}
			}
			if fill != nil {
				s.FillRect(px, py, cellSize, cellSize, fill)
			}
			if r.style.Outline != nil && r.style.OutlineWidth > 0 {
				s.StrokeRect(px, py, cellSize, cellSize, r.style.OutlineWidth, r.style.Outline)
			}
		}
	}

	if f, ok := s.(Flusher); ok {
		f.Flush()
	}
}
