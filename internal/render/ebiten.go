//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenSurface draws onto an offscreen canvas that is blitted to the screen
// each frame. Drawing can therefore happen outside of ebiten's Draw callback.
type EbitenSurface struct {
	canvas *ebiten.Image
}

// NewEbitenSurface returns a surface without a canvas. The canvas is allocated
// by the first Resize with a positive area.
func NewEbitenSurface() *EbitenSurface {
	return &EbitenSurface{}
}

// Resize reallocates the canvas to match the window size.
func (s *EbitenSurface) Resize(w, h int) {
	if s.canvas != nil {
		b := s.canvas.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return
		}
		s.canvas.Dispose()
		s.canvas = nil
	}
	if w <= 0 || h <= 0 {
		return
	}
	s.canvas = ebiten.NewImage(w, h)
}

// Size returns the canvas dimensions, or zero before the first Resize.
func (s *EbitenSurface) Size() (int, int) {
	if s.canvas == nil {
		return 0, 0
	}
	b := s.canvas.Bounds()
	return b.Dx(), b.Dy()
}

// ClearRect clears the rectangle to transparent.
func (s *EbitenSurface) ClearRect(x, y, w, h float64) {
	if s.canvas == nil {
		return
	}
	r := pixelRect(x, y, w, h).Intersect(s.canvas.Bounds())
	if r.Empty() {
		return
	}
	if r == s.canvas.Bounds() {
		s.canvas.Clear()
		return
	}
	s.canvas.SubImage(r).(*ebiten.Image).Clear()
}

// FillRect draws a filled rectangle.
func (s *EbitenSurface) FillRect(x, y, w, h float64, c color.Color) {
	if s.canvas == nil {
		return
	}
	vector.DrawFilledRect(s.canvas, float32(x), float32(y), float32(w), float32(h), c, false)
}

// StrokeRect outlines a rectangle.
func (s *EbitenSurface) StrokeRect(x, y, w, h, lineWidth float64, c color.Color) {
	if s.canvas == nil {
		return
	}
	vector.StrokeRect(s.canvas, float32(x), float32(y), float32(w), float32(h), float32(lineWidth), c, false)
}

// Blit draws the canvas onto dst at the origin.
func (s *EbitenSurface) Blit(dst *ebiten.Image) {
	if s.canvas == nil {
		return
	}
	dst.DrawImage(s.canvas, &ebiten.DrawImageOptions{})
}
