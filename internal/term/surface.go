// Package term hosts a session on a character terminal through tcell.
package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

// Surface draws on a tcell screen. One logical pixel is two columns wide and
// one row high, which keeps square cells roughly square on screen.
type Surface struct {
	screen tcell.Screen
	base   tcell.Style
}

// NewSurface returns a Surface drawing on screen.
func NewSurface(screen tcell.Screen) *Surface {
	return &Surface{screen: screen, base: tcell.StyleDefault}
}

// Size returns the surface size in logical pixels.
func (s *Surface) Size() (int, int) {
	w, h := s.screen.Size()
	return w / 2, h
}

// ClearRect blanks the rectangle.
func (s *Surface) ClearRect(x, y, w, h float64) {
	s.fill(x, y, w, h, s.base)
}

// FillRect paints the rectangle background with c.
func (s *Surface) FillRect(x, y, w, h float64, c color.Color) {
	if c == nil {
		return
	}
	s.fill(x, y, w, h, s.base.Background(tcell.FromImageColor(c)))
}

// StrokeRect outlines the rectangle with c, keeping the backgrounds below.
// Rectangles one logical pixel wide or high are drawn as bracket pairs; the
// line width only decides whether anything is drawn.
func (s *Surface) StrokeRect(x, y, w, h, lineWidth float64, c color.Color) {
	if lineWidth <= 0 || c == nil {
		return
	}
	x0, y0, x1, y1, ok := s.clip(x, y, w, h)
	if !ok {
		return
	}
	fg := tcell.FromImageColor(c)
	if x1-x0 <= 1 || y1-y0 <= 1 {
		for row := y0; row < y1; row++ {
			for px := x0; px < x1; px++ {
				s.glyph(2*px, row, '[', fg)
				s.glyph(2*px+1, row, ']', fg)
			}
		}
		return
	}
	left, right := 2*x0, 2*x1-1
	top, bottom := y0, y1-1
	for col := left + 1; col < right; col++ {
		s.glyph(col, top, tcell.RuneHLine, fg)
		s.glyph(col, bottom, tcell.RuneHLine, fg)
	}
	for row := top + 1; row < bottom; row++ {
		s.glyph(left, row, tcell.RuneVLine, fg)
		s.glyph(right, row, tcell.RuneVLine, fg)
	}
	s.glyph(left, top, tcell.RuneULCorner, fg)
	s.glyph(right, top, tcell.RuneURCorner, fg)
	s.glyph(left, bottom, tcell.RuneLLCorner, fg)
	s.glyph(right, bottom, tcell.RuneLRCorner, fg)
}

// Flush presents the drawn frame.
func (s *Surface) Flush() { s.screen.Show() }

func (s *Surface) fill(x, y, w, h float64, style tcell.Style) {
	x0, y0, x1, y1, ok := s.clip(x, y, w, h)
	if !ok {
		return
	}
	for row := y0; row < y1; row++ {
		for col := 2 * x0; col < 2*x1; col++ {
			s.screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

func (s *Surface) glyph(col, row int, r rune, fg tcell.Color) {
	_, _, style, _ := s.screen.GetContent(col, row)
	s.screen.SetContent(col, row, r, nil, style.Foreground(fg))
}

// clip rounds a logical rectangle to whole pixels inside the surface.
func (s *Surface) clip(x, y, w, h float64) (x0, y0, x1, y1 int, ok bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, 0, 0, false
	}
	sw, sh := s.Size()
	x0 = max(int(math.Round(x)), 0)
	y0 = max(int(math.Round(y)), 0)
	x1 = min(int(math.Round(x+w)), sw)
	y1 = min(int(math.Round(y+h)), sh)
	return x0, y0, x1, y1, x0 < x1 && y0 < y1
}
