package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// ImageSurface is an in-memory RGBA surface. It backs headless snapshots and
// pixel comparisons.
type ImageSurface struct {
	img *image.RGBA
}

// NewImageSurface allocates a transparent surface of the given size.
func NewImageSurface(w, h int) *ImageSurface {
	s := &ImageSurface{}
	s.Resize(w, h)
	return s
}

// Resize reallocates the backing image. Previous contents are discarded.
func (s *ImageSurface) Resize(w, h int) {
	s.img = image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
}

// Size returns the surface dimensions in pixels.
func (s *ImageSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image exposes the backing image.
func (s *ImageSurface) Image() *image.RGBA { return s.img }

// ClearRect resets the rectangle to transparent black.
func (s *ImageSurface) ClearRect(x, y, w, h float64) {
	draw.Draw(s.img, pixelRect(x, y, w, h), image.Transparent, image.Point{}, draw.Src)
}

// FillRect composites c over the rectangle.
func (s *ImageSurface) FillRect(x, y, w, h float64, c color.Color) {
	s.fill(pixelRect(x, y, w, h), c)
}

// StrokeRect draws the outline as four bands of lineWidth centered on the
// rectangle edges.
func (s *ImageSurface) StrokeRect(x, y, w, h, lineWidth float64, c color.Color) {
	if lineWidth <= 0 {
		return
	}
	half := lineWidth / 2
	outer := pixelRect(x-half, y-half, w+lineWidth, h+lineWidth)
	inner := pixelRect(x+half, y+half, w-lineWidth, h-lineWidth)
	if inner.Empty() {
		s.fill(outer, c)
		return
	}
	s.fill(image.Rect(outer.Min.X, outer.Min.Y, outer.Max.X, inner.Min.Y), c)
	s.fill(image.Rect(outer.Min.X, inner.Max.Y, outer.Max.X, outer.Max.Y), c)
	s.fill(image.Rect(outer.Min.X, inner.Min.Y, inner.Min.X, inner.Max.Y), c)
	s.fill(image.Rect(inner.Max.X, inner.Min.Y, outer.Max.X, inner.Max.Y), c)
}

func (s *ImageSurface) fill(r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	draw.Draw(s.img, r, image.NewUniform(c), image.Point{}, draw.Over)
}

func pixelRect(x, y, w, h float64) image.Rectangle {
	if w <= 0 || h <= 0 {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+w)), int(math.Round(y+h)),
	)
}
