package render

import "image/color"

// Surface is the drawing context of a host display. Coordinates are in surface
// pixels with the origin at the top-left corner.
type Surface interface {
	Size() (w, h int)
	ClearRect(x, y, w, h float64)
	FillRect(x, y, w, h float64, c color.Color)
	// StrokeRect outlines the rectangle with a line of the given width centered
	// on its edges.
	StrokeRect(x, y, w, h, lineWidth float64, c color.Color)
}

// Resizer is implemented by surfaces that own a backing store which must follow
// the host window size.
type Resizer interface {
	Resize(w, h int)
}

// Flusher is implemented by surfaces that need an explicit present step after
// drawing a frame.
type Flusher interface {
	Flush()
}
