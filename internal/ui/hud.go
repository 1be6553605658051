//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// HUD draws loop statistics in the top-left corner. F3 toggles it.
type HUD struct {
	src     Source
	visible bool
	lines   []string
}

// NewHUD constructs a HUD for src, initially shown when visible is set.
func NewHUD(src Source, visible bool) *HUD {
	return &HUD{src: src, visible: visible}
}

// Update handles the toggle key and refreshes the text.
func (h *HUD) Update() {
	if h == nil {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		h.visible = !h.visible
	}
	if !h.visible {
		return
	}
	h.lines = Lines(h.src, Rates{FPS: ebiten.ActualFPS(), TPS: ebiten.ActualTPS()})
}

// Draw paints the panel over screen.
func (h *HUD) Draw(screen *ebiten.Image) {
	if h == nil || !h.visible || len(h.lines) == 0 {
		return
	}
	face := basicfont.Face7x13
	width := 0
	for _, line := range h.lines {
		width = max(width, text.BoundString(face, line).Dx())
	}
	height := len(h.lines)*lineHeight + 2*panelPadding
	vector.DrawFilledRect(screen, 0, 0, float32(width+2*panelPadding), float32(height),
		color.RGBA{R: 16, G: 16, B: 20, A: 200}, false)
	for i, line := range h.lines {
		y := panelPadding + baseline + i*lineHeight
		text.Draw(screen, line, face, panelPadding, y, color.RGBA{R: 220, G: 220, B: 230, A: 255})
	}
}

const (
	panelPadding = 8
	lineHeight   = 16
	baseline     = 12
)
