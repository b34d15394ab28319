//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	hudPadding    = 4
	hudLineHeight = 14
)

// HUD renders short status lines in the top-left corner of the screen.
type HUD struct {
	visible bool
}

// NewHUD constructs a HUD, visible by default. Press H to toggle it.
func NewHUD() *HUD {
	return &HUD{visible: true}
}

// Update handles the visibility toggle.
func (h *HUD) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		h.visible = !h.visible
	}
}

// Draw renders the lines onto screen. A shadow pass keeps the text readable
// on top of live cells.
func (h *HUD) Draw(screen *ebiten.Image, lines []string) {
	if h == nil || !h.visible {
		return
	}
	face := basicfont.Face7x13
	shadow := color.RGBA{A: 255}
	fg := color.RGBA{R: 120, G: 255, B: 120, A: 255}
	y := hudPadding + face.Ascent
	for _, line := range lines {
		text.Draw(screen, line, face, hudPadding+1, y+1, shadow)
		text.Draw(screen, line, face, hudPadding, y, fg)
		y += hudLineHeight
	}
}
