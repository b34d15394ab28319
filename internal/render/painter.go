//go:build ebiten

package render

import (
	"image/color"

	"github.com/lisp-ceo/gol/pkg/core"
	"github.com/lisp-ceo/gol/pkg/life"

	"github.com/hajimehoshi/ebiten/v2"
)

// Painter uploads a universe's cell buffer into a single RGBA image and
// draws it scaled. One painter serves one grid size.
type Painter struct {
	size core.Size
	img  *ebiten.Image
	buf  []byte
}

// NewPainter allocates a painter for a grid of the given size.
func NewPainter(size core.Size) *Painter {
	p := &Painter{size: size, buf: make([]byte, 4*size.Area())}
	p.img = ebiten.NewImage(size.W, size.H)
	return p
}

// Blit uploads cells into the painter image and draws it onto dst at the
// given integer scale. The cells slice is read in place; no copy is taken.
// A buffer of the wrong length is ignored.
func (p *Painter) Blit(dst *ebiten.Image, cells []life.Cell, on, off color.Color, scale int) {
	if len(cells) != p.size.Area() {
		return
	}
	fillCellRGBA(p.buf, cells, on, off)
	p.img.WritePixels(p.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(p.img, op)
}

// Size returns the grid dimensions the painter was built for.
func (p *Painter) Size() core.Size { return p.size }
