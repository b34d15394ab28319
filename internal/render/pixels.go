// Package render turns cell buffers into pixels for the GUI front end.
package render

import (
	"image/color"

	"github.com/lisp-ceo/gol/pkg/life"
)

// fillCellRGBA expands the cell buffer into RGBA pixels in buf, one pixel
// per cell. buf must hold 4*len(cells) bytes.
func fillCellRGBA(buf []byte, cells []life.Cell, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i, c := range cells {
		base := i * 4
		if c == life.Alive {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}
