// Package braille renders frames as unicode braille characters, each
// character covering a block of 2x4 pixels, so that a full frame fits
// in 80x36 characters of a terminal.
package braille

import (
	"strings"

	"github.com/thelolagemann/shellboy/internal/ppu"
)

const (
	// CellWidth is the number of pixels covered by a character horizontally.
	CellWidth = 2
	// CellHeight is the number of pixels covered by a character vertically.
	CellHeight = 4
	// Columns is the number of characters in a row.
	Columns = ppu.ScreenWidth / CellWidth
	// Rows is the number of rows of characters.
	Rows = ppu.ScreenHeight / CellHeight

	blank = 0x2800
)

// dots maps a pixel within a cell to its braille dot.
//
//	1 4
//	2 5
//	3 6
//	7 8
var dots = [CellHeight][CellWidth]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Cell returns the braille character covering the cell at column
// x and row y. A pixel is raised when its shade is darker than
// threshold.
func Cell(frame []byte, x, y int, threshold uint8) rune {
	r := rune(blank)
	for dy := 0; dy < CellHeight; dy++ {
		for dx := 0; dx < CellWidth; dx++ {
			i := (y*CellHeight+dy)*ppu.ScreenWidth + x*CellWidth + dx
			if i < len(frame) && frame[i] > threshold {
				r |= dots[dy][dx]
			}
		}
	}
	return r
}

// Render renders a row-major frame of shades, returning Rows lines
// of Columns characters each, separated by newlines.
func Render(frame []byte, threshold uint8) string {
	var b strings.Builder
	b.Grow(Rows * (Columns*3 + 1))
	for y := 0; y < Rows; y++ {
		for x := 0; x < Columns; x++ {
			b.WriteRune(Cell(frame, x, y, threshold))
		}
		if y < Rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
