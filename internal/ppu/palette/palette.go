// Package palette maps the 2-bit shades produced by the PPU to
// RGB colours for display.
package palette

const (
	// Greyscale is the default greyscale palette.
	Greyscale = iota
	// Green is the green palette which attempts to emulate
	// the original colour palette as it would have appeared
	// on the original Game Boy.
	Green
)

// Palette represents a palette. A palette is an array of 4 RGB values,
// indexed by shade, from lightest (0) to darkest (3).
type Palette struct {
	Colors [4][3]uint8
}

// Palettes is a list of all available palettes.
var Palettes = [...]Palette{
	Greyscale: {
		Colors: [4][3]uint8{
			{0xFF, 0xFF, 0xFF},
			{0xAA, 0xAA, 0xAA},
			{0x55, 0x55, 0x55},
			{0x00, 0x00, 0x00},
		},
	},
	Green: {
		Colors: [4][3]uint8{
			{0x9B, 0xBC, 0x0F},
			{0x8B, 0xAC, 0x0F},
			{0x30, 0x62, 0x30},
			{0x0F, 0x38, 0x0F},
		},
	},
}

// Get returns the palette at index, falling back to Greyscale.
func Get(index int) Palette {
	if index < 0 || index >= len(Palettes) {
		return Palettes[Greyscale]
	}
	return Palettes[index]
}

// GetColour returns the colour of the given shade.
func (p Palette) GetColour(shade uint8) [3]uint8 {
	return p.Colors[shade&0x03]
}

// Shade maps a 2-bit colour number through a DMG palette
// register (types.BGP, types.OBP0 or types.OBP1).
//
//	Bit 7-6 - Shade for Color Number 3
//	Bit 5-4 - Shade for Color Number 2
//	Bit 3-2 - Shade for Color Number 1
//	Bit 1-0 - Shade for Color Number 0
func Shade(register uint8, colour uint8) uint8 {
	return register >> ((colour & 0x03) * 2) & 0x03
}
