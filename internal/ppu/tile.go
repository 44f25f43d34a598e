package ppu

// tilePixel returns the 2-bit colour number of the pixel at
// column x of a tile row, where lo and hi are the two
// bitplanes of the row. Column 0 is the leftmost pixel, held
// in bit 7.
func tilePixel(lo, hi uint8, x uint8) uint8 {
	bit := 7 - x&7
	return (lo>>bit)&1 | ((hi>>bit)&1)<<1
}

// tileRowAddress returns the offset into VRAM of the given row
// of the tile with the given number, honouring the addressing
// mode selected in LCDC.4.
func (p *PPU) tileRowAddress(tile uint8, row uint8) uint16 {
	var base uint16
	if p.lcdc.UsingSignedTileData() {
		base = uint16(int32(0x1000) + int32(int8(tile))*16)
	} else {
		base = uint16(tile) * 16
	}
	return base + uint16(row&7)*2
}

// mapPixel returns the colour number of the background or window
// pixel at (x, y) of the 256x256 tile map starting at mapAddress.
func (p *PPU) mapPixel(mapAddress uint16, x, y uint8) uint8 {
	tile := p.vram[mapAddress-0x8000+uint16(y/8)*32+uint16(x/8)]
	addr := p.tileRowAddress(tile, y%8)
	return tilePixel(p.vram[addr], p.vram[addr+1], x%8)
}
