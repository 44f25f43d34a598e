package ppu

import "github.com/thelolagemann/shellboy/internal/ppu/palette"

// maxSpritesPerLine is the number of sprites the OAM scan
// selects for a single line.
const maxSpritesPerLine = 10

// renderScanline composes the whole of the current line into the
// framebuffer: background, then window, then sprites.
func (p *PPU) renderScanline() {
	// colour numbers before palette mapping, kept for the
	// sprite priority check
	var bg [ScreenWidth]uint8

	if p.lcdc.BackgroundEnabled {
		p.renderBackground(&bg)
		if p.lcdc.WindowEnabled {
			p.renderWindow(&bg)
		}
	}

	line := &p.framebuffer[p.ly]
	for x := range line {
		line[x] = palette.Shade(p.bgp, bg[x])
	}

	if p.lcdc.SpriteEnabled {
		p.renderSprites(line, &bg)
	}
}

func (p *PPU) renderBackground(bg *[ScreenWidth]uint8) {
	y := p.scy + p.ly
	for x := 0; x < ScreenWidth; x++ {
		bg[x] = p.mapPixel(p.lcdc.BackgroundTileMapAddress, p.scx+uint8(x), y)
	}
}

// renderWindow draws the window over the background, from WX-7
// to the right edge. The window keeps its own line counter, which
// only advances on lines where the window was drawn.
func (p *PPU) renderWindow(bg *[ScreenWidth]uint8) {
	if p.ly < p.wy || p.wx > 166 {
		return
	}
	start := int(p.wx) - 7
	for x := max(start, 0); x < ScreenWidth; x++ {
		bg[x] = p.mapPixel(p.lcdc.WindowTileMapAddress, uint8(x-start), p.windowLine)
	}
	p.windowLine++
}

// renderSprites selects up to 10 sprites covering the current line
// in OAM order, and draws them in reverse so that sprites with a
// lower OAM index end up on top.
func (p *PPU) renderSprites(line *[ScreenWidth]uint8, bg *[ScreenWidth]uint8) {
	height := int(p.lcdc.SpriteSize)

	selected := make([]Sprite, 0, maxSpritesPerLine)
	for i := 0; i < 40 && len(selected) < maxSpritesPerLine; i++ {
		if s := newSprite(&p.oam, i); s.covers(p.ly, height) {
			selected = append(selected, s)
		}
	}

	for i := len(selected) - 1; i >= 0; i-- {
		s := selected[i]

		row := int(p.ly) - (int(s.Y) - 16)
		if s.flipY {
			row = height - 1 - row
		}
		tile := s.TileID
		if height == 16 {
			tile &= 0xFE
		}
		addr := uint16(tile)*16 + uint16(row)*2
		lo, hi := p.vram[addr], p.vram[addr+1]

		obp := p.obp0
		if s.useSecondPalette {
			obp = p.obp1
		}

		for px := uint8(0); px < 8; px++ {
			x := int(s.X) - 8 + int(px)
			if x < 0 || x >= ScreenWidth {
				continue
			}
			col := px
			if s.flipX {
				col = 7 - px
			}
			colour := tilePixel(lo, hi, col)
			if colour == 0 {
				continue // transparent
			}
			if s.behindBG && bg[x] != 0 {
				continue
			}
			line[x] = palette.Shade(obp, colour)
		}
	}
}
