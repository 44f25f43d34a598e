package lcd

import "github.com/thelolagemann/shellboy/internal/types"

// Controller is the LCD controller. It is responsible for controlling various
// aspects of the LCD, such as enabling the background and window display.
//
// Its value is stored in the LCD Control Register (types.LCDC) as follows:
//
//	Bit 7 - LCD Enable                     (0=Off, 1=On)
//	Bit 6 - Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 5 - Window Display Enable          (0=Off, 1=On)
//	Bit 4 - BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
//	Bit 3 - BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 2 - OBJ (Sprite) Size              (0=8x8, 1=8x16)
//	Bit 1 - OBJ (Sprite) Display Enable    (0=Off, 1=On)
//	Bit 0 - BG/Window Display              (0=Off, 1=On)
type Controller struct {
	// Enabled is the LCD Enable bit. When set, the LCD is enabled.
	Enabled bool
	// WindowTileMapAddress is the start address of the window tile
	// map, selected by the Window Tile Map Display Select bit.
	WindowTileMapAddress uint16
	// WindowEnabled is the Window Display Enable bit.
	WindowEnabled bool
	// TileDataAddress is the base address of the BG & Window tile
	// data. At 0x8000 tile numbers are unsigned, at 0x9000 they
	// are signed, so that the block spans 0x8800-0x97FF.
	TileDataAddress uint16
	// BackgroundTileMapAddress is the start address of the
	// background tile map.
	BackgroundTileMapAddress uint16
	// SpriteSize is the height of sprites, 8 or 16.
	SpriteSize uint8
	// SpriteEnabled is the OBJ (Sprite) Display Enable bit.
	SpriteEnabled bool
	// BackgroundEnabled is the BG/Window Display bit. When reset,
	// both the background and window render colour 0.
	BackgroundEnabled bool
}

// Write decodes the value of the control register.
func (c *Controller) Write(value uint8) {
	c.Enabled = value&types.Bit7 != 0
	c.WindowTileMapAddress = 0x9800
	if value&types.Bit6 != 0 {
		c.WindowTileMapAddress = 0x9C00
	}
	c.WindowEnabled = value&types.Bit5 != 0
	c.TileDataAddress = 0x9000
	if value&types.Bit4 != 0 {
		c.TileDataAddress = 0x8000
	}
	c.BackgroundTileMapAddress = 0x9800
	if value&types.Bit3 != 0 {
		c.BackgroundTileMapAddress = 0x9C00
	}
	c.SpriteSize = 8
	if value&types.Bit2 != 0 {
		c.SpriteSize = 16
	}
	c.SpriteEnabled = value&types.Bit1 != 0
	c.BackgroundEnabled = value&types.Bit0 != 0
}

// Read encodes the control register.
func (c *Controller) Read() uint8 {
	var value uint8
	if c.Enabled {
		value |= types.Bit7
	}
	if c.WindowTileMapAddress == 0x9C00 {
		value |= types.Bit6
	}
	if c.WindowEnabled {
		value |= types.Bit5
	}
	if c.TileDataAddress == 0x8000 {
		value |= types.Bit4
	}
	if c.BackgroundTileMapAddress == 0x9C00 {
		value |= types.Bit3
	}
	if c.SpriteSize == 16 {
		value |= types.Bit2
	}
	if c.SpriteEnabled {
		value |= types.Bit1
	}
	if c.BackgroundEnabled {
		value |= types.Bit0
	}
	return value
}

// UsingSignedTileData returns true if tile numbers are signed
// offsets from 0x9000.
func (c *Controller) UsingSignedTileData() bool {
	return c.TileDataAddress == 0x9000
}
