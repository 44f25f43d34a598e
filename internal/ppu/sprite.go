package ppu

// Sprite is a single entry of the object attribute table,
// decoded from its 4 bytes in OAM.
type Sprite struct {
	// Y is the vertical position of the sprite plus 16.
	Y uint8
	// X is the horizontal position of the sprite plus 8.
	X uint8
	// TileID is the tile number in 0x8000-0x8FFF. For 8x16
	// sprites bit 0 is ignored.
	TileID uint8
	spriteAttributes
}

// spriteAttributes represents the attributes of a sprite.
type spriteAttributes struct {
	// Bit 7 - OBJ-to-BG priority (0=OBJ Above BG, 1=OBJ Behind BG color 1-3)
	behindBG bool
	// Bit 6 - Y flip          (0=Normal, 1=Vertically mirrored)
	flipY bool
	// Bit 5 - X flip          (0=Normal, 1=Horizontally mirrored)
	flipX bool
	// Bit 4 - Palette number  (0=OBP0, 1=OBP1)
	useSecondPalette bool
}

// newSprite decodes the sprite at the given index of oam.
func newSprite(oam *[160]uint8, index int) Sprite {
	b := oam[index*4 : index*4+4]
	return Sprite{
		Y:      b[0],
		X:      b[1],
		TileID: b[2],
		spriteAttributes: spriteAttributes{
			behindBG:         b[3]&0x80 != 0,
			flipY:            b[3]&0x40 != 0,
			flipX:            b[3]&0x20 != 0,
			useSecondPalette: b[3]&0x10 != 0,
		},
	}
}

// covers reports whether the sprite spans the given line for
// the given sprite height.
func (s Sprite) covers(ly uint8, height int) bool {
	top := int(s.Y) - 16
	return int(ly) >= top && int(ly) < top+height
}
