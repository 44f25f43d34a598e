package types

// Masks of the individual bits of an 8-bit hardware register.
const (
	Bit0 = 0x01
	Bit1 = 0x02
	Bit2 = 0x04
	Bit3 = 0x08
	Bit4 = 0x10
	Bit5 = 0x20
	Bit6 = 0x40
	Bit7 = 0x80
)
