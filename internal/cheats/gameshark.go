package cheats

import (
	"fmt"
	"strconv"
)

// A GameSharkCode consists of eight-digit hex numbers, formatted
// as ABCDEFGH. Where AB represents the external RAM bank, CD is
// the new data, and GHEF is the memory address.
type GameSharkCode struct {
	ExternalRAMBank uint8
	Address         uint16
	NewData         uint8

	Name string
}

// ParseGameShark parses an eight-digit GameShark code.
func ParseGameShark(code string) (GameSharkCode, error) {
	var c GameSharkCode
	if len(code) != 8 {
		return c, fmt.Errorf("%w: %s: length %d", ErrInvalidCode, code, len(code))
	}
	if _, err := strconv.ParseUint(code, 16, 32); err != nil {
		return c, fmt.Errorf("%w: %s", ErrInvalidCode, code)
	}

	c.ExternalRAMBank = hexByte(code[0:2])
	c.NewData = hexByte(code[2:4])
	// reorganize GHEF to EFGH
	c.Address = uint16(hexByte(code[6:8]))<<8 | uint16(hexByte(code[4:6]))

	// only RAM can be written to
	if c.Address < 0xA000 || c.Address >= 0xE000 && c.Address < 0xFF80 || c.Address == 0xFFFF {
		return c, fmt.Errorf("%w: %s: address 0x%04X is not RAM", ErrInvalidCode, code, c.Address)
	}

	return c, nil
}
