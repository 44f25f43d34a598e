package cheats

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// A GameGenieCode consists of nine-digit hex numbers, formatted as
// ABC-DEF-GHI. AB is the new data, FCDE is the memory address XORed
// by 0xF000, GI is the old data XORed by 0xBA and rotated left by 2,
// and H is unknown (possibly a checksum). The six-digit form ABC-DEF
// replaces the value regardless of the old data.
type GameGenieCode struct {
	NewData uint8
	Address uint16
	OldData uint8
	Compare bool

	Name string
}

// ParseGameGenie parses a six or nine-digit Game Genie code.
func ParseGameGenie(code string) (GameGenieCode, error) {
	var c GameGenieCode
	if len(code) != 7 && len(code) != 11 {
		return c, fmt.Errorf("%w: %s: length %d", ErrInvalidCode, code, len(code))
	}

	if code[3] != '-' || len(code) == 11 && code[7] != '-' {
		return c, fmt.Errorf("%w: %s", ErrInvalidCode, code)
	}

	// remove the hyphens, and interpret the code
	digits := strings.ReplaceAll(code, "-", "")
	if _, err := strconv.ParseUint(digits, 16, 64); err != nil {
		return c, fmt.Errorf("%w: %s", ErrInvalidCode, code)
	}

	c.NewData = hexByte(digits[0:2])
	// reorganize CDEF to FCDE
	c.Address = uint16(hexByte(digits[5:6]))<<12 | uint16(hexByte(digits[2:4]))<<4 | uint16(hexByte(digits[4:5]))
	c.Address ^= 0xF000

	if len(digits) == 9 {
		c.Compare = true
		c.OldData = bits.RotateLeft8(hexByte(digits[6:7]+digits[8:9]), -2) ^ 0xBA
	}

	return c, nil
}

// apply returns the patched value.
func (c GameGenieCode) apply(value uint8) uint8 {
	if c.Compare && value != c.OldData {
		return value
	}
	return c.NewData
}

// hexByte parses a validated string of one or two hex digits.
func hexByte(s string) uint8 {
	v, _ := strconv.ParseUint(s, 16, 8)
	return uint8(v)
}
