package cpu

import "github.com/thelolagemann/shellboy/internal/types"

// Flag is one of the flags held in the upper nibble of the
// F register.
type Flag = uint8

const (
	FlagZero      Flag = types.Bit7
	FlagSubtract  Flag = types.Bit6
	FlagHalfCarry Flag = types.Bit5
	FlagCarry     Flag = types.Bit4
)

// setFlags sets all four flags at once. The lower nibble of F is
// never written.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	var f uint8
	if zero {
		f |= FlagZero
	}
	if subtract {
		f |= FlagSubtract
	}
	if halfCarry {
		f |= FlagHalfCarry
	}
	if carry {
		f |= FlagCarry
	}
	c.F = f
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.F&flag != 0
}

// condition evaluates the condition encoded in bits 3-4 of
// conditional jump, call and return opcodes.
//
//	0 = NZ, 1 = Z, 2 = NC, 3 = C
func (c *CPU) condition(cc uint8) bool {
	switch cc & 3 {
	case 0:
		return !c.isFlagSet(FlagZero)
	case 1:
		return c.isFlagSet(FlagZero)
	case 2:
		return !c.isFlagSet(FlagCarry)
	default:
		return c.isFlagSet(FlagCarry)
	}
}

var conditionNames = [4]string{"NZ", "Z", "NC", "C"}
