package cpu

// add adds n (and the carry flag if carry is true) to the A
// Register.
//
//	ADD A, n
//	ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n uint8, carry bool) {
	var cy uint8
	if carry && c.isFlagSet(FlagCarry) {
		cy = 1
	}
	sum := uint16(c.A) + uint16(n) + uint16(cy)
	halfCarry := (c.A&0x0F)+(n&0x0F)+cy > 0x0F
	c.A = uint8(sum)
	c.setFlags(c.A == 0, false, halfCarry, sum > 0xFF)
}

// sub subtracts n (and the carry flag if carry is true) from the
// A Register and returns the result, storing it in A unless
// compare is set.
//
//	SUB n
//	SBC A, n
//	CP n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(n uint8, carry, compare bool) {
	var cy uint8
	if carry && c.isFlagSet(FlagCarry) {
		cy = 1
	}
	diff := int16(c.A) - int16(n) - int16(cy)
	halfCarry := int16(c.A&0x0F)-int16(n&0x0F)-int16(cy) < 0
	result := uint8(diff)
	c.setFlags(result == 0, true, halfCarry, diff < 0)
	if !compare {
		c.A = result
	}
}

// and performs a bitwise AND operation on n and the A Register.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	c.A &= n
	c.setFlags(c.A == 0, false, true, false)
}

// or performs a bitwise OR operation on n and the A Register.
func (c *CPU) or(n uint8) {
	c.A |= n
	c.setFlags(c.A == 0, false, false, false)
}

// xor performs a bitwise XOR operation on n and the A Register.
func (c *CPU) xor(n uint8) {
	c.A ^= n
	c.setFlags(c.A == 0, false, false, false)
}

// increment returns n+1, wrapping at 0xFF.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) increment(n uint8) uint8 {
	result := n + 1
	c.setFlags(result == 0, false, n&0x0F == 0x0F, c.isFlagSet(FlagCarry))
	return result
}

// decrement returns n-1, wrapping at 0x00.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(n uint8) uint8 {
	result := n - 1
	c.setFlags(result == 0, true, n&0x0F == 0, c.isFlagSet(FlagCarry))
	return result
}

// addHL adds n to HL.
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(n uint16) {
	hl := c.HL.Uint16()
	sum := uint32(hl) + uint32(n)
	c.setFlags(c.isFlagSet(FlagZero), false, (hl&0x0FFF)+(n&0x0FFF) > 0x0FFF, sum > 0xFFFF)
	c.HL.SetUint16(uint16(sum))
}

// addSPSigned returns SP plus the signed immediate e. Used by
// ADD SP, e and LD HL, SP+e.
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3 of the low byte.
//	C - Set if carry from bit 7 of the low byte.
func (c *CPU) addSPSigned(e uint8) uint16 {
	sp := c.SP
	result := uint16(int32(sp) + int32(int8(e)))
	c.setFlags(false, false, (sp&0x0F)+uint16(e&0x0F) > 0x0F, (sp&0xFF)+uint16(e) > 0xFF)
	return result
}

// daa adjusts A to a valid BCD number after an addition or
// subtraction, using the N, H and C flags.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func (c *CPU) daa() {
	a := c.A
	carry := c.isFlagSet(FlagCarry)
	if !c.isFlagSet(FlagSubtract) {
		if carry || a > 0x99 {
			a += 0x60
			carry = true
		}
		if c.isFlagSet(FlagHalfCarry) || a&0x0F > 0x09 {
			a += 0x06
		}
	} else {
		if carry {
			a -= 0x60
		}
		if c.isFlagSet(FlagHalfCarry) {
			a -= 0x06
		}
	}
	c.A = a
	c.setFlags(a == 0, c.isFlagSet(FlagSubtract), false, carry)
}
