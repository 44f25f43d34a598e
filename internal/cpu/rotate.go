package cpu

// rotateLeft rotates n left, bit 7 going to both bit 0 and the
// carry flag.
//
//	RLC n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeft(n uint8) uint8 {
	result := n<<1 | n>>7
	c.setFlags(result == 0, false, false, n&0x80 != 0)
	return result
}

// rotateLeftThroughCarry rotates n left through the carry flag.
//
//	RL n
func (c *CPU) rotateLeftThroughCarry(n uint8) uint8 {
	result := n << 1
	if c.isFlagSet(FlagCarry) {
		result |= 0x01
	}
	c.setFlags(result == 0, false, false, n&0x80 != 0)
	return result
}

// rotateRight rotates n right, bit 0 going to both bit 7 and the
// carry flag.
//
//	RRC n
func (c *CPU) rotateRight(n uint8) uint8 {
	result := n>>1 | n<<7
	c.setFlags(result == 0, false, false, n&0x01 != 0)
	return result
}

// rotateRightThroughCarry rotates n right through the carry flag.
//
//	RR n
func (c *CPU) rotateRightThroughCarry(n uint8) uint8 {
	result := n >> 1
	if c.isFlagSet(FlagCarry) {
		result |= 0x80
	}
	c.setFlags(result == 0, false, false, n&0x01 != 0)
	return result
}

// shiftLeftArithmetic shifts n left into the carry flag, bit 0
// is reset.
//
//	SLA n
func (c *CPU) shiftLeftArithmetic(n uint8) uint8 {
	result := n << 1
	c.setFlags(result == 0, false, false, n&0x80 != 0)
	return result
}

// shiftRightArithmetic shifts n right into the carry flag, bit 7
// is unchanged.
//
//	SRA n
func (c *CPU) shiftRightArithmetic(n uint8) uint8 {
	result := n>>1 | n&0x80
	c.setFlags(result == 0, false, false, n&0x01 != 0)
	return result
}

// shiftRightLogical shifts n right into the carry flag, bit 7
// is reset.
//
//	SRL n
func (c *CPU) shiftRightLogical(n uint8) uint8 {
	result := n >> 1
	c.setFlags(result == 0, false, false, n&0x01 != 0)
	return result
}

// swap swaps the upper and lower nibbles of n.
//
//	SWAP n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) swap(n uint8) uint8 {
	result := n<<4 | n>>4
	c.setFlags(result == 0, false, false, false)
	return result
}

// testBit tests bit b of n.
//
//	BIT b, n
//
// Flags affected:
//
//	Z - Set if bit b of n is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(b, n uint8) {
	c.setFlags(n&(1<<b) == 0, false, true, c.isFlagSet(FlagCarry))
}
