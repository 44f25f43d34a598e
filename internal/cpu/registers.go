package cpu

// Register is a single 8-bit register.
type Register = uint8

// Registers holds the 8-bit registers of the CPU, and the 16-bit
// register pairs that view them two at a time.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	F Register // lower nibble is always 0
	H Register
	L Register

	AF *RegisterPair
	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
}

// RegisterPair is a pair of 8-bit registers that can be used
// as a single 16-bit register. The first register holds the
// high byte.
type RegisterPair struct {
	High *Register
	Low  *Register
}

// Uint16 returns the value of the pair.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 sets both registers of the pair.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value)
}
