package cpu

import "fmt"

// aluOps are the 8 ALU operations on A, in opcode order.
var aluOps = [8]struct {
	name string
	fn   func(c *CPU, n uint8)
}{
	{"ADD A,", func(c *CPU, n uint8) { c.add(n, false) }},
	{"ADC A,", func(c *CPU, n uint8) { c.add(n, true) }},
	{"SUB", func(c *CPU, n uint8) { c.sub(n, false, false) }},
	{"SBC A,", func(c *CPU, n uint8) { c.sub(n, true, false) }},
	{"AND", func(c *CPU, n uint8) { c.and(n) }},
	{"XOR", func(c *CPU, n uint8) { c.xor(n) }},
	{"OR", func(c *CPU, n uint8) { c.or(n) }},
	{"CP", func(c *CPU, n uint8) { c.sub(n, false, true) }},
}

func init() {
	for op := uint8(0); op < 8; op++ {
		alu := aluOps[op]

		// ALU A, r
		for r := uint8(0); r < 8; r++ {
			cycles := 4
			if r == 6 {
				cycles = 8
			}
			DefineInstruction(0x80|op<<3|r, fmt.Sprintf("%s %s", alu.name, registerNames[r]), func(c *CPU) int {
				alu.fn(c, c.readRegister(r))
				return cycles
			})
		}

		// ALU A, d8
		DefineInstruction(0xC6|op<<3, fmt.Sprintf("%s d8", alu.name), func(c *CPU) int {
			alu.fn(c, c.readOperand())
			return 8
		})
	}

	// INC r / DEC r
	for r := uint8(0); r < 8; r++ {
		cycles := 4
		if r == 6 {
			cycles = 12
		}
		DefineInstruction(r<<3|0x04, fmt.Sprintf("INC %s", registerNames[r]), func(c *CPU) int {
			c.writeRegister(r, c.increment(c.readRegister(r)))
			return cycles
		})
		DefineInstruction(r<<3|0x05, fmt.Sprintf("DEC %s", registerNames[r]), func(c *CPU) int {
			c.writeRegister(r, c.decrement(c.readRegister(r)))
			return cycles
		})
	}

	// INC rr / DEC rr / ADD HL, rr
	for p := uint8(0); p < 4; p++ {
		DefineInstruction(p<<4|0x03, fmt.Sprintf("INC %s", registerPairNames[p]), func(c *CPU) int {
			c.setRegisterPair(p, c.registerPair(p)+1)
			return 8
		})
		DefineInstruction(p<<4|0x0B, fmt.Sprintf("DEC %s", registerPairNames[p]), func(c *CPU) int {
			c.setRegisterPair(p, c.registerPair(p)-1)
			return 8
		})
		DefineInstruction(p<<4|0x09, fmt.Sprintf("ADD HL, %s", registerPairNames[p]), func(c *CPU) int {
			c.addHL(c.registerPair(p))
			return 8
		})
	}

	DefineInstruction(0xE8, "ADD SP, r8", func(c *CPU) int {
		c.SP = c.addSPSigned(c.readOperand())
		return 16
	})

	// rotates on A always reset Z
	DefineInstruction(0x07, "RLCA", func(c *CPU) int {
		c.A = c.rotateLeft(c.A)
		c.F &^= FlagZero
		return 4
	})
	DefineInstruction(0x0F, "RRCA", func(c *CPU) int {
		c.A = c.rotateRight(c.A)
		c.F &^= FlagZero
		return 4
	})
	DefineInstruction(0x17, "RLA", func(c *CPU) int {
		c.A = c.rotateLeftThroughCarry(c.A)
		c.F &^= FlagZero
		return 4
	})
	DefineInstruction(0x1F, "RRA", func(c *CPU) int {
		c.A = c.rotateRightThroughCarry(c.A)
		c.F &^= FlagZero
		return 4
	})
}
