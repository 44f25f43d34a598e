package cpu

import "fmt"

func init() {
	// LD r, r'
	for opcode := 0x40; opcode < 0x80; opcode++ {
		if opcode == 0x76 {
			continue // HALT
		}
		dst, src := uint8(opcode>>3&7), uint8(opcode&7)
		cycles := 4
		if dst == 6 || src == 6 {
			cycles = 8
		}
		DefineInstruction(uint8(opcode), fmt.Sprintf("LD %s, %s", registerNames[dst], registerNames[src]), func(c *CPU) int {
			c.writeRegister(dst, c.readRegister(src))
			return cycles
		})
	}

	// LD r, d8
	for r := uint8(0); r < 8; r++ {
		cycles := 8
		if r == 6 {
			cycles = 12
		}
		DefineInstruction(r<<3|0x06, fmt.Sprintf("LD %s, d8", registerNames[r]), func(c *CPU) int {
			c.writeRegister(r, c.readOperand())
			return cycles
		})
	}

	// LD rr, d16
	for p := uint8(0); p < 4; p++ {
		DefineInstruction(p<<4|0x01, fmt.Sprintf("LD %s, d16", registerPairNames[p]), func(c *CPU) int {
			c.setRegisterPair(p, c.readOperand16())
			return 12
		})
	}

	// indirect loads through BC, DE and HL with post increment/decrement
	indirect := [4]struct {
		name    string
		address func(c *CPU) uint16
	}{
		{"(BC)", func(c *CPU) uint16 { return c.BC.Uint16() }},
		{"(DE)", func(c *CPU) uint16 { return c.DE.Uint16() }},
		{"(HL+)", func(c *CPU) uint16 {
			hl := c.HL.Uint16()
			c.HL.SetUint16(hl + 1)
			return hl
		}},
		{"(HL-)", func(c *CPU) uint16 {
			hl := c.HL.Uint16()
			c.HL.SetUint16(hl - 1)
			return hl
		}},
	}
	for p, ind := range indirect {
		DefineInstruction(uint8(p)<<4|0x02, fmt.Sprintf("LD %s, A", ind.name), func(c *CPU) int {
			c.bus.Write(ind.address(c), c.A)
			return 8
		})
		DefineInstruction(uint8(p)<<4|0x0A, fmt.Sprintf("LD A, %s", ind.name), func(c *CPU) int {
			c.A = c.bus.Read(ind.address(c))
			return 8
		})
	}

	DefineInstruction(0x08, "LD (a16), SP", func(c *CPU) int {
		address := c.readOperand16()
		c.bus.Write(address, uint8(c.SP))
		c.bus.Write(address+1, uint8(c.SP>>8))
		return 20
	})
	DefineInstruction(0xE0, "LDH (a8), A", func(c *CPU) int {
		c.bus.Write(0xFF00+uint16(c.readOperand()), c.A)
		return 12
	})
	DefineInstruction(0xF0, "LDH A, (a8)", func(c *CPU) int {
		c.A = c.bus.Read(0xFF00 + uint16(c.readOperand()))
		return 12
	})
	DefineInstruction(0xE2, "LD (C), A", func(c *CPU) int {
		c.bus.Write(0xFF00+uint16(c.C), c.A)
		return 8
	})
	DefineInstruction(0xF2, "LD A, (C)", func(c *CPU) int {
		c.A = c.bus.Read(0xFF00 + uint16(c.C))
		return 8
	})
	DefineInstruction(0xEA, "LD (a16), A", func(c *CPU) int {
		c.bus.Write(c.readOperand16(), c.A)
		return 16
	})
	DefineInstruction(0xFA, "LD A, (a16)", func(c *CPU) int {
		c.A = c.bus.Read(c.readOperand16())
		return 16
	})
	DefineInstruction(0xF8, "LD HL, SP+r8", func(c *CPU) int {
		c.HL.SetUint16(c.addSPSigned(c.readOperand()))
		return 12
	})
	DefineInstruction(0xF9, "LD SP, HL", func(c *CPU) int {
		c.SP = c.HL.Uint16()
		return 8
	})

	// PUSH rr / POP rr
	for p := uint8(0); p < 4; p++ {
		DefineInstruction(0xC5|p<<4, fmt.Sprintf("PUSH %s", stackPairNames[p]), func(c *CPU) int {
			c.push(c.stackPair(p).Uint16())
			return 16
		})
		DefineInstruction(0xC1|p<<4, fmt.Sprintf("POP %s", stackPairNames[p]), func(c *CPU) int {
			c.stackPair(p).SetUint16(c.pop())
			c.F &= 0xF0
			return 12
		})
	}
}
