package cpu

import "fmt"

// jumpRelative adds the signed displacement e to PC. PC already
// points past the operand.
//
//	JR e
func (c *CPU) jumpRelative(e uint8) {
	c.PC = uint16(int32(c.PC) + int32(int8(e)))
}

// call pushes the address of the next instruction and jumps to
// address.
//
//	CALL nn
func (c *CPU) call(address uint16) {
	c.push(c.PC)
	c.PC = address
}

func init() {
	DefineInstruction(0x18, "JR r8", func(c *CPU) int {
		c.jumpRelative(c.readOperand())
		return 12
	})
	DefineInstruction(0xC3, "JP a16", func(c *CPU) int {
		c.PC = c.readOperand16()
		return 16
	})
	DefineInstruction(0xE9, "JP HL", func(c *CPU) int {
		c.PC = c.HL.Uint16()
		return 4
	})
	DefineInstruction(0xCD, "CALL a16", func(c *CPU) int {
		c.call(c.readOperand16())
		return 24
	})
	DefineInstruction(0xC9, "RET", func(c *CPU) int {
		c.PC = c.pop()
		return 16
	})
	DefineInstruction(0xD9, "RETI", func(c *CPU) int {
		c.PC = c.pop()
		c.ime = true
		c.eiPending = false
		return 16
	})

	for cc := uint8(0); cc < 4; cc++ {
		name := conditionNames[cc]
		DefineInstruction(0x20|cc<<3, fmt.Sprintf("JR %s, r8", name), func(c *CPU) int {
			e := c.readOperand()
			if !c.condition(cc) {
				return 8
			}
			c.jumpRelative(e)
			return 12
		})
		DefineInstruction(0xC2|cc<<3, fmt.Sprintf("JP %s, a16", name), func(c *CPU) int {
			address := c.readOperand16()
			if !c.condition(cc) {
				return 12
			}
			c.PC = address
			return 16
		})
		DefineInstruction(0xC4|cc<<3, fmt.Sprintf("CALL %s, a16", name), func(c *CPU) int {
			address := c.readOperand16()
			if !c.condition(cc) {
				return 12
			}
			c.call(address)
			return 24
		})
		DefineInstruction(0xC0|cc<<3, fmt.Sprintf("RET %s", name), func(c *CPU) int {
			if !c.condition(cc) {
				return 8
			}
			c.PC = c.pop()
			return 20
		})
	}

	// RST n
	for n := uint8(0); n < 8; n++ {
		DefineInstruction(0xC7|n<<3, fmt.Sprintf("RST %02XH", n<<3), func(c *CPU) int {
			c.call(uint16(n) << 3)
			return 16
		})
	}
}
