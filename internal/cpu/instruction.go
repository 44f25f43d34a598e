package cpu

import (
	"fmt"

	"github.com/thelolagemann/shellboy/internal/types"
)

// Instruction is a single entry in an instruction table. fn
// executes the instruction and returns the number of T-cycles
// it took.
type Instruction struct {
	name string
	fn   func(*CPU) int
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string {
	return i.name
}

var (
	// InstructionSet holds the unprefixed instructions.
	InstructionSet [256]Instruction
	// InstructionSetCB holds the instructions prefixed by 0xCB.
	InstructionSetCB [256]Instruction
)

// DefineInstruction defines the instruction in the InstructionSet,
// with the provided opcode.
func DefineInstruction(opcode uint8, name string, fn func(*CPU) int) {
	InstructionSet[opcode] = Instruction{name: name, fn: fn}
}

// DefineInstructionCB defines the instruction in the InstructionSetCB,
// with the provided opcode.
func DefineInstructionCB(opcode uint8, name string, fn func(*CPU) int) {
	InstructionSetCB[opcode] = Instruction{name: name, fn: fn}
}

// undefinedOpcodes cause the hardware to lock up.
var undefinedOpcodes = []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD}

func init() {
	DefineInstruction(0x00, "NOP", func(c *CPU) int { return 4 })
	DefineInstruction(0x10, "STOP", func(c *CPU) int {
		c.PC++
		c.halted = true
		c.bus.Write(types.DIV, 0)
		return 4
	})
	DefineInstruction(0x76, "HALT", func(c *CPU) int {
		c.halted = true
		return 4
	})
	DefineInstruction(0xF3, "DI", func(c *CPU) int {
		c.ime = false
		c.eiPending = false
		return 4
	})
	DefineInstruction(0xFB, "EI", func(c *CPU) int {
		if !c.ime {
			c.eiPending = true
		}
		return 4
	})
	DefineInstruction(0x27, "DAA", func(c *CPU) int {
		c.daa()
		return 4
	})
	DefineInstruction(0x2F, "CPL", func(c *CPU) int {
		c.A = ^c.A
		c.F |= FlagSubtract | FlagHalfCarry
		return 4
	})
	DefineInstruction(0x37, "SCF", func(c *CPU) int {
		c.setFlags(c.isFlagSet(FlagZero), false, false, true)
		return 4
	})
	DefineInstruction(0x3F, "CCF", func(c *CPU) int {
		c.setFlags(c.isFlagSet(FlagZero), false, false, !c.isFlagSet(FlagCarry))
		return 4
	})
	DefineInstruction(0xCB, "PREFIX CB", func(c *CPU) int {
		return InstructionSetCB[c.readOperand()].fn(c)
	})

	for _, opcode := range undefinedOpcodes {
		DefineInstruction(opcode, fmt.Sprintf("UNDEFINED 0x%02X", opcode), func(c *CPU) int {
			c.fault(opcode)
			return 0
		})
	}
}

// Disassemble returns the mnemonic of the instruction at pc,
// following the 0xCB prefix if present. The bus is read but not
// written.
func (c *CPU) Disassemble(pc uint16) string {
	opcode := c.bus.Read(pc)
	if opcode == 0xCB {
		return InstructionSetCB[c.bus.Read(pc+1)].name
	}
	return InstructionSet[opcode].name
}
