package cpu

import "fmt"

// cbOps are the rotate and shift operations of the first quarter
// of the CB table, in opcode order.
var cbOps = [8]struct {
	name string
	fn   func(c *CPU, n uint8) uint8
}{
	{"RLC", (*CPU).rotateLeft},
	{"RRC", (*CPU).rotateRight},
	{"RL", (*CPU).rotateLeftThroughCarry},
	{"RR", (*CPU).rotateRightThroughCarry},
	{"SLA", (*CPU).shiftLeftArithmetic},
	{"SRA", (*CPU).shiftRightArithmetic},
	{"SWAP", (*CPU).swap},
	{"SRL", (*CPU).shiftRightLogical},
}

// cbCycles returns the cost of a read-modify-write CB instruction
// on the given operand.
func cbCycles(r uint8) int {
	if r == 6 {
		return 16
	}
	return 8
}

func init() {
	for i := 0; i < 256; i++ {
		opcode := uint8(i)
		sub, r := opcode>>3&7, opcode&7
		cycles := cbCycles(r)

		switch opcode >> 6 {
		case 0:
			op := cbOps[sub]
			DefineInstructionCB(opcode, fmt.Sprintf("%s %s", op.name, registerNames[r]), func(c *CPU) int {
				c.writeRegister(r, op.fn(c, c.readRegister(r)))
				return cycles
			})
		case 1:
			if r == 6 {
				cycles = 12
			}
			DefineInstructionCB(opcode, fmt.Sprintf("BIT %d, %s", sub, registerNames[r]), func(c *CPU) int {
				c.testBit(sub, c.readRegister(r))
				return cycles
			})
		case 2:
			DefineInstructionCB(opcode, fmt.Sprintf("RES %d, %s", sub, registerNames[r]), func(c *CPU) int {
				c.writeRegister(r, c.readRegister(r)&^(1<<sub))
				return cycles
			})
		case 3:
			DefineInstructionCB(opcode, fmt.Sprintf("SET %d, %s", sub, registerNames[r]), func(c *CPU) int {
				c.writeRegister(r, c.readRegister(r)|1<<sub)
				return cycles
			})
		}
	}
}
