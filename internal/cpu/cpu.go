// Package cpu provides the SM83 CPU of the DMG. Instructions are
// looked up in the InstructionSet and InstructionSetCB tables and
// report the number of T-cycles they took, which the caller uses
// to advance the rest of the hardware.
package cpu

import (
	"github.com/thelolagemann/shellboy/internal/interrupts"
	"github.com/thelolagemann/shellboy/internal/types"
	"github.com/thelolagemann/shellboy/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the CPU in T-cycles per second.
	ClockSpeed = 4194304
	// InterruptCycles is the number of T-cycles taken to dispatch
	// an interrupt.
	InterruptCycles = 20
)

// Bus is the address bus the CPU executes against.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// Fault describes an undefined opcode the CPU tried to execute.
type Fault struct {
	Opcode uint8
	PC     uint16 // address of the opcode
}

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers

	ime       bool // interrupt master enable
	eiPending bool // IME is set after the instruction following EI
	halted    bool

	faults    uint64
	lastFault Fault

	bus Bus
	log log.Logger
}

// New creates a new CPU executing against bus, in the state the
// boot ROM leaves it in.
func New(bus Bus, l log.Logger) *CPU {
	c := &CPU{
		bus: bus,
		log: l,
	}
	// create register pairs
	c.BC = &RegisterPair{&c.B, &c.C}
	c.DE = &RegisterPair{&c.D, &c.E}
	c.HL = &RegisterPair{&c.H, &c.L}
	c.AF = &RegisterPair{&c.A, &c.F}

	c.Reset()
	return c
}

// Reset sets the registers to the values the DMG boot ROM leaves
// behind, ready to execute the cartridge entry point at 0x0100.
func (c *CPU) Reset() {
	c.AF.SetUint16(0x01B0)
	c.BC.SetUint16(0x0013)
	c.DE.SetUint16(0x00D8)
	c.HL.SetUint16(0x014D)
	c.SP = 0xFFFE
	c.PC = 0x0100
	c.resetState()
}

// ResetBoot clears every register, so that execution starts at
// 0x0000 in the boot ROM.
func (c *CPU) ResetBoot() {
	c.AF.SetUint16(0)
	c.BC.SetUint16(0)
	c.DE.SetUint16(0)
	c.HL.SetUint16(0)
	c.SP = 0
	c.PC = 0
	c.resetState()
}

func (c *CPU) resetState() {
	c.ime = false
	c.eiPending = false
	c.halted = false
	c.faults = 0
	c.lastFault = Fault{}
}

// Tick executes a single instruction, or dispatches a single
// interrupt, and returns the number of T-cycles taken. A halted
// CPU takes 4 T-cycles per call until an interrupt is pending.
func (c *CPU) Tick() int {
	if cycles, ok := c.serviceInterrupts(); ok {
		return cycles
	}
	if c.halted {
		return 4
	}

	enableIME := c.eiPending
	opcode := c.readOperand()
	cycles := InstructionSet[opcode].fn(c)

	if enableIME && c.eiPending {
		c.eiPending = false
		c.ime = true
	}

	return cycles
}

// serviceInterrupts wakes the CPU if any enabled interrupt is
// requested and, if the IME is set, jumps to the vector of the
// highest priority one.
func (c *CPU) serviceInterrupts() (int, bool) {
	pending := c.bus.Read(types.IE) & c.bus.Read(types.IF) & 0x1F
	if pending == 0 {
		return 0, false
	}
	c.halted = false
	if !c.ime {
		return 0, false
	}

	bit, _ := interrupts.Lowest(pending)
	c.ime = false
	c.bus.Write(types.IF, c.bus.Read(types.IF)&^(1<<bit))
	c.push(c.PC)
	c.PC = interrupts.Vector(bit)

	return InterruptCycles, true
}

// readOperand reads the byte at PC and advances PC.
func (c *CPU) readOperand() uint8 {
	value := c.bus.Read(c.PC)
	c.PC++
	return value
}

// readOperand16 reads a little-endian 16-bit immediate.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	return uint16(c.readOperand())<<8 | uint16(low)
}

// push decrements SP and writes the high byte, then decrements
// SP and writes the low byte.
func (c *CPU) push(value uint16) {
	c.SP--
	c.bus.Write(c.SP, uint8(value>>8))
	c.SP--
	c.bus.Write(c.SP, uint8(value))
}

// pop reads the low byte then the high byte, incrementing SP
// after each.
func (c *CPU) pop() uint16 {
	low := c.bus.Read(c.SP)
	c.SP++
	high := c.bus.Read(c.SP)
	c.SP++
	return uint16(high)<<8 | uint16(low)
}

// readRegister returns the operand selected by index, as encoded
// in the lower 3 bits of most opcodes.
//
//	0 = B, 1 = C, 2 = D, 3 = E, 4 = H, 5 = L, 6 = (HL), 7 = A
func (c *CPU) readRegister(index uint8) uint8 {
	switch index & 7 {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.bus.Read(c.HL.Uint16())
	default:
		return c.A
	}
}

// writeRegister writes to the operand selected by index.
func (c *CPU) writeRegister(index uint8, value uint8) {
	switch index & 7 {
	case 0:
		c.B = value
	case 1:
		c.C = value
	case 2:
		c.D = value
	case 3:
		c.E = value
	case 4:
		c.H = value
	case 5:
		c.L = value
	case 6:
		c.bus.Write(c.HL.Uint16(), value)
	default:
		c.A = value
	}
}

var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// registerPair returns the value of the 16-bit register encoded in
// bits 4-5 of an opcode, where 3 selects SP.
func (c *CPU) registerPair(index uint8) uint16 {
	switch index & 3 {
	case 0:
		return c.BC.Uint16()
	case 1:
		return c.DE.Uint16()
	case 2:
		return c.HL.Uint16()
	default:
		return c.SP
	}
}

func (c *CPU) setRegisterPair(index uint8, value uint16) {
	switch index & 3 {
	case 0:
		c.BC.SetUint16(value)
	case 1:
		c.DE.SetUint16(value)
	case 2:
		c.HL.SetUint16(value)
	default:
		c.SP = value
	}
}

var registerPairNames = [4]string{"BC", "DE", "HL", "SP"}

// stackPair returns the register pair encoded in bits 4-5 of PUSH
// and POP, where 3 selects AF.
func (c *CPU) stackPair(index uint8) *RegisterPair {
	switch index & 3 {
	case 0:
		return c.BC
	case 1:
		return c.DE
	case 2:
		return c.HL
	default:
		return c.AF
	}
}

var stackPairNames = [4]string{"BC", "DE", "HL", "AF"}

// fault records an undefined opcode. Only the first one since the
// last reset is logged, as a ROM that hits one usually keeps doing so.
func (c *CPU) fault(opcode uint8) {
	c.faults++
	c.lastFault = Fault{Opcode: opcode, PC: c.PC - 1}
	if c.faults == 1 {
		c.log.Warnf("cpu: undefined opcode 0x%02X at 0x%04X", opcode, c.PC-1)
	}
}

// Faults returns the number of undefined opcodes executed since
// the last reset.
func (c *CPU) Faults() uint64 {
	return c.faults
}

// LastFault returns the last undefined opcode executed, and false
// if there has been none.
func (c *CPU) LastFault() (Fault, bool) {
	return c.lastFault, c.faults > 0
}

// Halted reports whether the CPU is waiting for an interrupt.
func (c *CPU) Halted() bool {
	return c.halted
}

// IME reports whether interrupts are enabled.
func (c *CPU) IME() bool {
	return c.ime
}
