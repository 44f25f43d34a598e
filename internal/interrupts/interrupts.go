package interrupts

import (
	"github.com/thelolagemann/shellboy/internal/types"
)

// Flag is a single interrupt source, as laid out in
// types.IF and types.IE.
type Flag = uint8

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0),
	// which is requested every time the PPU enters
	// the VBlank period (LY 144).
	VBlankFlag Flag = types.Bit0
	// LCDFlag is the LCD interrupt flag (bit 1), which
	// is requested by the LCD STAT register (types.STAT),
	// when one of its enabled sources goes high.
	LCDFlag Flag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2),
	// which is requested when types.TIMA overflows.
	TimerFlag Flag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3),
	// which is requested when a serial transfer is
	// completed.
	SerialFlag Flag = types.Bit3
	// JoypadFlag is the Joypad interrupt flag (bit 4),
	// which is requested when a button in a selected
	// group goes from released to pressed.
	JoypadFlag Flag = types.Bit4
)

// Count is the number of interrupt sources.
const Count = 5

// Sink is anything that can have interrupts requested
// of it. Peripherals hold a Sink rather than the whole
// bus, so that they only see the single capability
// they need.
type Sink interface {
	RequestInterrupt(flag Flag)
}

// Vector returns the address the CPU jumps to when servicing
// the interrupt at the given bit index.
func Vector(bit uint8) uint16 {
	return 0x0040 + uint16(bit)*8
}

// Lowest returns the bit index of the highest priority (lowest
// numbered) interrupt in pending, and false if none is pending.
func Lowest(pending uint8) (uint8, bool) {
	for i := uint8(0); i < Count; i++ {
		if pending&(1<<i) != 0 {
			return i, true
		}
	}
	return 0, false
}
