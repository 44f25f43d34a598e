// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys.
package joypad

import (
	"github.com/thelolagemann/shellboy/internal/interrupts"
	"github.com/thelolagemann/shellboy/internal/types"
)

// Button represents a physical button on the Game Boy. The
// value of a Button is its bit in the State's button byte.
type Button uint8

const (
	// ButtonRight is the Right button.
	ButtonRight Button = iota
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonDown is the Down button.
	ButtonDown
	// ButtonA is the A button.
	ButtonA
	// ButtonB is the B button.
	ButtonB
	// ButtonSelect is the Select button.
	ButtonSelect
	// ButtonStart is the Start button.
	ButtonStart
)

var buttonNames = [8]string{"Right", "Left", "Up", "Down", "A", "B", "Select", "Start"}

func (b Button) String() string {
	if int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return "Unknown"
}

// ParseButton returns the Button with the given name, as
// returned by Button.String.
func ParseButton(name string) (Button, bool) {
	for i, n := range buttonNames {
		if n == name {
			return Button(i), true
		}
	}
	return 0, false
}

// direction reports whether the button belongs to the
// direction group, selected by clearing bit 4 of types.P1.
func (b Button) direction() bool {
	return b < ButtonA
}

// State represents the state of the joypad. Select either
// action or direction buttons by writing to the register,
// and then read out bits 0-3 to get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
type State struct {
	// buttons holds the direction keys in the lower 4 bits,
	// and the action buttons in the upper 4 bits. A 0 in a
	// bit indicates that the button is pressed.
	buttons   uint8
	selection uint8

	irq interrupts.Sink
}

// New returns a new joypad state, with every button released
// and neither group selected.
func New(irq interrupts.Sink) *State {
	s := &State{irq: irq}
	s.Reset()
	return s
}

// Reset releases every button and deselects both groups.
func (s *State) Reset() {
	s.buttons = 0xFF
	s.selection = 0x30
}

// Read returns the value of types.P1.
func (s *State) Read() uint8 {
	nibble := uint8(0x0F)
	if s.selection&types.Bit4 == 0 {
		nibble &= s.buttons & 0x0F
	}
	if s.selection&types.Bit5 == 0 {
		nibble &= s.buttons >> 4
	}
	return 0xC0 | s.selection | nibble
}

// Write selects the button groups visible in types.P1.
func (s *State) Write(value uint8) {
	s.selection = value & 0x30
}

// Press presses the button, requesting the joypad interrupt if
// it was released and its group is selected.
func (s *State) Press(b Button) {
	mask := uint8(1) << b
	wasReleased := s.buttons&mask != 0
	s.buttons &^= mask

	if wasReleased && s.selected(b) {
		s.irq.RequestInterrupt(interrupts.JoypadFlag)
	}
}

// Release releases the button.
func (s *State) Release(b Button) {
	s.buttons |= uint8(1) << b
}

// Pressed reports whether the button is currently pressed.
func (s *State) Pressed(b Button) bool {
	return s.buttons&(uint8(1)<<b) == 0
}

func (s *State) selected(b Button) bool {
	if b.direction() {
		return s.selection&types.Bit4 == 0
	}
	return s.selection&types.Bit5 == 0
}
