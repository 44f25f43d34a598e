// Package timer provides an implementation of the Game Boy
// timer. It is used to generate interrupts at a specific
// frequency. The frequency can be configured using the
// types.TAC register.
package timer

import (
	"github.com/thelolagemann/shellboy/internal/interrupts"
	"github.com/thelolagemann/shellboy/internal/types"
)

// bits maps the clock select bits of types.TAC to the bit of
// the internal counter that drives TIMA.
//
//	00 = bit 9 (4096 Hz)
//	01 = bit 3 (262144 Hz)
//	10 = bit 5 (65536 Hz)
//	11 = bit 7 (16384 Hz)
var bits = [4]uint16{1 << 9, 1 << 3, 1 << 5, 1 << 7}

// Controller is a timer controller. It is used to generate
// interrupts at a specific frequency. The frequency can be
// configured using the types.TAC register.
//
// TIMA is incremented on the falling edge of the selected
// counter bit ANDed with the enable bit, so anything that
// makes that signal drop (counter ticks, writes to types.DIV
// and writes to types.TAC) increments it.
type Controller struct {
	counter uint16 // types.DIV is the upper 8 bits

	tima uint8
	tma  uint8
	tac  uint8

	irq interrupts.Sink
}

// NewController returns a new timer controller.
func NewController(irq interrupts.Sink) *Controller {
	return &Controller{irq: irq}
}

// Reset clears the counter and all timer registers.
func (c *Controller) Reset() {
	c.counter = 0
	c.tima, c.tma, c.tac = 0, 0, 0
}

// signal returns the input of the falling edge detector.
func (c *Controller) signal() bool {
	return c.tac&types.Bit2 != 0 && c.counter&bits[c.tac&0b11] != 0
}

// Tick advances the timer by the given number of T-cycles.
func (c *Controller) Tick(cycles int) {
	for i := 0; i < cycles; i++ {
		old := c.signal()
		c.counter++
		c.detectEdge(old)
	}
}

// detectEdge increments TIMA if the signal has fallen since old.
func (c *Controller) detectEdge(old bool) {
	if old && !c.signal() {
		c.tima++
		if c.tima == 0 {
			c.tima = c.tma
			c.irq.RequestInterrupt(interrupts.TimerFlag)
		}
	}
}

// Div returns the current value of types.DIV.
func (c *Controller) Div() uint8 {
	return uint8(c.counter >> 8)
}

// Read returns the value of the timer register at address.
func (c *Controller) Read(address uint16) uint8 {
	switch address {
	case types.DIV:
		return c.Div()
	case types.TIMA:
		return c.tima
	case types.TMA:
		return c.tma
	case types.TAC:
		return c.tac | 0b11111000
	}
	return 0xFF
}

// Write writes to the timer register at address.
func (c *Controller) Write(address uint16, value uint8) {
	switch address {
	case types.DIV:
		old := c.signal()
		c.counter = 0
		c.detectEdge(old)
	case types.TIMA:
		c.tima = value
	case types.TMA:
		c.tma = value
	case types.TAC:
		old := c.signal()
		c.tac = value & 0b111
		c.detectEdge(old)
	}
}
