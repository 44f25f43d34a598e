package serial

import (
	"io"

	"github.com/thelolagemann/shellboy/internal/interrupts"
	"github.com/thelolagemann/shellboy/internal/types"
)

const (
	ticksPerBit = 512
)

// Controller is the serial controller. It is responsible for sending and
// receiving data to and from devices.
// Before a transfer, data holds the next byte to be sent. AKA types.SB
// During a transfer, it has a mix of the incoming data and the outgoing data.
// each bit, the leftmost bit of data is sent to the attached device, and
// shifted out of data, and the incoming bit is shifted into data.
//
// example:
//
//	Before : data = o7 o6 o5 o4 o3 o2 o1 o0
//	Bit 1  : data = o6 o5 o4 o3 o2 o1 o0 i0
//	...
//	Bit 8  : data = i0 i1 i2 i3 i4 i5 i6 i7
//
// Where o0-o7 are the outgoing bits, and i0-i7 are the incoming bits.
// Only transfers clocked by this controller make progress.
type Controller struct {
	data    uint8
	control uint8

	count  uint8 // the number of bits that have been transferred.
	cycles int   // T-cycles until the next bit.

	AttachedDevice Device // the device that is attached to this controller.
	irq            interrupts.Sink
}

// NewController creates a new Controller, raising the serial interrupt
// through irq when a transfer completes.
//
// By default, the Controller is attached to a nullDevice, which acts as if
// there is no device attached. This is the same as if the device is not
// plugged in. If you want to attach a device, use the Controller.Attach method.
func NewController(irq interrupts.Sink) *Controller {
	c := &Controller{
		AttachedDevice: nullDevice{},
		irq:            irq,
	}
	c.Reset()
	return c
}

// Attach attaches a Device to the Controller.
func (c *Controller) Attach(d Device) {
	c.AttachedDevice = d
}

// AttachWriter attaches a device that writes every transferred byte
// to w. Nothing is sent back, so transfers read back 0xFF.
func (c *Controller) AttachWriter(w io.Writer) {
	c.AttachedDevice = &writerDevice{w: w}
}

// Reset clears any transfer in progress.
func (c *Controller) Reset() {
	c.data = 0
	c.control = 0
	c.count = 0
	c.cycles = 0
}

// InternalClock reports whether this controller drives the clock.
func (c *Controller) InternalClock() bool {
	return c.control&types.Bit0 == types.Bit0
}

// TransferRequest reports whether a transfer is in progress.
func (c *Controller) TransferRequest() bool {
	return c.control&types.Bit7 == types.Bit7
}

// Tick advances the controller by the given number of T-cycles.
func (c *Controller) Tick(cycles int) {
	if !c.TransferRequest() || !c.InternalClock() {
		return
	}
	for c.cycles -= cycles; c.cycles <= 0 && c.TransferRequest(); c.cycles += ticksPerBit {
		c.transferBit()
	}
}

func (c *Controller) transferBit() {
	bit := c.AttachedDevice.Send()
	c.AttachedDevice.Receive(c.data&types.Bit7 == types.Bit7)

	c.data <<= 1
	if bit {
		c.data |= 1
	}

	if c.count++; c.count == 8 {
		c.count = 0
		c.control &^= types.Bit7
		c.irq.RequestInterrupt(interrupts.SerialFlag)
	}
}

// Read returns the value of SB or SC.
func (c *Controller) Read(address uint16) uint8 {
	if address == types.SC {
		return c.control | 0x7E // bits 1-6 are unused
	}
	return c.data
}

// Write writes to SB or SC. Setting bit 7 of SC starts a transfer.
func (c *Controller) Write(address uint16, value uint8) {
	switch address {
	case types.SB:
		c.data = value
	case types.SC:
		c.control = value & (types.Bit7 | types.Bit0)
		if c.TransferRequest() {
			c.count = 0
			c.cycles = ticksPerBit
		}
	}
}
