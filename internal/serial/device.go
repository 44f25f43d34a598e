package serial

import "io"

// Device is a device that can be attached to the Controller.
type Device interface {
	Receive(bool)
	Send() bool
}

// nullDevice is an implementation of Device that
// simply returns true on Send and does nothing on
// Receive. This is most commonly used for when no
// device is attached to the Controller.
type nullDevice struct{}

func (nullDevice) Receive(bool) {}

func (nullDevice) Send() bool { return true }

// writerDevice collects the bits it receives and writes each
// complete byte to w. Used to capture test ROM output.
type writerDevice struct {
	w     io.Writer
	b     uint8
	count uint8
}

func (d *writerDevice) Receive(bit bool) {
	d.b <<= 1
	if bit {
		d.b |= 1
	}
	if d.count++; d.count == 8 {
		_, _ = d.w.Write([]byte{d.b})
		d.b, d.count = 0, 0
	}
}

func (d *writerDevice) Send() bool { return true }
