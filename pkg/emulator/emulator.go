// Package emulator defines how display drivers control an emulator,
// and how it persists battery backed RAM.
package emulator

// Controller is implemented by an emulator that a display driver
// can pause, resume and query.
type Controller interface {
	Pause()
	Resume()
	Paused() bool
	Status() Status
}

// Status is the state of the emulated CPU, as reported to a
// display driver.
type Status int

const (
	// Running is the status of a CPU executing instructions.
	Running Status = iota
	// Paused is the status of an emulator paused by the user.
	Paused
	// Halted is the status of a CPU waiting for an interrupt.
	Halted
	// Errored is the status of a CPU that has executed an
	// undefined opcode, and is locked up.
	Errored
)

var statusNames = [...]string{"Running", "Paused", "Halted", "Errored"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "Unknown"
	}
	return statusNames[s]
}
