// Package event defines the events an emulator sends to its
// display.Driver. It is separate from the display package so that
// the emulator does not depend on the drivers.
package event

// Type is the kind of an Event.
type Type int

const (
	// Quit tells the driver the emulator has been closed, and that
	// it should stop.
	Quit Type = iota
	// Title carries a string for the driver to show in place of a
	// window title, such as the game and the current FPS.
	Title
)

func (t Type) String() string {
	switch t {
	case Quit:
		return "Quit"
	case Title:
		return "Title"
	}
	return "Unknown"
}

// Event is sent to the display.Driver when something happens in the
// emulator. The contents of Data depend on the Type.
type Event struct {
	Type Type
	Data interface{}
}
