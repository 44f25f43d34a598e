package emulator

// Command is sent by a display driver to control the emulator.
type Command int

const (
	CommandPause Command = iota
	CommandResume
	// CommandClose saves the battery backed RAM and stops the
	// emulator.
	CommandClose
	CommandReset
	// CommandSave writes the battery backed RAM to disk.
	CommandSave
	// CommandSetSpeed sets the speed multiplier of the emulator.
	// Data holds the speed as a decimal string.
	CommandSetSpeed
)

var commandNames = [...]string{"Pause", "Resume", "Close", "Reset", "Save", "SetSpeed"}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return "Unknown"
	}
	return commandNames[c]
}

// CommandPacket is a Command along with its arguments.
type CommandPacket struct {
	Command Command
	Data    []byte
}

// ResponsePacket is the emulator's response to a CommandPacket.
type ResponsePacket struct {
	Command Command
	Data    []byte
	Error   error
}
