package terminal

import "github.com/thelolagemann/shellboy/internal/joypad"

// action is a key that controls the emulator rather than the
// joypad.
type action int

const (
	actionNone action = iota
	actionQuit
	actionPause
	actionReset
	actionCopy
	actionScreenshot
)

// key is a decoded key press.
type key struct {
	button joypad.Button
	action action
	isPad  bool
}

var buttonKeys = map[byte]joypad.Button{
	'z':  joypad.ButtonA,
	'x':  joypad.ButtonB,
	'\r': joypad.ButtonStart,
	'\n': joypad.ButtonStart,
	' ':  joypad.ButtonSelect,
	0x7F: joypad.ButtonSelect,
	'w':  joypad.ButtonUp,
	'a':  joypad.ButtonLeft,
	's':  joypad.ButtonDown,
	'd':  joypad.ButtonRight,
}

var actionKeys = map[byte]action{
	'q':  actionQuit,
	0x03: actionQuit, // ctrl+c
	'p':  actionPause,
	'r':  actionReset,
	'c':  actionCopy,
	'o':  actionScreenshot,
}

var arrowKeys = map[byte]joypad.Button{
	'A': joypad.ButtonUp,
	'B': joypad.ButtonDown,
	'C': joypad.ButtonRight,
	'D': joypad.ButtonLeft,
}

// decodeKeys decodes the bytes read from a raw mode terminal,
// including the escape sequences sent for the arrow keys. Unknown
// bytes are ignored.
func decodeKeys(b []byte) []key {
	var keys []key
	for i := 0; i < len(b); i++ {
		if b[i] == 0x1B && i+2 < len(b) && b[i+1] == '[' {
			if button, ok := arrowKeys[b[i+2]]; ok {
				keys = append(keys, key{button: button, isPad: true})
			}
			i += 2
			continue
		}
		if button, ok := buttonKeys[b[i]]; ok {
			keys = append(keys, key{button: button, isPad: true})
		} else if a, ok := actionKeys[b[i]]; ok {
			keys = append(keys, key{action: a})
		}
	}
	return keys
}
