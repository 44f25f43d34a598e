//go:build !headless

package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/thelolagemann/shellboy/internal/joypad"
)

// keyButtons maps keyboard keys to the buttons they press.
var keyButtons = map[ebiten.Key]joypad.Button{
	ebiten.KeyArrowRight: joypad.ButtonRight,
	ebiten.KeyArrowLeft:  joypad.ButtonLeft,
	ebiten.KeyArrowUp:    joypad.ButtonUp,
	ebiten.KeyArrowDown:  joypad.ButtonDown,
	ebiten.KeyZ:          joypad.ButtonA,
	ebiten.KeyX:          joypad.ButtonB,
	ebiten.KeyBackspace:  joypad.ButtonSelect,
	ebiten.KeyShiftRight: joypad.ButtonSelect,
	ebiten.KeyEnter:      joypad.ButtonStart,
}

type action int

const (
	actionNone action = iota
	actionPause
	actionReset
	actionScreenshot
	actionCopy
	actionFullscreen
	actionScreenshotAs
)

var keyActions = map[ebiten.Key]action{
	ebiten.KeyP:   actionPause,
	ebiten.KeyR:   actionReset,
	ebiten.KeyF10: actionScreenshotAs,
	ebiten.KeyF12: actionScreenshot,
	ebiten.KeyC:   actionCopy,
	ebiten.KeyF11: actionFullscreen,
}
