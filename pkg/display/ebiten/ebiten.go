//go:build !headless

// Package ebiten provides a display driver that draws the frame in
// a desktop window.
package ebiten

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/thelolagemann/shellboy/internal/joypad"
	"github.com/thelolagemann/shellboy/internal/ppu"
	"github.com/thelolagemann/shellboy/internal/ppu/palette"
	"github.com/thelolagemann/shellboy/pkg/display"
	"github.com/thelolagemann/shellboy/pkg/display/event"
	"github.com/thelolagemann/shellboy/pkg/log"
	"github.com/thelolagemann/shellboy/pkg/utils"
)

// Driver draws frames in a window, scaled by an integer factor.
type Driver struct {
	emu display.Emulator
	log log.Logger

	scale       int
	green       bool
	screenshots string

	fb       <-chan []byte
	events   <-chan event.Event
	pressed  chan<- joypad.Button
	released chan<- joypad.Button

	palette palette.Palette
	frame   []byte
	pixels  []byte
	screen  *ebiten.Image
	title   string

	stop chan struct{}
	once sync.Once
}

func init() {
	d := New()
	display.Install("ebiten", d, []display.DriverOption{
		{
			Name:        "scale",
			Default:     4,
			Value:       &d.scale,
			Description: "window scale factor",
			Type:        "int",
		},
		{
			Name:        "palette-green",
			Default:     false,
			Value:       &d.green,
			Description: "use the green palette",
			Type:        "bool",
		},
		{
			Name:        "screenshots",
			Default:     ".",
			Value:       &d.screenshots,
			Description: "directory screenshots are saved to",
			Type:        "string",
		},
	})
}

// New returns a Driver with the default settings.
func New() *Driver {
	return &Driver{
		scale:       4,
		screenshots: ".",
		frame:       make([]byte, ppu.ScreenWidth*ppu.ScreenHeight),
		pixels:      make([]byte, ppu.ScreenWidth*ppu.ScreenHeight*4),
		stop:        make(chan struct{}),
	}
}

func (d *Driver) Initialize(emu display.Emulator, l log.Logger) {
	d.emu = emu
	d.log = l
}

// Start opens the window, and blocks until it is closed. It must be
// called from the main goroutine.
func (d *Driver) Start(fb <-chan []byte, events <-chan event.Event, pressed, released chan<- joypad.Button) error {
	if d.emu == nil {
		return errors.New("ebiten: driver not initialized")
	}
	if d.log == nil {
		d.log = log.NewNullLogger()
	}
	d.fb, d.events, d.pressed, d.released = fb, events, pressed, released
	d.palette = palette.Get(palette.Greyscale)
	if d.green {
		d.palette = palette.Get(palette.Green)
	}
	d.fill()

	scale := max(d.scale, 1)
	ebiten.SetWindowTitle("shellboy")
	ebiten.SetWindowSize(ppu.ScreenWidth*scale, ppu.ScreenHeight*scale)
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)

	err := ebiten.RunGame(d)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Update polls the keyboard, and drains the frame and event
// channels.
func (d *Driver) Update() error {
	select {
	case <-d.stop:
		return ebiten.Termination
	default:
	}

	quit, title := d.drain()
	if quit {
		return ebiten.Termination
	}
	if title != "" && title != d.title {
		d.title = title
		ebiten.SetWindowTitle(title)
	}

	for key, button := range keyButtons {
		switch {
		case inpututil.IsKeyJustPressed(key):
			d.send(d.pressed, button)
		case inpututil.IsKeyJustReleased(key):
			d.send(d.released, button)
		}
	}
	for key, a := range keyActions {
		if inpututil.IsKeyJustPressed(key) {
			d.handleAction(a)
		}
	}

	return nil
}

// drain consumes the pending frames and events, keeping the most
// recent frame. It reports whether the emulator has quit, and the
// latest title.
func (d *Driver) drain() (quit bool, title string) {
	for {
		select {
		case frame, ok := <-d.fb:
			if !ok {
				return true, title
			}
			copy(d.frame, frame)
		case e := <-d.events:
			switch e.Type {
			case event.Quit:
				return true, title
			case event.Title:
				title = fmt.Sprint(e.Data)
			}
		default:
			d.fill()
			return false, title
		}
	}
}

// fill converts the frame to RGBA.
func (d *Driver) fill() {
	for i, shade := range d.frame {
		c := d.palette.GetColour(shade)
		px := d.pixels[i*4 : i*4+4]
		px[0], px[1], px[2], px[3] = c[0], c[1], c[2], 0xFF
	}
}

func (d *Driver) send(ch chan<- joypad.Button, b joypad.Button) {
	select {
	case ch <- b:
	case <-d.stop:
	}
}

func (d *Driver) handleAction(a action) {
	switch a {
	case actionPause:
		display.TogglePause(d.emu)
	case actionReset:
		d.emu.SendCommand(display.Reset)
	case actionFullscreen:
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	case actionCopy:
		if err := utils.CopyImage(utils.FrameImage(d.frame, d.palette)); err != nil {
			d.log.Errorf("ebiten: %v", err)
		}
	case actionScreenshot:
		name := filepath.Join(d.screenshots, fmt.Sprintf("shellboy-%s.png", time.Now().Format("20060102-150405")))
		if err := utils.SavePNG(name, utils.FrameImage(d.frame, d.palette), max(d.scale, 1)); err != nil {
			d.log.Errorf("ebiten: %v", err)
		} else {
			d.log.Infof("saved screenshot to %s", name)
		}
	case actionScreenshotAs:
		go d.saveScreenshotAs(utils.FrameImage(d.frame, d.palette))
	}
}

// askForSaveFile shows the save dialog.
var askForSaveFile = utils.AskForSaveFile

// saveScreenshotAs asks where to save img, off the game loop as the
// dialog blocks until it is closed.
func (d *Driver) saveScreenshotAs(img image.Image) {
	name, err := askForSaveFile("Save screenshot", d.screenshots)
	if err != nil {
		d.log.Errorf("ebiten: %v", err)
		return
	}
	if name == "" {
		return
	}
	if filepath.Ext(name) == "" {
		name += ".png"
	}
	if err := utils.SavePNG(name, img, max(d.scale, 1)); err != nil {
		d.log.Errorf("ebiten: %v", err)
		return
	}
	d.log.Infof("saved screenshot to %s", name)
}

func (d *Driver) Draw(screen *ebiten.Image) {
	if d.screen == nil {
		d.screen = ebiten.NewImage(ppu.ScreenWidth, ppu.ScreenHeight)
	}
	d.screen.WritePixels(d.pixels)
	screen.DrawImage(d.screen, nil)
}

func (d *Driver) Layout(_, _ int) (int, int) {
	return ppu.ScreenWidth, ppu.ScreenHeight
}

// Stop closes the window.
func (d *Driver) Stop() error {
	d.once.Do(func() { close(d.stop) })
	return nil
}
