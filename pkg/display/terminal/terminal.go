// Package terminal provides a display driver that draws the frame
// in the terminal using braille characters.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/shellboy/internal/joypad"
	"github.com/thelolagemann/shellboy/internal/ppu/palette"
	"github.com/thelolagemann/shellboy/pkg/display"
	"github.com/thelolagemann/shellboy/pkg/display/braille"
	"github.com/thelolagemann/shellboy/pkg/display/event"
	"github.com/thelolagemann/shellboy/pkg/emulator"
	"github.com/thelolagemann/shellboy/pkg/log"
	"github.com/thelolagemann/shellboy/pkg/utils"
	"golang.org/x/term"
)

const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// Driver draws frames as braille characters. Terminals do not
// report key releases, so a pressed button is released after it
// has been held for a number of frames.
type Driver struct {
	emu display.Emulator
	log log.Logger

	in  io.Reader
	out io.Writer

	threshold   int
	holdFrames  int
	green       bool
	screenshots string

	last    []byte
	lastSum uint64
	status  emulator.Status
	title   string
	held    map[joypad.Button]int
	stop    chan struct{}
	once    sync.Once
	frames  int
}

func init() {
	d := New(os.Stdin, os.Stdout)
	display.Install("terminal", d, []display.DriverOption{
		{
			Name:        "threshold",
			Default:     0,
			Value:       &d.threshold,
			Description: "shades darker than this are drawn (0-2)",
			Type:        "int",
		},
		{
			Name:        "hold",
			Default:     6,
			Value:       &d.holdFrames,
			Description: "frames a key is held for after being pressed",
			Type:        "int",
		},
		{
			Name:        "palette-green",
			Default:     false,
			Value:       &d.green,
			Description: "use the green palette for screenshots",
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

// New returns a driver reading keys from in and drawing to out.
func New(in io.Reader, out io.Writer) *Driver {
	return &Driver{
		in:          in,
		out:         out,
		holdFrames:  6,
		screenshots: ".",
		log:         log.NewNullLogger(),
		stop:        make(chan struct{}),
	}
}

// Initialize attaches the driver to the emulator.
func (d *Driver) Initialize(emu display.Emulator, l log.Logger) {
	d.emu = emu
	d.log = l
}

// Start draws frames until the user quits, the emulator is closed
// or Stop is called.
func (d *Driver) Start(fb <-chan []byte, events <-chan event.Event, pressed, released chan<- joypad.Button) error {
	d.held = make(map[joypad.Button]int)
	d.last = nil

	if f, ok := d.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		oldState, err := term.MakeRaw(int(f.Fd()))
		if err != nil {
			return fmt.Errorf("terminal: failed to set raw mode: %w", err)
		}
		defer term.Restore(int(f.Fd()), oldState)
	}
	if f, ok := d.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil && (w < braille.Columns || h < braille.Rows+1) {
			d.log.Warnf("terminal: %dx%d is too small, need %dx%d", w, h, braille.Columns, braille.Rows+1)
		}
	}

	w := bufio.NewWriter(d.out)
	fmt.Fprint(w, hideCursor+clearScreen)
	w.Flush()
	defer func() {
		fmt.Fprint(d.out, showCursor+"\r\n")
	}()

	keys := make(chan []key, 8)
	go d.readKeys(keys)

	for {
		select {
		case <-d.stop:
			return nil
		case e := <-events:
			switch e.Type {
			case event.Quit:
				return nil
			case event.Title:
				d.title, _ = e.Data.(string)
			}
		case ks := <-keys:
			for _, k := range ks {
				if !k.isPad {
					if d.handleAction(k.action) {
						d.emu.SendCommand(display.Close)
						return nil
					}
					if d.last != nil {
						if err := d.draw(w, d.last); err != nil {
							return fmt.Errorf("terminal: %w", err)
						}
					}
					continue
				}
				if _, ok := d.held[k.button]; !ok {
					if !d.send(pressed, k.button) {
						return nil
					}
				}
				d.held[k.button] = d.holdFrames
			}
		case frame := <-fb:
			d.frames++
			if !d.releaseHeld(released) {
				return nil
			}
			if err := d.draw(w, frame); err != nil {
				return fmt.Errorf("terminal: %w", err)
			}
		}
	}
}

// readKeys reads from the input until it is closed.
func (d *Driver) readKeys(keys chan<- []key) {
	buf := make([]byte, 16)
	for {
		n, err := d.in.Read(buf)
		if n > 0 {
			if ks := decodeKeys(buf[:n]); len(ks) > 0 {
				select {
				case keys <- ks:
				case <-d.stop:
					return
				}
			}
		}
		if err != nil {
			return
		}
	}
}

// releaseHeld releases the buttons that have been held long enough.
// It returns false if the driver was stopped while releasing.
func (d *Driver) releaseHeld(released chan<- joypad.Button) bool {
	for b, frames := range d.held {
		if frames <= 1 {
			delete(d.held, b)
			if !d.send(released, b) {
				return false
			}
			continue
		}
		d.held[b] = frames - 1
	}
	return true
}

// send sends b on ch, unless the driver is stopped first.
func (d *Driver) send(ch chan<- joypad.Button, b joypad.Button) bool {
	select {
	case ch <- b:
		return true
	case <-d.stop:
		return false
	}
}

// draw draws the frame, unless it and the status of the emulator
// are identical to the last ones drawn.
func (d *Driver) draw(w *bufio.Writer, frame []byte) error {
	sum := xxhash.Sum64(frame)
	status := d.emu.Status()
	if d.last != nil && sum == d.lastSum && status == d.status {
		return nil
	}
	d.last = append(d.last[:0], frame...)
	d.lastSum = sum
	d.status = status

	title := d.title
	if status != emulator.Running {
		title += " [" + status.String() + "]"
	}

	w.WriteString(cursorHome)
	w.WriteString(strings.ReplaceAll(braille.Render(frame, uint8(d.threshold)), "\n", "\r\n"))
	fmt.Fprintf(w, "\r\n%-*s", braille.Columns, title)
	return w.Flush()
}

// handleAction performs a control action, and reports whether the
// driver should quit.
func (d *Driver) handleAction(a action) bool {
	switch a {
	case actionQuit:
		return true
	case actionPause:
		display.TogglePause(d.emu)
	case actionReset:
		d.emu.SendCommand(display.Reset)
	case actionCopy:
		if err := utils.CopyText(braille.Render(d.last, uint8(d.threshold))); err != nil {
			d.log.Errorf("terminal: %v", err)
		}
	case actionScreenshot:
		p := palette.Get(palette.Greyscale)
		if d.green {
			p = palette.Get(palette.Green)
		}
		name := filepath.Join(d.screenshots, fmt.Sprintf("shellboy-%s.png", time.Now().Format("20060102-150405")))
		if err := utils.SavePNG(name, utils.FrameImage(d.last, p), 4); err != nil {
			d.log.Errorf("terminal: %v", err)
		} else {
			d.log.Infof("saved screenshot to %s", name)
		}
	}
	return false
}

// Stop stops the driver.
func (d *Driver) Stop() error {
	d.once.Do(func() { close(d.stop) })
	return nil
}
