package terminal

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/thelolagemann/shellboy/internal/joypad"
	"github.com/thelolagemann/shellboy/internal/ppu"
	"github.com/thelolagemann/shellboy/pkg/display"
	"github.com/thelolagemann/shellboy/pkg/display/event"
	"github.com/thelolagemann/shellboy/pkg/emulator"
	"github.com/thelolagemann/shellboy/pkg/log"
)

type fakeEmulator struct {
	mu       sync.Mutex
	paused   bool
	commands []emulator.Command
}

func (f *fakeEmulator) Pause()                  { f.paused = true }
func (f *fakeEmulator) Resume()                 { f.paused = false }
func (f *fakeEmulator) Paused() bool            { return f.paused }
func (f *fakeEmulator) Status() emulator.Status { return emulator.Running }
func (f *fakeEmulator) Speed() float64          { return 1 }
func (f *fakeEmulator) SendCommand(c emulator.CommandPacket) emulator.ResponsePacket {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, c.Command)
	switch c.Command {
	case emulator.CommandPause:
		f.paused = true
	case emulator.CommandResume:
		f.paused = false
	}
	return emulator.ResponsePacket{Command: c.Command}
}

var _ display.Emulator = (*fakeEmulator)(nil)

// syncBuffer is a bytes.Buffer safe for concurrent use.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestDecodeKeys(t *testing.T) {
	keys := decodeKeys([]byte("z\x1b[Aq\x1b[Z\r"))
	if len(keys) != 4 {
		t.Fatalf("expected 4 keys, got %d", len(keys))
	}
	if !keys[0].isPad || keys[0].button != joypad.ButtonA {
		t.Errorf("expected A, got %+v", keys[0])
	}
	if !keys[1].isPad || keys[1].button != joypad.ButtonUp {
		t.Errorf("expected Up, got %+v", keys[1])
	}
	if keys[2].isPad || keys[2].action != actionQuit {
		t.Errorf("expected quit, got %+v", keys[2])
	}
	if keys[3].button != joypad.ButtonStart {
		t.Errorf("expected Start, got %+v", keys[3])
	}
}

func TestDriver(t *testing.T) {
	inR, inW := io.Pipe()
	out := &syncBuffer{}
	emu := &fakeEmulator{}

	d := New(inR, out)
	d.holdFrames = 2
	d.Initialize(emu, log.NewNullLogger())

	fb := make(chan []byte)
	events := make(chan event.Event)
	pressed := make(chan joypad.Button, 4)
	released := make(chan joypad.Button, 4)

	done := make(chan error)
	go func() {
		done <- d.Start(fb, events, pressed, released)
	}()

	inW.Write([]byte("x"))
	select {
	case b := <-pressed:
		if b != joypad.ButtonB {
			t.Errorf("expected B to be pressed, got %s", b)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a press")
	}

	frame := make([]byte, ppu.ScreenWidth*ppu.ScreenHeight)
	frame[0] = 3
	fb <- frame
	fb <- frame
	select {
	case b := <-released:
		if b != joypad.ButtonB {
			t.Errorf("expected B to be released, got %s", b)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a release")
	}

	events <- event.Event{Type: event.Title, Data: "TETRIS | FPS: 60"}
	frame[1] = 3
	fb <- frame

	inW.Write([]byte("p"))
	events <- event.Event{Type: event.Quit}
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	output := out.String()
	if strings.Count(output, cursorHome) != 2 {
		t.Errorf("expected 2 frames to be drawn, got %d", strings.Count(output, cursorHome))
	}
	if !strings.Contains(output, "⠁") || !strings.Contains(output, "⠉") {
		t.Errorf("expected the raised dots to be drawn")
	}
	if !strings.Contains(output, "TETRIS | FPS: 60") {
		t.Errorf("expected the title to be drawn")
	}
	inW.Close()
}

func TestDriver_Quit(t *testing.T) {
	inR, inW := io.Pipe()
	emu := &fakeEmulator{}
	d := New(inR, io.Discard)
	d.Initialize(emu, log.NewNullLogger())

	done := make(chan error)
	go func() {
		done <- d.Start(nil, nil, nil, nil)
	}()
	inW.Write([]byte("q"))

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("expected the driver to quit")
	}
	if len(emu.commands) != 1 || emu.commands[0] != emulator.CommandClose {
		t.Errorf("expected the emulator to be closed, got %v", emu.commands)
	}
	inW.Close()
}

func TestDriver_Stop(t *testing.T) {
	inR, inW := io.Pipe()
	defer inW.Close()
	d := New(inR, io.Discard)
	d.Initialize(&fakeEmulator{}, log.NewNullLogger())

	done := make(chan error)
	go func() {
		done <- d.Start(nil, nil, nil, nil)
	}()
	d.Stop()
	d.Stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("expected Start to return after Stop")
	}
}

func TestDriver_StopWhileSending(t *testing.T) {
	inR, inW := io.Pipe()
	defer inW.Close()
	d := New(inR, io.Discard)
	d.Initialize(&fakeEmulator{}, log.NewNullLogger())

	// nothing ever receives from pressed
	pressed := make(chan joypad.Button)
	done := make(chan error)
	go func() {
		done <- d.Start(nil, nil, pressed, nil)
	}()
	inW.Write([]byte("x"))
	time.Sleep(50 * time.Millisecond)
	d.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("expected Start to return after Stop with a blocked press")
	}
}
