// Package gameboy provides an emulation of a Nintendo Game Boy.
package gameboy

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/thelolagemann/shellboy/internal/boot"
	"github.com/thelolagemann/shellboy/internal/cartridge"
	"github.com/thelolagemann/shellboy/internal/cheats"
	"github.com/thelolagemann/shellboy/internal/cpu"
	"github.com/thelolagemann/shellboy/internal/joypad"
	"github.com/thelolagemann/shellboy/internal/mmu"
	"github.com/thelolagemann/shellboy/internal/ppu"
	"github.com/thelolagemann/shellboy/internal/serial"
	"github.com/thelolagemann/shellboy/internal/timer"
	"github.com/thelolagemann/shellboy/pkg/display/event"
	"github.com/thelolagemann/shellboy/pkg/emulator"
	"github.com/thelolagemann/shellboy/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = cpu.ClockSpeed // 4.194304 MHz
	// CyclesPerFrame is the number of clock cycles per frame.
	CyclesPerFrame = ppu.DotsPerFrame
	// FrameTime is the time it takes for the Game Boy to render a frame.
	FrameTime = time.Second * CyclesPerFrame / ClockSpeed
)

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU       *cpu.CPU
	Bus       *mmu.Bus
	PPU       *ppu.PPU
	Timer     *timer.Controller
	Joypad    *joypad.State
	Serial    *serial.Controller
	Cartridge *cartridge.Cartridge

	log.Logger

	bootROM []byte
	save    *emulator.Save
	cheats  *cheats.Cheats
	trace   bool
	speed   float64

	events chan event.Event
	mu     sync.Mutex
	paused bool
	closed bool
}

// New returns a new GameBoy running the given ROM. The GameBoy
// starts in the state the boot ROM leaves it in, unless a boot ROM
// is provided with WithBootROM.
func New(rom []byte, opts ...Opt) (*GameBoy, error) {
	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, fmt.Errorf("gameboy: %w", err)
	}

	bus := mmu.NewBus()
	video := ppu.New(bus)
	g := &GameBoy{
		Bus:       bus,
		PPU:       video,
		Timer:     timer.NewController(bus),
		Joypad:    joypad.New(bus),
		Serial:    serial.NewController(bus),
		Cartridge: cart,
		Logger:    log.NewNullLogger(),
		speed:     1,
		events:    make(chan event.Event, 8),
	}
	bus.AttachCartridge(cart)
	bus.AttachVideo(video)
	bus.AttachJoypad(g.Joypad)
	bus.AttachSerial(g.Serial)
	bus.AttachTimer(g.Timer)

	for _, opt := range opts {
		opt(g)
	}

	if g.bootROM != nil {
		b, err := boot.Load(g.bootROM)
		if err != nil {
			return nil, fmt.Errorf("gameboy: %w", err)
		}
		bus.AttachBoot(b)
		g.Infof("boot ROM %s (%s)", b.Model(), b.Checksum())
	}
	if g.save != nil {
		cart.LoadRAM(g.save.Bytes())
	}

	bus.Log = g.Logger
	g.CPU = cpu.New(bus, g.Logger)
	g.Reset()

	g.Infof("loaded %s", cart.Header())
	if !cart.Header().Valid() {
		g.Warnf("header checksum mismatch")
	}

	return g, nil
}

// Reset resets every component, keeping the cartridge RAM.
func (g *GameBoy) Reset() {
	g.Cartridge.Reset()
	g.Bus.Reset()
	g.PPU.Reset()
	g.Timer.Reset()
	g.Joypad.Reset()
	g.Serial.Reset()

	if g.Bus.BootROMEnabled() {
		g.CPU.ResetBoot()
	} else {
		g.CPU.Reset()
	}
}

// Step executes a single instruction and advances the rest of the
// hardware by the cycles it took, returning them.
func (g *GameBoy) Step() int {
	if g.trace {
		g.Debugf("%04X %s", g.CPU.PC, g.CPU.Disassemble(g.CPU.PC))
	}

	cycles := g.CPU.Tick()
	g.Timer.Tick(cycles)
	g.Serial.Tick(cycles)
	for i := 0; i < cycles; i++ {
		g.PPU.Tick()
	}

	return cycles
}

// Frame will step the emulation until the PPU has finished
// rendering the current frame, and return a copy of it. With the
// LCD off, a frame is CyclesPerFrame cycles long.
func (g *GameBoy) Frame() ppu.Framebuffer {
	for elapsed := 0; elapsed < CyclesPerFrame && !g.PPU.FrameReady(); {
		cycles := g.Step()
		if cycles == 0 {
			cycles = 4 // undefined opcodes take no time
		}
		elapsed += cycles
	}
	g.PPU.ClearFrameReady()
	if g.cheats != nil {
		g.cheats.Apply(g.Bus)
	}

	return g.PPU.Framebuffer()
}

// Start runs the emulation until ctx is cancelled, or the emulator
// is closed with emulator.CommandClose. Each frame, pending button
// presses and releases are applied, and the frame is sent on frames
// as a row-major slice of shades. Frames are dropped if the receiver
// is not ready.
func (g *GameBoy) Start(ctx context.Context, frames chan<- []byte, pressed, released <-chan joypad.Button) {
	ticker := time.NewTicker(g.frameTime())
	defer ticker.Stop()

	count := 0
	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		g.mu.Lock()
		if g.closed {
			g.mu.Unlock()
			return
		}
		ticker.Reset(g.frameTime())
		g.processInputs(pressed, released)
		if g.paused {
			g.mu.Unlock()
			continue
		}
		fb := g.Frame()
		g.mu.Unlock()

		select {
		case frames <- flatten(fb):
		default:
		}

		count++
		if time.Since(start) > time.Second {
			g.sendEvent(event.Event{Type: event.Title, Data: fmt.Sprintf("%s | FPS: %d", g.Cartridge.Title(), count)})
			count = 0
			start = time.Now()
		}
	}
}

// processInputs drains the input channels without blocking.
func (g *GameBoy) processInputs(pressed, released <-chan joypad.Button) {
	for {
		select {
		case b := <-pressed:
			g.Joypad.Press(b)
		case b := <-released:
			g.Joypad.Release(b)
		default:
			return
		}
	}
}

func (g *GameBoy) frameTime() time.Duration {
	return time.Duration(float64(FrameTime) / g.speed)
}

func (g *GameBoy) sendEvent(e event.Event) {
	select {
	case g.events <- e:
	default:
	}
}

// Events returns the channel events for the display driver are
// sent on.
func (g *GameBoy) Events() <-chan event.Event {
	return g.events
}

// flatten returns the framebuffer as a row-major slice.
func flatten(fb ppu.Framebuffer) []byte {
	b := make([]byte, 0, ppu.ScreenWidth*ppu.ScreenHeight)
	for y := range fb {
		b = append(b, fb[y][:]...)
	}
	return b
}

// Press presses the button.
func (g *GameBoy) Press(b joypad.Button) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Joypad.Press(b)
}

// Release releases the button.
func (g *GameBoy) Release(b joypad.Button) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Joypad.Release(b)
}

// Pause pauses the emulation.
func (g *GameBoy) Pause() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.paused = true
}

// Resume resumes the emulation.
func (g *GameBoy) Resume() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.paused = false
}

// Paused reports whether the emulation is paused.
func (g *GameBoy) Paused() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.paused
}

// Speed returns the speed multiplier of the emulation.
func (g *GameBoy) Speed() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.speed
}

// Status returns the status of the CPU. A CPU that has executed an
// undefined opcode is Errored, even when paused.
func (g *GameBoy) Status() emulator.Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch {
	case g.CPU.Faults() > 0:
		return emulator.Errored
	case g.paused:
		return emulator.Paused
	case g.CPU.Halted():
		return emulator.Halted
	default:
		return emulator.Running
	}
}

// SaveRAM writes the external RAM of a battery backed cartridge to
// the save file, if one was provided with WithSaveRAM.
func (g *GameBoy) SaveRAM() error {
	if g.save == nil || !g.Cartridge.HasBattery() {
		return nil
	}
	g.save.SetBytes(g.Cartridge.RAM())
	if err := g.save.Close(); err != nil {
		return fmt.Errorf("gameboy: %w", err)
	}
	g.Debugf("saved %d bytes to %s", len(g.save.Bytes()), g.save.Path)
	return nil
}

// SendCommand handles a command sent by the display driver.
func (g *GameBoy) SendCommand(command emulator.CommandPacket) emulator.ResponsePacket {
	resp := emulator.ResponsePacket{Command: command.Command}
	switch command.Command {
	case emulator.CommandPause:
		g.Pause()
	case emulator.CommandResume:
		g.Resume()
	case emulator.CommandReset:
		g.mu.Lock()
		g.Reset()
		g.mu.Unlock()
	case emulator.CommandSave:
		g.mu.Lock()
		resp.Error = g.SaveRAM()
		g.mu.Unlock()
	case emulator.CommandSetSpeed:
		speed, err := strconv.ParseFloat(string(command.Data), 64)
		if err != nil || speed <= 0 {
			resp.Error = fmt.Errorf("gameboy: invalid speed %q", command.Data)
			break
		}
		g.mu.Lock()
		g.speed = speed
		g.mu.Unlock()
	case emulator.CommandClose:
		g.mu.Lock()
		g.closed = true
		resp.Error = g.SaveRAM()
		g.mu.Unlock()
		g.sendEvent(event.Event{Type: event.Quit})
	default:
		resp.Error = fmt.Errorf("gameboy: unknown command %s", command.Command)
	}
	g.Debugf("command %s", command.Command)
	return resp
}
