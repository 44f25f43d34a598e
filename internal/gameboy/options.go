package gameboy

import (
	"io"

	"github.com/thelolagemann/shellboy/internal/cheats"
	"github.com/thelolagemann/shellboy/pkg/emulator"
	"github.com/thelolagemann/shellboy/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// WithLogger sets the logger used by the GameBoy and its CPU.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithBootROM sets the boot ROM for the emulator. Execution starts
// at 0x0000 with every register cleared, and the cartridge is
// mapped in once the boot ROM writes to 0xFF50.
func WithBootROM(rom []byte) Opt {
	return func(gb *GameBoy) {
		gb.bootROM = rom
	}
}

// WithSerialWriter writes every byte sent over the serial port
// to w.
func WithSerialWriter(w io.Writer) Opt {
	return func(gb *GameBoy) {
		gb.Serial.AttachWriter(w)
	}
}

// WithSaveRAM loads the external RAM of the cartridge from save,
// and writes it back on GameBoy.SaveRAM.
func WithSaveRAM(save *emulator.Save) Opt {
	return func(gb *GameBoy) {
		gb.save = save
	}
}

// Speed sets the speed multiplier of the emulation.
func Speed(speed float64) Opt {
	return func(gb *GameBoy) {
		if speed > 0 {
			gb.speed = speed
		}
	}
}

// Trace logs every instruction executed at debug level.
func Trace() Opt {
	return func(gb *GameBoy) {
		gb.trace = true
	}
}

// WithCheats applies the enabled Game Genie codes to ROM reads,
// and the enabled GameShark codes at the end of every frame.
func WithCheats(c *cheats.Cheats) Opt {
	return func(gb *GameBoy) {
		gb.cheats = c
		gb.Bus.AttachPatcher(c)
	}
}
