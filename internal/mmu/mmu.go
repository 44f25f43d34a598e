// Package mmu provides the address bus of the DMG. The bus is
// unaware of what the other components do, and forwards reads and
// writes to them through the IOBus interface, falling back to its
// own flat memory for work RAM, high RAM and any unmapped I/O.
package mmu

import (
	"github.com/thelolagemann/shellboy/internal/boot"
	"github.com/thelolagemann/shellboy/internal/interrupts"
	"github.com/thelolagemann/shellboy/internal/types"
	"github.com/thelolagemann/shellboy/pkg/log"
)

// IOBus is the interface that the Bus uses to communicate with the
// other components.
type IOBus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// Joypad is the single register (types.P1) input device.
type Joypad interface {
	Read() uint8
	Write(value uint8)
}

// Patcher modifies values read from the ROM.
type Patcher interface {
	Patch(address uint16, value uint8) uint8
}

// Bus is the 16-bit address bus of the DMG. It routes every memory
// access of the CPU (and of OAM DMA) to the component mapped at the
// address.
type Bus struct {
	// 0x0000 - 0x00FF - boot ROM (256B), until types.BDIS is written
	bootROM     *boot.ROM
	bootROMDone bool

	// 0x0000 - 0x7FFF - ROM
	// 0xA000 - 0xBFFF - External RAM
	cart    IOBus
	patcher Patcher

	// 0x8000 - 0x9FFF - Video RAM (8kB)
	// 0xFE00 - 0xFE9F - Sprite Attribute Table (160B)
	// 0xFF40 - 0xFF4B - LCD registers
	video IOBus

	// 0xFF00 - Joypad
	joypad Joypad

	// 0xFF01 - 0xFF02 - Serial
	serial IOBus

	// 0xFF04 - 0xFF07 - Timer
	timer IOBus

	// everything else, including work RAM (0xC000 - 0xDFFF),
	// high RAM (0xFF80 - 0xFFFE), IF and IE
	memory [0x10000]uint8

	Log log.Logger
}

var _ interrupts.Sink = (*Bus)(nil)

// NewBus returns a new Bus with nothing attached.
func NewBus() *Bus {
	return &Bus{Log: log.NewNullLogger()}
}

// AttachCartridge maps the cartridge at 0x0000 - 0x7FFF and
// 0xA000 - 0xBFFF.
func (b *Bus) AttachCartridge(cart IOBus) {
	b.cart = cart
}

// AttachPatcher patches every value read from the ROM with p.
func (b *Bus) AttachPatcher(p Patcher) {
	b.patcher = p
}

// AttachVideo maps the PPU at 0x8000 - 0x9FFF, 0xFE00 - 0xFE9F
// and 0xFF40 - 0xFF4B (except types.DMA).
func (b *Bus) AttachVideo(video IOBus) {
	b.video = video
}

// AttachJoypad maps the joypad at types.P1.
func (b *Bus) AttachJoypad(joypad Joypad) {
	b.joypad = joypad
}

// AttachSerial maps the serial port at types.SB and types.SC.
func (b *Bus) AttachSerial(serial IOBus) {
	b.serial = serial
}

// AttachTimer maps the timer at types.DIV - types.TAC.
func (b *Bus) AttachTimer(timer IOBus) {
	b.timer = timer
}

// AttachBoot overlays the boot ROM over 0x0000 - 0x00FF, until
// types.BDIS is written to.
func (b *Bus) AttachBoot(rom *boot.ROM) {
	b.bootROM = rom
	b.bootROMDone = rom == nil
}

// BootROMEnabled reports whether the boot ROM is currently mapped.
func (b *Bus) BootROMEnabled() bool {
	return b.bootROM != nil && !b.bootROMDone
}

// Reset clears the flat memory and maps the boot ROM again, if
// one is attached.
func (b *Bus) Reset() {
	clear(b.memory[:])
	b.bootROMDone = b.bootROM == nil
}

// Read returns the value at the given address.
func (b *Bus) Read(address uint16) uint8 {
	switch {
	case address == types.P1:
		if b.joypad != nil {
			return b.joypad.Read()
		}
	case address < types.ROMEnd:
		if address < boot.Size && b.BootROMEnabled() {
			return b.bootROM.Read(address)
		}
		if b.cart == nil {
			return 0xFF
		}
		if b.patcher != nil {
			return b.patcher.Patch(address, b.cart.Read(address))
		}
		return b.cart.Read(address)
	case address >= types.ExtRAMStart && address < types.ExtRAMEnd:
		if b.cart != nil {
			return b.cart.Read(address)
		}
		return 0xFF
	case address >= types.VRAMStart && address < types.VRAMEnd:
		if b.video != nil {
			return b.video.Read(address)
		}
	case address >= types.EchoStart && address < types.EchoEnd:
		return b.memory[address-types.EchoOffset]
	case address >= types.OAMStart && address < types.OAMEnd:
		if b.video != nil {
			return b.video.Read(address)
		}
	case address >= types.OAMEnd && address < types.UnusableEnd:
		b.Log.Debugf("mmu: read from unusable address 0x%04X", address)
	case address == types.SB || address == types.SC:
		if b.serial != nil {
			return b.serial.Read(address)
		}
	case address >= types.DIV && address <= types.TAC:
		if b.timer != nil {
			return b.timer.Read(address)
		}
	case address == types.DMA:
		return b.memory[address]
	case address >= types.LCDC && address <= types.WX:
		if b.video != nil {
			return b.video.Read(address)
		}
	case address == types.IF:
		return b.memory[address] | 0xE0
	}

	return b.memory[address]
}

// Write writes the value to the given address.
func (b *Bus) Write(address uint16, value uint8) {
	switch {
	case address == types.P1:
		if b.joypad != nil {
			b.joypad.Write(value)
			return
		}
	case address < types.ROMEnd, address >= types.ExtRAMStart && address < types.ExtRAMEnd:
		if b.cart != nil {
			b.cart.Write(address, value)
		}
		return
	case address >= types.VRAMStart && address < types.VRAMEnd:
		if b.video != nil {
			b.video.Write(address, value)
			return
		}
	case address >= types.EchoStart && address < types.EchoEnd:
		b.memory[address-types.EchoOffset] = value
		return
	case address >= types.OAMStart && address < types.OAMEnd:
		if b.video != nil {
			b.video.Write(address, value)
			return
		}
	case address >= types.OAMEnd && address < types.UnusableEnd:
		b.Log.Debugf("mmu: write 0x%02X to unusable address 0x%04X", value, address)
	case address == types.SB || address == types.SC:
		if b.serial != nil {
			b.serial.Write(address, value)
			return
		}
	case address >= types.DIV && address <= types.TAC:
		if b.timer != nil {
			b.timer.Write(address, value)
			return
		}
	case address == types.DMA:
		b.memory[address] = value
		b.dma(value)
		return
	case address >= types.LCDC && address <= types.WX:
		if b.video != nil {
			b.video.Write(address, value)
			return
		}
	case address == types.BDIS:
		// any write unmaps the boot ROM
		b.bootROMDone = true
	}

	b.memory[address] = value
}

// Read16 reads a little-endian 16-bit value.
func (b *Bus) Read16(address uint16) uint16 {
	return uint16(b.Read(address)) | uint16(b.Read(address+1))<<8
}

// Write16 writes a little-endian 16-bit value.
func (b *Bus) Write16(address uint16, value uint16) {
	b.Write(address, uint8(value))
	b.Write(address+1, uint8(value>>8))
}

// RequestInterrupt requests the given interrupt, by setting its
// bit in types.IF.
func (b *Bus) RequestInterrupt(flag interrupts.Flag) {
	b.Write(types.IF, b.memory[types.IF]|flag)
}

// dma copies 160 bytes from (value << 8) into OAM, through the
// normal bus routing.
func (b *Bus) dma(value uint8) {
	source := uint16(value) << 8
	for i := uint16(0); i < 0xA0; i++ {
		b.Write(types.OAMStart+i, b.Read(source+i))
	}
}
