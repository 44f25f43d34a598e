package cartridge

import "github.com/thelolagemann/shellboy/internal/ram"

// ROMCartridge represents a cartridge without a memory bank
// controller. The ROM is mapped directly, and the optional RAM
// is always accessible.
type ROMCartridge struct {
	rom []byte
	ram *ram.RAM
}

func newROMCartridge(rom []byte, r *ram.RAM) *ROMCartridge {
	return &ROMCartridge{
		rom: rom,
		ram: r,
	}
}

// Read returns the value at the given address.
func (r *ROMCartridge) Read(address uint16) uint8 {
	if address < 0x8000 {
		return r.rom[int(address)%len(r.rom)]
	}
	return r.ram.Read(uint32(address & 0x1FFF))
}

// Write writes to the RAM, if present. Writes to the ROM are
// ignored.
func (r *ROMCartridge) Write(address uint16, value uint8) {
	if address >= 0xA000 {
		r.ram.Write(uint32(address&0x1FFF), value)
	}
}

// Reset does nothing, there are no registers to reset.
func (r *ROMCartridge) Reset() {}
