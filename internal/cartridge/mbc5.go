package cartridge

import "github.com/thelolagemann/shellboy/internal/ram"

// MemoryBankedCartridge5 represents a MBC5 cartridge, which
// has a 9-bit ROM bank number and 16 RAM banks. Unlike the
// other controllers, ROM bank 0 can be mapped into the
// switchable area.
type MemoryBankedCartridge5 struct {
	rom        []byte
	ram        *ram.RAM
	ramEnabled bool
	romBank    int
	ramBank    int
}

func newMemoryBankedCartridge5(rom []byte, r *ram.RAM) *MemoryBankedCartridge5 {
	return &MemoryBankedCartridge5{
		rom:     rom,
		ram:     r,
		romBank: 1,
	}
}

func (m *MemoryBankedCartridge5) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return readROM(m.rom, 0, address) // first bank is always fixed
	case address < 0x8000:
		return readROM(m.rom, m.romBank, address) // switchable bank
	default:
		if !m.ramEnabled {
			return 0xFF
		}
		return m.ram.Read(ramOffset(m.ram, m.ramBank, address))
	}
}

func (m *MemoryBankedCartridge5) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x3000:
		// ROM bank number (lower 8 bits)
		m.romBank = m.romBank&0x100 | int(value)
	case address < 0x4000:
		// ROM bank number (upper 1 bit)
		m.romBank = m.romBank&0xFF | int(value&0x01)<<8
	case address < 0x6000:
		m.ramBank = int(value & 0x0F)
	case address < 0x8000:
		// unused
	default:
		if m.ramEnabled {
			m.ram.Write(ramOffset(m.ram, m.ramBank, address), value)
		}
	}
}

func (m *MemoryBankedCartridge5) Reset() {
	m.romBank = 1
	m.ramBank = 0
	m.ramEnabled = false
}
