package cartridge

import "github.com/thelolagemann/shellboy/internal/ram"

// MemoryBankedCartridge1 represents a MBC1 cartridge. It
// supports up to 125 ROM banks and 4 RAM banks, selected by
// writes to the ROM area:
//
//	0x0000 - 0x1FFF: RAM enable (0x0A in the lower nibble)
//	0x2000 - 0x3FFF: ROM bank number (lower 5 bits)
//	0x4000 - 0x5FFF: RAM bank number, or upper 2 ROM bank bits
//	0x6000 - 0x7FFF: banking mode select
type MemoryBankedCartridge1 struct {
	rom []byte
	ram *ram.RAM

	romBank    uint8 // 7 bits, upper 2 set in ROM banking mode
	ramBank    uint8 // 2 bits, set in RAM banking mode
	ramEnabled bool
	ramBanking bool
}

func newMemoryBankedCartridge1(rom []byte, r *ram.RAM) *MemoryBankedCartridge1 {
	return &MemoryBankedCartridge1{
		rom:     rom,
		ram:     r,
		romBank: 1,
	}
}

// Read returns the value from the cartridges ROM or RAM, depending
// on the banks selected.
func (m *MemoryBankedCartridge1) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return readROM(m.rom, 0, address) // first bank is always fixed
	case address < 0x8000:
		return readROM(m.rom, int(m.romBank), address)
	default:
		if !m.ramEnabled {
			return 0xFF
		}
		return m.ram.Read(ramOffset(m.ram, int(m.ramBank), address))
	}
}

// Write decodes control register writes, or writes to the RAM.
func (m *MemoryBankedCartridge1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		// a raw value of 0 selects bank 1, so 0x00/0x20/0x40/0x60
		// are never reachable through the switchable area
		lower := value & 0x1F
		if lower == 0 {
			lower = 1
		}
		m.romBank = m.romBank&0x60 | lower
	case address < 0x6000:
		if m.ramBanking {
			m.ramBank = value & 0x03
		} else {
			m.romBank = m.romBank&0x1F | (value&0x03)<<5
		}
	case address < 0x8000:
		m.ramBanking = value&0x01 == 0x01
		if !m.ramBanking {
			m.ramBank = 0
		}
	default:
		if m.ramEnabled {
			m.ram.Write(ramOffset(m.ram, int(m.ramBank), address), value)
		}
	}
}

// Reset returns the bank registers to their power on state.
func (m *MemoryBankedCartridge1) Reset() {
	m.romBank = 1
	m.ramBank = 0
	m.ramEnabled = false
	m.ramBanking = false
}
