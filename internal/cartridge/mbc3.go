package cartridge

import "github.com/thelolagemann/shellboy/internal/ram"

// MemoryBankedCartridge3 represents a MBC3 cartridge. It supports
// 128 ROM banks and 4 RAM banks, and optionally provides a real
// time clock whose registers share the RAM window.
type MemoryBankedCartridge3 struct {
	rom     []byte
	romBank int

	ram        *ram.RAM
	ramBank    uint8 // 0x00 - 0x03 RAM, 0x08 - 0x0C RTC
	ramEnabled bool

	rtc *RTC
}

func newMemoryBankedCartridge3(rom []byte, r *ram.RAM, rtc *RTC) *MemoryBankedCartridge3 {
	return &MemoryBankedCartridge3{
		rom:     rom,
		romBank: 1,
		ram:     r,
		rtc:     rtc,
	}
}

// Read returns the value from the cartridges ROM, RAM or RTC,
// depending on the bank selected.
func (m *MemoryBankedCartridge3) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return readROM(m.rom, 0, address)
	case address < 0x8000:
		return readROM(m.rom, m.romBank, address)
	}

	if !m.ramEnabled {
		return 0xFF
	}
	if m.ramBank >= RTCSeconds {
		if m.rtc == nil {
			return 0xFF
		}
		return m.rtc.Read(m.ramBank)
	}
	return m.ram.Read(ramOffset(m.ram, int(m.ramBank), address))
}

// Write decodes control register writes, or writes to the RAM or
// the selected RTC register.
func (m *MemoryBankedCartridge3) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		m.romBank = int(value & 0x7F)
		if m.romBank == 0 {
			m.romBank = 1
		}
	case address < 0x6000:
		if value <= 0x03 || (value >= RTCSeconds && value <= RTCDayHigh) {
			m.ramBank = value
		}
	case address < 0x8000:
		if m.rtc != nil {
			m.rtc.Latch(value)
		}
	default:
		if !m.ramEnabled {
			return
		}
		if m.ramBank >= RTCSeconds {
			if m.rtc != nil {
				m.rtc.Write(m.ramBank, value)
			}
			return
		}
		m.ram.Write(ramOffset(m.ram, int(m.ramBank), address), value)
	}
}

// Reset returns the bank registers to their power on state. The
// real time clock keeps running.
func (m *MemoryBankedCartridge3) Reset() {
	m.romBank = 1
	m.ramBank = 0
	m.ramEnabled = false
}
