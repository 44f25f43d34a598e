// Package cartridge provides the game cartridge of the DMG. The
// cartridge holds the game ROM, any external RAM, and the memory
// bank controller that maps them into the address space.
package cartridge

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/shellboy/internal/ram"
)

var (
	// ErrROMTooSmall is returned when the ROM image is too small
	// to hold a cartridge header.
	ErrROMTooSmall = errors.New("cartridge: rom too small")
	// ErrUnsupportedType is returned when the cartridge uses a
	// memory bank controller that is not emulated.
	ErrUnsupportedType = errors.New("cartridge: unsupported cartridge type")
)

// MemoryBankController maps the ROM (0x0000 - 0x7FFF) and the
// external RAM (0xA000 - 0xBFFF) of a cartridge into the address
// space. Writes to the ROM area are decoded as control registers.
type MemoryBankController interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	Reset()
}

// Cartridge represents a game cartridge.
type Cartridge struct {
	MemoryBankController

	rom    []byte
	ram    *ram.RAM
	header *Header
	kind   Kind
	rtc    *RTC
}

// Opt configures a Cartridge.
type Opt func(c *config)

type config struct {
	clock Clock
}

// WithClock sets the clock the real time clock of an MBC3
// cartridge advances with.
func WithClock(clock Clock) Opt {
	return func(c *config) {
		c.clock = clock
	}
}

// New parses the header of rom and returns a cartridge using
// the memory bank controller it declares. The ROM is copied.
func New(rom []byte, opts ...Opt) (*Cartridge, error) {
	if len(rom) < 0x150 {
		return nil, fmt.Errorf("%w: %d bytes", ErrROMTooSmall, len(rom))
	}
	cfg := &config{clock: systemClock{}}
	for _, opt := range opts {
		opt(cfg)
	}

	header := parseHeader(rom)
	kind, err := header.CartridgeType.Kind()
	if err != nil {
		return nil, err
	}

	c := &Cartridge{
		rom:    append([]byte(nil), rom...),
		ram:    ram.NewRAM(uint32(header.RAMSize)),
		header: header,
		kind:   kind,
	}

	switch kind {
	case KindNone:
		c.MemoryBankController = newROMCartridge(c.rom, c.ram)
	case KindMBC1:
		c.MemoryBankController = newMemoryBankedCartridge1(c.rom, c.ram)
	case KindMBC3:
		if header.HasRTC() {
			c.rtc = NewRTC(cfg.clock)
		}
		c.MemoryBankController = newMemoryBankedCartridge3(c.rom, c.ram, c.rtc)
	case KindMBC5:
		c.MemoryBankController = newMemoryBankedCartridge5(c.rom, c.ram)
	}

	return c, nil
}

// Header returns the parsed cartridge header.
func (c *Cartridge) Header() *Header {
	return c.header
}

// Title returns the title of the cartridge.
func (c *Cartridge) Title() string {
	return c.header.Title
}

// Kind returns the family of memory bank controller in use.
func (c *Cartridge) Kind() Kind {
	return c.kind
}

// HasBattery reports whether the external RAM should be saved.
func (c *Cartridge) HasBattery() bool {
	return c.header.HasBattery() && c.ram.Size() > 0
}

// RTC returns the real time clock of the cartridge, or nil.
func (c *Cartridge) RTC() *RTC {
	return c.rtc
}

// RAM returns a copy of the external RAM.
func (c *Cartridge) RAM() []byte {
	return c.ram.Bytes()
}

// LoadRAM replaces the contents of the external RAM.
func (c *Cartridge) LoadRAM(data []byte) {
	c.ram.Load(data)
}

// romBanks returns the number of 16KiB banks in rom, which is
// at least 1 for images shorter than a single bank.
func romBanks(rom []byte) int {
	if n := len(rom) / 0x4000; n > 0 {
		return n
	}
	return 1
}

// readROM reads from the given bank, wrapping the bank number
// to the number of banks and the final offset to the ROM size.
func readROM(rom []byte, bank int, address uint16) uint8 {
	bank %= romBanks(rom)
	return rom[(bank*0x4000+int(address&0x3FFF))%len(rom)]
}

// ramOffset translates an address in 0xA000 - 0xBFFF into an
// offset of the given RAM bank, wrapping on the RAM size.
func ramOffset(r *ram.RAM, bank int, address uint16) uint32 {
	banks := r.Size() / 0x2000
	if banks == 0 {
		banks = 1
	}
	return uint32((bank%banks)*0x2000 + int(address&0x1FFF))
}
