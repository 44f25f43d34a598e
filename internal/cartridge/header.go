package cartridge

import (
	"fmt"
	"strings"
)

// ramMAP maps the RAM size byte (0x0149) of the header to
// the size of the external RAM in bytes.
var ramMAP = map[uint8]uint{
	0x00: 0,
	0x01: 2 * 1024,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Type is the raw cartridge type byte (0x0147) of the header.
type Type uint8

const (
	ROM               Type = 0x00
	MBC1              Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBATT       Type = 0x03
	MBC2              Type = 0x05
	MBC2BATT          Type = 0x06
	ROMRAM            Type = 0x08
	ROMRAMBATT        Type = 0x09
	MMM01             Type = 0x0B
	MBC3TIMERBATT     Type = 0x0F
	MBC3TIMERRAMBATT  Type = 0x10
	MBC3              Type = 0x11
	MBC3RAM           Type = 0x12
	MBC3RAMBATT       Type = 0x13
	MBC5              Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBATT       Type = 0x1B
	MBC5RUMBLE        Type = 0x1C
	MBC5RUMBLERAM     Type = 0x1D
	MBC5RUMBLERAMBATT Type = 0x1E
	POCKETCAMERA      Type = 0x1F
	HUDSONHUC1        Type = 0xFF
)

// Kind is the family of memory bank controller a cartridge
// uses, which decides how writes to the ROM area are decoded.
type Kind uint8

const (
	// KindNone is a plain 32KiB ROM, optionally with a single
	// block of RAM.
	KindNone Kind = iota
	// KindMBC1 supports up to 2MiB of ROM and 32KiB of RAM.
	KindMBC1
	// KindMBC3 supports up to 2MiB of ROM and 32KiB of RAM,
	// and optionally a real time clock.
	KindMBC3
	// KindMBC5 supports up to 8MiB of ROM and 128KiB of RAM.
	KindMBC5
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "ROM"
	case KindMBC1:
		return "MBC1"
	case KindMBC3:
		return "MBC3"
	case KindMBC5:
		return "MBC5"
	}
	return "Unknown"
}

// Kind returns the family of memory bank controller for the
// cartridge type, or ErrUnsupportedType.
func (t Type) Kind() (Kind, error) {
	switch t {
	case ROM, ROMRAM, ROMRAMBATT:
		return KindNone, nil
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return KindMBC1, nil
	case MBC3TIMERBATT, MBC3TIMERRAMBATT, MBC3, MBC3RAM, MBC3RAMBATT:
		return KindMBC3, nil
	case MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		return KindMBC5, nil
	}
	return 0, fmt.Errorf("%w: 0x%02X", ErrUnsupportedType, uint8(t))
}

// Header represents the header of a cartridge, located at the
// address space 0x0100-0x014F. The header contains information
// about the cartridge itself, and the hardware it expects to
// run on.
type Header struct {
	// 0x0134-0x0143 - Title of the game
	Title string
	// 0x0147 - Type of memory bank controller, and the
	// additional hardware present on the cartridge
	CartridgeType Type
	// 0x0148 - ROM size, 32KiB << n
	ROMSize uint
	// 0x0149 - RAM size, see ramMAP
	RAMSize uint
	// 0x014A - Destination code (0 = Japan)
	CountryCode uint8
	// 0x014B - Old licensee code
	OldLicenseeCode uint8
	// 0x014C - Mask ROM version
	MaskROMVersion uint8
	// 0x014D - Header checksum over 0x0134-0x014C
	HeaderChecksum uint8
	// 0x014E-0x014F - Global checksum (big endian)
	GlobalChecksum uint16

	computedChecksum uint8
}

// parseHeader parses the header of the given ROM, which must be
// at least 0x150 bytes long.
func parseHeader(rom []byte) *Header {
	header := rom[0x100:0x150]
	h := &Header{}

	h.Title = strings.TrimRight(string(header[0x34:0x44]), "\x00 ")
	h.CartridgeType = Type(header[0x47])
	h.ROMSize = (32 * 1024) << (header[0x48] & 0x0F)
	h.RAMSize = ramMAP[header[0x49]]
	h.CountryCode = header[0x4A]
	h.OldLicenseeCode = header[0x4B]
	h.MaskROMVersion = header[0x4C]
	h.HeaderChecksum = header[0x4D]
	h.GlobalChecksum = uint16(header[0x4E])<<8 | uint16(header[0x4F])

	for _, b := range header[0x34:0x4D] {
		h.computedChecksum = h.computedChecksum - b - 1
	}

	return h
}

// Valid reports whether the header checksum matches the
// header contents. The boot ROM refuses to start a cartridge
// that fails this check.
func (h *Header) Valid() bool {
	return h.computedChecksum == h.HeaderChecksum
}

// HasBattery reports whether the external RAM is battery
// backed, and should be persisted between sessions.
func (h *Header) HasBattery() bool {
	switch h.CartridgeType {
	case MBC1RAMBATT, ROMRAMBATT, MBC3TIMERBATT, MBC3TIMERRAMBATT, MBC3RAMBATT, MBC5RAMBATT, MBC5RUMBLERAMBATT:
		return true
	}
	return false
}

// HasRTC reports whether the cartridge has a real time clock.
func (h *Header) HasRTC() bool {
	return h.CartridgeType == MBC3TIMERBATT || h.CartridgeType == MBC3TIMERRAMBATT
}

func (h *Header) String() string {
	kind, err := h.CartridgeType.Kind()
	k := kind.String()
	if err != nil {
		k = fmt.Sprintf("0x%02X", uint8(h.CartridgeType))
	}
	return fmt.Sprintf("%s | Type: %s | ROM Size: %dkB | RAM Size: %dkB", h.Title, k, h.ROMSize/1024, h.RAMSize/1024)
}
