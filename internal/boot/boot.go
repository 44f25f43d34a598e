// Package boot provides the optional DMG boot ROM overlay. The
// emulator does not need one to run a cartridge, as the CPU can be
// reset straight into the post-boot state, but attaching one plays
// the scrolling logo and leaves the hardware as a real unit would.
package boot

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
)

// Size is the size of a DMG family boot ROM.
const Size = 256

// ErrInvalidLength is returned when the boot ROM is not Size bytes.
var ErrInvalidLength = errors.New("boot: invalid boot rom length")

// ROM represents a boot ROM. When the Game Boy powers on, the
// boot ROM is mapped over 0x0000 - 0x00FF. Once it has finished
// it writes to types.BDIS, unmapping itself and exposing the
// cartridge header underneath.
type ROM struct {
	raw      [Size]byte
	checksum string
}

// Load copies b into a new ROM, returning ErrInvalidLength when
// b is not exactly Size bytes.
func Load(b []byte) (*ROM, error) {
	if len(b) != Size {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, len(b))
	}

	r := &ROM{}
	copy(r.raw[:], b)
	sum := md5.Sum(b)
	r.checksum = hex.EncodeToString(sum[:])

	return r, nil
}

// Read returns the byte at the given address. Addresses
// outside of the boot ROM wrap.
func (b *ROM) Read(addr uint16) byte {
	return b.raw[addr%Size]
}

// Checksum returns the MD5 checksum of the boot rom.
func (b *ROM) Checksum() string {
	if b == nil {
		return ""
	}
	return b.checksum
}

// Model returns the model of the boot rom, as determined by
// its checksum.
func (b *ROM) Model() string {
	if b == nil {
		return "none"
	}
	if model, ok := knownChecksums[b.checksum]; ok {
		return model
	}
	return "unknown"
}

var knownChecksums = map[string]string{
	DMG0: "Game Boy (DMG-0)",
	DMG:  "Game Boy (DMG-01)",
	MGB:  "Game Boy Pocket",
	SGB:  "Super Game Boy",
	SGB2: "Super Game Boy 2",
}

const (
	// DMG0 is the checksum of the early DMG boot ROM, only found
	// in very early Japanese units. On a failed logo check it
	// flashes the screen rather than hanging.
	DMG0 = "a8f84a0ac44da5d3f0ee19f9cea80a8c"
	// DMG is the checksum of the DMG-01 boot ROM.
	DMG = "32fbbd84168d3482956eb3c5051637f5"
	// MGB differs from DMG by a single byte, leaving 0xFF in A.
	MGB = "71a378e71ff30b2d8a1f02bf5c7896aa"
	// SGB sends the cartridge header to the SNES instead of
	// scrolling the logo.
	SGB = "d574d4f9c12f305074798f54c091a8b4"
	// SGB2 differs from SGB by a single byte, leaving 0xFF in A.
	SGB2 = "e0430bca9925fb9882148fd2dc2418c1"
)
