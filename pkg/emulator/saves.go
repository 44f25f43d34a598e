package emulator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash"
)

// Save represents a battery save file, holding the external RAM
// of a cartridge.
type Save struct {
	b    []byte // the save file data
	sum  uint64 // checksum of the data last written to disk
	Path string // the path to the save file
}

// SavePath returns the path of the save file belonging to the
// ROM at romPath, e.g. "roms/tetris.gb" becomes "roms/tetris.sav".
func SavePath(romPath string) string {
	return strings.TrimSuffix(romPath, filepath.Ext(romPath)) + ".sav"
}

// NewSave opens the save file at path, or creates an empty one of
// the given size if it does not exist yet.
func NewSave(path string, size int) (*Save, error) {
	s, err := LoadSave(path)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	return &Save{
		b:    make([]byte, size),
		sum:  xxhash.Sum64(make([]byte, size)),
		Path: path,
	}, nil
}

// LoadSave loads the save file at path.
func LoadSave(path string) (*Save, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("emulator: loading save %s: %w", path, err)
	}

	return &Save{
		b:    b,
		sum:  xxhash.Sum64(b),
		Path: path,
	}, nil
}

// Bytes returns the save file data.
func (s *Save) Bytes() []byte {
	return s.b
}

// SetBytes sets the save file data.
func (s *Save) SetBytes(b []byte) {
	s.b = append(s.b[:0], b...)
}

// Dirty reports whether the data differs from what is on disk.
func (s *Save) Dirty() bool {
	return xxhash.Sum64(s.b) != s.sum
}

// Close writes the save file data to disk if it has changed. The
// data is written to a temporary file first, which is then renamed
// over the save file, so that a crash never leaves a torn save.
func (s *Save) Close() error {
	if !s.Dirty() {
		return nil
	}

	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, s.b, 0644); err != nil {
		return fmt.Errorf("emulator: writing save: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("emulator: writing save: %w", err)
	}
	s.sum = xxhash.Sum64(s.b)

	return nil
}
