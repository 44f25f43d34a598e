package tests

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thelolagemann/shellboy/internal/gameboy"
)

const blarggROMPath = "roms/blargg"

// blarggTest passes when the ROM writes "Passed" to the serial
// port.
type blarggTest struct {
	romPath string
	name    string
	seconds int
	passed  bool
}

func blarggTests() []ROMTest {
	return []ROMTest{
		&blarggTest{romPath: "cpu_instrs/cpu_instrs.gb", name: "cpu_instrs", seconds: 60},
		&blarggTest{romPath: "instr_timing/instr_timing.gb", name: "instr_timing", seconds: 5},
		&blarggTest{romPath: "mem_timing/mem_timing.gb", name: "mem_timing", seconds: 10},
	}
}

func (b *blarggTest) Name() string {
	return b.name
}

func (b *blarggTest) Passed() bool {
	return b.passed
}

func (b *blarggTest) Run(t *testing.T) {
	var out bytes.Buffer
	gb := loadROM(t, filepath.Join(blarggROMPath, b.romPath), gameboy.WithSerialWriter(&out))

	runFrames(gb, seconds(b.seconds), func() bool {
		return strings.Contains(out.String(), "Passed") || strings.Contains(out.String(), "Failed")
	})

	if !strings.Contains(out.String(), "Passed") {
		t.Errorf("expected Passed, got %q", out.String())
		return
	}
	b.passed = true
}
