package tests

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thelolagemann/shellboy/internal/cpu"
)

const mooneyeROMPath = "roms/mooneye/acceptance"

// mooneyeTest passes when the ROM leaves the fibonacci sequence
// 3, 5, 8, 13, 21, 34 in registers B, C, D, E, H and L.
type mooneyeTest struct {
	romPath string
	name    string
	passed  bool
}

// mooneyeTests returns a test for every DMG compatible ROM in the
// acceptance directory and its subdirectories.
func mooneyeTests() []ROMTest {
	var tests []ROMTest
	filepath.WalkDir(mooneyeROMPath, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".gb" {
			return nil
		}
		name := strings.TrimSuffix(d.Name(), ".gb")
		if !dmgCompatible(name) {
			return nil
		}
		rel, _ := filepath.Rel(mooneyeROMPath, path)
		tests = append(tests, &mooneyeTest{romPath: path, name: strings.TrimSuffix(rel, ".gb")})
		return nil
	})
	return tests
}

// dmgCompatible reports whether the ROM is expected to pass on a
// DMG. Model specific ROMs name the models they target after a dash,
// either explicitly (dmgABC, mgb, sgb) or as a group (G for the DMG
// and MGB, S for the SGB, C for the CGB, A for the AGB).
func dmgCompatible(name string) bool {
	i := strings.LastIndex(name, "-")
	if i == -1 {
		return true
	}
	suffix := name[i+1:]
	if strings.Contains(suffix, "dmgABC") {
		return true
	}
	return strings.Trim(suffix, "GSCA") == "" && strings.Contains(suffix, "G")
}

func (m *mooneyeTest) Name() string {
	return m.name
}

func (m *mooneyeTest) Passed() bool {
	return m.passed
}

func (m *mooneyeTest) Run(t *testing.T) {
	gb := loadROM(t, m.romPath)
	runFrames(gb, seconds(10), func() bool {
		return fibonacci(gb.CPU)
	})

	if !fibonacci(gb.CPU) {
		t.Errorf("expected fibonacci registers, got B=%d C=%d D=%d E=%d H=%d L=%d",
			gb.CPU.B, gb.CPU.C, gb.CPU.D, gb.CPU.E, gb.CPU.H, gb.CPU.L)
		return
	}
	m.passed = true
}

func fibonacci(c *cpu.CPU) bool {
	return c.B == 3 && c.C == 5 && c.D == 8 && c.E == 13 && c.H == 21 && c.L == 34
}
