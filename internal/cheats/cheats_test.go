package cheats

import (
	"errors"
	"strings"
	"testing"
)

type memory map[uint16]uint8

func (m memory) Write(address uint16, value uint8) {
	m[address] = value
}

func TestParseGameGenie(t *testing.T) {
	// new data 0x3E, address 0xFA4B ^ 0xF000, old data 0x26 ror 2 ^ 0xBA
	c, err := ParseGameGenie("3EA-4BF-2E6")
	if err != nil {
		t.Fatal(err)
	}
	if c.NewData != 0x3E {
		t.Errorf("expected new data 0x3E, got 0x%02X", c.NewData)
	}
	if c.Address != 0x0A4B {
		t.Errorf("expected address 0x0A4B, got 0x%04X", c.Address)
	}
	if !c.Compare || c.OldData != 0x33 {
		t.Errorf("expected old data 0x33, got 0x%02X", c.OldData)
	}

	c, err = ParseGameGenie("3EA-4BF")
	if err != nil {
		t.Fatal(err)
	}
	if c.Compare {
		t.Errorf("expected six-digit code not to compare")
	}

	for _, code := range []string{"3EA4BF2E6", "3EA-4BF-2E", "XYZ-4BF-2E6", "3EA-4BF2-E6"} {
		if _, err := ParseGameGenie(code); !errors.Is(err, ErrInvalidCode) {
			t.Errorf("%s: expected ErrInvalidCode, got %v", code, err)
		}
	}
}

func TestParseGameShark(t *testing.T) {
	c, err := ParseGameShark("01FF38C1")
	if err != nil {
		t.Fatal(err)
	}
	if c.ExternalRAMBank != 0x01 || c.NewData != 0xFF || c.Address != 0xC138 {
		t.Errorf("expected bank 0x01, data 0xFF, address 0xC138, got 0x%02X, 0x%02X, 0x%04X", c.ExternalRAMBank, c.NewData, c.Address)
	}

	for _, code := range []string{"01FF38C", "01FF3840", "01FF00FE", "0GFF38C1"} {
		if _, err := ParseGameShark(code); !errors.Is(err, ErrInvalidCode) {
			t.Errorf("%s: expected ErrInvalidCode, got %v", code, err)
		}
	}
}

func TestCheats_Patch(t *testing.T) {
	c := New()
	if err := c.Load("3EA-4BF-2E6", "lives"); err != nil {
		t.Fatal(err)
	}

	if v := c.Patch(0x0A4B, 0x33); v != 0x3E {
		t.Errorf("expected 0x3E, got 0x%02X", v)
	}
	// the old data doesn't match
	if v := c.Patch(0x0A4B, 0x34); v != 0x34 {
		t.Errorf("expected 0x34, got 0x%02X", v)
	}
	if v := c.Patch(0x0A4C, 0x33); v != 0x33 {
		t.Errorf("expected 0x33, got 0x%02X", v)
	}

	if err := c.Disable("lives"); err != nil {
		t.Fatal(err)
	}
	if v := c.Patch(0x0A4B, 0x33); v != 0x33 {
		t.Errorf("expected disabled cheat not to patch, got 0x%02X", v)
	}
	if err := c.Enable("missing"); err == nil {
		t.Errorf("expected error enabling missing cheat")
	}
}

func TestCheats_Apply(t *testing.T) {
	c := New()
	if err := c.Load("010938C1", "health"); err != nil {
		t.Fatal(err)
	}
	if err := c.Load("0163FFFF", "health"); err == nil {
		t.Errorf("expected error loading code for IE")
	}

	m := memory{}
	c.Apply(m)
	if m[0xC138] != 0x09 {
		t.Errorf("expected 0x09 at 0xC138, got 0x%02X", m[0xC138])
	}
	if len(m) != 1 {
		t.Errorf("expected 1 write, got %d", len(m))
	}
}

func TestParse(t *testing.T) {
	input := "# Infinite Lives\n010938C1\n\n# Invincible\n3EA-4BF-2E6\n3EA-4BF\n"
	c, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(c.List()) != 2 {
		t.Fatalf("expected 2 cheats, got %d", len(c.List()))
	}
	if codes := c.Get("Invincible").Codes(); len(codes) != 2 {
		t.Errorf("expected 2 codes, got %d", len(codes))
	}

	var out strings.Builder
	if err := c.Save(&out); err != nil {
		t.Fatal(err)
	}
	expected := "# Infinite Lives\n010938C1\n# Invincible\n3EA-4BF-2E6\n3EA-4BF\n"
	if out.String() != expected {
		t.Errorf("expected %q, got %q", expected, out.String())
	}

	if _, err := Parse(strings.NewReader("010938C1\n")); err == nil {
		t.Errorf("expected error for code without a name")
	}
	if _, err := Parse(strings.NewReader("# Bad\nZZZZ\n")); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("expected ErrInvalidCode, got %v", err)
	}
}
