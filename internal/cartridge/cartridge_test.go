package cartridge

import (
	"errors"
	"testing"
	"time"
)

// newTestROM returns a ROM image of the given type and size
// codes, where the first byte of every bank holds the bank
// number (and the second byte its upper bits).
func newTestROM(typ Type, romCode, ramCode uint8) []byte {
	size := (32 * 1024) << romCode
	rom := make([]byte, size)
	for bank := 0; bank < size/0x4000; bank++ {
		rom[bank*0x4000] = uint8(bank)
		rom[bank*0x4000+1] = uint8(bank >> 8)
	}
	copy(rom[0x134:], "SHELLBOY")
	rom[0x147] = uint8(typ)
	rom[0x148] = romCode
	rom[0x149] = ramCode

	var sum uint8
	for _, b := range rom[0x134:0x14D] {
		sum = sum - b - 1
	}
	rom[0x14D] = sum
	return rom
}

func mustNew(t *testing.T, rom []byte, opts ...Opt) *Cartridge {
	t.Helper()
	c, err := New(rom, opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestNew_Errors(t *testing.T) {
	if c, err := New(make([]byte, 0x14F)); !errors.Is(err, ErrROMTooSmall) || c != nil {
		t.Errorf("expected ErrROMTooSmall and no cartridge, got %v", err)
	}
	if c, err := New(newTestROM(MBC2, 0, 0)); !errors.Is(err, ErrUnsupportedType) || c != nil {
		t.Errorf("expected ErrUnsupportedType and no cartridge, got %v", err)
	}
}

func TestHeader(t *testing.T) {
	c := mustNew(t, newTestROM(MBC1RAMBATT, 2, 3))
	h := c.Header()
	if h.Title != "SHELLBOY" {
		t.Errorf("expected title SHELLBOY, got %q", h.Title)
	}
	if h.ROMSize != 128*1024 {
		t.Errorf("expected 128KiB ROM, got %d", h.ROMSize)
	}
	if h.RAMSize != 32*1024 {
		t.Errorf("expected 32KiB RAM, got %d", h.RAMSize)
	}
	if !h.Valid() {
		t.Errorf("expected valid header checksum")
	}
	if !c.HasBattery() {
		t.Errorf("expected battery")
	}
	if c.Kind() != KindMBC1 {
		t.Errorf("expected MBC1, got %s", c.Kind())
	}

	rom := newTestROM(ROM, 0, 0)
	rom[0x14D]++
	if mustNew(t, rom).Header().Valid() {
		t.Errorf("expected invalid header checksum")
	}
}

func TestRAMSizes(t *testing.T) {
	expected := map[uint8]uint{0: 0, 1: 2048, 2: 8192, 3: 32768, 4: 131072, 5: 65536}
	for code, size := range expected {
		c := mustNew(t, newTestROM(MBC5RAM, 0, code))
		if c.Header().RAMSize != size || len(c.RAM()) != int(size) {
			t.Errorf("expected %d bytes of RAM for code %d, got %d", size, code, len(c.RAM()))
		}
	}
}

func TestROMCartridge(t *testing.T) {
	c := mustNew(t, newTestROM(ROMRAM, 0, 2))
	if c.Read(0x4000) != 1 {
		t.Errorf("expected bank 1 at 0x4000, got %d", c.Read(0x4000))
	}
	c.Write(0x2000, 0x00)
	if c.Read(0x4000) != 1 {
		t.Errorf("expected ROM writes to be ignored")
	}
	c.Write(0xA010, 0x42)
	if c.Read(0xA010) != 0x42 {
		t.Errorf("expected RAM without enable, got %02X", c.Read(0xA010))
	}
}

func TestMBC1_BankZeroRemap(t *testing.T) {
	c := mustNew(t, newTestROM(MBC1, 5, 0)) // 64 banks
	for _, v := range []uint8{0x00, 0x20, 0x40, 0x60} {
		c.Write(0x2000, v)
		if got := c.Read(0x4000); got != 1 {
			t.Errorf("expected bank 1 after writing %02X, got %d", v, got)
		}
	}

	c.Write(0x2000, 0x01)
	c.Write(0x4000, 0x01)
	if got := c.Read(0x4000); got != 0x21 {
		t.Errorf("expected bank 0x21, got %02X", got)
	}
	c.Write(0x2000, 0x00)
	if got := c.Read(0x4000); got != 0x21 {
		t.Errorf("expected bank 0x21 after writing 0 to lower bits, got %02X", got)
	}
}

func TestMBC1_Wrap(t *testing.T) {
	c := mustNew(t, newTestROM(MBC1, 1, 0)) // 4 banks
	c.Write(0x2000, 0x05)
	if got := c.Read(0x4000); got != 1 {
		t.Errorf("expected bank 5 to wrap to 1, got %d", got)
	}
	if got := c.Read(0x0000); got != 0 {
		t.Errorf("expected fixed bank 0, got %d", got)
	}
}

func TestMBC1_RAM(t *testing.T) {
	c := mustNew(t, newTestROM(MBC1RAM, 0, 3))
	c.Write(0xA000, 0x11)
	if got := c.Read(0xA000); got != 0xFF {
		t.Errorf("expected 0xFF from disabled RAM, got %02X", got)
	}

	c.Write(0x0000, 0x0A)
	c.Write(0xA000, 0x11)
	c.Write(0x6000, 0x01) // RAM banking mode
	c.Write(0x4000, 0x02)
	c.Write(0xA000, 0x22)
	if got := c.Read(0xA000); got != 0x22 {
		t.Errorf("expected 0x22 in bank 2, got %02X", got)
	}
	c.Write(0x6000, 0x00) // ROM banking mode selects RAM bank 0
	if got := c.Read(0xA000); got != 0x11 {
		t.Errorf("expected 0x11 in bank 0, got %02X", got)
	}
	c.Write(0x6000, 0x01) // back to RAM banking mode, still bank 0
	if got := c.Read(0xA000); got != 0x11 {
		t.Errorf("expected RAM bank to stay 0 after re-entering RAM mode, got %02X", got)
	}
	c.Write(0x6000, 0x00)

	c.Write(0x0000, 0x00)
	if got := c.Read(0xA000); got != 0xFF {
		t.Errorf("expected 0xFF after disabling RAM, got %02X", got)
	}
	if ram := c.RAM(); ram[0] != 0x11 || ram[0x4000] != 0x22 {
		t.Errorf("expected RAM contents to be exposed")
	}
}

func TestMBC1_ModeSwitch(t *testing.T) {
	c := mustNew(t, newTestROM(MBC1RAM, 6, 3)) // 128 banks, 4 RAM banks
	c.Write(0x0000, 0x0A)
	for bank := uint8(0); bank < 4; bank++ {
		c.Write(0x6000, 0x01)
		c.Write(0x4000, bank)
		c.Write(0xA000, 0x10+bank)
	}
	c.Write(0x6000, 0x00)

	c.Write(0x2000, 0x01)
	c.Write(0x4000, 0x01)
	c.Write(0x6000, 0x01)
	if got := c.Read(0x4000); got != 0x21 {
		t.Errorf("expected upper ROM bits to survive RAM mode, got bank %02X", got)
	}
	if got := c.Read(0xA000); got != 0x10 {
		t.Errorf("expected RAM bank 0, got %02X", got)
	}

	c.Write(0x4000, 0x02)
	if got := c.Read(0xA000); got != 0x12 {
		t.Errorf("expected RAM bank 2, got %02X", got)
	}
	if got := c.Read(0x4000); got != 0x21 {
		t.Errorf("expected RAM bank write to leave the ROM bank alone, got %02X", got)
	}

	c.Write(0x6000, 0x00)
	if got := c.Read(0x4000); got != 0x21 {
		t.Errorf("expected bank 0x21 in ROM mode, got %02X", got)
	}
	c.Write(0x6000, 0x01)
	if got := c.Read(0xA000); got != 0x10 {
		t.Errorf("expected RAM bank reset to 0, got %02X", got)
	}
}

func TestCartridge_Reset(t *testing.T) {
	for name, typ := range map[string]Type{"MBC1": MBC1RAM, "MBC3": MBC3RAM, "MBC5": MBC5RAM} {
		t.Run(name, func(t *testing.T) {
			c := mustNew(t, newTestROM(typ, 3, 3))
			c.Write(0x0000, 0x0A)
			c.Write(0xA000, 0x42)
			c.Write(0x2000, 0x05)

			c.Reset()
			if got := c.Read(0x4000); got != 1 {
				t.Errorf("expected bank 1 after reset, got %d", got)
			}
			if got := c.Read(0xA000); got != 0xFF {
				t.Errorf("expected RAM to be disabled after reset, got %02X", got)
			}
			c.Write(0x0000, 0x0A)
			if got := c.Read(0xA000); got != 0x42 {
				t.Errorf("expected RAM contents to survive reset, got %02X", got)
			}
		})
	}
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func TestMBC3_RTC(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	c := mustNew(t, newTestROM(MBC3TIMERRAMBATT, 2, 3), WithClock(clock))
	if c.RTC() == nil {
		t.Fatal("expected RTC")
	}
	c.Write(0x0000, 0x0A)

	clock.now = clock.now.Add(65 * time.Second)
	c.Write(0x4000, RTCSeconds)
	if got := c.Read(0xA000); got != 0 {
		t.Errorf("expected latched seconds to stay 0 before latching, got %d", got)
	}

	c.Write(0x6000, 0x00)
	c.Write(0x6000, 0x01)
	if got := c.Read(0xA000); got != 5 {
		t.Errorf("expected 5 seconds, got %d", got)
	}
	c.Write(0x4000, RTCMinutes)
	if got := c.Read(0xA000); got != 1 {
		t.Errorf("expected 1 minute, got %d", got)
	}

	// halt the clock
	c.Write(0x4000, RTCDayHigh)
	c.Write(0xA000, 0x40)
	clock.now = clock.now.Add(time.Hour)
	c.Write(0x6000, 0x00)
	c.Write(0x6000, 0x01)
	c.Write(0x4000, RTCHours)
	if got := c.Read(0xA000); got != 0 {
		t.Errorf("expected halted clock to stay at 0 hours, got %d", got)
	}

	// resume and overflow the day counter
	c.Write(0x4000, RTCDayHigh)
	c.Write(0xA000, 0x00)
	clock.now = clock.now.Add(512 * 24 * time.Hour)
	c.Write(0x6000, 0x00)
	c.Write(0x6000, 0x01)
	if got := c.Read(0xA000); got&0x80 == 0 {
		t.Errorf("expected day carry to be set, got %08b", got)
	}
}

func TestMBC3_Banks(t *testing.T) {
	c := mustNew(t, newTestROM(MBC3RAM, 6, 3)) // 128 banks
	c.Write(0x2000, 0x00)
	if got := c.Read(0x4000); got != 1 {
		t.Errorf("expected bank 0 to select 1, got %d", got)
	}
	c.Write(0x2000, 0x7F)
	if got := c.Read(0x4000); got != 0x7F {
		t.Errorf("expected bank 0x7F, got %02X", got)
	}

	c.Write(0x0000, 0x0A)
	c.Write(0x4000, 0x03)
	c.Write(0xB000, 0x33)
	c.Write(0x4000, 0x00)
	if got := c.Read(0xB000); got != 0x00 {
		t.Errorf("expected bank 0 to be empty, got %02X", got)
	}
	c.Write(0x4000, 0x03)
	if got := c.Read(0xB000); got != 0x33 {
		t.Errorf("expected 0x33 in bank 3, got %02X", got)
	}
	c.Write(0x4000, RTCSeconds)
	if got := c.Read(0xB000); got != 0xFF {
		t.Errorf("expected 0xFF from RTC register without RTC, got %02X", got)
	}
}

func TestMBC5(t *testing.T) {
	c := mustNew(t, newTestROM(MBC5RAMBATT, 8, 4)) // 512 banks
	c.Write(0x2000, 0x00)
	if got := c.Read(0x4000); got != 0 {
		t.Errorf("expected bank 0 to be selectable, got %d", got)
	}
	c.Write(0x2000, 0x05)
	c.Write(0x3000, 0x01)
	if lo, hi := c.Read(0x4000), c.Read(0x4001); lo != 0x05 || hi != 0x01 {
		t.Errorf("expected bank 0x105, got %02X%02X", hi, lo)
	}

	c.Write(0x0000, 0x0A)
	c.Write(0x4000, 0x0F)
	c.Write(0xA000, 0xAB)
	if got := c.RAM()[15*0x2000]; got != 0xAB {
		t.Errorf("expected write to RAM bank 15, got %02X", got)
	}

	data := make([]byte, 128*1024)
	data[0] = 0xCD
	c.LoadRAM(data)
	c.Write(0x4000, 0x00)
	if got := c.Read(0xA000); got != 0xCD {
		t.Errorf("expected loaded RAM, got %02X", got)
	}
}
