package mmu

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/thelolagemann/shellboy/internal/boot"
	"github.com/thelolagemann/shellboy/internal/interrupts"
	"github.com/thelolagemann/shellboy/internal/types"
	"github.com/thelolagemann/shellboy/pkg/log"
)

// device is a flat 64KiB IOBus that records the last write.
type device struct {
	mem  [0x10000]uint8
	last uint16
}

func (d *device) Read(address uint16) uint8 { return d.mem[address] }
func (d *device) Write(address uint16, value uint8) {
	d.mem[address] = value
	d.last = address
}

type joypad struct{ selection uint8 }

func (j *joypad) Read() uint8        { return 0xC0 | j.selection | 0x0F }
func (j *joypad) Write(value uint8) { j.selection = value & 0x30 }

func TestBus_EchoRAM(t *testing.T) {
	b := NewBus()
	for addr := uint16(0xC000); addr < 0xDE00; addr += 0x123 {
		b.Write(addr, uint8(addr))
		if got := b.Read(addr + 0x2000); got != uint8(addr) {
			t.Errorf("expected echo of %04X to read %02X, got %02X", addr, uint8(addr), got)
		}
	}
	b.Write(0xFDFF, 0x5A)
	if got := b.Read(0xDDFF); got != 0x5A {
		t.Errorf("expected write to echo to land in WRAM, got %02X", got)
	}
}

func TestBus_DMA(t *testing.T) {
	b := NewBus()
	video := &device{}
	b.AttachVideo(video)
	for i := uint16(0); i < 0xA0; i++ {
		b.Write(0xC100+i, uint8(i*3))
	}
	b.Write(types.DMA, 0xC1)
	for i := uint16(0); i < 0xA0; i++ {
		if got, want := b.Read(0xFE00+i), b.Read(0xC100+i); got != want {
			t.Fatalf("expected OAM[%d] = %02X, got %02X", i, want, got)
		}
	}
	if b.Read(types.DMA) != 0xC1 {
		t.Errorf("expected DMA to read back the last value")
	}
}

func TestBus_Routing(t *testing.T) {
	b := NewBus()
	cart, video, timer, serial := &device{}, &device{}, &device{}, &device{}
	b.AttachCartridge(cart)
	b.AttachVideo(video)
	b.AttachTimer(timer)
	b.AttachSerial(serial)
	b.AttachJoypad(&joypad{})

	tests := []struct {
		address uint16
		dev     *device
	}{
		{0x2000, cart},
		{0xA123, cart},
		{0x8800, video},
		{0xFE10, video},
		{types.LCDC, video},
		{types.WX, video},
		{types.DIV, timer},
		{types.TAC, timer},
		{types.SB, serial},
		{types.SC, serial},
	}
	for _, tt := range tests {
		b.Write(tt.address, 0x42)
		if tt.dev.last != tt.address {
			t.Errorf("expected write to %04X to be routed", tt.address)
		}
		if b.memory[tt.address] != 0 {
			t.Errorf("expected write to %04X to bypass flat memory", tt.address)
		}
	}

	b.Write(types.P1, 0x20)
	if got := b.Read(types.P1); got != 0xEF {
		t.Errorf("expected joypad read 0xEF, got %02X", got)
	}

	b.Write(0xFF80, 0x99)
	if b.Read(0xFF80) != 0x99 {
		t.Errorf("expected HRAM to be flat memory")
	}
}

func TestBus_Unattached(t *testing.T) {
	b := NewBus()
	if got := b.Read(0x0100); got != 0xFF {
		t.Errorf("expected 0xFF without cartridge, got %02X", got)
	}
	b.Write(0x8000, 0x12)
	if got := b.Read(0x8000); got != 0x12 {
		t.Errorf("expected VRAM to fall through to flat memory, got %02X", got)
	}
}

func TestBus_Read16Write16(t *testing.T) {
	b := NewBus()
	b.Write16(0xC000, 0xBEEF)
	if b.Read(0xC000) != 0xEF || b.Read(0xC001) != 0xBE {
		t.Errorf("expected little-endian write")
	}
	if got := b.Read16(0xC000); got != 0xBEEF {
		t.Errorf("expected 0xBEEF, got %04X", got)
	}
}

func TestBus_RequestInterrupt(t *testing.T) {
	b := NewBus()
	b.RequestInterrupt(interrupts.TimerFlag)
	b.RequestInterrupt(interrupts.VBlankFlag)
	if got := b.Read(types.IF) & 0x1F; got != 0x05 {
		t.Errorf("expected IF 0x05, got %02X", got)
	}
}

func TestBus_BootROM(t *testing.T) {
	raw := make([]byte, boot.Size)
	raw[0] = 0x31
	rom, err := boot.Load(raw)
	if err != nil {
		t.Fatal(err)
	}
	cart := &device{}
	cart.mem[0] = 0xC3
	cart.mem[0x100] = 0x00

	b := NewBus()
	b.AttachCartridge(cart)
	b.AttachBoot(rom)
	if got := b.Read(0x0000); got != 0x31 {
		t.Errorf("expected boot ROM overlay, got %02X", got)
	}
	if got := b.Read(0x0100); got != 0x00 {
		t.Errorf("expected cartridge above the boot ROM, got %02X", got)
	}
	b.Write(types.BDIS, 0x01)
	if got := b.Read(0x0000); got != 0xC3 {
		t.Errorf("expected cartridge after unmapping boot ROM, got %02X", got)
	}
	b.Reset()
	if !b.BootROMEnabled() {
		t.Errorf("expected reset to map the boot ROM again")
	}
}

type xorPatcher struct{ address uint16 }

func (p xorPatcher) Patch(address uint16, value uint8) uint8 {
	if address == p.address {
		return value ^ 0xFF
	}
	return value
}

func TestBus_Patcher(t *testing.T) {
	b := NewBus()
	cart := &device{}
	cart.mem[0x0150] = 0x0F
	cart.mem[0xA000] = 0x0F
	b.AttachCartridge(cart)
	b.AttachPatcher(xorPatcher{0x0150})

	if got := b.Read(0x0150); got != 0xF0 {
		t.Errorf("expected patched 0xF0, got %02X", got)
	}
	if got := b.Read(0x0151); got != 0x00 {
		t.Errorf("expected unpatched 0x00, got %02X", got)
	}

	// only the ROM is patched
	b.AttachPatcher(xorPatcher{0xA000})
	if got := b.Read(0xA000); got != 0x0F {
		t.Errorf("expected external RAM to be unpatched, got %02X", got)
	}
}

func TestBus_UnusableLogged(t *testing.T) {
	var buf bytes.Buffer
	b := NewBus()
	b.Log = log.WithOutput(&buf, logrus.DebugLevel)

	b.Write(0xFEA0, 0x12)
	b.Read(0xFEFF)
	b.Write(0xFE9F, 0x34) // OAM, unattached
	b.Read(0xFF00)

	out := buf.String()
	if n := strings.Count(out, "unusable"); n != 2 {
		t.Errorf("expected 2 unusable accesses logged, got %d: %s", n, out)
	}
	if !strings.Contains(out, "0xFEA0") || !strings.Contains(out, "0xFEFF") {
		t.Errorf("expected addresses in log, got %s", out)
	}
}
