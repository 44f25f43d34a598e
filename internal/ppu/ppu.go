// Package ppu provides the (P)ixel (P)rocessing (U)nit of the DMG. The
// PPU steps through 154 lines of 456 dots each per frame, reporting its
// mode through types.STAT, and composes each visible line into a
// 160x144 framebuffer of 2-bit shades once the line has finished.
package ppu

import (
	"github.com/thelolagemann/shellboy/internal/interrupts"
	"github.com/thelolagemann/shellboy/internal/ppu/lcd"
	"github.com/thelolagemann/shellboy/internal/types"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = 160
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = 144
)

const (
	// DotsPerLine is the number of T-cycles taken by a single line.
	DotsPerLine = 456
	// LinesPerFrame is the number of lines in a frame, including
	// the 10 lines of VBlank.
	LinesPerFrame = 154
	// DotsPerFrame is the number of T-cycles taken by a frame.
	DotsPerFrame = DotsPerLine * LinesPerFrame

	oamDots      = 80
	transferDots = 172
)

// Framebuffer holds a shade (0-3) for every pixel of the screen,
// 0 being the lightest.
type Framebuffer = [ScreenHeight][ScreenWidth]uint8

// PPU implements the Game Boy's (P)ixel (P)rocessing (U)nit.
//
// References:
//   - [Pan Docs](https://gbdev.io/pandocs/Graphics.html)
//   - [Hacktix GBEDG](https://hacktix.github.io/GBEDG/ppu/)
type PPU struct {
	lcdc   lcd.Controller
	status lcd.Status

	// Rendering state
	ly         uint8  // Current line (0-153)
	dots       uint16 // Dots remaining in the current line
	windowLine uint8  // Window line counter
	statLine   bool   // Current STAT interrupt line

	// Scroll registers
	scy, scx uint8 // Background viewport position
	wy, wx   uint8 // Window Position

	lyc             uint8
	bgp, obp0, obp1 uint8

	vram [0x2000]uint8
	oam  [160]uint8

	framebuffer Framebuffer
	frameReady  bool

	irq interrupts.Sink
}

// New returns a new PPU, in the state the boot ROM leaves it in.
func New(irq interrupts.Sink) *PPU {
	p := &PPU{irq: irq}
	p.Reset()
	return p
}

// Reset clears video memory and sets the registers to their
// post-boot values.
func (p *PPU) Reset() {
	clear(p.vram[:])
	clear(p.oam[:])
	p.framebuffer = Framebuffer{}
	p.frameReady = false

	p.lcdc.Write(0x91)
	p.status = lcd.Status{Mode: lcd.VBlank}
	p.scy, p.scx, p.wy, p.wx = 0, 0, 0, 0
	p.lyc = 0
	p.bgp, p.obp0, p.obp1 = 0xFC, 0xFF, 0xFF

	p.ly = 0
	p.dots = DotsPerLine
	p.windowLine = 0
	p.updateCoincidence()
	p.statLine = p.status.Line()
}

// Tick advances the PPU by a single T-cycle.
func (p *PPU) Tick() {
	if !p.lcdc.Enabled {
		return
	}

	p.dots--
	if p.ly < ScreenHeight {
		elapsed := DotsPerLine - p.dots
		switch {
		case elapsed < oamDots:
			p.setMode(lcd.OAM)
		case elapsed < oamDots+transferDots:
			p.setMode(lcd.VRAM)
		default:
			p.setMode(lcd.HBlank)
		}
	}

	if p.dots > 0 {
		return
	}

	// end of line
	p.dots = DotsPerLine
	if p.ly < ScreenHeight {
		p.renderScanline()
	}
	p.ly++
	switch {
	case p.ly == ScreenHeight:
		p.setMode(lcd.VBlank)
		p.irq.RequestInterrupt(interrupts.VBlankFlag)
		p.frameReady = true
	case p.ly >= LinesPerFrame:
		p.ly = 0
		p.windowLine = 0
		p.setMode(lcd.OAM)
	case p.ly < ScreenHeight:
		p.setMode(lcd.OAM)
	}
	p.updateCoincidence()
}

func (p *PPU) setMode(mode lcd.Mode) {
	if p.status.Mode == mode {
		return
	}
	p.status.Mode = mode
	p.checkStatLine()
}

func (p *PPU) updateCoincidence() {
	p.status.Coincidence = p.ly == p.lyc
	p.checkStatLine()
}

// checkStatLine requests the STAT interrupt on the rising edge of
// the combined STAT line.
func (p *PPU) checkStatLine() {
	line := p.status.Line()
	if line && !p.statLine {
		p.irq.RequestInterrupt(interrupts.LCDFlag)
	}
	p.statLine = line
}

// Read returns the value at the given address, in VRAM, OAM or
// one of the LCD registers.
func (p *PPU) Read(address uint16) uint8 {
	switch {
	case address >= types.VRAMStart && address < types.VRAMEnd:
		return p.vram[address-types.VRAMStart]
	case address >= types.OAMStart && address < types.OAMEnd:
		return p.oam[address-types.OAMStart]
	}
	return p.ReadRegister(address)
}

// Write writes the value to the given address, in VRAM, OAM or
// one of the LCD registers.
func (p *PPU) Write(address uint16, value uint8) {
	switch {
	case address >= types.VRAMStart && address < types.VRAMEnd:
		p.vram[address-types.VRAMStart] = value
	case address >= types.OAMStart && address < types.OAMEnd:
		p.oam[address-types.OAMStart] = value
	default:
		p.WriteRegister(address, value)
	}
}

// ReadRegister returns the value of the LCD register at address.
func (p *PPU) ReadRegister(address uint16) uint8 {
	switch address {
	case types.LCDC:
		return p.lcdc.Read()
	case types.STAT:
		return p.status.Read()
	case types.SCY:
		return p.scy
	case types.SCX:
		return p.scx
	case types.LY:
		return p.ly
	case types.LYC:
		return p.lyc
	case types.BGP:
		return p.bgp
	case types.OBP0:
		return p.obp0
	case types.OBP1:
		return p.obp1
	case types.WY:
		return p.wy
	case types.WX:
		return p.wx
	}
	return 0xFF
}

// WriteRegister writes to the LCD register at address. LY and the
// read only bits of STAT ignore writes.
func (p *PPU) WriteRegister(address uint16, value uint8) {
	switch address {
	case types.LCDC:
		wasEnabled := p.lcdc.Enabled
		p.lcdc.Write(value)
		switch {
		case wasEnabled && !p.lcdc.Enabled:
			p.ly = 0
			p.dots = DotsPerLine
			p.windowLine = 0
			p.setMode(lcd.HBlank)
			p.updateCoincidence()
		case !wasEnabled && p.lcdc.Enabled:
			p.dots = DotsPerLine
			p.updateCoincidence()
		}
	case types.STAT:
		p.status.Write(value)
		p.checkStatLine()
	case types.SCY:
		p.scy = value
	case types.SCX:
		p.scx = value
	case types.LYC:
		p.lyc = value
		p.updateCoincidence()
	case types.BGP:
		p.bgp = value
	case types.OBP0:
		p.obp0 = value
	case types.OBP1:
		p.obp1 = value
	case types.WY:
		p.wy = value
	case types.WX:
		p.wx = value
	}
}

// Framebuffer returns a copy of the last composed frame.
func (p *PPU) Framebuffer() Framebuffer {
	return p.framebuffer
}

// FrameReady reports whether a frame has been completed since the
// last call to ClearFrameReady.
func (p *PPU) FrameReady() bool {
	return p.frameReady
}

// ClearFrameReady acknowledges the completed frame.
func (p *PPU) ClearFrameReady() {
	p.frameReady = false
}

// LY returns the current line.
func (p *PPU) LY() uint8 {
	return p.ly
}

// Mode returns the current mode.
func (p *PPU) Mode() lcd.Mode {
	return p.status.Mode
}

// Enabled reports whether the LCD is on.
func (p *PPU) Enabled() bool {
	return p.lcdc.Enabled
}
