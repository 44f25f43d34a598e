package types

// HardwareAddress is the address of one of the memory mapped
// hardware registers of the DMG. The registers live in the
// I/O page (0xFF00 - 0xFF7F) and at 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 selects which half of the joypad matrix is visible in
	// the lower nibble, and reads the selected buttons back.
	//
	//  Bit 5: Select action buttons    (0=Select)
	//  Bit 4: Select direction buttons (0=Select)
	//  Bit 3-0: Down/Start, Up/Select, Left/B, Right/A (0=Pressed)
	P1 HardwareAddress = 0xFF00
	// SB holds the byte being shifted out of (and into) the
	// serial port.
	SB HardwareAddress = 0xFF01
	// SC controls the serial port.
	//
	//  Bit 7: Transfer start flag (1=Transfer in progress)
	//  Bit 0: Clock select        (0=External, 1=Internal)
	SC HardwareAddress = 0xFF02
	// DIV exposes the upper 8 bits of the 16-bit system counter.
	// Writing any value to DIV clears the whole counter.
	DIV HardwareAddress = 0xFF04
	// TIMA is incremented on every falling edge of the counter bit
	// selected by TAC. On overflow it is reloaded from TMA and a
	// timer interrupt is requested.
	TIMA HardwareAddress = 0xFF05
	// TMA is the value TIMA is reloaded with when it overflows.
	TMA HardwareAddress = 0xFF06
	// TAC controls the timer.
	//
	//  Bit 2: Timer enable
	//  Bit 1-0: Input clock select
	//           00: 4096 Hz   (bit 9)
	//           01: 262144 Hz (bit 3)
	//           10: 65536 Hz  (bit 5)
	//           11: 16384 Hz  (bit 7)
	TAC HardwareAddress = 0xFF07
	// IF holds the pending interrupt requests.
	//
	//  Bit 0: V-Blank (INT 40h)
	//  Bit 1: LCD STAT (INT 48h)
	//  Bit 2: Timer (INT 50h)
	//  Bit 3: Serial (INT 58h)
	//  Bit 4: Joypad (INT 60h)
	IF HardwareAddress = 0xFF0F
	// LCDC is the LCD control register.
	//
	//  Bit 7: LCD Enable                     (0=Off, 1=On)
	//  Bit 6: Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 5: Window Display Enable          (0=Off, 1=On)
	//  Bit 4: BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
	//  Bit 3: BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 2: OBJ (Sprite) Size              (0=8x8, 1=8x16)
	//  Bit 1: OBJ (Sprite) Display Enable    (0=Off, 1=On)
	//  Bit 0: BG Display                     (0=Off, 1=On)
	LCDC HardwareAddress = 0xFF40
	// STAT reports the LCD mode and selects the sources of the
	// STAT interrupt.
	//
	//  Bit 6: LYC=LY Coincidence Interrupt (1=Enable)
	//  Bit 5: Mode 2 OAM Interrupt         (1=Enable)
	//  Bit 4: Mode 1 V-Blank Interrupt     (1=Enable)
	//  Bit 3: Mode 0 H-Blank Interrupt     (1=Enable)
	//  Bit 2: Coincidence Flag             (Read Only)
	//  Bit 1-0: Mode Flag                  (Read Only)
	STAT HardwareAddress = 0xFF41
	// SCY is the vertical scroll position of the background.
	SCY HardwareAddress = 0xFF42
	// SCX is the horizontal scroll position of the background.
	SCX HardwareAddress = 0xFF43
	// LY is the scanline currently being drawn (0-153).
	LY HardwareAddress = 0xFF44
	// LYC is compared against LY, setting STAT bit 2 on a match.
	LYC HardwareAddress = 0xFF45
	// DMA starts an OAM DMA transfer from (value << 8).
	DMA HardwareAddress = 0xFF46
	// BGP maps the background colour numbers to shades.
	//
	//  Bit 7-6 - Shade for Color Number 3
	//  Bit 5-4 - Shade for Color Number 2
	//  Bit 3-2 - Shade for Color Number 1
	//  Bit 1-0 - Shade for Color Number 0
	BGP HardwareAddress = 0xFF47
	// OBP0 is object palette 0. Colour number 0 is transparent.
	OBP0 HardwareAddress = 0xFF48
	// OBP1 is object palette 1. Colour number 0 is transparent.
	OBP1 HardwareAddress = 0xFF49
	// WY is the Y position of the window.
	WY HardwareAddress = 0xFF4A
	// WX is the X position of the window plus 7.
	WX HardwareAddress = 0xFF4B
	// BDIS unmaps the boot ROM when written to.
	BDIS HardwareAddress = 0xFF50
	// IE holds the enabled interrupt sources, laid out as IF.
	IE HardwareAddress = 0xFFFF
)

// Memory regions of the DMG address space. Ranges are
// inclusive of Start and exclusive of End.
const (
	ROMStart       = 0x0000
	ROMBankStart   = 0x4000
	ROMEnd         = 0x8000
	VRAMStart      = 0x8000
	VRAMEnd        = 0xA000
	ExtRAMStart    = 0xA000
	ExtRAMEnd      = 0xC000
	WRAMStart      = 0xC000
	WRAMEnd        = 0xE000
	EchoStart      = 0xE000
	EchoEnd        = 0xFE00
	OAMStart       = 0xFE00
	OAMEnd         = 0xFEA0
	UnusableEnd    = 0xFF00
	IOStart        = 0xFF00
	HRAMStart      = 0xFF80
	EchoOffset     = EchoStart - WRAMStart
	ROMBankSize    = 0x4000
	ExtRAMBankSize = 0x2000
)
