package lcd

// Mode represents a mode of the LCD, as reported in bits
// 0-1 of the status register.
type Mode = uint8

const (
	// HBlank (Mode 0) is the horizontal blanking period, from
	// the end of pixel transfer to the end of the line.
	//
	//	- STAT interrupt available if enabled via STAT.3
	HBlank Mode = iota
	// VBlank (Mode 1) is the vertical blanking period, active
	// during LY 144-153.
	//
	//	- VBlank interrupt requested on entry
	//	- STAT interrupt available if enabled via STAT.4
	VBlank
	// OAM (Mode 2) is the OAM scan at the start of each visible
	// line, lasting 80 dots.
	//
	//	- STAT interrupt available if enabled via STAT.5
	OAM
	// VRAM (Mode 3) is the pixel transfer, lasting 172 dots
	// in this implementation.
	//
	//	- No STAT interrupts available
	VRAM
)
