package lcd

import "github.com/thelolagemann/shellboy/internal/types"

// Status represents the LCD status register. It contains information about the
// current state of the LCD controller. Its value is stored in types.STAT as
// follows:
//
//	Bit 6 - LYC=LY Coincidence Interrupt (1=Enable) (Read/Write)
//	Bit 5 - Mode 2 OAM Interrupt         (1=Enable) (Read/Write)
//	Bit 4 - Mode 1 V-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 3 - Mode 0 H-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 2 - Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
//	Bit 1-0 - Mode Flag       (Mode 0-3, see Mode)  (Read Only)
type Status struct {
	CoincidenceInterrupt bool
	OAMInterrupt         bool
	VBlankInterrupt      bool
	HBlankInterrupt      bool
	Coincidence          bool
	Mode                 Mode
}

// Write writes the interrupt enable bits. The coincidence flag
// and the mode are read only.
func (s *Status) Write(value uint8) {
	s.CoincidenceInterrupt = value&types.Bit6 != 0
	s.OAMInterrupt = value&types.Bit5 != 0
	s.VBlankInterrupt = value&types.Bit4 != 0
	s.HBlankInterrupt = value&types.Bit3 != 0
}

// Read returns the value of the status register.
func (s *Status) Read() uint8 {
	value := uint8(types.Bit7) // bit 7 is always set
	if s.CoincidenceInterrupt {
		value |= types.Bit6
	}
	if s.OAMInterrupt {
		value |= types.Bit5
	}
	if s.VBlankInterrupt {
		value |= types.Bit4
	}
	if s.HBlankInterrupt {
		value |= types.Bit3
	}
	if s.Coincidence {
		value |= types.Bit2
	}
	return value | s.Mode&0x03
}

// Line returns the state of the STAT interrupt line, which is
// high while any enabled source is active. The interrupt is
// requested on its rising edge.
func (s *Status) Line() bool {
	return (s.CoincidenceInterrupt && s.Coincidence) ||
		(s.HBlankInterrupt && s.Mode == HBlank) ||
		(s.VBlankInterrupt && s.Mode == VBlank) ||
		(s.OAMInterrupt && s.Mode == OAM)
}
