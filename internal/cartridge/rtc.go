package cartridge

import "time"

// Clock is the source of wall clock time for the RTC.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// RTC registers, as selected by writing to 0x4000 - 0x5FFF.
const (
	RTCSeconds = 0x08
	RTCMinutes = 0x09
	RTCHours   = 0x0A
	RTCDayLow  = 0x0B
	// RTCDayHigh holds bit 8 of the day counter (bit 0), the
	// halt flag (bit 6) and the day counter carry (bit 7).
	RTCDayHigh = 0x0C
)

const (
	rtcHalt  = 1 << 6
	rtcCarry = 1 << 7
)

// RTC is the real time clock of an MBC3 cartridge. The live
// registers advance with the Clock, and are copied into the
// latched registers visible to the CPU when the latch sequence
// (0x00 then 0x01) is written to 0x6000 - 0x7FFF.
type RTC struct {
	clock Clock
	last  time.Time

	live    [5]uint8
	latched [5]uint8
	latch   uint8
}

// NewRTC returns a new RTC starting at zero.
func NewRTC(clock Clock) *RTC {
	return &RTC{
		clock: clock,
		last:  clock.Now(),
		latch: 0xFF,
	}
}

// update advances the live registers by the whole seconds that
// have elapsed since the last update.
func (r *RTC) update() {
	now := r.clock.Now()
	if r.live[4]&rtcHalt != 0 {
		r.last = now
		return
	}
	elapsed := int64(now.Sub(r.last) / time.Second)
	if elapsed <= 0 {
		return
	}
	r.last = r.last.Add(time.Duration(elapsed) * time.Second)

	days := int64(r.live[3]) | int64(r.live[4]&0x01)<<8
	total := int64(r.live[0]) + int64(r.live[1])*60 + int64(r.live[2])*3600 + days*86400 + elapsed

	r.live[0] = uint8(total % 60)
	r.live[1] = uint8(total / 60 % 60)
	r.live[2] = uint8(total / 3600 % 24)
	days = total / 86400
	if days >= 512 {
		r.live[4] |= rtcCarry
		days %= 512
	}
	r.live[3] = uint8(days)
	r.live[4] = r.live[4]&^0x01 | uint8(days>>8)
}

// Latch writes the next value of the latch sequence.
func (r *RTC) Latch(value uint8) {
	if r.latch == 0x00 && value == 0x01 {
		r.update()
		r.latched = r.live
	}
	r.latch = value
}

// Read returns the latched value of the given register.
func (r *RTC) Read(register uint8) uint8 {
	if register < RTCSeconds || register > RTCDayHigh {
		return 0xFF
	}
	return r.latched[register-RTCSeconds]
}

// Write sets the live value of the given register.
func (r *RTC) Write(register uint8, value uint8) {
	r.update()
	switch register {
	case RTCSeconds:
		r.live[0] = value & 0x3F
		r.last = r.clock.Now()
	case RTCMinutes:
		r.live[1] = value & 0x3F
	case RTCHours:
		r.live[2] = value & 0x1F
	case RTCDayLow:
		r.live[3] = value
	case RTCDayHigh:
		r.live[4] = value & 0xC1
	}
}
