package joypad

import (
	"testing"

	"github.com/thelolagemann/shellboy/internal/interrupts"
)

type sink struct{ count int }

func (s *sink) RequestInterrupt(flag interrupts.Flag) {
	if flag == interrupts.JoypadFlag {
		s.count++
	}
}

func TestState_Select(t *testing.T) {
	s := New(&sink{})
	s.Write(0xFF)
	if got := s.Read(); got != 0xFF {
		t.Errorf("expected 0xFF with neither group selected, got %02X", got)
	}
	s.Write(0x00)
	if got := s.Read(); got != 0xCF {
		t.Errorf("expected 0xCF with both groups selected, got %02X", got)
	}
	s.Write(0x20)
	if got := s.Read(); got != 0xEF {
		t.Errorf("expected 0xEF, got %02X", got)
	}
}

func TestState_Groups(t *testing.T) {
	s := New(&sink{})
	s.Press(ButtonDown)
	s.Press(ButtonA)

	s.Write(0x20) // directions
	if got := s.Read(); got != 0xE7 {
		t.Errorf("expected Down in bit 3 (0xE7), got %02X", got)
	}
	s.Write(0x10) // actions
	if got := s.Read(); got != 0xDE {
		t.Errorf("expected A in bit 0 (0xDE), got %02X", got)
	}

	s.Release(ButtonA)
	if got := s.Read(); got != 0xDF {
		t.Errorf("expected A released (0xDF), got %02X", got)
	}
	if !s.Pressed(ButtonDown) || s.Pressed(ButtonA) {
		t.Errorf("expected only Down to be pressed")
	}
}

func TestState_Interrupt(t *testing.T) {
	irq := &sink{}
	s := New(irq)

	s.Press(ButtonStart) // nothing selected
	if irq.count != 0 {
		t.Errorf("expected no interrupt while deselected")
	}

	s.Write(0x10)
	s.Press(ButtonB)
	s.Press(ButtonB)  // already pressed
	s.Press(ButtonUp) // other group
	if irq.count != 1 {
		t.Errorf("expected 1 interrupt, got %d", irq.count)
	}
}

func TestParseButton(t *testing.T) {
	for b := ButtonRight; b <= ButtonStart; b++ {
		got, ok := ParseButton(b.String())
		if !ok || got != b {
			t.Errorf("expected %s to round trip", b)
		}
	}
	if _, ok := ParseButton("Turbo"); ok {
		t.Errorf("expected unknown button")
	}
}
