package emulator

import "testing"

func TestStatus_String(t *testing.T) {
	for s, expected := range map[Status]string{
		Running:    "Running",
		Paused:     "Paused",
		Halted:     "Halted",
		Errored:    "Errored",
		Status(42): "Unknown",
	} {
		if s.String() != expected {
			t.Errorf("expected %s, got %s", expected, s)
		}
	}
}

func TestCommand_String(t *testing.T) {
	if CommandSetSpeed.String() != "SetSpeed" {
		t.Errorf("expected SetSpeed, got %s", CommandSetSpeed)
	}
	if Command(-1).String() != "Unknown" {
		t.Errorf("expected Unknown, got %s", Command(-1))
	}
}
