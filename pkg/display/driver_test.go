package display

import (
	"errors"
	"flag"
	"testing"

	"github.com/thelolagemann/shellboy/internal/joypad"
	"github.com/thelolagemann/shellboy/pkg/display/event"
	"github.com/thelolagemann/shellboy/pkg/log"
)

type nopDriver struct{ name string }

func (nopDriver) Initialize(Emulator, log.Logger) {}

func (nopDriver) Start(<-chan []byte, <-chan event.Event, chan<- joypad.Button, chan<- joypad.Button) error {
	return nil
}

func (nopDriver) Stop() error { return nil }

// withDrivers replaces the installed drivers for the duration of
// the test.
func withDrivers(t *testing.T) {
	saved := InstalledDrivers
	InstalledDrivers = nil
	t.Cleanup(func() { InstalledDrivers = saved })
}

func TestGetDriver(t *testing.T) {
	withDrivers(t)

	if _, err := GetDriver("auto"); !errors.Is(err, ErrNoDrivers) {
		t.Errorf("expected ErrNoDrivers, got %v", err)
	}

	first, second := &nopDriver{"first"}, &nopDriver{"second"}
	Install("first", first, nil)
	Install("second", second, nil)

	if d, err := GetDriver("auto"); err != nil || d != first {
		t.Errorf("expected auto to select the first driver, got %v", err)
	}
	if d, err := GetDriver("second"); err != nil || d != second {
		t.Errorf("expected the second driver, got %v", err)
	}
	if _, err := GetDriver("missing"); !errors.Is(err, ErrUnknownDriver) {
		t.Errorf("expected ErrUnknownDriver, got %v", err)
	}
}

func TestRegisterFlags(t *testing.T) {
	withDrivers(t)

	var addr string
	var scaleA, scaleB int
	var colourA, colourB bool
	Install("web", nopDriver{}, []DriverOption{
		{Name: "addr", Default: ":8090", Value: &addr, Type: "string"},
		{Name: "palette-green", Default: false, Value: &colourA, Type: "bool"},
		{Name: "scale", Default: 2, Value: &scaleA, Type: "int"},
	})
	Install("ebiten", nopDriver{}, []DriverOption{
		{Name: "palette-green", Default: false, Value: &colourB, Type: "bool"},
		{Name: "scale", Default: 2, Value: &scaleB, Type: "int"},
	})

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse([]string{"-web-addr", ":9000", "-palette-green", "-scale", "4"}); err != nil {
		t.Fatal(err)
	}

	if addr != ":9000" {
		t.Errorf("expected addr :9000, got %s", addr)
	}
	if !colourA || !colourB {
		t.Errorf("expected shared bool option to be set on both drivers")
	}
	if scaleA != 4 || scaleB != 4 {
		t.Errorf("expected shared int option to be set on both drivers, got %d %d", scaleA, scaleB)
	}
}
