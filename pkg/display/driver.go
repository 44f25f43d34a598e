// Package display provides the registry of display drivers that
// present the emulator to the user. Drivers register themselves
// with Install in their init function, so that importing a driver
// package is enough to make it available.
package display

import (
	"errors"
	"flag"
	"fmt"
	"strconv"

	"github.com/thelolagemann/shellboy/internal/joypad"
	"github.com/thelolagemann/shellboy/pkg/display/event"
	"github.com/thelolagemann/shellboy/pkg/emulator"
	"github.com/thelolagemann/shellboy/pkg/log"
)

var (
	// ErrNoDrivers is returned when no display driver is installed.
	ErrNoDrivers = errors.New("display: no drivers installed")
	// ErrUnknownDriver is returned when the requested driver is
	// not installed.
	ErrUnknownDriver = errors.New("display: unknown driver")
)

// Driver is the interface that wraps the basic methods for a
// display driver.
type Driver interface {
	// Initialize initializes the display driver by attaching it to
	// the emulator that is using it.
	Initialize(emu Emulator, l log.Logger)
	// Start the display driver. It blocks until the driver is
	// stopped, or the user quits.
	Start(fb <-chan []byte, events <-chan event.Event, pressed, released chan<- joypad.Button) error
	// Stop the display driver.
	Stop() error
}

// Emulator is the interface that wraps the basic methods for an
// emulator to implement in order for the driver to be able to
// interact with it. This is used to allow the driver to
// control the emulator. The emulator is passed to the driver
// during initialization.
type Emulator interface {
	emulator.Controller
	// SendCommand sends a command packet to the emulator.
	SendCommand(command emulator.CommandPacket) emulator.ResponsePacket
	// Speed returns the speed of the emulator.
	Speed() float64
}

var (
	Pause  = emulator.CommandPacket{Command: emulator.CommandPause}
	Resume = emulator.CommandPacket{Command: emulator.CommandResume}
	Reset  = emulator.CommandPacket{Command: emulator.CommandReset}
	Save   = emulator.CommandPacket{Command: emulator.CommandSave}
	Close  = emulator.CommandPacket{Command: emulator.CommandClose}
)

// TogglePause pauses the emulator if it is running, and resumes
// it otherwise.
func TogglePause(emu Emulator) {
	if emu.Paused() {
		emu.SendCommand(Resume)
	} else {
		emu.SendCommand(Pause)
	}
}

// DriverOption is a display driver option. This is used to
// configure a display driver.
type DriverOption struct {
	Name        string // name of the option
	Default     any    // default value of the option
	Value       any    // pointer to the value of the option
	Description string // description of the option
	Type        string // "int", "bool", "string", "float"
}

// InstalledDriver is a driver that has been installed. This is
// used to allow drivers to register their name.
type InstalledDriver struct {
	Name    string
	Options []DriverOption
	Driver
}

// InstalledDrivers is a list of all the installed drivers. This
// variable is exported so that it can be used by the main
// program to determine which drivers can be used. Drivers should
// call display.Install in their init() function.
var InstalledDrivers []*InstalledDriver

// GetDriver returns the driver with the given name. The name "auto"
// selects the first installed driver.
func GetDriver(name string) (Driver, error) {
	if len(InstalledDrivers) == 0 {
		return nil, ErrNoDrivers
	}
	if name == "auto" {
		return InstalledDrivers[0].Driver, nil
	}
	for _, driver := range InstalledDrivers {
		if driver.Name == name {
			return driver.Driver, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, name)
}

// Install registers a display driver with the given name.
func Install(name string, driver Driver, options []DriverOption) {
	InstalledDrivers = append(InstalledDrivers, &InstalledDriver{
		Name:    name,
		Options: options,
		Driver:  driver,
	})
}

// RegisterFlags iterates through all the display driver
// options and registers them with the flag set. Options unique to
// a driver are prefixed with its name, options shared by several
// drivers are registered once and set on all of them.
func RegisterFlags(fs *flag.FlagSet) {
	optionCounts := make(map[string]int)
	opts := make(map[string][]DriverOption)
	prefixes := make(map[string]string)

	for _, driver := range InstalledDrivers {
		for _, opt := range driver.Options {
			// track how many times an option is used
			optionCounts[opt.Name]++
			opts[opt.Name] = append(opts[opt.Name], opt)
			prefixes[opt.Name] = driver.Name
		}
	}

	for o, count := range optionCounts {
		// this requires an option merge
		if count > 1 {
			multi := &multiValue{defaultValue: opts[o][0].Default}
			for _, mOpt := range opts[o] {
				multi.values = append(multi.values, mOpt.Value)
				multi.setDefault(mOpt.Value)
			}
			fs.Var(multi, o, opts[o][0].Description)
			continue
		}

		// this option is unique and should be prefixed
		opt := opts[o][0]
		optName := fmt.Sprintf("%s-%s", prefixes[o], opt.Name)
		switch opt.Type {
		case "string":
			fs.StringVar(opt.Value.(*string), optName, opt.Default.(string), opt.Description)
		case "bool":
			fs.BoolVar(opt.Value.(*bool), optName, opt.Default.(bool), opt.Description)
		case "float":
			fs.Float64Var(opt.Value.(*float64), optName, opt.Default.(float64), opt.Description)
		case "int":
			fs.IntVar(opt.Value.(*int), optName, opt.Default.(int), opt.Description)
		}
	}
}

type multiValue struct {
	values       []any
	defaultValue any
}

func (m *multiValue) setDefault(ptr any) {
	switch p := ptr.(type) {
	case *string:
		*p = m.defaultValue.(string)
	case *bool:
		*p = m.defaultValue.(bool)
	case *float64:
		*p = m.defaultValue.(float64)
	case *int:
		*p = m.defaultValue.(int)
	}
}

func (m *multiValue) String() string {
	if m == nil || m.defaultValue == nil {
		return ""
	}
	return fmt.Sprint(m.defaultValue)
}

func (m *multiValue) Set(value string) error {
	// update all the pointers with the provided value
	for _, ptr := range m.values {
		switch p := ptr.(type) {
		case *string:
			*p = value
		case *bool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return err
			}
			*p = b
		case *float64:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return err
			}
			*p = f
		case *int:
			i, err := strconv.Atoi(value)
			if err != nil {
				return err
			}
			*p = i
		default:
			return fmt.Errorf("unknown type: %T", ptr) // should never happen, but just in case...
		}
	}

	return nil
}

func (m *multiValue) IsBoolFlag() bool {
	_, isBool := m.defaultValue.(bool)
	return isBool
}
