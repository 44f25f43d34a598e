// Command shellboy runs a Game Boy ROM, presenting it with one of
// the installed display drivers.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/thelolagemann/shellboy/internal/cheats"
	"github.com/thelolagemann/shellboy/internal/gameboy"
	"github.com/thelolagemann/shellboy/internal/joypad"
	"github.com/thelolagemann/shellboy/pkg/display"
	_ "github.com/thelolagemann/shellboy/pkg/display/terminal"
	_ "github.com/thelolagemann/shellboy/pkg/display/web"
	"github.com/thelolagemann/shellboy/pkg/emulator"
	"github.com/thelolagemann/shellboy/pkg/log"
	"github.com/thelolagemann/shellboy/pkg/utils"
)

var (
	_ display.Emulator = &gameboy.GameBoy{}

	// askForROM asks the user for a ROM when none is given on the
	// command line, if the build has a file dialog.
	askForROM func() (string, error)
)

// romPath returns the ROM file to load, asking for one when name
// is empty.
func romPath(name string, ask func() (string, error)) (string, error) {
	if name == "" && ask != nil {
		var err error
		if name, err = ask(); err != nil {
			return "", err
		}
	}
	if name == "" {
		return "", errors.New("no rom file provided, use -rom")
	}
	return name, nil
}

func main() {
	romFile := flag.String("rom", "", "The rom file to load")
	bootROM := flag.String("boot", "", "The boot rom file to load")
	displayDriver := flag.String("driver", "auto", "The display driver to use. Can be auto, terminal, web or ebiten")
	speed := flag.Float64("speed", 1, "The speed to run the emulator at")
	logLevel := flag.String("log-level", "info", "The log level (debug, info, warn, error)")
	trace := flag.Bool("trace", false, "Log every executed instruction")
	serialOut := flag.String("serial", "", "Write bytes sent over the serial port to this file, - for stdout")
	cheatFile := flag.String("cheats", "", "The cheat file to load (Game Genie and GameShark codes)")

	display.RegisterFlags(flag.CommandLine)
	flag.Parse()

	logger, err := log.WithLevel(*logLevel)
	if err != nil {
		log.New().Fatal(err)
	}
	*romFile, err = romPath(*romFile, askForROM)
	if err != nil {
		logger.Fatal(err)
	}

	rom, err := utils.LoadFile(*romFile)
	if err != nil {
		logger.Fatal(err)
	}

	opts := []gameboy.Opt{gameboy.WithLogger(logger), gameboy.Speed(*speed)}
	if *bootROM != "" {
		boot, err := utils.LoadFile(*bootROM)
		if err != nil {
			logger.Fatal(err)
		}
		opts = append(opts, gameboy.WithBootROM(boot))
	}
	if *trace {
		opts = append(opts, gameboy.Trace())
	}
	if *serialOut != "" {
		var w io.Writer = os.Stdout
		if *serialOut != "-" {
			f, err := os.Create(*serialOut)
			if err != nil {
				logger.Fatal(err)
			}
			defer f.Close()
			w = f
		}
		opts = append(opts, gameboy.WithSerialWriter(w))
	}

	if *cheatFile != "" {
		f, err := os.Open(*cheatFile)
		if err != nil {
			logger.Fatal(err)
		}
		c, err := cheats.Parse(f)
		f.Close()
		if err != nil {
			logger.Fatal(err)
		}
		logger.Infof("loaded %d cheats from %s", len(c.List()), *cheatFile)
		opts = append(opts, gameboy.WithCheats(c))
	}

	save, err := emulator.NewSave(emulator.SavePath(*romFile), 0)
	if err != nil {
		logger.Fatal(err)
	}
	opts = append(opts, gameboy.WithSaveRAM(save))

	gb, err := gameboy.New(rom, opts...)
	if err != nil {
		logger.Fatal(err)
	}

	driver, err := display.GetDriver(*displayDriver)
	if err != nil {
		logger.Fatal(err)
	}
	driver.Initialize(gb, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// create various channels
	fb := make(chan []byte, 1)
	pressed := make(chan joypad.Button, 10)
	released := make(chan joypad.Button, 10)

	go gb.Start(ctx, fb, pressed, released)
	go func() {
		<-ctx.Done()
		driver.Stop()
	}()

	if err := driver.Start(fb, gb.Events(), pressed, released); err != nil {
		logger.Errorf("%v", err)
	}

	if resp := gb.SendCommand(display.Close); resp.Error != nil {
		logger.Errorf("%v", resp.Error)
	}
}
