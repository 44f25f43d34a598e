// Package web provides a display driver that streams frames to
// browsers over websockets, and accepts their input.
package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/thelolagemann/shellboy/internal/joypad"
	"github.com/thelolagemann/shellboy/internal/ppu/palette"
	"github.com/thelolagemann/shellboy/pkg/display"
	"github.com/thelolagemann/shellboy/pkg/display/event"
	"github.com/thelolagemann/shellboy/pkg/log"
)

const shutdownTimeout = 5 * time.Second

// Driver serves the emulator to websocket clients. Every client
// sees the same emulator, and any of them can control it.
type Driver struct {
	emu display.Emulator
	log log.Logger

	addr             string
	compression      bool
	compressionLevel int
	framePatching    bool
	framePatchRatio  int
	frameSkipping    bool
	green            bool

	mu       sync.Mutex
	listener net.Listener
	stop     chan struct{}
	once     sync.Once
}

func init() {
	d := New()
	display.Install("web", d, []display.DriverOption{
		{
			Name:        "addr",
			Default:     ":8090",
			Value:       &d.addr,
			Description: "address to listen on",
			Type:        "string",
		},
		{
			Name:        "compression",
			Default:     true,
			Value:       &d.compression,
			Description: "compress frames with brotli",
			Type:        "bool",
		},
		{
			Name:        "compression-level",
			Default:     4,
			Value:       &d.compressionLevel,
			Description: "brotli quality (0-11)",
			Type:        "int",
		},
		{
			Name:        "patching",
			Default:     true,
			Value:       &d.framePatching,
			Description: "send only the changed pixels of a frame",
			Type:        "bool",
		},
		{
			Name:        "patch-ratio",
			Default:     50,
			Value:       &d.framePatchRatio,
			Description: "percentage of changed pixels below which a patch is sent",
			Type:        "int",
		},
		{
			Name:        "skipping",
			Default:     true,
			Value:       &d.frameSkipping,
			Description: "skip frames that have not changed",
			Type:        "bool",
		},
		{
			Name:        "palette-green",
			Default:     false,
			Value:       &d.green,
			Description: "use the green palette",
			Type:        "bool",
		},
	})
}

// New returns a Driver with the default settings.
func New() *Driver {
	return &Driver{
		addr:             ":8090",
		compression:      true,
		compressionLevel: 4,
		framePatching:    true,
		framePatchRatio:  50,
		frameSkipping:    true,
		stop:             make(chan struct{}),
	}
}

func (d *Driver) Initialize(emu display.Emulator, l log.Logger) {
	d.emu = emu
	d.log = l
}

// Addr returns the address the driver is listening on, or nil if
// it has not been started.
func (d *Driver) Addr() net.Addr {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.listener == nil {
		return nil
	}
	return d.listener.Addr()
}

func (d *Driver) Start(fb <-chan []byte, events <-chan event.Event, pressed, released chan<- joypad.Button) error {
	if d.emu == nil {
		return errors.New("web: driver not initialized")
	}
	if d.log == nil {
		d.log = log.NewNullLogger()
	}

	p := palette.Greyscale
	if d.green {
		p = palette.Green
	}
	h := newHub(d.emu, d.log, settings{
		compression:      d.compression,
		compressionLevel: min(max(d.compressionLevel, 0), maxCompressionLevel),
		framePatching:    d.framePatching,
		framePatchRatio:  min(max(d.framePatchRatio, 0), 100),
		frameSkipping:    d.frameSkipping,
	}, newEncoder(palette.Get(p)))

	ln, err := net.Listen("tcp", d.addr)
	if err != nil {
		return fmt.Errorf("web: %w", err)
	}
	d.mu.Lock()
	d.listener = ln
	d.mu.Unlock()

	mux := http.NewServeMux()
	mux.Handle("/", h)
	server := &http.Server{Handler: mux}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(ln)
	}()
	d.log.Infof("web: listening on %s", ln.Addr())

	runErr := h.run(d.stop, fb, events, pressed, released)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		d.log.Warnf("web: shutting down server: %v", err)
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web: %w", err)
	}

	return runErr
}

func (d *Driver) Stop() error {
	d.once.Do(func() {
		close(d.stop)
	})
	return nil
}
