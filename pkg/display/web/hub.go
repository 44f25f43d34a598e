package web

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/shellboy/internal/joypad"
	"github.com/thelolagemann/shellboy/pkg/display"
	"github.com/thelolagemann/shellboy/pkg/display/event"
	"github.com/thelolagemann/shellboy/pkg/log"
)

var errNoLatency = errors.New("web: latency not available")

const (
	maxCompressionLevel = 11 // brotli
	latencyPeriod       = time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type clientMessage struct {
	c    *Client
	data []byte
}

// hub maintains the set of connected clients. All of its state is
// owned by the goroutine running run, clients talk to it over
// channels.
type hub struct {
	emu display.Emulator
	log log.Logger

	clients              map[*Client]bool
	register, unregister chan *Client
	messages             chan clientMessage
	done                 chan struct{}

	settings  settings
	encoder   *encoder
	currentID uint8
}

func newHub(emu display.Emulator, l log.Logger, s settings, e *encoder) *hub {
	return &hub{
		emu:        emu,
		log:        l,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		messages:   make(chan clientMessage, 16),
		done:       make(chan struct{}),
		settings:   s,
		encoder:    e,
	}
}

// ServeHTTP upgrades the request to a websocket connection and
// registers the client with the hub.
func (h *hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("web: upgrading connection from %s: %v", r.RemoteAddr, err)
		return
	}

	c := &Client{hub: h, conn: conn, Send: make(chan []byte, 256)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.WritePump()
	go c.ReadPump()
}

// run services the clients until stop is closed or the emulator
// quits. Frames received on fb are encoded and broadcast to every
// client.
func (h *hub) run(stop <-chan struct{}, fb <-chan []byte, events <-chan event.Event, pressed, released chan<- joypad.Button) error {
	defer func() {
		close(h.done)
		for c := range h.clients {
			h.remove(c)
		}
	}()

	ticker := time.NewTicker(latencyPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return nil
		case c := <-h.register:
			h.currentID++
			c.ID = h.currentID
			h.clients[c] = true
			h.log.Infof("web: client %d connected from %s", c.ID, c.conn.RemoteAddr())

			h.send(c, h.clientInfo(c.ID))
			h.send(c, []byte{PlayerInfo, Status, h.settings.info(h.emu.Paused())})
			messages, err := h.encoder.sync()
			if err != nil {
				h.log.Errorf("%v", err)
				continue
			}
			for _, m := range messages {
				h.send(c, m)
			}
		case c := <-h.unregister:
			if h.clients[c] {
				h.log.Infof("web: client %d disconnected", c.ID)
			}
			h.remove(c)
		case m := <-h.messages:
			h.handle(m, stop, pressed, released)
		case frame := <-fb:
			messages, err := h.encoder.encode(frame, h.settings)
			if err != nil {
				return err
			}
			for _, m := range messages {
				h.broadcast(m)
			}
		case e := <-events:
			switch e.Type {
			case event.Quit:
				h.broadcast([]byte{ClientClosing})
				return nil
			case event.Title:
				h.broadcast(append([]byte{Title}, fmt.Sprint(e.Data)...))
			}
		case <-ticker.C:
			h.measureLatency()
		}
	}
}

// handle interprets a message from a client. Messages are one of:
//
//	[button, state]           press (1) or release (0) a button
//	[pause]                   pause (0) or resume (1) the emulator
//	[System, setting, value]  change a setting
func (h *hub) handle(m clientMessage, stop <-chan struct{}, pressed, released chan<- joypad.Button) {
	switch {
	case len(m.data) == 2 && m.data[0] <= uint8(joypad.ButtonStart):
		ch := released
		if m.data[1] != 0 {
			ch = pressed
		}
		select {
		case ch <- joypad.Button(m.data[0]):
		case <-stop:
		}
	case len(m.data) == 1:
		switch m.data[0] {
		case 0:
			h.emu.SendCommand(display.Pause)
		case 1:
			h.emu.SendCommand(display.Resume)
		default:
			return
		}
		h.broadcast([]byte{PlayerInfo, Status, h.settings.info(h.emu.Paused())})
	case len(m.data) == 3 && m.data[0] == System:
		if err := h.settings.set(m.data[1], m.data[2]); err != nil {
			h.log.Warnf("web: client %d: %v", m.c.ID, err)
			return
		}
		h.log.Debugf("web: client %d changed setting %d to %d", m.c.ID, m.data[1], m.data[2])
		for c := range h.clients {
			h.send(c, h.clientInfo(c.ID))
		}
	default:
		h.log.Debugf("web: client %d sent unknown message %v", m.c.ID, m.data)
	}
}

// set changes the setting to value.
func (s *settings) set(setting Setting, value uint8) error {
	switch setting {
	case Compression:
		s.compression = value != 0
	case CompressionLevel:
		if value > maxCompressionLevel {
			return fmt.Errorf("compression level %d out of range", value)
		}
		s.compressionLevel = int(value)
	case FramePatching:
		s.framePatching = value != 0
	case FrameSkipping:
		s.frameSkipping = value != 0
	case FramePatchingRatio:
		if value > 100 {
			return fmt.Errorf("frame patching ratio %d out of range", value)
		}
		s.framePatchRatio = int(value)
	default:
		return fmt.Errorf("unknown setting %d", setting)
	}
	return nil
}

func (h *hub) clientInfo(id uint8) []byte {
	return []byte{
		ClientInfo,
		id,
		h.settings.info(h.emu.Paused()),
		uint8(h.settings.compressionLevel),
		uint8(h.settings.framePatchRatio),
	}
}

// measureLatency sends every client its round trip time, along
// with the number of connected clients.
func (h *hub) measureLatency() {
	for c := range h.clients {
		latency, err := rtt(c.conn.UnderlyingConn())
		if err != nil {
			continue
		}
		c.avgLatency = (c.avgLatency*9 + latency) / 10
		msg := binary.LittleEndian.AppendUint16([]byte{ServerInfo}, c.avgLatency)
		h.send(c, append(msg, uint8(len(h.clients))))
	}
}

func (h *hub) broadcast(message []byte) {
	for c := range h.clients {
		h.send(c, message)
	}
}

// send queues the message for the client. Clients that can't keep
// up are dropped.
func (h *hub) send(c *Client, message []byte) {
	select {
	case c.Send <- message:
	default:
		h.log.Warnf("web: client %d is too slow, disconnecting", c.ID)
		h.remove(c)
	}
}

func (h *hub) remove(c *Client) {
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.Send)
	}
}
