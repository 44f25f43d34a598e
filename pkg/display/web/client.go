package web

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Client is a websocket connection to a browser.
type Client struct {
	hub  *hub
	conn *websocket.Conn
	Send chan []byte
	ID   uint8

	// avgLatency is owned by the hub goroutine.
	avgLatency uint16
}

// ReadPump reads messages from the client until the connection
// is closed, passing them to the hub.
func (c *Client) ReadPump() {
	// deferred function to handle unregistering client
	// and closing connection
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return // connection closed
		}
		if len(message) == 0 {
			continue
		}
		if message[0] == Closing && len(message) == 1 {
			return
		}
		select {
		case c.hub.messages <- clientMessage{c, message}:
		case <-c.hub.done:
			return
		}
	}
}

// WritePump writes the messages queued on Send to the client, and
// pings it periodically to keep the connection alive.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			// the hub closed the channel
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// try to write message to client
			if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
