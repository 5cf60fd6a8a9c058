package server

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 2 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// -----------------------------------------------------------------------------

// Client is one WebSocket subscriber. Reports and query replies are queued on
// send; ctx ends with the connection and bounds any query the client started.
type Client struct {
	hub  *FastAPIServer
	conn *websocket.Conn
	send chan interface{}

	ctx    context.Context
	cancel context.CancelFunc
}

// -----------------------------------------------------------------------------

// disconnect cancels in-flight queries and leaves the hub. The hub may already
// be stopping, in which case nobody reads unregister.
func (c *Client) disconnect() {
	c.cancel()
	select {
	case c.hub.unregister <- c:
	case <-c.hub.done:
	}
	c.conn.Close()
	c.hub.Logger.Info("Client disconnected")
}

// -----------------------------------------------------------------------------

// readPump feeds query commands to the hub until the peer goes away or stops
// answering pings.
func (c *Client) readPump() {
	defer c.disconnect()

	c.conn.SetReadLimit(maxMessageSize)
	c.extendReadDeadline()
	c.conn.SetPongHandler(func(string) error {
		c.extendReadDeadline()
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.Logger.Info("WebSocket error: %v", err)
			}
			return
		}
		c.hub.HandleClientMessage(c, message)
	}
}

func (c *Client) extendReadDeadline() {
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
}

// -----------------------------------------------------------------------------

// writePump is the only writer on conn.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			if !ok {
				c.writeControl(websocket.CloseMessage)
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(payload); err != nil {
				c.hub.Logger.Info("Write error: %v", err)
				return
			}

		case <-ticker.C:
			if err := c.writeControl(websocket.PingMessage); err != nil {
				return
			}
		}
	}
}

func (c *Client) writeControl(messageType int) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(messageType, nil)
}
