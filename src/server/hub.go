package server

import (
	"context"
	"encoding/json"
	"net/http"

	"fn-peaks/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// handleWebsockets is the main Hub loop
func (s *FastAPIServer) handleWebsockets() {
	for {
		select {
		case <-s.done:
			s.stateMutex.Lock()
			for client := range s.clients {
				delete(s.clients, client)
				close(client.send)
			}
			s.stateMutex.Unlock()
			return

		case client := <-s.register:
			s.stateMutex.Lock()
			s.clients[client] = struct{}{}
			// Send initial state on connect
			client.send <- s.latestState
			s.stateMutex.Unlock()

		case client := <-s.unregister:
			s.stateMutex.Lock()
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
			}
			s.stateMutex.Unlock()

		case message := <-s.broadcast:
			s.stateMutex.Lock()
			s.latestState = message
			for client := range s.clients {
				select {
				case client.send <- message:
				default:
					// Client too slow, disconnect so the hub never blocks
					delete(s.clients, client)
					close(client.send)
				}
			}
			s.stateMutex.Unlock()
		}
	}
}

// -----------------------------------------------------------------------------
// Data Exchange Interface Implementation
// -----------------------------------------------------------------------------

// Broadcast queues a report for every connected client. It becomes the latest state.
func (s *FastAPIServer) Broadcast(report *models.MPeakReport) {
	if report == nil {
		return
	}
	select {
	case s.broadcast <- report:
	case <-s.done:
	}
}

// -----------------------------------------------------------------------------

// SetLatestReport updates the state sent to new clients without broadcasting.
func (s *FastAPIServer) SetLatestReport(report *models.MPeakReport) {
	if report == nil {
		return
	}
	s.stateMutex.Lock()
	s.latestState = report
	s.stateMutex.Unlock()
}

// -----------------------------------------------------------------------------

// LatestReport returns the report new clients receive on connect.
func (s *FastAPIServer) LatestReport() *models.MPeakReport {
	s.stateMutex.RLock()
	defer s.stateMutex.RUnlock()
	return s.latestState
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	client := &Client{
		hub:    s,
		conn:   conn,
		ctx:    ctx,
		cancel: cancel,
		// Buffered channel to prevent blocking the Hub loop
		send: make(chan interface{}, 256),
	}

	select {
	case s.register <- client:
	case <-s.done:
		cancel()
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

// HandleClientMessage answers "query" and "latest" commands on the sending client only.
func (s *FastAPIServer) HandleClientMessage(client *Client, message []byte) {
	var cmd models.MQueryCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		s.Logger.Info("Failed to parse client command: %v, disconnecting client", err)
		client.conn.Close()
		return
	}

	var response interface{}
	switch cmd.Command {
	case "latest":
		response = s.LatestReport()
	case "query":
		response = s.queryResponse(client.ctx, cmd)
	default:
		return
	}

	// The hub closes send under the write lock, so check membership first
	s.stateMutex.RLock()
	defer s.stateMutex.RUnlock()
	if _, ok := s.clients[client]; !ok {
		return
	}
	select {
	case client.send <- response:
	default:
		s.Logger.Warning("Dropped %s response, client buffer full", cmd.Command)
	}
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) queryResponse(ctx context.Context, cmd models.MQueryCommand) interface{} {
	r, err := s.parseRange(cmd.Start, cmd.End)
	if err != nil {
		return errorMessage(err)
	}
	report, err := s.Runner.Run(ctx, r)
	if err != nil {
		return errorMessage(err)
	}
	return report
}
