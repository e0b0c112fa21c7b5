// File: services/realtime/hub.go
package realtime

import (
	"encoding/json"
	"sync/atomic"

	"go.uber.org/zap"
)

// Hub owns the set of connected websocket clients and broadcasts event
// envelopes to all of them. A single Run loop serializes registration and
// broadcast, so events enter every client's send queue in publish order.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	count      atomic.Int64
	logger     *zap.Logger
}

// NewHub constructs a hub. Call Run in a goroutine before serving clients.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run processes registration and broadcast until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.count.Store(int64(len(h.clients)))
			h.logger.Debug("websocket client connected", zap.Int("clients", len(h.clients)))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.count.Store(int64(len(h.clients)))
				h.logger.Debug("websocket client disconnected", zap.Int("clients", len(h.clients)))
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer: drop the connection rather than block
					// the broadcast loop.
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.count.Store(int64(len(h.clients)))
		}
	}
}

// ClientCount reports how many clients are currently connected.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Publish implements Publisher. Marshal failures are logged and dropped;
// broadcast carries no delivery guarantee to begin with.
func (h *Hub) Publish(event string, payload any) {
	msg, err := json.Marshal(Envelope{Event: event, Data: payload})
	if err != nil {
		h.logger.Error("failed to marshal broadcast event", zap.String("event", event), zap.Error(err))
		return
	}
	h.broadcast <- msg
}
