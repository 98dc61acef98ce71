// Package spectate streams console frames to browsers over WebSocket.
package spectate

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/tomz197/pewpew/internal/loop"
)

// Message is one frame as sent to spectators.
type Message struct {
	Session  string     `json:"session"`
	Username string     `json:"username"`
	Frame    loop.Frame `json:"frame"`
}

// Hub maintains the set of active spectators and broadcasts frames to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{} // Closed when Run returns
	mu         sync.Mutex
	logger     *log.Logger
}

// NewHub initializes a new spectator hub.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		broadcast:  make(chan Message, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run handles spectator connections and broadcasts until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("Spectator hub shutting down")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug("Spectator connected", "session", client.session)
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Debug("Spectator disconnected")
			}
			h.mu.Unlock()
		case msg := <-h.broadcast:
			payload, err := json.Marshal(msg)
			if err != nil {
				h.logger.Error("Failed to encode frame", "err", err)
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				if client.session != "" && client.session != msg.Session {
					continue
				}
				select {
				case client.send <- payload:
				default:
					// Too slow to keep up.
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues a frame for broadcast. Frames are dropped while the hub is
// backed up; spectators only need the latest picture.
func (h *Hub) Publish(session, username string, f loop.Frame) {
	select {
	case h.broadcast <- Message{Session: session, Username: username, Frame: f}:
	default:
	}
}

// Count returns the number of connected spectators.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
