package spectate

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"github.com/tomz197/pewpew/internal/loop/server"
)

// Directory lists the live sessions.
type Directory interface {
	Snapshot() *server.Snapshot
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The spectator page is served by a different host.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Handler serves the spectator endpoints:
//
//	GET /ws?session=<id>  frame stream, every session when id is empty
//	GET /sessions         session list and leaderboard
func Handler(h *Hub, dir Directory) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", h.ServeWS)
	mux.HandleFunc("GET /sessions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(dir.Snapshot()); err != nil {
			h.logger.Warn("Failed to write session list", "err", err)
		}
	})
	return cors.Default().Handler(mux)
}

// ServeWS upgrades the request and attaches a spectator.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	c := newClient(h, conn, r.URL.Query().Get("session"))
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}
