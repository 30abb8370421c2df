package notifications

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

// RealtimeHub broadcasts engine events (taskUpdated, bottleneckAlert) to
// connected websocket clients. Outbound only: inbound frames are discarded.
type RealtimeHub struct {
	logger *slog.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

type realtimeMessage struct {
	Channel string          `json:"channel"`
	Payload json.RawMessage `json:"payload"`
}

func NewRealtimeHub(logger *slog.Logger) *RealtimeHub {
	return &RealtimeHub{
		logger:  logger,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

func (h *RealtimeHub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	// drain inbound frames so pings are answered and closes are noticed
	go func() {
		defer h.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *RealtimeHub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		_ = conn.Close()
	}
}

func (h *RealtimeHub) Broadcast(channel string, payload []byte) {
	message, err := json.Marshal(realtimeMessage{
		Channel: channel,
		Payload: payload,
	})
	if err != nil {
		h.logger.Error("failed to marshal realtime message", "channel", channel, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			delete(h.clients, conn)
			_ = conn.Close()
		}
	}
}

func (h *RealtimeHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.clients)
}
