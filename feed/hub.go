package feed

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Conn is the part of a websocket connection the hub writes to.
// *websocket.Conn satisfies it.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type Message struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Hub fans messages out to connected clients. All writes happen under the
// hub lock, so a connection never has two concurrent writers. A client
// whose write fails is closed and dropped.
type Hub struct {
	mu      sync.Mutex
	clients map[Conn]struct{}
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{clients: make(map[Conn]struct{}), log: log}
}

func (h *Hub) Add(c Conn) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Remove(c Conn) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Error().Err(err).Str("event", msg.Event).Msg("marshal message")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Debug().Err(err).Msg("dropping websocket client")
			_ = c.Close()
			delete(h.clients, c)
		}
	}
}
