package realtime

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event types pushed to connected clients
const (
	EventProfileUpdated      = "profile_updated"
	EventNotificationCreated = "notification_created"
)

// Event is a change pushed to a single user's open connections, so the
// mobile client can refresh without polling.
type Event struct {
	Type    string      `json:"type"`
	UserID  int         `json:"-"`
	Payload interface{} `json:"payload"`
}

// Hub fans events out to per-user websocket connections
type Hub struct {
	clients    map[int]map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan Event
	upgrader   websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[int]map[*websocket.Conn]bool),
		broadcast: make(chan Event, 64),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Run dispatches events to subscribers. Call once from main in a goroutine.
func (h *Hub) Run() {
	for event := range h.broadcast {
		h.clientsMux.Lock()
		conns := h.clients[event.UserID]
		for conn := range conns {
			conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteJSON(event); err != nil {
				conn.Close()
				delete(conns, conn)
			}
		}
		h.clientsMux.Unlock()
	}
}

// Publish queues an event for delivery. Drops the event when the buffer
// is full rather than blocking the request path.
func (h *Hub) Publish(event Event) {
	select {
	case h.broadcast <- event:
	default:
		log.Printf("[Realtime] event buffer full, dropping %s for user %d", event.Type, event.UserID)
	}
}

// ServeWS upgrades the request and subscribes the connection to the
// authenticated user's events.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID int) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Realtime] websocket upgrade failed: %v", err)
		return
	}

	h.clientsMux.Lock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*websocket.Conn]bool)
	}
	h.clients[userID][conn] = true
	h.clientsMux.Unlock()

	// Reader loop: discard inbound messages, detect close
	go func() {
		defer func() {
			h.clientsMux.Lock()
			delete(h.clients[userID], conn)
			h.clientsMux.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
