// Package hub fans catalog change events out to WebSocket subscribers so
// open tables refresh without polling.
package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wh33les/HusbandsGames/internal/domain"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Subscribers never send
	// anything meaningful, so this stays small.
	maxMessageSize = 512
)

// ChangeEvent is the wire format pushed to subscribers.
type ChangeEvent struct {
	Event string       `json:"event"`
	Game  *domain.Game `json:"game,omitempty"`
}

// Hub maintains the set of connected subscribers and broadcasts catalog
// change events to all of them.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	clients   map[*Client]bool
	clientsMu sync.RWMutex

	log *logrus.Entry
}

// NewHub creates a Hub; call Run in its own goroutine.
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		clients:    make(map[*Client]bool),
		log:        logrus.WithField("component", "hub"),
	}
}

// Run processes register/unregister/broadcast events until the process
// exits.
func (h *Hub) Run() {
	h.log.Info("Hub is running...")
	for {
		select {
		case client := <-h.register:
			h.clientsMu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.clientsMu.Unlock()
			h.log.WithField("subscribers", count).Debug("Subscriber registered")

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.clientsMu.Unlock()
			h.log.WithField("subscribers", count).Debug("Subscriber unregistered")

		case message := <-h.broadcast:
			h.clientsMu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer; drop the message rather than block
					// the broadcast path.
					h.log.Warn("Dropping change event for slow subscriber")
				}
			}
			h.clientsMu.RUnlock()
		}
	}
}

// NotifyChange implements service.ChangeNotifier.
func (h *Hub) NotifyChange(event string, game *domain.Game) {
	payload, err := json.Marshal(ChangeEvent{Event: event, Game: game})
	if err != nil {
		h.log.WithError(err).Error("Failed to encode change event")
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		h.log.Warn("Broadcast channel full, dropping change event")
	}
}
