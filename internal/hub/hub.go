package hub

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Event types understood by the chat clients.
const (
	EventNewUser        = "newUser"
	EventUpdateUserList = "updateUserList"
	EventChat           = "chat"
)

// clientBuffer is the outbound queue depth per connection. A client that
// falls this far behind starts losing events rather than blocking the hub.
const clientBuffer = 256

// Client represents a single client connection. It's essentially a channel
// that the websocket write pump listens to.
type Client chan []byte

// Hub tracks every live connection in the shared chat channel and owns
// delivery to them. Sends are fire-and-forget per connection: a slow or dead
// connection never blocks delivery to the others.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]Client
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]Client),
	}
}

// Add registers a new connection under connID and returns the channel its
// write pump should drain.
func (h *Hub) Add(connID string) Client {
	client := make(Client, clientBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[connID] = client

	return client
}

// Remove drops the connection and closes its channel to signal the write
// pump to stop. Removing an unknown id is a no-op.
func (h *Hub) Remove(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client, ok := h.clients[connID]; ok {
		delete(h.clients, connID)
		close(client)
	}
}

// Send delivers an event to a single connection. Unknown connection ids and
// full client buffers are both silently tolerated.
func (h *Hub) Send(connID string, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if client, ok := h.clients[connID]; ok {
		h.push(client, data)
	}
}

// Broadcast delivers an event to every connection, including the one that
// triggered it.
func (h *Hub) Broadcast(event Event) {
	h.broadcast(event, "")
}

// BroadcastOthers delivers an event to every connection except exceptID.
func (h *Hub) BroadcastOthers(exceptID string, event Event) {
	h.broadcast(event, exceptID)
}

func (h *Hub) broadcast(event Event, exceptID string) {
	data, err := json.Marshal(event)
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for connID, client := range h.clients {
		if connID == exceptID {
			continue
		}
		h.push(client, data)
	}
}

func (h *Hub) push(client Client, data []byte) {
	// Non-blocking send so one stalled client cannot hold up the rest.
	select {
	case client <- data:
	default:
	}
}
