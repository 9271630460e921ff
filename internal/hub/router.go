package hub

import "github.com/sirupsen/logrus"

// GlobalChannel is the reserved destination token for messages addressed to
// every connected client.
const GlobalChannel = "Global Chat"

// ChatMessage is a transient chat payload. It is never persisted.
type ChatMessage struct {
	To      string `json:"to"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Router decides fan-out for chat messages: global broadcast or directed
// two-party delivery resolved through the presence registry.
type Router struct {
	hub      *Hub
	registry *Registry
}

// NewRouter creates a Router over the given hub and registry.
func NewRouter(h *Hub, r *Registry) *Router {
	return &Router{hub: h, registry: r}
}

// Route delivers msg. Global messages go to every connection, sender
// included. Directed messages are delivered to both the sender's and the
// destination's connections, but only when BOTH usernames currently resolve
// in the registry; otherwise the message is dropped with a diagnostic log.
// The sender gets no delivery-failure notification. Delivery is best-effort
// and synchronous with this call: no queueing, no retry.
func (rt *Router) Route(msg ChatMessage) {
	if msg.To == GlobalChannel {
		rt.hub.Broadcast(Event{Type: EventChat, Payload: msg})
		return
	}

	senderConn, senderOK := rt.registry.Lookup(msg.Name)
	destConn, destOK := rt.registry.Lookup(msg.To)
	if !senderOK || !destOK {
		logrus.WithFields(logrus.Fields{
			"from": msg.Name,
			"to":   msg.To,
		}).Warn("Dropping chat message: sender or destination not online")
		return
	}

	event := Event{Type: EventChat, Payload: msg}
	rt.hub.Send(senderConn, event)
	rt.hub.Send(destConn, event)
}
