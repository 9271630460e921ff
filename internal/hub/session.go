package hub

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// IdentityClaim is the event a client sends to bind a username to its
// connection.
type IdentityClaim struct {
	Name     string `json:"name"`
	SocketID string `json:"socketID"`
}

// NewUserNotice announces a freshly opened connection to its peers before an
// identity is known. This is a handshake step, not a security boundary.
type NewUserNotice struct {
	SocketID string `json:"socketID"`
}

// Session carries the per-connection state of the chat lifecycle:
// Connected (anonymous) -> Identified -> Closed. The connection id and the
// optional username live here explicitly rather than in handler closures.
type Session struct {
	ID       string
	Username string

	hub      *Hub
	registry *Registry
}

// NewSession creates a session with a fresh connection id.
func NewSession(h *Hub, r *Registry) *Session {
	return &Session{
		ID:       uuid.NewString(),
		hub:      h,
		registry: r,
	}
}

// Connect joins the session to the hub and announces the new connection to
// all other connections. It returns the channel the transport's write pump
// should drain.
func (s *Session) Connect() Client {
	client := s.hub.Add(s.ID)
	s.hub.BroadcastOthers(s.ID, Event{Type: EventNewUser, Payload: NewUserNotice{SocketID: s.ID}})
	logrus.WithField("socketID", s.ID).Info("New chat connection")
	return client
}

// Identify handles an identity claim. If the username is not yet registered
// the session binds to it and the updated membership list is broadcast to
// everyone. A claim for a username that is already present is silently
// ignored, matching the registry's last-writer-wins rule for whoever does
// register it.
//
// The username is registered against this session's own connection id, not
// the socketID echoed in the claim: the session id is the only key the hub
// can deliver to, and trusting the claim would let a client register an
// unreachable (or someone else's) address.
func (s *Session) Identify(claim IdentityClaim) {
	if _, ok := s.registry.Lookup(claim.Name); ok {
		return
	}

	s.registry.Register(claim.Name, s.ID)
	s.Username = claim.Name

	online := s.registry.Usernames()
	s.hub.Broadcast(Event{Type: EventUpdateUserList, Payload: online})
	logrus.WithField("online", online).Info("Online users updated")
}

// Close tears the connection down. The registry is only touched if the
// session ever identified; an anonymous close performs no registry mutation.
// The membership list is re-broadcast either way.
func (s *Session) Close() {
	s.hub.Remove(s.ID)

	if s.Username != "" {
		s.registry.Deregister(s.Username)
		logrus.WithField("name", s.Username).Info("User disconnected")
	}

	s.hub.Broadcast(Event{Type: EventUpdateUserList, Payload: s.registry.Usernames()})
}
