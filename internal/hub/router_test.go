package hub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatPayload(t *testing.T, ev Event) map[string]interface{} {
	t.Helper()
	payload, ok := ev.Payload.(map[string]interface{})
	require.True(t, ok, "chat payload should decode as an object")
	return payload
}

func TestRouterGlobalBroadcastReachesAllIncludingSender(t *testing.T) {
	h := NewHub()
	reg := NewRegistry()
	rt := NewRouter(h, reg)

	conns := map[string]Client{
		"conn1": h.Add("conn1"),
		"conn2": h.Add("conn2"),
		"conn3": h.Add("conn3"),
	}
	reg.Register("alice", "conn1")

	rt.Route(ChatMessage{To: GlobalChannel, Name: "alice", Content: "hello everyone"})

	for id, c := range conns {
		events := drainEvents(t, c)
		require.Len(t, events, 1, "connection %s", id)
		assert.Equal(t, EventChat, events[0].Type)
		assert.Equal(t, "hello everyone", chatPayload(t, events[0])["content"])
	}
}

func TestRouterDirectedDeliversToBothParties(t *testing.T) {
	h := NewHub()
	reg := NewRegistry()
	rt := NewRouter(h, reg)

	alice := h.Add("conn1")
	bob := h.Add("conn2")
	carol := h.Add("conn3")
	reg.Register("alice", "conn1")
	reg.Register("bob", "conn2")
	reg.Register("carol", "conn3")

	rt.Route(ChatMessage{To: "bob", Name: "alice", Content: "hi"})

	// The sender receives an echo, the destination receives the message,
	// and nobody else sees anything.
	require.Len(t, drainEvents(t, alice), 1)
	require.Len(t, drainEvents(t, bob), 1)
	assert.Empty(t, drainEvents(t, carol))
}

func TestRouterDirectedDroppedWhenDestinationOffline(t *testing.T) {
	h := NewHub()
	reg := NewRegistry()
	rt := NewRouter(h, reg)

	alice := h.Add("conn1")
	reg.Register("alice", "conn1")

	rt.Route(ChatMessage{To: "bob", Name: "alice", Content: "anyone there?"})

	// Zero deliveries: not even an echo to the sender, and no error event.
	// The sender is never notified of the miss.
	assert.Empty(t, drainEvents(t, alice))
}

func TestRouterDirectedDroppedWhenSenderUnregistered(t *testing.T) {
	h := NewHub()
	reg := NewRegistry()
	rt := NewRouter(h, reg)

	bob := h.Add("conn2")
	reg.Register("bob", "conn2")

	rt.Route(ChatMessage{To: "bob", Name: "alice", Content: "hi"})

	assert.Empty(t, drainEvents(t, bob))
}

// The concrete two-phase scenario: directed delivery works while both sides
// are registered, then produces nothing once the destination deregisters.
func TestRouterDeliveryThenDeregistration(t *testing.T) {
	h := NewHub()
	reg := NewRegistry()
	rt := NewRouter(h, reg)

	alice := h.Add("conn1")
	bob := h.Add("conn2")
	third := h.Add("conn3")
	reg.Register("alice", "conn1")
	reg.Register("bob", "conn2")

	msg := ChatMessage{To: "bob", Name: "alice", Content: "hi"}

	rt.Route(msg)
	require.Len(t, drainEvents(t, alice), 1)
	require.Len(t, drainEvents(t, bob), 1)
	assert.Empty(t, drainEvents(t, third))

	reg.Deregister("bob")

	rt.Route(msg)
	assert.Empty(t, drainEvents(t, alice))
	assert.Empty(t, drainEvents(t, bob))
	assert.Empty(t, drainEvents(t, third))
}
