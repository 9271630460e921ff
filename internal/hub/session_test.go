package hub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionConnectAnnouncesToPeersOnly(t *testing.T) {
	h := NewHub()
	reg := NewRegistry()

	peer := h.Add("peer")

	s := NewSession(h, reg)
	own := s.Connect()

	events := drainEvents(t, peer)
	require.Len(t, events, 1)
	assert.Equal(t, EventNewUser, events[0].Type)

	assert.Empty(t, drainEvents(t, own), "the new connection should not see its own notice")
	assert.Empty(t, reg.Usernames(), "connecting must not touch the registry before identification")
}

func TestSessionIdentifyRegistersAndBroadcastsList(t *testing.T) {
	h := NewHub()
	reg := NewRegistry()

	peer := h.Add("peer")

	s := NewSession(h, reg)
	own := s.Connect()
	drainEvents(t, peer)

	// The socketID in the claim is client-supplied and untrusted; the
	// session must bind the username to its own connection id regardless.
	s.Identify(IdentityClaim{Name: "alice", SocketID: "whatever-the-client-sent"})

	connID, ok := reg.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, s.ID, connID)
	assert.Equal(t, "alice", s.Username)

	// Everyone, the identifying connection included, gets the updated list.
	for _, c := range []Client{peer, own} {
		events := drainEvents(t, c)
		require.Len(t, events, 1)
		assert.Equal(t, EventUpdateUserList, events[0].Type)
	}
}

func TestSessionIdentifyDuplicateClaimIgnored(t *testing.T) {
	h := NewHub()
	reg := NewRegistry()

	first := NewSession(h, reg)
	firstClient := first.Connect()
	first.Identify(IdentityClaim{Name: "alice", SocketID: first.ID})
	drainEvents(t, firstClient)

	second := NewSession(h, reg)
	secondClient := second.Connect()
	drainEvents(t, firstClient)
	drainEvents(t, secondClient)

	// A second connection claiming the same name is silently ignored: the
	// original binding stands and no membership update goes out.
	second.Identify(IdentityClaim{Name: "alice", SocketID: second.ID})

	connID, ok := reg.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, first.ID, connID)
	assert.Empty(t, second.Username)
	assert.Empty(t, drainEvents(t, firstClient))
	assert.Empty(t, drainEvents(t, secondClient))
}

func TestSessionCloseDeregistersIdentifiedUser(t *testing.T) {
	h := NewHub()
	reg := NewRegistry()

	peer := h.Add("peer")

	s := NewSession(h, reg)
	s.Connect()
	s.Identify(IdentityClaim{Name: "alice", SocketID: s.ID})
	drainEvents(t, peer)

	s.Close()

	_, ok := reg.Lookup("alice")
	assert.False(t, ok, "close must deregister the identified user")

	events := drainEvents(t, peer)
	require.Len(t, events, 1)
	assert.Equal(t, EventUpdateUserList, events[0].Type)
}

// Drives the full handshake the way real clients do: each side only ever
// sees what arrived on its own channel, so nobody knows a server-side
// session id. Directed chat must still reach both parties afterwards.
func TestDirectedChatThroughFullHandshake(t *testing.T) {
	h := NewHub()
	reg := NewRegistry()
	rt := NewRouter(h, reg)

	alice := NewSession(h, reg)
	aliceClient := alice.Connect()
	bob := NewSession(h, reg)
	bobClient := bob.Connect()
	drainEvents(t, aliceClient)
	drainEvents(t, bobClient)

	// Clients echo back whatever socketID they believe they have; neither
	// can know the server's key for them.
	alice.Identify(IdentityClaim{Name: "alice", SocketID: "alice-local-guess"})
	bob.Identify(IdentityClaim{Name: "bob", SocketID: "bob-local-guess"})
	drainEvents(t, aliceClient)
	drainEvents(t, bobClient)

	rt.Route(ChatMessage{To: "bob", Name: "alice", Content: "hi"})

	aliceGot := drainEvents(t, aliceClient)
	bobGot := drainEvents(t, bobClient)
	require.Len(t, aliceGot, 1, "sender echo")
	require.Len(t, bobGot, 1, "destination delivery")
	assert.Equal(t, "hi", chatPayload(t, bobGot[0])["content"])
}

func TestSessionAnonymousCloseLeavesRegistryUntouched(t *testing.T) {
	h := NewHub()
	reg := NewRegistry()
	reg.Register("bob", "elsewhere")

	s := NewSession(h, reg)
	s.Connect()
	s.Close()

	// A connection that never identified performs no registry mutation.
	names := reg.Usernames()
	require.Len(t, names, 1)
	assert.Equal(t, "bob", names[0])
}
