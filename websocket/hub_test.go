package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveOne(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg, ok := <-c.Receive():
		require.True(t, ok, "channel closed")
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for payload")
		return nil
	}
}

func TestNotifyUserDeliversToOwnClientsOnly(t *testing.T) {
	h := NewHub()
	alice := NewClient("alice")
	bob := NewClient("bob")
	h.Register(alice)
	h.Register(bob)

	h.NotifyUser("alice", []byte("hello"))

	assert.Equal(t, []byte("hello"), receiveOne(t, alice))
	select {
	case msg := <-bob.Receive():
		t.Fatalf("unexpected payload for bob: %s", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNotifyUserPreservesOrder(t *testing.T) {
	h := NewHub()
	c := NewClient("alice")
	h.Register(c)

	h.NotifyUser("alice", []byte("1"))
	h.NotifyUser("alice", []byte("2"))
	h.NotifyUser("alice", []byte("3"))

	assert.Equal(t, []byte("1"), receiveOne(t, c))
	assert.Equal(t, []byte("2"), receiveOne(t, c))
	assert.Equal(t, []byte("3"), receiveOne(t, c))
}

func TestNotifyUserFansOutToAllSessions(t *testing.T) {
	h := NewHub()
	tab1 := NewClient("alice")
	tab2 := NewClient("alice")
	h.Register(tab1)
	h.Register(tab2)

	h.NotifyUser("alice", []byte("ping"))

	assert.Equal(t, []byte("ping"), receiveOne(t, tab1))
	assert.Equal(t, []byte("ping"), receiveOne(t, tab2))
}

func TestUnregisterClosesQueue(t *testing.T) {
	h := NewHub()
	c := NewClient("alice")
	h.Register(c)
	h.Unregister(c)

	select {
	case _, ok := <-c.Receive():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("queue was not closed")
	}
}

func TestNotifyUnknownUserIsNoop(t *testing.T) {
	h := NewHub()
	// Must not panic or block.
	h.NotifyUser("nobody", []byte("into the void"))
}
