package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(userID uint, sessionID string) *Client {
	return &Client{UserID: userID, SessionID: sessionID, Send: make(chan []byte, 8)}
}

func TestPushReachesEverySessionOnce(t *testing.T) {
	h := NewHub()
	a := newTestClient(1, "a")
	b := newTestClient(1, "b")
	h.Join(a)
	h.Join(b)

	h.PushToUser(1, map[string]string{"type": "notification"})

	for _, c := range []*Client{a, b} {
		require.Len(t, c.Send, 1, "session %s should hold exactly one message", c.SessionID)
		var got map[string]string
		require.NoError(t, json.Unmarshal(<-c.Send, &got))
		assert.Equal(t, "notification", got["type"])
	}
}

func TestPushToEmptyGroupIsSilentNoop(t *testing.T) {
	h := NewHub()
	assert.NotPanics(t, func() {
		h.PushToUser(42, map[string]string{"type": "notification"})
	})
}

func TestPushSkipsOtherUsers(t *testing.T) {
	h := NewHub()
	mine := newTestClient(1, "mine")
	other := newTestClient(2, "other")
	h.Join(mine)
	h.Join(other)

	h.PushToUser(1, map[string]string{"type": "notification"})

	assert.Len(t, mine.Send, 1)
	assert.Len(t, other.Send, 0)
}

func TestLeaveShrinksGroup(t *testing.T) {
	h := NewHub()
	a := newTestClient(1, "a")
	b := newTestClient(1, "b")
	h.Join(a)
	h.Join(b)
	require.Equal(t, 2, h.GroupSize(1))

	a.Close()
	assert.Equal(t, 1, h.GroupSize(1))

	h.PushToUser(1, map[string]string{"type": "notification"})
	assert.Len(t, b.Send, 1)
}

func TestPushAfterCloseDoesNotPanic(t *testing.T) {
	h := NewHub()
	c := newTestClient(1, "a")
	h.Join(c)
	c.Close()

	assert.NotPanics(t, func() {
		h.PushToUser(1, map[string]string{"type": "notification"})
	})
}

func TestFullBufferDropsInsteadOfBlocking(t *testing.T) {
	h := NewHub()
	c := &Client{UserID: 1, SessionID: "slow", Send: make(chan []byte, 1)}
	h.Join(c)

	h.PushToUser(1, map[string]string{"seq": "1"})
	done := make(chan struct{})
	go func() {
		h.PushToUser(1, map[string]string{"seq": "2"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("push blocked on a full send buffer")
	}
	assert.Len(t, c.Send, 1)
}
