package ws

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterIsIdempotentUnion(t *testing.T) {
	r := NewRegistry()

	r.RegisterSession(1, "s1")
	r.RegisterSession(1, "s1")
	r.RegisterSession(1, "s2")

	assert.True(t, r.IsOnline(1))
	assert.Equal(t, 2, r.SessionCount(1))
	assert.Equal(t, int64(1), r.OnlineUsers())
}

func TestUnregisterUnknownSessionIsNoop(t *testing.T) {
	r := NewRegistry()
	r.UnregisterSession("ghost")
	assert.False(t, r.IsOnline(1))
}

func TestUnregisterRemovesFromOwner(t *testing.T) {
	r := NewRegistry()
	r.RegisterSession(1, "s1")
	r.RegisterSession(1, "s2")
	r.RegisterSession(2, "s3")

	r.UnregisterSession("s1")
	assert.True(t, r.IsOnline(1), "one session left")
	r.UnregisterSession("s2")
	assert.False(t, r.IsOnline(1))
	assert.True(t, r.IsOnline(2), "other users unaffected")
	assert.Equal(t, int64(1), r.OnlineUsers())
}

func TestConcurrentConnectDisconnect(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sid := fmt.Sprintf("session-%d", i)
			userID := uint(i % 5)
			r.RegisterSession(userID, sid)
			if i%2 == 0 {
				r.UnregisterSession(sid)
			}
		}(i)
	}
	wg.Wait()

	// Odd sessions stayed registered: 10 per user across 5 users.
	for user := uint(0); user < 5; user++ {
		assert.Equal(t, 10, r.SessionCount(user), "user %d", user)
	}

	for i := 1; i < 100; i += 2 {
		r.UnregisterSession(fmt.Sprintf("session-%d", i))
	}
	assert.Equal(t, int64(0), r.OnlineUsers())
}
