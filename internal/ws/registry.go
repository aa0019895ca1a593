package ws

import "sync"

// Registry tracks which users currently have an open live channel. It owns
// the userID -> session-id mapping exclusively; the gateway registers a
// session after the client's join signal and unregisters it on disconnect.
// All mutations are atomic set operations, so interleaved connect/disconnect
// events from different sessions cannot corrupt each other's membership.
type Registry struct {
	mu        sync.RWMutex
	byUser    map[uint]map[string]struct{}
	bySession map[string]uint
}

func NewRegistry() *Registry {
	return &Registry{
		byUser:    make(map[uint]map[string]struct{}),
		bySession: make(map[string]uint),
	}
}

// RegisterSession adds the session to the user's set. Registering the same
// session twice is an idempotent union.
func (r *Registry) RegisterSession(userID uint, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byUser[userID] == nil {
		r.byUser[userID] = make(map[string]struct{})
	}
	r.byUser[userID][sessionID] = struct{}{}
	r.bySession[sessionID] = userID
}

// UnregisterSession removes the session from whichever user owns it. Unknown
// sessions are a no-op.
func (r *Registry) UnregisterSession(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	userID, ok := r.bySession[sessionID]
	if !ok {
		return
	}
	delete(r.bySession, sessionID)
	if set := r.byUser[userID]; set != nil {
		delete(set, sessionID)
		if len(set) == 0 {
			delete(r.byUser, userID)
		}
	}
}

// IsOnline reports whether the user has at least one live session.
func (r *Registry) IsOnline(userID uint) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser[userID]) > 0
}

// SessionCount returns the number of live sessions for one user.
func (r *Registry) SessionCount(userID uint) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser[userID])
}

// OnlineUsers returns how many distinct users are connected.
func (r *Registry) OnlineUsers() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byUser))
}
