package ws

import (
	"encoding/json"
	"sync"
)

// Client represents a single WebSocket connection with user context. UserID
// comes from the JWT verified at handshake, never from a client payload.
type Client struct {
	UserID    uint
	SessionID string
	Send      chan []byte

	hub    *Hub
	mu     sync.Mutex
	closed bool
}

// Close leaves the delivery group and closes the send channel exactly once.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.hub != nil {
		c.hub.leave(c)
	}
	close(c.Send)
}

// trySend enqueues without blocking. A closed client or a full buffer drops
// the message; the feed in storage remains the source of truth.
func (c *Client) trySend(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.Send <- data:
	default:
	}
}

// Hub fans events out to delivery groups keyed by user identity, so one push
// reaches every open session of that user with a single broadcast.
type Hub struct {
	mu     sync.RWMutex
	groups map[uint]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{groups: make(map[uint]map[*Client]struct{})}
}

// Join places the connection into its user's delivery group.
func (h *Hub) Join(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.hub = h
	if h.groups[c.UserID] == nil {
		h.groups[c.UserID] = make(map[*Client]struct{})
	}
	h.groups[c.UserID][c] = struct{}{}
}

func (h *Hub) leave(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set := h.groups[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.groups, c.UserID)
		}
	}
}

// PushToUser emits the payload to every session in the user's delivery group.
// An empty group is a silent no-op; a session with a full send buffer is
// skipped rather than blocking the pipeline.
func (h *Hub) PushToUser(userID uint, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.RLock()
	set := h.groups[userID]
	clients := make([]*Client, 0, len(set))
	for c := range set {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	for _, c := range clients {
		c.trySend(data)
	}
}

// GroupSize returns how many sessions sit in one user's delivery group.
func (h *Hub) GroupSize(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[userID])
}
