package notifyclient

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	defaultToastTTL    = 5 * time.Second
	reconnectBaseDelay = time.Second
	reconnectMaxDelay  = 5 * time.Second
)

// Reconciler keeps a client-local view of notifications consistent with
// server state, driven by both polling and push. On every pushed event it
// re-fetches the recent list and the unread count rather than merging
// incrementally, which tolerates missed or out-of-order events; the unread
// counter is always server-derived, never adjusted locally.
type Reconciler struct {
	api      *API
	wsURL    string // full URL including token query param
	toastTTL time.Duration

	mu            sync.Mutex
	notifications []Notification
	unread        int64
	toast         *Notification
	toastTimer    *time.Timer
	conn          *websocket.Conn

	// OnUpdate, when set before Start, fires after every state refresh.
	OnUpdate func()
}

func NewReconciler(api *API, wsURL string) *Reconciler {
	return &Reconciler{api: api, wsURL: wsURL, toastTTL: defaultToastTTL}
}

// Start performs the initial fetch and runs the live subscription loop until
// ctx is cancelled. Reconnects use bounded backoff and re-issue the join
// signal every time, since a reconnect is a brand-new server-side session.
func (r *Reconciler) Start(ctx context.Context) {
	r.refresh(ctx)
	delay := reconnectBaseDelay
	for {
		if ctx.Err() != nil {
			return
		}
		if err := r.subscribe(ctx); err != nil {
			log.Printf("[notifyclient] live channel closed: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		delay *= 2
		if delay > reconnectMaxDelay {
			delay = reconnectMaxDelay
		}
	}
}

// subscribe dials the live channel, joins, and processes pushes until the
// connection drops or ctx is cancelled.
func (r *Reconciler) subscribe(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, r.wsURL, nil)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.conn = conn
	r.mu.Unlock()
	defer conn.Close()

	if err := conn.WriteJSON(map[string]string{"type": "join"}); err != nil {
		return err
	}

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var event struct {
			Type         string        `json:"type"`
			Notification *Notification `json:"notification"`
		}
		if json.Unmarshal(raw, &event) != nil {
			continue
		}
		if event.Type == "notification" && event.Notification != nil {
			r.handlePush(ctx, event.Notification)
		}
	}
}

// handlePush records the event as the transient toast and re-fetches server
// state. The toast self-expires after the TTL unless a newer event supersedes
// it first.
func (r *Reconciler) handlePush(ctx context.Context, n *Notification) {
	r.mu.Lock()
	r.toast = n
	if r.toastTimer != nil {
		r.toastTimer.Stop()
	}
	r.toastTimer = time.AfterFunc(r.toastTTL, func() {
		r.mu.Lock()
		if r.toast != nil && r.toast.ID == n.ID {
			r.toast = nil
		}
		r.mu.Unlock()
	})
	r.mu.Unlock()
	r.refresh(ctx)
}

// refresh re-fetches the recent list and unread count. Failures keep the
// previous local state so a flaky poll never zeroes the view.
func (r *Reconciler) refresh(ctx context.Context) {
	list, err := r.api.ListRecent(ctx)
	if err != nil {
		log.Printf("[notifyclient] list fetch failed: %v", err)
	}
	count, countErr := r.api.UnreadCount(ctx)
	if countErr != nil {
		log.Printf("[notifyclient] unread-count fetch failed: %v", countErr)
	}
	r.mu.Lock()
	if err == nil {
		r.notifications = list
	}
	if countErr == nil {
		r.unread = count
	}
	cb := r.OnUpdate
	r.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// MarkAsRead asks the server to mark one notification read, then re-fetches
// to confirm final state. Marking an already-read id is a success and cannot
// double-decrement the counter, which is always re-derived server-side.
func (r *Reconciler) MarkAsRead(ctx context.Context, id uint) error {
	if err := r.api.MarkRead(ctx, id); err != nil {
		return err
	}
	r.refresh(ctx)
	return nil
}

func (r *Reconciler) MarkAllAsRead(ctx context.Context) error {
	if err := r.api.MarkAllRead(ctx); err != nil {
		return err
	}
	r.refresh(ctx)
	return nil
}

// Notifications returns a copy of the local recent-notification view.
func (r *Reconciler) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

func (r *Reconciler) UnreadCount() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.unread
}

// Toast returns the most recent live event, or nil once it has expired.
func (r *Reconciler) Toast() *Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.toast
}

// SetToastTTL overrides the toast display window; must be called before Start.
func (r *Reconciler) SetToastTTL(d time.Duration) {
	r.toastTTL = d
}
