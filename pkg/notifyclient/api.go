package notifyclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNotFound is returned when a mark-read targets a nonexistent id.
var ErrNotFound = errors.New("notification not found")

// Notification mirrors the server's persisted record shape.
type Notification struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	Type          string    `json:"type"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	AppointmentID *uint     `json:"appointment_id,omitempty"`
	Read          bool      `json:"read"`
	CreatedAt     time.Time `json:"created_at"`
}

// API is a thin typed client for the notification endpoints.
type API struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewAPI(baseURL, token string) *API {
	return &API{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *API) do(ctx context.Context, method, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, bytes.NewReader(nil))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+a.token)
	resp, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// ListRecent fetches the most recent notifications, newest first.
func (a *API) ListRecent(ctx context.Context) ([]Notification, error) {
	var body struct {
		Notifications []Notification `json:"notifications"`
	}
	if err := a.do(ctx, http.MethodGet, "/api/notifications", &body); err != nil {
		return nil, err
	}
	return body.Notifications, nil
}

// UnreadCount fetches the server-derived unread counter.
func (a *API) UnreadCount(ctx context.Context) (int64, error) {
	var body struct {
		UnreadCount int64 `json:"unreadCount"`
	}
	if err := a.do(ctx, http.MethodGet, "/api/notifications/unread-count", &body); err != nil {
		return 0, err
	}
	return body.UnreadCount, nil
}

func (a *API) MarkRead(ctx context.Context, id uint) error {
	return a.do(ctx, http.MethodPatch, fmt.Sprintf("/api/notifications/%d/read", id), nil)
}

func (a *API) MarkAllRead(ctx context.Context) error {
	return a.do(ctx, http.MethodPatch, "/api/notifications/read-all", nil)
}
