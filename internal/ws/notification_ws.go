package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/snehasingla/Hospital-Management-System/config"
	"github.com/snehasingla/Hospital-Management-System/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type inboundEvent struct {
	Type string `json:"type"`
	// UserID is accepted for wire compatibility but ignored: the delivery
	// group is always bound to the identity verified at handshake.
	UserID string `json:"userId,omitempty"`
}

// UpgradeNotificationWS upgrades to WebSocket for live notification delivery;
// query: token. The connection stays in a pre-join state, receiving no
// targeted events, until the client emits a join signal. Server-side session
// state is not preserved across a dropped connection, so a reconnecting
// client must join again.
func UpgradeNotificationWS(cfg *config.JWTConfig, hub *Hub, registry *Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}
		claims, err := auth.ParseAccessToken(cfg, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		client := &Client{
			UserID:    claims.UserID,
			SessionID: uuid.NewString(),
			Send:      make(chan []byte, sendBuffer),
		}
		joined := false
		// Runs on every exit path, graceful close or network drop.
		defer func() {
			if joined {
				registry.UnregisterSession(client.SessionID)
			}
			client.Close()
		}()

		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})
		go writePump(client, conn)

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				break
			}
			var msg inboundEvent
			if json.Unmarshal(raw, &msg) != nil {
				continue
			}
			if msg.Type == "join" && !joined {
				registry.RegisterSession(client.UserID, client.SessionID)
				hub.Join(client)
				joined = true
				ack, _ := json.Marshal(gin.H{"type": "joined", "sessionId": client.SessionID})
				client.trySend(ack)
				log.Printf("[ws] user %d joined notification group (session %s)", client.UserID, client.SessionID)
			}
		}
	}
}

// writePump copies messages from client.Send to the connection and keeps the
// connection alive with pings.
func writePump(c *Client, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-c.Send:
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
