package handler

import (
	"encoding/json"
	"net/http"

	"socialnet/backend/internal/hub"
	"socialnet/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// inboundEvent is the envelope clients use for events they send to the
// server. Payload stays raw until the type is known.
type inboundEvent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ChatHandler upgrades the connection to a websocket and runs the chat
// session over it: the read loop feeds identity claims and chat messages
// into the lifecycle manager and router, the write pump drains the hub
// channel back to the client.
type ChatHandler struct {
	hub      *hub.Hub
	registry *hub.Registry
	router   *hub.Router
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(h *hub.Hub, reg *hub.Registry, rt *hub.Router) *ChatHandler {
	return &ChatHandler{hub: h, registry: reg, router: rt}
}

// Serve is the gin handler for the chat websocket endpoint.
func (h *ChatHandler) Serve(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
		return
	}
	if _, err := jwt.ParseToken(token); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("Failed to upgrade connection")
		return
	}

	session := hub.NewSession(h.hub, h.registry)
	client := session.Connect()

	go writePump(conn, client)

	h.readPump(conn, session)

	session.Close()
	_ = conn.Close()
}

func (h *ChatHandler) readPump(conn *websocket.Conn, session *hub.Session) {
	for {
		var event inboundEvent
		if err := conn.ReadJSON(&event); err != nil {
			return
		}

		switch event.Type {
		case hub.EventNewUser:
			var claim hub.IdentityClaim
			if err := json.Unmarshal(event.Payload, &claim); err != nil {
				logrus.WithError(err).Warn("Malformed identity claim")
				continue
			}
			session.Identify(claim)

		case hub.EventChat:
			var msg hub.ChatMessage
			if err := json.Unmarshal(event.Payload, &msg); err != nil {
				logrus.WithError(err).Warn("Malformed chat message")
				continue
			}
			h.router.Route(msg)

		default:
			logrus.WithField("type", event.Type).Debug("Ignoring unknown event type")
		}
	}
}

func writePump(conn *websocket.Conn, client hub.Client) {
	for data := range client {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	// Channel closed: the session was torn down.
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
