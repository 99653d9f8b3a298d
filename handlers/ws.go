package handlers

import (
	"fmt"
	"log"
	"time"

	"expense-api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

// WSHandler pushes expense change signals to connected clients so open
// dashboards refresh without polling.
type WSHandler struct {
	M *melody.Melody
}

func NewWSHandler() *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 1024 * 1024

	// Keep-alive matters behind cloud proxies that kill idle connections
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		userID, _ := s.Get("user_id")
		log.Printf("Client connected to expense feed: %v", userID)
	})

	m.HandleDisconnect(func(s *melody.Session) {
		userID, _ := s.Get("user_id")
		log.Printf("Client disconnected from expense feed: %v", userID)
	})

	m.HandleError(func(s *melody.Session, err error) {
		log.Printf("WebSocket error: %v", err)
	})

	return &WSHandler{M: m}
}

// HandleWS upgrades the request and registers the session under the
// authenticated user. The id travels as a session key so concurrent
// upgrades cannot tag a session with another user's identity.
func (h *WSHandler) HandleWS(c *gin.Context) {
	userID := middleware.GetUserID(c)

	err := h.M.HandleRequestWithKeys(c.Writer, c.Request, map[string]interface{}{
		"user_id": userID,
	})
	if err != nil {
		log.Printf("Failed to upgrade websocket: %v", err)
	}
}

// BroadcastUpdate signals an expense change to every session of that user.
func (h *WSHandler) BroadcastUpdate(userID string, updateType string, expenseID int64) {
	msg := []byte(fmt.Sprintf(`{"type": %q, "id": %d}`, updateType, expenseID))

	err := h.M.BroadcastFilter(msg, func(q *melody.Session) bool {
		id, exists := q.Get("user_id")
		return exists && id == userID
	})
	if err != nil {
		log.Printf("Error broadcasting to user %s: %v", userID, err)
	}
}
