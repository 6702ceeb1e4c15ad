package handlers

import (
	"encoding/json"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/imudaynigam/finance-tracker-techbridge/middleware"
)

// WSHandler pushes dashboard refresh events over websockets. Clients connect
// to /ws/dashboard after authenticating; a session is keyed to the caller so
// only the affected user's dashboards refresh on a write.
type WSHandler struct {
	M *melody.Melody
}

type wsEvent struct {
	Event  string `json:"event"`
	UserID string `json:"user_id"`
}

func NewWSHandler() *WSHandler {
	m := melody.New()

	m.HandleConnect(func(s *melody.Session) {
		userID, _ := s.Get("user_id")
		log.Printf("🔌 Dashboard socket connected for user %v", userID)
	})

	m.HandleDisconnect(func(s *melody.Session) {
		userID, _ := s.Get("user_id")
		log.Printf("🔌 Dashboard socket disconnected for user %v", userID)
	})

	m.HandleError(func(s *melody.Session, err error) {
		log.Printf("❌ Dashboard socket error: %v", err)
	})

	return &WSHandler{M: m}
}

// HandleWS upgrades an authenticated request and tags the session with the
// caller's identity.
func (h *WSHandler) HandleWS(c *gin.Context) {
	keys := map[string]interface{}{
		"user_id": c.GetString(middleware.ContextUserID),
	}
	if err := h.M.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
		log.Printf("❌ Websocket upgrade failed: %v", err)
	}
}

// NotifyUser broadcasts a refresh event to the user's open dashboard
// sessions. Delivery is best-effort; a failed broadcast never affects the
// write that triggered it.
func (h *WSHandler) NotifyUser(userID, event string) {
	if h == nil || h.M == nil {
		return
	}

	msg, err := json.Marshal(wsEvent{Event: event, UserID: userID})
	if err != nil {
		return
	}

	err = h.M.BroadcastFilter(msg, func(s *melody.Session) bool {
		id, ok := s.Get("user_id")
		return ok && id == userID
	})
	if err != nil {
		log.Printf("❌ Websocket broadcast failed: %v", err)
	}
}
