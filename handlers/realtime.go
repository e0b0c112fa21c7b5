package handlers

import (
	"net/http"

	"nestview/services/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Browser clients connect from the separately-hosted frontend.
		return true
	},
}

// RealtimeHandler upgrades connections and attaches them to the broadcast hub.
type RealtimeHandler struct {
	Hub *realtime.Hub
}

func NewRealtimeHandler(hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{Hub: hub}
}

// ServeWS handles GET /ws. The connection is broadcast-only; anyone may
// listen, and clients filter events by payload fields.
func (h *RealtimeHandler) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error("failed to upgrade websocket", zap.Error(err))
		return
	}
	realtime.NewClient(h.Hub, conn)
}
