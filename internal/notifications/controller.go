package notifications

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type RealtimeController struct {
	hub      *RealtimeHub
	upgrader websocket.Upgrader
}

func (c *RealtimeController) RegisterRoutes(router gin.IRoutes) {
	router.GET("/ws", c.Connect)
}

// Connect
// @Summary Realtime event stream
// @Description Upgrade to a websocket receiving taskUpdated and bottleneckAlert events
// @Tags realtime
// @Security BearerAuth
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} map[string]string
// @Router /ws [get]
func (c *RealtimeController) Connect(ctx *gin.Context) {
	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	c.hub.Register(conn)
}
