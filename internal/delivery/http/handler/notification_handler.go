package handler

import (
	"net/http"

	"skillconnect/internal/middleware"
	"skillconnect/internal/notification"
	"skillconnect/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationHandler streams booking events over a websocket. Browsers cannot
// set headers on the upgrade request, so the token travels in the query.
type NotificationHandler struct {
	hub       *notification.Hub
	jwtSecret string
}

func NewNotificationHandler(hub *notification.Hub, jwtSecret string) *NotificationHandler {
	return &NotificationHandler{hub: hub, jwtSecret: jwtSecret}
}

func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/notifications/ws", h.Stream)
}

func (h *NotificationHandler) Stream(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Token query parameter required")
		return
	}

	claims, err := utils.ValidateToken(token, h.jwtSecret)
	if err != nil || claims.UserID == uuid.Nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	c.Set(middleware.UserIDKey, claims.UserID)

	// the upgrader has already answered the client on failure
	if err := h.hub.Serve(c.Writer, c.Request, claims.UserID); err != nil {
		middleware.RequestLogger(c).Warn("Websocket upgrade failed",
			zap.String("user_id", claims.UserID.String()),
			zap.Error(err),
		)
	}
}
