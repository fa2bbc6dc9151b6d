package handler

import (
	"context"
	"net/http"
	"time"

	"skillconnect/internal/notification"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether the backing store is reachable
type HealthChecker func(ctx context.Context) error

type HealthHandler struct {
	check   HealthChecker
	metrics *notification.MetricsTracker
}

// NewHealthHandler reports on check; metrics may be nil
func NewHealthHandler(check HealthChecker, metrics *notification.MetricsTracker) *HealthHandler {
	if check == nil {
		check = func(context.Context) error { return nil }
	}
	return &HealthHandler{check: check, metrics: metrics}
}

func (h *HealthHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/health", h.Health)
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.check(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"message": "Storage unavailable",
		})
		return
	}

	body := gin.H{
		"status":  "healthy",
		"message": "Service is running",
	}
	if h.metrics != nil {
		body["notifications"] = h.metrics.Snapshot()
	}
	c.JSON(http.StatusOK, body)
}
