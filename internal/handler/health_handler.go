package handler

import (
	"time"

	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

// Version is reported by the health endpoint.
const Version = "1.0.0"

// HealthHandler provides health endpoint.
type HealthHandler struct {
	cacheBackend string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(cacheBackend string) *HealthHandler {
	return &HealthHandler{cacheBackend: cacheBackend}
}

// GetHealth responds with service status. It never calls the marketplace.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "healthy",
		"version": Version,
		"uptime":  int(time.Since(startTime).Seconds()),
		"cache":   h.cacheBackend,
	})
}
