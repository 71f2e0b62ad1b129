// controllers/health.go
package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	Ping func(ctx context.Context) error
}

// Health handles GET /health
func (hc *HealthController) Health(c *gin.Context) {
	if hc.Ping != nil {
		if err := hc.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
