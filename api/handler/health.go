package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/snapper/models"
	"github.com/use-agent/snapper/screenshot"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// Health returns a handler for GET /health.
//
// Reports in-flight browsers and turns "busy" when a configured browser
// limit is fully used.
func Health(svc *screenshot.Service, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := svc.Stats()

		status := "healthy"
		if stats.MaxBrowsers > 0 && stats.ActiveBrowsers >= stats.MaxBrowsers {
			status = "busy"
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Stats:   stats,
			Version: Version,
		})
	}
}
