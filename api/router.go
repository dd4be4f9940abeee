package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/snapper/api/handler"
	"github.com/use-agent/snapper/api/middleware"
	"github.com/use-agent/snapper/config"
	"github.com/use-agent/snapper/metrics"
	"github.com/use-agent/snapper/screenshot"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → RequestID → Logger
//
// There is no auth or rate limiting; every route is public.
func NewRouter(svc *screenshot.Service, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	r.GET("/", handler.Root())
	r.GET("/screenshot", handler.Screenshot(svc))
	r.GET("/health", handler.Health(svc, startTime))

	if cfg.Metrics.Enabled {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	return r
}
