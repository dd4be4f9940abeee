package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/snapper/api/middleware"
	"github.com/use-agent/snapper/models"
	"github.com/use-agent/snapper/screenshot"
)

// Screenshot returns a handler for GET /screenshot.
//
//  1. Coerce query parameters, substituting defaults for bad values.
//  2. Service.Take → PNG bytes (and base64 when asked).
//  3. Respond with image/png, or {"screenshot": "<base64>"}.
func Screenshot(svc *screenshot.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, verr := parseScreenshotQuery(c)
		if verr != nil {
			respondError(c, verr)
			return
		}

		res, err := svc.Take(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}

		slog.Info("screenshot captured",
			"request_id", middleware.GetRequestID(c),
			"url", req.URL,
			"format", req.Format,
			"full_page", req.FullPage,
			"bytes", len(res.PNG),
			"duration_ms", res.Duration.Milliseconds(),
		)

		if req.Format == models.FormatBase64 {
			c.JSON(http.StatusOK, models.ScreenshotResponse{Screenshot: res.Base64})
			return
		}
		c.Data(http.StatusOK, "image/png", res.PNG)
	}
}

// Root returns a handler for GET /.
func Root() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.WelcomeResponse{
			Message: "Welcome to the Screenshot API! Capture a page with GET /screenshot?url=<target>.",
		})
	}
}
