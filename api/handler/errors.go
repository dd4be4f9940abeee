package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/snapper/api/middleware"
	"github.com/use-agent/snapper/models"
)

// respondError maps a ScreenshotError to the correct HTTP status code and
// writes a structured JSON error response.
func respondError(c *gin.Context, err error) {
	var se *models.ScreenshotError
	if !errors.As(err, &se) {
		se = models.EngineFailure(err)
	}

	status := mapErrorToStatus(se)
	if status >= http.StatusInternalServerError {
		slog.Error("screenshot request failed",
			"request_id", middleware.GetRequestID(c),
			"code", se.Code,
			"status", status,
			"error", err,
		)
	}
	c.JSON(status, se.ToResponse())
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.ScreenshotError) int {
	switch e.Code {
	case models.ErrCodeNavigationTimeout:
		return http.StatusGatewayTimeout // 504
	case models.ErrCodeInvalidInput:
		return http.StatusUnprocessableEntity // 422
	default:
		return http.StatusInternalServerError // 500
	}
}
