package engine

import (
	"context"
	"errors"

	"github.com/use-agent/snapper/models"
)

// categorizeError wraps raw engine errors into typed ScreenshotErrors so the
// API layer can map them to HTTP status codes. Only a deadline hit while
// navigating becomes a timeout; everything else is a generic engine failure
// carrying the engine's own message.
func categorizeError(err error, url string, navigating bool) *models.ScreenshotError {
	var se *models.ScreenshotError
	if errors.As(err, &se) {
		return se
	}
	if navigating && errors.Is(err, context.DeadlineExceeded) {
		return models.NavigationTimeout(url, err)
	}
	return models.EngineFailure(err)
}
