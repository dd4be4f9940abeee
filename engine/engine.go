package engine

import (
	"context"

	"github.com/use-agent/snapper/models"
)

// Engine is the interface that all capture engines must implement.
type Engine interface {
	// Name returns the engine identifier (e.g. "rod").
	Name() string

	// Capture renders req.URL and returns PNG bytes. Failures are
	// *models.ScreenshotError values.
	Capture(ctx context.Context, req *models.ScreenshotRequest) ([]byte, error)
}
