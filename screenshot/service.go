package screenshot

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/use-agent/snapper/config"
	"github.com/use-agent/snapper/engine"
	"github.com/use-agent/snapper/metrics"
	"github.com/use-agent/snapper/models"
	"golang.org/x/sync/semaphore"
)

// Service runs captures on an Engine and encodes the result for transport.
// It is safe for concurrent use and holds no per-request state.
type Service struct {
	engine      engine.Engine
	gate        *semaphore.Weighted // nil when admission is unbounded
	maxBrowsers int
	active      atomic.Int32
}

// NewService creates a Service. With cfg.MaxBrowsers <= 0 every request gets
// its browser immediately; otherwise at most MaxBrowsers run at once and the
// rest wait for a slot until their context ends.
func NewService(eng engine.Engine, cfg config.CaptureConfig) *Service {
	s := &Service{engine: eng}
	if cfg.MaxBrowsers > 0 {
		s.gate = semaphore.NewWeighted(int64(cfg.MaxBrowsers))
		s.maxBrowsers = cfg.MaxBrowsers
	}
	return s
}

// Take captures req.URL and returns the PNG, plus its base64 form when
// req.Format is FormatBase64. Errors are always *models.ScreenshotError.
func (s *Service) Take(ctx context.Context, req *models.ScreenshotRequest) (*models.ScreenshotResult, error) {
	if s.gate != nil {
		waitStart := time.Now()
		if err := s.gate.Acquire(ctx, 1); err != nil {
			return nil, models.EngineFailure(err)
		}
		defer s.gate.Release(1)
		metrics.GateWaitSeconds.Observe(time.Since(waitStart).Seconds())
	}

	s.active.Add(1)
	metrics.BrowsersActive.Inc()
	start := time.Now()
	img, err := s.engine.Capture(ctx, req)
	elapsed := time.Since(start)
	metrics.BrowsersActive.Dec()
	s.active.Add(-1)

	if err != nil {
		se := asScreenshotError(err)
		outcome := metrics.OutcomeFailure
		if se.Code == models.ErrCodeNavigationTimeout {
			outcome = metrics.OutcomeTimeout
		}
		metrics.CapturesTotal.WithLabelValues(string(req.Format), outcome).Inc()
		metrics.CaptureDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
		slog.Warn("capture failed",
			"engine", s.engine.Name(),
			"url", req.URL,
			"code", se.Code,
			"duration", elapsed,
			"error", se.Err,
		)
		return nil, se
	}

	metrics.CapturesTotal.WithLabelValues(string(req.Format), metrics.OutcomeSuccess).Inc()
	metrics.CaptureDuration.WithLabelValues(metrics.OutcomeSuccess).Observe(elapsed.Seconds())
	slog.Debug("capture complete",
		"engine", s.engine.Name(),
		"url", req.URL,
		"bytes", len(img),
		"duration", elapsed,
	)

	result := &models.ScreenshotResult{
		PNG:      img,
		Format:   req.Format,
		Duration: elapsed,
	}
	if req.Format == models.FormatBase64 {
		result.Base64 = base64.StdEncoding.EncodeToString(img)
	}
	return result, nil
}

// Stats returns a snapshot of in-flight captures.
func (s *Service) Stats() models.CaptureStats {
	return models.CaptureStats{
		ActiveBrowsers: int(s.active.Load()),
		MaxBrowsers:    s.maxBrowsers,
	}
}

func asScreenshotError(err error) *models.ScreenshotError {
	var se *models.ScreenshotError
	if errors.As(err, &se) {
		return se
	}
	return models.EngineFailure(err)
}
