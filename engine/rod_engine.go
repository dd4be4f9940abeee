package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/use-agent/snapper/config"
	"github.com/use-agent/snapper/models"
)

// RodEngine captures screenshots with a fresh headless Chromium per call.
// Nothing is pooled: concurrent calls never share a browser, context or page.
type RodEngine struct {
	browserCfg config.BrowserConfig
	navTimeout time.Duration

	// onRelease, when set, sees the pid of every browser after teardown.
	onRelease func(pid int)
}

// NewRodEngine creates a RodEngine. No browser is started until Capture.
func NewRodEngine(browserCfg config.BrowserConfig, captureCfg config.CaptureConfig) *RodEngine {
	navTimeout := captureCfg.NavigationTimeout
	if navTimeout <= 0 {
		navTimeout = 30 * time.Second
	}
	return &RodEngine{
		browserCfg: browserCfg,
		navTimeout: navTimeout,
	}
}

func (e *RodEngine) Name() string { return "rod" }

// Capture is the per-request orchestrator.
//
// Lifecycle (numbered steps match the inline comments):
//
//  1. Launch        – new Chromium process with its own profile dir
//  2. Context       – incognito browsing context + page, viewport, mobile, UA
//  3. DEFER release – page, context, browser, process, profile dir
//  4. Navigate      – bounded by navTimeout, waits for the load event
//  5. Delay         – optional, cancellation-aware
//  6. Script        – optional custom JS, result discarded
//  7. Capture       – PNG of the viewport or the full page
//
// Step 3 uses handles without the request context, so teardown also runs
// when the client has gone away.
func (e *RodEngine) Capture(ctx context.Context, req *models.ScreenshotRequest) ([]byte, error) {
	// ── 1. Launch ─────────────────────────────────────────────────────
	s, err := e.openSession(ctx)

	// ── 3. CRITICAL DEFER: unconditional teardown ─────────────────────
	defer func() {
		pid := s.release()
		if e.onRelease != nil {
			e.onRelease(pid)
		}
	}()

	if err != nil {
		return nil, categorizeError(err, req.URL, false)
	}

	// ── 2. Emulation on the fresh page ────────────────────────────────
	p := s.page.Context(ctx)
	if err := applyEmulation(p, req); err != nil {
		return nil, categorizeError(err, req.URL, false)
	}

	if req.Stealth {
		if _, err := p.EvalOnNewDocument(stealth.JS); err != nil {
			slog.Warn("stealth injection failed, proceeding without stealth",
				"error", err,
			)
		}
	}

	// ── 4. Navigate ───────────────────────────────────────────────────
	if err := e.navigate(ctx, s.page, req.URL); err != nil {
		return nil, categorizeError(err, req.URL, true)
	}

	// ── 5. Delay ──────────────────────────────────────────────────────
	if req.Delay > 0 {
		timer := time.NewTimer(time.Duration(req.Delay) * time.Second)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, categorizeError(ctx.Err(), req.URL, false)
		}
	}

	// ── 6. Custom script ──────────────────────────────────────────────
	if req.CustomJS != "" {
		if err := runScript(p, req.CustomJS); err != nil {
			return nil, categorizeError(err, req.URL, false)
		}
	}

	// ── 7. Capture ────────────────────────────────────────────────────
	img, err := p.Screenshot(req.FullPage, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, categorizeError(err, req.URL, false)
	}
	return img, nil
}

// applyEmulation sets the viewport, mobile flags and user agent. An empty
// user agent leaves the browser's own string untouched.
func applyEmulation(p *rod.Page, req *models.ScreenshotRequest) error {
	if err := p.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             req.Width,
		Height:            req.Height,
		DeviceScaleFactor: 1,
		Mobile:            req.Mobile,
	}); err != nil {
		return err
	}

	if req.Mobile {
		if err := (proto.EmulationSetTouchEmulationEnabled{Enabled: true}).Call(p); err != nil {
			return err
		}
	}

	if req.UserAgent != "" {
		if err := p.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent: req.UserAgent,
		}); err != nil {
			return err
		}
	}
	return nil
}

// navigate loads url and waits for the load event, all within navTimeout.
func (e *RodEngine) navigate(ctx context.Context, page *rod.Page, url string) error {
	navCtx, cancel := context.WithTimeout(ctx, e.navTimeout)
	defer cancel()

	p := page.Context(navCtx)
	if err := p.Navigate(url); err != nil {
		return err
	}
	return p.WaitLoad()
}
