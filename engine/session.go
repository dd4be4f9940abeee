package engine

import (
	"context"
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
)

// session is one ephemeral browser: its process, an incognito browsing
// context and a single page. It is never shared between requests.
type session struct {
	launcher  *launcher.Launcher
	browser   *rod.Browser
	incognito *rod.Browser
	page      *rod.Page
}

// newLauncher builds the launcher for a single capture. Each launcher gets
// its own temporary user-data dir, removed again by release.
func (e *RodEngine) newLauncher(ctx context.Context) *launcher.Launcher {
	l := launcher.New().
		Context(ctx).
		Headless(e.browserCfg.Headless).
		NoSandbox(e.browserCfg.NoSandbox).
		Leakless(e.browserCfg.Leakless)

	if e.browserCfg.BrowserBin != "" {
		l = l.Bin(e.browserCfg.BrowserBin)
	}

	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-renderer-backgrounding"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("hide-scrollbars"))
	l.Set(flags.Flag("no-first-run"))

	return l
}

// openSession launches the browser and opens a page in a fresh incognito
// context. The returned session is non-nil even on error so the caller can
// always defer release.
func (e *RodEngine) openSession(ctx context.Context) (*session, error) {
	s := &session{launcher: e.newLauncher(ctx)}

	controlURL, err := s.launcher.Launch()
	if err != nil {
		return s, err
	}
	slog.Debug("browser launched", "controlURL", controlURL, "pid", s.launcher.PID())

	// The browser handle carries no request context: release must work
	// after the request has been cancelled.
	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return s, err
	}
	s.browser = browser

	incognito, err := browser.Incognito()
	if err != nil {
		return s, err
	}
	s.incognito = incognito

	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		return s, err
	}
	s.page = page

	return s, nil
}

// release tears the session down in reverse order of acquisition and
// returns the browser pid (0 if it never started). Every step is
// best-effort; failures are logged, never returned.
func (s *session) release() int {
	if s.page != nil {
		if err := s.page.Close(); err != nil {
			slog.Debug("release: page close failed", "error", err)
		}
	}
	if s.incognito != nil {
		if err := s.incognito.Close(); err != nil {
			slog.Debug("release: dispose browser context failed", "error", err)
		}
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			slog.Debug("release: browser close failed", "error", err)
		}
	}

	// Kill on a launcher that never started would signal pid 0, and Cleanup
	// would wait forever for an exit that never comes.
	pid := s.launcher.PID()
	if pid > 0 {
		s.launcher.Kill()
		s.launcher.Cleanup()
		slog.Debug("browser released", "pid", pid)
	}
	return pid
}
