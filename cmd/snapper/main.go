package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/use-agent/snapper/api"
	"github.com/use-agent/snapper/config"
	"github.com/use-agent/snapper/engine"
	"github.com/use-agent/snapper/screenshot"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("snapper starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"navTimeout", cfg.Capture.NavigationTimeout,
		"maxBrowsers", cfg.Capture.MaxBrowsers,
	)
	if cfg.Capture.MaxBrowsers <= 0 {
		slog.Warn("browser admission is unbounded: every in-flight request launches its own Chromium")
	}

	// ── 3. Initialise engine + capture service ──────────────────────
	// No browser is launched here; each request starts and stops its own.
	rodEngine := engine.NewRodEngine(cfg.Browser, cfg.Capture)
	svc := screenshot.NewService(rodEngine, cfg.Capture)

	// ── 4. Setup router ─────────────────────────────────────────────
	startTime := time.Now()
	router := api.NewRouter(svc, cfg, startTime)

	// ── 5. Start HTTP server ────────────────────────────────────────
	// Every request context derives from baseCtx so a forced shutdown can
	// cancel in-flight captures.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 6. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err,
			"activeBrowsers", svc.Stats().ActiveBrowsers)
		// Cancelled captures tear their browsers down on the way out.
		cancelBase()
		waitForIdle(svc, 10*time.Second)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("snapper stopped")
}

// waitForIdle polls until no browser is alive or limit passes.
func waitForIdle(svc *screenshot.Service, limit time.Duration) {
	deadline := time.Now().Add(limit)
	for svc.Stats().ActiveBrowsers > 0 && time.Now().Before(deadline) {
		time.Sleep(100 * time.Millisecond)
	}
	if n := svc.Stats().ActiveBrowsers; n > 0 {
		slog.Warn("exiting with browsers still alive", "activeBrowsers", n)
	}
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
