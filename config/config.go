package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Browser BrowserConfig
	Capture CaptureConfig
	Metrics MetricsConfig
	Log     LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "127.0.0.1"
	Port int    // default: 8000
	Mode string // "debug", "release", "test"; default: "release"

	// ShutdownTimeout bounds how long in-flight captures may drain on SIGTERM.
	ShutdownTimeout time.Duration // default: 5s
}

// BrowserConfig controls how each per-request Chromium is launched.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path. Empty lets rod
	// find or download one.
	BrowserBin string

	// Leakless runs Chromium under a guard process that kills it if
	// snapper itself dies.
	Leakless bool // default: true
}

// CaptureConfig controls the capture sequence.
type CaptureConfig struct {
	// NavigationTimeout is the limit for navigate + load event.
	NavigationTimeout time.Duration // default: 30s

	// MaxBrowsers caps simultaneous browser instances. 0 means unbounded.
	MaxBrowsers int // default: 0
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool // default: true
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            envOr("SNAPPER_HOST", "127.0.0.1"),
			Port:            envIntOr("SNAPPER_PORT", 8000),
			Mode:            envOr("SNAPPER_MODE", "release"),
			ShutdownTimeout: envDurationOr("SNAPPER_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Browser: BrowserConfig{
			Headless:   envBoolOr("SNAPPER_HEADLESS", true),
			NoSandbox:  envBoolOr("SNAPPER_NO_SANDBOX", false),
			BrowserBin: os.Getenv("SNAPPER_BROWSER_BIN"),
			Leakless:   envBoolOr("SNAPPER_LEAKLESS", true),
		},
		Capture: CaptureConfig{
			NavigationTimeout: envDurationOr("SNAPPER_NAV_TIMEOUT", 30*time.Second),
			MaxBrowsers:       envIntOr("SNAPPER_MAX_BROWSERS", 0),
		},
		Metrics: MetricsConfig{
			Enabled: envBoolOr("SNAPPER_METRICS", true),
		},
		Log: LogConfig{
			Level:  envOr("SNAPPER_LOG_LEVEL", "info"),
			Format: envOr("SNAPPER_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
