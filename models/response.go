package models

import "time"

// ScreenshotResult is the output of a successful capture.
type ScreenshotResult struct {
	// PNG holds the raw image bytes. Always populated.
	PNG []byte

	// Base64 is the standard base64 encoding of PNG, set only for FormatBase64.
	Base64 string

	// Format echoes the requested transport encoding.
	Format Format

	// Duration is the wall-clock time spent in the engine.
	Duration time.Duration
}

// ScreenshotResponse is the JSON body for GET /screenshot?format=base64.
type ScreenshotResponse struct {
	Screenshot string `json:"screenshot"`
}

// WelcomeResponse is the body for GET /.
type WelcomeResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

// HealthResponse is the response for GET /health.
type HealthResponse struct {
	Status  string       `json:"status"` // "healthy" or "busy"
	Uptime  string       `json:"uptime"`
	Stats   CaptureStats `json:"stats"`
	Version string       `json:"version"`
}

// CaptureStats reports in-flight browser sessions.
type CaptureStats struct {
	// ActiveBrowsers is the number of browser instances currently alive.
	ActiveBrowsers int `json:"active_browsers"`

	// MaxBrowsers is the admission limit; 0 means unbounded.
	MaxBrowsers int `json:"max_browsers"`
}
