package models

// Format selects the transport encoding of the captured PNG.
type Format string

const (
	// FormatPNG returns the raw image bytes with an image/png body.
	FormatPNG Format = "png"

	// FormatBase64 returns the image as a base64 string inside JSON.
	FormatBase64 Format = "base64"
)

// Valid reports whether f is one of the accepted formats.
func (f Format) Valid() bool {
	return f == FormatPNG || f == FormatBase64
}

// Default viewport and timing values applied when a parameter is absent
// or cannot be parsed.
const (
	DefaultWidth  = 1920
	DefaultHeight = 1080
	DefaultDelay  = 0
)

// ScreenshotRequest carries everything needed for one capture.
// It lives for the duration of a single request.
type ScreenshotRequest struct {
	// URL is the navigation target. Required, otherwise opaque.
	URL string

	// Format selects transport encoding. Default: "png".
	Format Format

	// Width and Height are the viewport dimensions in CSS pixels.
	// Default: 1920x1080.
	Width  int
	Height int

	// FullPage captures the whole scrollable document instead of the viewport.
	FullPage bool

	// Mobile enables mobile-device emulation (mobile viewport + touch).
	Mobile bool

	// Delay is the number of seconds to wait after navigation, before capture.
	Delay int

	// CustomJS is evaluated in the page before capture. Its result is discarded.
	//
	// This runs arbitrary caller-supplied code inside the rendered page.
	CustomJS string

	// UserAgent overrides the browser identification string when non-empty.
	UserAgent string

	// Stealth injects anti-bot-detection evasions before navigation.
	Stealth bool
}

// Defaults applies default values to unset or out-of-range fields.
func (r *ScreenshotRequest) Defaults() {
	if r.Format == "" {
		r.Format = FormatPNG
	}
	if r.Width <= 0 {
		r.Width = DefaultWidth
	}
	if r.Height <= 0 {
		r.Height = DefaultHeight
	}
	if r.Delay < 0 {
		r.Delay = DefaultDelay
	}
}
