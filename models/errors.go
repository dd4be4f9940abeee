package models

import "fmt"

// Error codes used in API responses and internal error handling.
const (
	ErrCodeNavigationTimeout = "NAVIGATION_TIMEOUT"
	ErrCodeEngineFailure     = "ENGINE_FAILURE"
	ErrCodeInvalidInput      = "INVALID_INPUT"
)

// ScreenshotError is the internal error type carrying an error code.
// Message is what the API returns to the caller verbatim.
type ScreenshotError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *ScreenshotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ScreenshotError) Unwrap() error {
	return e.Err
}

// NewScreenshotError creates a new ScreenshotError.
func NewScreenshotError(code, message string, err error) *ScreenshotError {
	return &ScreenshotError{Code: code, Message: message, Err: err}
}

// NavigationTimeout reports that url did not finish loading in time.
func NavigationTimeout(url string, err error) *ScreenshotError {
	return NewScreenshotError(ErrCodeNavigationTimeout, fmt.Sprintf("Timeout while navigating to %s.", url), err)
}

// EngineFailure wraps any other browser failure. The message is the
// engine's own error text, unsanitized.
func EngineFailure(err error) *ScreenshotError {
	return NewScreenshotError(ErrCodeEngineFailure, err.Error(), err)
}

// ToResponse converts an internal error to the API-facing body.
func (e *ScreenshotError) ToResponse() ErrorResponse {
	return ErrorResponse{Detail: e.Message, Code: e.Code}
}
