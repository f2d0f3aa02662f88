// Package google provides an HTTP client for the Google Drive and Docs REST
// APIs with error classification, plus the lazily provisioned app folder.
package google

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for HTTP status code classification.
// Use errors.Is(err, google.ErrNotFound) to check.
var (
	ErrBadRequest   = errors.New("google: bad request")
	ErrUnauthorized = errors.New("google: unauthorized")
	ErrForbidden    = errors.New("google: forbidden")
	ErrNotFound     = errors.New("google: not found")
	ErrConflict     = errors.New("google: conflict")
	ErrThrottled    = errors.New("google: rate limited")
	ErrServerError  = errors.New("google: server error")
)

// APIError wraps a sentinel error with the HTTP status code and the response
// body so a misconfigured credential or stale token can be diagnosed from the
// error text alone.
type APIError struct {
	StatusCode int
	Message    string
	Err        error // sentinel, for errors.Is()
}

func (e *APIError) Error() string {
	return fmt.Sprintf("google: HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// classifyStatus maps an HTTP status code to a sentinel error.
// Returns nil for 2xx success codes.
func classifyStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusTooManyRequests:
		return ErrThrottled
	default:
		if code >= http.StatusInternalServerError {
			return ErrServerError
		}

		return nil
	}
}
