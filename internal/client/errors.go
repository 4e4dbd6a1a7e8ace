package client

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrMissingAPIKey is returned by NewOctavClient when no credential is configured.
var ErrMissingAPIKey = errors.New("octav API key is required")

// APIError is any failed exchange with the Octav API that has no more specific
// type: an unexpected HTTP status, an undecodable body, or a transport failure
// before a status was received (StatusCode is 0 in that case).
type APIError struct {
	StatusCode int
	Message    string
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsNetwork reports whether the request failed before an HTTP status was obtained.
func (e *APIError) IsNetwork() bool {
	return e.StatusCode == 0
}

// AuthenticationError is returned for HTTP 401.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// StatusCode is always 401.
func (e *AuthenticationError) StatusCode() int { return 401 }

// InsufficientCreditsError is returned for HTTP 402. CreditsNeeded is set when
// the API says how many credits the call would have cost.
type InsufficientCreditsError struct {
	Message       string
	CreditsNeeded *float64
}

func (e *InsufficientCreditsError) Error() string {
	if e.CreditsNeeded == nil {
		return e.Message
	}
	return fmt.Sprintf("%s (credits needed: %s)", e.Message, FormatHint(*e.CreditsNeeded))
}

// StatusCode is always 402.
func (e *InsufficientCreditsError) StatusCode() int { return 402 }

// RateLimitError is returned for HTTP 429. RetryAfter is in seconds.
type RateLimitError struct {
	Message    string
	RetryAfter *float64
}

func (e *RateLimitError) Error() string {
	return e.Message
}

// StatusCode is always 429.
func (e *RateLimitError) StatusCode() int { return 429 }

// FormatHint renders a numeric hint without a trailing ".0".
func FormatHint(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
