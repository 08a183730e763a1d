// Package weather talks to the upstream current-weather API and defines the
// failure taxonomy callers use to render user-facing messages.
package weather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Observation is the subset of the upstream current-weather payload the
// application consumes. Temperature is in Kelvin, as returned by the API.
type Observation struct {
	City        string
	Kelvin      float64
	Code        int
	Description string
}

// Provider fetches current conditions for a city.
type Provider interface {
	// Current returns the current observation for the given city name.
	// Errors are one of *HTTPError, ErrConnection, ErrTimeout, ErrTooManyRedirects or *RequestError.
	Current(ctx context.Context, city string) (*Observation, error)
}

var (
	ErrConnection       = errors.New("connection failed")
	ErrTimeout          = errors.New("request timed out")
	ErrTooManyRedirects = errors.New("too many redirects")
)

// HTTPError reports a non-success HTTP status returned by the upstream API.
type HTTPError struct {
	StatusCode int
	// Message is the upstream "message" field when the body carried one.
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream returned %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	}
	return fmt.Sprintf("upstream returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// RequestError is the catch-all for failures that are neither HTTP status
// errors nor transport errors with a dedicated sentinel, including bodies
// that cannot be decoded.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string { return e.Err.Error() }

func (e *RequestError) Unwrap() error { return e.Err }
