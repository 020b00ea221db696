package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrServer       = errors.New("request failed")
	ErrUnavailable  = errors.New("server unavailable")
)

// Error is the single error type returned by HTTPClient operations.
// Error() is display-ready.
type Error struct {
	// Op is the fallback description of the failed operation.
	Op string
	// Status is the HTTP status, or 0 if no response was received.
	Status int
	// Message is the best available human-readable message.
	Message string
	// Err classifies the failure, see the package sentinels.
	Err error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns the display message of err: the *Error message when there
// is one, the error text otherwise, or fallback for a nil error.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func classify(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return ErrServer
	}
}

// statusError builds the *Error for a non-2xx response.
func statusError(op string, status int, body []byte) *Error {
	return &Error{
		Op:      op,
		Status:  status,
		Message: extractMessage(body, op),
		Err:     classify(status),
	}
}

// extractMessage applies the message chain: structured "message" field,
// then the raw body, then the fallback.
func extractMessage(body []byte, fallback string) string {
	var structured struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(body, &structured); err == nil {
		if s, ok := structured.Message.(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}

	if raw := strings.TrimSpace(string(body)); raw != "" {
		return raw
	}

	return fallback
}
