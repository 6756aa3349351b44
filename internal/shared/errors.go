package shared

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Credential errors
	ErrEmptyCredential    = fmt.Errorf("empty credential")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrPlaylistNotFound   = fmt.Errorf("playlist not found")
	ErrRunNotFound        = fmt.Errorf("run not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrUnknownAction   = fmt.Errorf("unknown action")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

// ValidationError reports caller input that fails a precondition.
//
// Validation errors are never retried and map to a client error (400) at the HTTP boundary.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NewValidationError wraps a sentinel with a formatted message.
func NewValidationError(sentinel error, format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...), Err: sentinel}
}

// IsValidationError reports whether err (or anything it wraps) is a [ValidationError].
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// UpstreamError is a non-2xx response from the YouTube Music API.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("upstream error (status %d)", e.Status)
	}
	return fmt.Sprintf("upstream error (status %d): %s", e.Status, body)
}

// IsInvalidArgument reports whether err belongs to the "invalid argument" class
// that triggers client-version and account-index fallback.
//
// Matching is by message substring only; upstream exposes no stable code for it.
func IsInvalidArgument(err error) bool {
	if err == nil || IsValidationError(err) {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "invalid_argument") || strings.Contains(msg, "invalid argument")
}
