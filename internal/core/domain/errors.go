package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat  = errors.New("unsupported document format")
	ErrExtractionFailed   = errors.New("text extraction failed")
	ErrEmptyDocument      = errors.New("empty document")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrBackendTimeout     = errors.New("backend timeout")
	ErrBackendTransport   = errors.New("backend transport failure")
	ErrWorkflowFailed     = errors.New("workflow failed")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUserExists         = errors.New("user already exists")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

// IsBackendError reports whether err belongs to the backend failure family
// that the fallback chain is allowed to swallow.
func IsBackendError(err error) bool {
	return errors.Is(err, ErrBackendUnavailable) ||
		errors.Is(err, ErrBackendTimeout) ||
		errors.Is(err, ErrBackendTransport)
}
