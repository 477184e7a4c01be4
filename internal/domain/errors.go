package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrPersistenceUnavailable means the stored board was missing or corrupt
	// at load. The store recovers with an empty snapshot.
	ErrPersistenceUnavailable = errors.New("persisted board unavailable")
	// ErrFormat means an import payload is not a keyed card mapping.
	ErrFormat = errors.New("malformed board payload")
	// ErrThresholdNotMet means a marquee gesture was too small to create a card.
	ErrThresholdNotMet = errors.New("marquee below minimum size")
	ErrNotFound        = errors.New("card not found")
	ErrDeclined        = errors.New("declined by user")
	ErrNotResizable    = errors.New("edge is not resizable")
	ErrGestureActive   = errors.New("another gesture is in progress")
)

// FormatError describes why an import payload was rejected.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrFormat, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrFormat, e.Reason)
}

func (e *FormatError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrFormat, e.Err}
	}
	return []error{ErrFormat}
}
