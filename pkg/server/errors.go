package server

import (
	"errors"
	"fmt"
)

// Sentinel errors for common session and server error conditions.
var (
	// ErrSessionClosed is returned when an operation is attempted on a closed session.
	ErrSessionClosed = errors.New("server: session closed")

	// ErrHandlerNotFound is returned when no handler is registered for an HID.
	ErrHandlerNotFound = errors.New("server: handler not found")

	// ErrNoConnection is returned when attempting to send on a nil connection.
	ErrNoConnection = errors.New("server: no connection")

	// errReplySent marks failures after the reply frame was attempted.
	// No error frame follows them.
	errReplySent = errors.New("server: reply write failed")
)

// HandlerError describes a failed event dispatch.
type HandlerError struct {
	SessionID string
	HID       string
	Event     string
	Panic     any   // recovered value, if the handler panicked
	Err       error // returned error, if any
}

// Error returns the error message with session context.
func (e *HandlerError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("server: session %s: handler panic on %s/%s: %v", e.SessionID, e.HID, e.Event, e.Panic)
	}
	return fmt.Sprintf("server: session %s: handler %s/%s: %v", e.SessionID, e.HID, e.Event, e.Err)
}

// Unwrap returns the underlying error.
func (e *HandlerError) Unwrap() error {
	return e.Err
}
