package protocol

import "errors"

var (
	// ErrUnknownEvent is returned for event names outside the drag family.
	ErrUnknownEvent = errors.New("protocol: unknown event")

	// ErrMalformedFrame is returned when a frame cannot be decoded.
	ErrMalformedFrame = errors.New("protocol: malformed frame")

	// ErrFrameTooLarge is returned when a frame exceeds MaxFrameSize.
	ErrFrameTooLarge = errors.New("protocol: frame too large")
)

// ErrorCode identifies the type of error reported to the client.
type ErrorCode string

const (
	ErrCodeInvalidFrame    ErrorCode = "InvalidFrame"
	ErrCodeInvalidEvent    ErrorCode = "InvalidEvent"
	ErrCodeHandlerNotFound ErrorCode = "HandlerNotFound"
	ErrCodeHandlerPanic    ErrorCode = "HandlerPanic"
	ErrCodeServerError     ErrorCode = "ServerError"
)
