package middleware

import (
	"context"
	"log/slog"
	"time"
)

// Event describes one drag event being dispatched.
type Event struct {
	SessionID string
	ListID    string
	HID       string

	// Name is the DOM event name, e.g. "dragstart".
	Name string

	// Patches is the number of patches sent in reply. Set by the handler.
	Patches int

	// Replaced reports that the reply was a full replace. Set by the handler.
	Replaced bool
}

// Handler processes one event.
type Handler func(ctx context.Context, ev *Event) error

// Middleware wraps a Handler.
type Middleware func(next Handler) Handler

// Chain wraps h with mws. mws[0] is the outermost.
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			h = mws[i](h)
		}
	}
	return h
}

// Logging logs every event at debug level and failures at warn.
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default().With("component", "events")
	}
	return func(next Handler) Handler {
		return func(ctx context.Context, ev *Event) error {
			start := time.Now()
			err := next(ctx, ev)
			if err != nil {
				logger.Warn("event failed",
					"event", ev.Name,
					"hid", ev.HID,
					"session_id", ev.SessionID,
					"error", err)
				return err
			}
			logger.Debug("event",
				"event", ev.Name,
				"hid", ev.HID,
				"patches", ev.Patches,
				"replaced", ev.Replaced,
				"duration", time.Since(start))
			return nil
		}
	}
}
