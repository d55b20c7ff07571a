package middleware

import (
	"context"
	"time"

	"github.com/vango-dev/draglist/pkg/metrics"
)

// Metrics records the duration and outcome of every event on c.
func Metrics(c *metrics.Collector) Middleware {
	return func(next Handler) Handler {
		if c == nil {
			return next
		}
		return func(ctx context.Context, ev *Event) error {
			start := time.Now()
			err := next(ctx, ev)
			c.ObserveEvent(ev.Name, time.Since(start), err)
			return err
		}
	}
}
