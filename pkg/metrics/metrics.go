// Package metrics collects Prometheus metrics for drag-and-drop sessions.
//
// Metrics collected (with the default "draglist" namespace):
//   - draglist_transitions_total: Counter of drag transitions by DOM event
//   - draglist_drops_total: Counter of drops by result (ok, invalid)
//   - draglist_event_duration_seconds: Histogram of event handling duration
//   - draglist_event_errors_total: Counter of event errors by event and error type
//   - draglist_patches_sent_total: Counter of class patches sent to clients
//   - draglist_replaces_sent_total: Counter of full list replacements sent
//   - draglist_active_sessions: Gauge of open WebSocket sessions
//   - draglist_websocket_errors_total: Counter of WebSocket errors by type
//   - draglist_snapshot_operations_total: Counter of order snapshot operations
//
// A nil *Collector is valid and records nothing.
package metrics

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config configures the collector.
type Config struct {
	// Namespace is the metrics namespace (default: "draglist").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for event duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registerer receives the collectors.
	// Default: prometheus.DefaultRegisterer
	Registerer prometheus.Registerer

	// Gatherer is served by Handler.
	// Default: prometheus.DefaultGatherer
	Gatherer prometheus.Gatherer
}

// Option configures the collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		if namespace != "" {
			c.Namespace = namespace
		}
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry registers the collectors with reg and serves reg from Handler.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(c *Config) {
		c.Registerer = reg
		c.Gatherer = reg
	}
}

func defaultConfig() Config {
	return Config{
		Namespace:  "draglist",
		Buckets:    prometheus.DefBuckets,
		Registerer: prometheus.DefaultRegisterer,
		Gatherer:   prometheus.DefaultGatherer,
	}
}

// Collector holds the Prometheus metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	transitionsTotal *prometheus.CounterVec
	dropsTotal       *prometheus.CounterVec
	eventDuration    *prometheus.HistogramVec
	eventErrors      *prometheus.CounterVec
	patchesSent      prometheus.Counter
	replacesSent     prometheus.Counter
	activeSessions   prometheus.Gauge
	wsErrors         *prometheus.CounterVec
	snapshotOps      *prometheus.CounterVec
}

// New creates and registers the collectors. It panics if a collector with
// the same name is already registered with the Registerer.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registerer)

	return &Collector{
		gatherer: config.Gatherer,

		transitionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "transitions_total",
			Help:        "Total number of drag transitions by DOM event",
			ConstLabels: config.ConstLabels,
		}, []string{"event"}),

		dropsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "drops_total",
			Help:        "Total number of drops by result",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_duration_seconds",
			Help:        "Event handling duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"event"}),

		eventErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_errors_total",
			Help:        "Total number of event handling errors",
			ConstLabels: config.ConstLabels,
		}, []string{"event", "error_type"}),

		patchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_sent_total",
			Help:        "Total number of class patches sent to clients",
			ConstLabels: config.ConstLabels,
		}),

		replacesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "replaces_sent_total",
			Help:        "Total number of full list replacements sent to clients",
			ConstLabels: config.ConstLabels,
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of open WebSocket sessions",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),

		snapshotOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "snapshot_operations_total",
			Help:        "Total order snapshot operations by backend, operation and status",
			ConstLabels: config.ConstLabels,
		}, []string{"backend", "op", "status"}),
	}
}

// Handler serves the gathered metrics.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// RecordTransition counts a drag transition.
func (c *Collector) RecordTransition(event string) {
	if c == nil {
		return
	}
	c.transitionsTotal.WithLabelValues(event).Inc()
}

// RecordDrop counts a drop by result.
func (c *Collector) RecordDrop(result string) {
	if c == nil {
		return
	}
	c.dropsTotal.WithLabelValues(result).Inc()
}

// ObserveEvent records the handling duration of an event and, if err is
// non-nil, its error category.
func (c *Collector) ObserveEvent(event string, d time.Duration, err error) {
	if c == nil {
		return
	}
	c.eventDuration.WithLabelValues(event).Observe(d.Seconds())
	if err != nil {
		c.eventErrors.WithLabelValues(event, categorizeError(err)).Inc()
	}
}

// RecordPatches records the number of patches sent.
func (c *Collector) RecordPatches(count int) {
	if c == nil || count <= 0 {
		return
	}
	c.patchesSent.Add(float64(count))
}

// RecordReplace records a full list replacement.
func (c *Collector) RecordReplace() {
	if c == nil {
		return
	}
	c.replacesSent.Inc()
}

// SessionOpened records a new WebSocket session.
func (c *Collector) SessionOpened() {
	if c == nil {
		return
	}
	c.activeSessions.Inc()
}

// SessionClosed records a closed WebSocket session.
func (c *Collector) SessionClosed() {
	if c == nil {
		return
	}
	c.activeSessions.Dec()
}

// RecordWebSocketError records a WebSocket error.
func (c *Collector) RecordWebSocketError(errorType string) {
	if c == nil {
		return
	}
	c.wsErrors.WithLabelValues(errorType).Inc()
}

// RecordSnapshot records a snapshot operation against backend.
func (c *Collector) RecordSnapshot(backend, op string, err error) {
	if c == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	c.snapshotOps.WithLabelValues(backend, op, status).Inc()
}

// categorizeError returns a category for the error type.
// This prevents high-cardinality labels from error messages.
func categorizeError(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"):
		return "timeout"
	case strings.Contains(msg, "not found"):
		return "not_found"
	case strings.Contains(msg, "panic"):
		return "panic"
	case strings.Contains(msg, "protocol"):
		return "protocol"
	case strings.Contains(msg, "websocket"):
		return "websocket"
	default:
		return "internal"
	}
}
