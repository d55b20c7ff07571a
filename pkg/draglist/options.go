package draglist

import (
	"fmt"
	"log/slog"

	"github.com/vango-dev/draglist/pkg/vdom"
)

// Recorder receives drag activity for metrics. *metrics.Collector
// implements it.
type Recorder interface {
	RecordTransition(event string)
	RecordDrop(result string)
}

// Drop results passed to Recorder.RecordDrop.
const (
	DropOK      = "ok"
	DropInvalid = "invalid"
)

type config[T comparable] struct {
	id         string
	tag        string
	itemTag    string
	key        func(T) string
	renderItem func(T) *vdom.VNode
	onDrop     func(dropped, droppedOn T)
	logger     *slog.Logger
	recorder   Recorder
}

func defaultConfig[T comparable]() config[T] {
	return config[T]{
		id:      "draglist",
		tag:     "ul",
		itemTag: "li",
		key:     func(item T) string { return fmt.Sprint(item) },
		logger:  slog.Default().With("component", "draglist"),
	}
}

// Option configures a List.
type Option[T comparable] func(*config[T])

// WithID sets the id of the container element.
func WithID[T comparable](id string) Option[T] {
	return func(c *config[T]) {
		if id != "" {
			c.id = id
		}
	}
}

// WithTag sets the container tag (default "ul").
func WithTag[T comparable](tag string) Option[T] {
	return func(c *config[T]) {
		if tag != "" {
			c.tag = tag
		}
	}
}

// WithItemTag sets the item wrapper tag (default "li").
func WithItemTag[T comparable](tag string) Option[T] {
	return func(c *config[T]) {
		if tag != "" {
			c.itemTag = tag
		}
	}
}

// WithKey sets the function producing each item's stable key.
// Keys must be unique within the list. The default is fmt.Sprint.
func WithKey[T comparable](key func(T) string) Option[T] {
	return func(c *config[T]) {
		if key != nil {
			c.key = key
		}
	}
}

// WithItemRenderer sets the function rendering an item's content inside its
// draggable wrapper. The default renders the key as text.
func WithItemRenderer[T comparable](render func(T) *vdom.VNode) Option[T] {
	return func(c *config[T]) {
		c.renderItem = render
	}
}

// WithOnDrop sets the callback for side effects after a committed drop.
func WithOnDrop[T comparable](fn func(dropped, droppedOn T)) Option[T] {
	return func(c *config[T]) {
		c.onDrop = fn
	}
}

// WithLogger sets the logger.
func WithLogger[T comparable](logger *slog.Logger) Option[T] {
	return func(c *config[T]) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the recorder for transition and drop counts.
func WithMetrics[T comparable](r Recorder) Option[T] {
	return func(c *config[T]) {
		c.recorder = r
	}
}
