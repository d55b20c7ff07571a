package draglist

import (
	"errors"

	"github.com/vango-dev/draglist/pkg/protocol"
	"github.com/vango-dev/draglist/pkg/reorder"
)

// List is one mounted drag-and-drop list instance.
// Like the underlying state it is not safe for concurrent use.
type List[T comparable] struct {
	config[T]

	collection reorder.Collection[T]
	state      *reorder.State[T]

	patches []protocol.Patch
	replace bool
}

// New mounts a list over collection.
func New[T comparable](collection reorder.Collection[T], opts ...Option[T]) *List[T] {
	l := &List[T]{
		config:     defaultConfig[T](),
		collection: collection,
	}
	for _, opt := range opts {
		opt(&l.config)
	}
	l.state = reorder.NewState(collection,
		reorder.WithObserver(l.observe),
		reorder.WithOnDrop(l.dropped),
		reorder.WithLogger[T](l.logger),
	)
	return l
}

// ID returns the container element id.
func (l *List[T]) ID() string {
	return l.id
}

// State returns the list's drag state.
func (l *List[T]) State() *reorder.State[T] {
	return l.state
}

// Items returns the current order.
func (l *List[T]) Items() []T {
	return l.collection.Items()
}

// Key returns the stable key of item.
func (l *List[T]) Key(item T) string {
	return l.key(item)
}

// Lookup returns the item with the given key.
func (l *List[T]) Lookup(key string) (T, bool) {
	for _, item := range l.collection.Items() {
		if l.key(item) == key {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Bindings returns the transition each item-level DOM event triggers for
// item. The container-level drop is available as Drop.
func (l *List[T]) Bindings(item T) map[protocol.EventType]func() {
	return map[protocol.EventType]func(){
		protocol.EventDragStart: func() { l.DragStart(item) },
		protocol.EventDragEnd:   func() { l.DragEnd(item) },
		protocol.EventDragEnter: func() { l.DragEnter(item) },
		protocol.EventDragLeave: func() { l.DragLeave(item) },
	}
}

// DragStart handles dragstart on item.
func (l *List[T]) DragStart(item T) {
	l.record(protocol.EventDragStart)
	l.state.DragStart(item)
}

// DragEnd handles dragend on item.
func (l *List[T]) DragEnd(item T) {
	l.record(protocol.EventDragEnd)
	l.state.DragEnd(item)
}

// DragEnter handles dragenter on item.
func (l *List[T]) DragEnter(item T) {
	l.record(protocol.EventDragEnter)
	l.state.DragEnter(item)
}

// DragLeave handles dragleave on item.
func (l *List[T]) DragLeave(item T) {
	l.record(protocol.EventDragLeave)
	l.state.DragLeave(item)
}

// Drop handles drop on the container. An invalid or stale drop is a no-op
// and is not reported as an error.
func (l *List[T]) Drop() error {
	l.record(protocol.EventDrop)
	err := l.state.Drop()
	if errors.Is(err, reorder.ErrInvalidDrop) {
		if l.recorder != nil {
			l.recorder.RecordDrop(DropInvalid)
		}
		return nil
	}
	return err
}

// Unmount discards any gesture in progress.
func (l *List[T]) Unmount() {
	l.state.Reset()
	l.patches = nil
}

// TakePatches returns and clears the pending class patches.
func (l *List[T]) TakePatches() []protocol.Patch {
	out := protocol.Coalesce(l.patches)
	l.patches = nil
	return out
}

// TakeReplace reports whether the order changed since the last call.
func (l *List[T]) TakeReplace() bool {
	r := l.replace
	l.replace = false
	return r
}

func (l *List[T]) observe(item T, class reorder.PreviewClass) {
	l.patches = append(l.patches, protocol.Patch{
		Key:     l.key(item),
		Class:   class.ClassName(),
		Preview: class.String(),
	})
}

func (l *List[T]) dropped(dropped, droppedOn T) {
	l.replace = true
	if l.recorder != nil {
		l.recorder.RecordDrop(DropOK)
	}
	l.logger.Debug("item dropped",
		"dropped", l.key(dropped),
		"dropped_on", l.key(droppedOn))
	if l.onDrop != nil {
		l.onDrop(dropped, droppedOn)
	}
}

func (l *List[T]) record(et protocol.EventType) {
	if l.recorder != nil {
		l.recorder.RecordTransition(et.DOMName())
	}
}
