package reorder

import (
	"errors"
	"log/slog"
)

// State is the drag state of one list instance.
//
// It holds a live reference to the host's collection, the item being dragged
// and the item currently hovered. Each method corresponds to one native drag
// event. After every transition the observer, if any, is called once for each
// item whose PreviewClass may have changed.
type State[T comparable] struct {
	items Collection[T]

	dragging    T
	hasDragging bool
	over        T
	hasOver     bool

	onDrop   func(dropped, droppedOn T)
	observer func(item T, class PreviewClass)
	logger   *slog.Logger
}

// Option configures a State.
type Option[T comparable] func(*State[T])

// WithOnDrop sets the callback invoked once per successful drop. It runs
// after the new order has been committed to the collection and before the
// drag pointers are cleared.
func WithOnDrop[T comparable](fn func(dropped, droppedOn T)) Option[T] {
	return func(s *State[T]) {
		s.onDrop = fn
	}
}

// WithObserver sets the function notified after each transition.
func WithObserver[T comparable](fn func(item T, class PreviewClass)) Option[T] {
	return func(s *State[T]) {
		s.observer = fn
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger[T comparable](logger *slog.Logger) Option[T] {
	return func(s *State[T]) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewState creates an idle State over items.
func NewState[T comparable](items Collection[T], opts ...Option[T]) *State[T] {
	s := &State[T]{
		items:  items,
		logger: slog.Default().With("component", "reorder"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Items returns the current order of the underlying collection.
func (s *State[T]) Items() []T {
	return s.items.Items()
}

// Collection returns the collection the state operates on.
func (s *State[T]) Collection() Collection[T] {
	return s.items
}

// Dragging returns the item being dragged, if any.
func (s *State[T]) Dragging() (T, bool) {
	return s.dragging, s.hasDragging
}

// Over returns the hovered item, if any.
func (s *State[T]) Over() (T, bool) {
	return s.over, s.hasOver
}

// Active reports whether a drag gesture is in progress.
func (s *State[T]) Active() bool {
	return s.hasDragging || s.hasOver
}

// DragStart marks item as the dragged item.
// Items that are not in the collection are ignored.
func (s *State[T]) DragStart(item T) {
	if !Contains(s.Items(), item) {
		s.logger.Debug("dragstart ignored: item not in collection")
		return
	}
	touched := s.touched()
	s.dragging, s.hasDragging = item, true
	s.notify(touched)
}

// DragEnd ends the gesture on the dragged element. Both pointers are
// cleared: a gesture cancelled outside any drop target may never deliver
// the matching dragleave.
func (s *State[T]) DragEnd(item T) {
	if !s.Active() {
		return
	}
	touched := s.touched()
	s.clear()
	s.notify(touched)
}

// DragEnter marks item as hovered. The most recent enter wins.
func (s *State[T]) DragEnter(item T) {
	if !Contains(s.Items(), item) {
		s.logger.Debug("dragenter ignored: item not in collection")
		return
	}
	if s.hasOver && s.over == item {
		return
	}
	touched := s.touched()
	s.over, s.hasOver = item, true
	s.notify(touched)
}

// DragLeave clears the hover if item is the hovered item. A leave for any
// other item is stale (a newer enter already moved the hover) and ignored.
func (s *State[T]) DragLeave(item T) {
	if !s.hasOver || s.over != item {
		return
	}
	touched := s.touched()
	var zero T
	s.over, s.hasOver = zero, false
	s.notify(touched)
}

// Drop commits the gesture: the dragged item is moved onto the hovered
// item's slot, the collection is updated and the drop callback is invoked.
// Both pointers are cleared whether or not the drop was valid.
//
// An invalid or stale drop returns an *InvalidDropError and leaves the
// collection unchanged.
func (s *State[T]) Drop() error {
	touched := s.touched()
	err := s.commit()
	s.clear()
	s.notify(touched)

	var invalid *InvalidDropError
	if errors.As(err, &invalid) {
		s.logger.Debug("drop ignored", "reason", invalid.Reason)
	}
	return err
}

// Reset returns the state to idle without touching the collection.
func (s *State[T]) Reset() {
	touched := s.touched()
	s.clear()
	s.notify(touched)
}

func (s *State[T]) commit() error {
	if !s.hasDragging {
		return &InvalidDropError{Reason: ReasonNoDragging}
	}
	if !s.hasOver {
		return &InvalidDropError{Reason: ReasonNoTarget}
	}
	next, err := Reorder(s.Items(), s.dragging, s.over)
	if err != nil {
		return err
	}
	s.items.SetItems(next)
	if s.onDrop != nil {
		s.onDrop(s.dragging, s.over)
	}
	return nil
}

func (s *State[T]) clear() {
	var zero T
	s.dragging, s.hasDragging = zero, false
	s.over, s.hasOver = zero, false
}

// touched returns the items whose class depends on the current pointers.
func (s *State[T]) touched() []T {
	out := make([]T, 0, 2)
	if s.hasDragging {
		out = append(out, s.dragging)
	}
	if s.hasOver && (!s.hasDragging || s.over != s.dragging) {
		out = append(out, s.over)
	}
	return out
}

// notify reports the new class of every item touched before or after the
// transition.
func (s *State[T]) notify(before []T) {
	if s.observer == nil {
		return
	}
	seen := make(map[T]struct{}, 4)
	for _, item := range append(before, s.touched()...) {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		s.observer(item, Classify[T](item, s))
	}
}
