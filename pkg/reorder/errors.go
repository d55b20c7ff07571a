package reorder

import (
	"errors"
	"fmt"
)

// ErrInvalidDrop is matched by every *InvalidDropError.
var ErrInvalidDrop = errors.New("reorder: invalid drop")

// ErrDuplicateItem is matched by every *DuplicateItemError.
var ErrDuplicateItem = errors.New("reorder: duplicate item")

// DropReason describes why a drop could not be applied.
type DropReason string

const (
	ReasonNoDragging        DropReason = "no-dragging"
	ReasonNoTarget          DropReason = "no-target"
	ReasonDraggingNotMember DropReason = "dragging-not-member"
	ReasonTargetNotMember   DropReason = "target-not-member"
)

// InvalidDropError is returned when a drop is attempted with a missing or
// stale dragged/hovered item. It is always recoverable: the collection is
// left unchanged.
type InvalidDropError struct {
	Reason DropReason
}

// Error implements the error interface.
func (e *InvalidDropError) Error() string {
	return fmt.Sprintf("reorder: invalid drop: %s", e.Reason)
}

// Is reports whether target is ErrInvalidDrop.
func (e *InvalidDropError) Is(target error) bool {
	return target == ErrInvalidDrop
}

// DuplicateItemError reports a collection that holds the same item twice.
type DuplicateItemError struct {
	// Index is the position of the second occurrence.
	Index int
	// Previous is the position of the first occurrence.
	Previous int
}

// Error implements the error interface.
func (e *DuplicateItemError) Error() string {
	return fmt.Sprintf("reorder: duplicate item at index %d (first seen at %d)", e.Index, e.Previous)
}

// Is reports whether target is ErrDuplicateItem.
func (e *DuplicateItemError) Is(target error) bool {
	return target == ErrDuplicateItem
}
