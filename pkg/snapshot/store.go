package snapshot

import (
	"context"
	"errors"
)

// Store persists list orders.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save persists the order of listID, overwriting any previous order.
	Save(ctx context.Context, listID string, order []string) error

	// Load retrieves the order of listID.
	// Returns (nil, nil) if no order has been saved.
	Load(ctx context.Context, listID string) ([]string, error)

	// Delete removes the order of listID.
	// Should not return an error if nothing was saved.
	Delete(ctx context.Context, listID string) error

	// Close releases any resources held by the store.
	Close() error
}

// ErrStoreClosed is returned when operations are attempted on a closed store.
var ErrStoreClosed = errors.New("snapshot: store is closed")

// ErrEmptyListID is returned when a list ID is empty.
var ErrEmptyListID = errors.New("snapshot: empty list id")
