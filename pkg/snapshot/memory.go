package snapshot

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory order store.
// It's the default store and suitable for single-server deployments.
type MemoryStore struct {
	mu     sync.RWMutex
	orders map[string][]string
	closed bool
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{orders: make(map[string][]string)}
}

// Save stores a copy of order.
func (m *MemoryStore) Save(ctx context.Context, listID string, order []string) error {
	if listID == "" {
		return ErrEmptyListID
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	m.orders[listID] = append([]string(nil), order...)
	return nil
}

// Load returns a copy of the saved order.
func (m *MemoryStore) Load(ctx context.Context, listID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}
	order, ok := m.orders[listID]
	if !ok {
		return nil, nil
	}
	return append([]string(nil), order...), nil
}

// Delete removes the saved order.
func (m *MemoryStore) Delete(ctx context.Context, listID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	delete(m.orders, listID)
	return nil
}

// Close marks the store as closed and drops all orders.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.orders = nil
	return nil
}

// Len returns the number of saved orders.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.orders)
}
