package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vango-dev/draglist/pkg/metrics"
	"github.com/vango-dev/draglist/pkg/snapshot"
)

// Order is the committed order of the hosted list, shared by all sessions.
// Sessions mount their own list instance over a copy of it and commit back
// their whole order after each successful drop, so the last commit wins:
// a session working from a stale copy overwrites drops made elsewhere.
// It is safe for concurrent use.
type Order struct {
	mu      sync.RWMutex
	listID  string
	items   []string
	store   snapshot.Store
	backend string
	metrics *metrics.Collector
	logger  *slog.Logger
}

// NewOrder creates the committed order for listID seeded with items.
// store may be nil.
func NewOrder(listID string, items []string, store snapshot.Store, backend string, m *metrics.Collector) *Order {
	return &Order{
		listID:  listID,
		items:   append([]string(nil), items...),
		store:   store,
		backend: backend,
		metrics: m,
		logger:  slog.Default().With("component", "order", "list", listID),
	}
}

// ListID returns the list ID.
func (o *Order) ListID() string {
	return o.listID
}

// Items returns a copy of the committed order.
func (o *Order) Items() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([]string(nil), o.items...)
}

// Restore replaces the seed order with the stored one, if any. A stored
// order that is not a permutation of the seed is ignored.
func (o *Order) Restore(ctx context.Context) error {
	if o.store == nil {
		return nil
	}
	stored, err := o.store.Load(ctx, o.listID)
	o.metrics.RecordSnapshot(o.backend, "load", err)
	if err != nil {
		return err
	}
	if stored == nil {
		return nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if !samePermutation(o.items, stored) {
		o.logger.Warn("stored order does not match configured items, ignoring",
			"stored", len(stored), "configured", len(o.items))
		return nil
	}
	o.items = stored
	o.logger.Info("order restored", "items", len(stored))
	return nil
}

// Commit records a new order and persists it. The in-memory order is
// updated even if persisting fails.
func (o *Order) Commit(ctx context.Context, items []string) error {
	o.mu.Lock()
	o.items = append([]string(nil), items...)
	o.mu.Unlock()

	if o.store == nil {
		return nil
	}
	err := o.store.Save(ctx, o.listID, items)
	o.metrics.RecordSnapshot(o.backend, "save", err)
	return err
}

func samePermutation(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, s := range a {
		counts[s]++
	}
	for _, s := range b {
		counts[s]--
		if counts[s] < 0 {
			return false
		}
	}
	return true
}
