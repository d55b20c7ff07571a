package snapshot

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of the go-redis client used by RedisStore.
// *redis.Client and *redis.ClusterClient satisfy it.
type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore is a Redis-backed order store.
// It's suitable for multi-server deployments with a shared order.
type RedisStore struct {
	client RedisClient
	prefix string
	ttl    time.Duration
	closer io.Closer
	closed atomic.Bool
}

// RedisStoreOption configures RedisStore behavior.
type RedisStoreOption func(*RedisStore)

// WithRedisPrefix sets the key prefix for order keys.
// Default: "draglist:order:".
func WithRedisPrefix(prefix string) RedisStoreOption {
	return func(r *RedisStore) {
		r.prefix = prefix
	}
}

// WithRedisTTL sets an expiration on saved orders. Zero keeps them forever.
func WithRedisTTL(ttl time.Duration) RedisStoreOption {
	return func(r *RedisStore) {
		r.ttl = ttl
	}
}

// withOwnedClient makes Close also close c.
func withOwnedClient(c io.Closer) RedisStoreOption {
	return func(r *RedisStore) {
		r.closer = c
	}
}

// NewRedisStore creates a new Redis-backed store.
func NewRedisStore(client RedisClient, opts ...RedisStoreOption) *RedisStore {
	r := &RedisStore{
		client: client,
		prefix: "draglist:order:",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewRedisClient connects a go-redis client to addr.
func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

func (r *RedisStore) key(listID string) string {
	return r.prefix + listID
}

// Save stores the order as a JSON record.
func (r *RedisStore) Save(ctx context.Context, listID string, order []string) error {
	if r.closed.Load() {
		return ErrStoreClosed
	}
	if listID == "" {
		return ErrEmptyListID
	}
	data, err := Encode(listID, order)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(listID), data, r.ttl).Err()
}

// Load retrieves the order.
func (r *RedisStore) Load(ctx context.Context, listID string) ([]string, error) {
	if r.closed.Load() {
		return nil, ErrStoreClosed
	}
	data, err := r.client.Get(ctx, r.key(listID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return rec.Items, nil
}

// Delete removes the order.
func (r *RedisStore) Delete(ctx context.Context, listID string) error {
	if r.closed.Load() {
		return ErrStoreClosed
	}
	return r.client.Del(ctx, r.key(listID)).Err()
}

// Close marks the store as closed.
// A client passed to NewRedisStore is not closed; it may be shared with
// other components. A client created by Open is.
func (r *RedisStore) Close() error {
	if r.closed.Swap(true) {
		return nil
	}
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// Prefix returns the current key prefix.
func (r *RedisStore) Prefix() string {
	return r.prefix
}
