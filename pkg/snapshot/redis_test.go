package snapshot

import (
	"context"
	"errors"
	"os"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockRedisSetCall struct {
	key        string
	value      interface{}
	expiration time.Duration
}

type mockRedisClient struct {
	mu   sync.Mutex
	data map[string][]byte
	sets []mockRedisSetCall
	dels [][]string
	err  error
}

func newMockRedisClient() *mockRedisClient {
	return &mockRedisClient{data: make(map[string][]byte)}
}

func (c *mockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets = append(c.sets, mockRedisSetCall{key: key, value: value, expiration: expiration})
	if c.err != nil {
		return redis.NewStatusResult("", c.err)
	}
	c.data[key] = value.([]byte)
	return redis.NewStatusResult("OK", nil)
}

func (c *mockRedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return redis.NewStringResult("", c.err)
	}
	data, ok := c.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(data), nil)
}

func (c *mockRedisClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dels = append(c.dels, keys)
	for _, k := range keys {
		delete(c.data, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestRedisStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	client := newMockRedisClient()
	store := NewRedisStore(client, WithRedisTTL(time.Hour))

	if err := store.Save(ctx, "tasks", []string{"c", "a", "b"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if len(client.sets) != 1 {
		t.Fatalf("expected 1 SET, got %d", len(client.sets))
	}
	if client.sets[0].key != "draglist:order:tasks" {
		t.Errorf("key = %q", client.sets[0].key)
	}
	if client.sets[0].expiration != time.Hour {
		t.Errorf("expiration = %v, want 1h", client.sets[0].expiration)
	}

	got, err := store.Load(ctx, "tasks")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"c", "a", "b"}) {
		t.Errorf("Load() = %v", got)
	}
}

func TestRedisStoreMissing(t *testing.T) {
	store := NewRedisStore(newMockRedisClient())
	got, err := store.Load(context.Background(), "tasks")
	if err != nil || got != nil {
		t.Errorf("Load(missing) = %v, %v, want nil, nil", got, err)
	}
}

func TestRedisStoreErrors(t *testing.T) {
	ctx := context.Background()
	client := newMockRedisClient()
	client.err = errors.New("connection refused")
	store := NewRedisStore(client)

	if err := store.Save(ctx, "tasks", []string{"a"}); err == nil {
		t.Error("Save() should surface client errors")
	}
	if _, err := store.Load(ctx, "tasks"); err == nil {
		t.Error("Load() should surface client errors")
	}
}

func TestRedisStorePrefixAndDelete(t *testing.T) {
	ctx := context.Background()
	client := newMockRedisClient()
	store := NewRedisStore(client, WithRedisPrefix("app:"))

	if store.Prefix() != "app:" {
		t.Errorf("Prefix() = %q", store.Prefix())
	}
	_ = store.Save(ctx, "tasks", []string{"a"})
	if err := store.Delete(ctx, "tasks"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !reflect.DeepEqual(client.dels, [][]string{{"app:tasks"}}) {
		t.Errorf("dels = %v", client.dels)
	}
}

func TestRedisStoreClosed(t *testing.T) {
	store := NewRedisStore(newMockRedisClient())
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := store.Save(context.Background(), "tasks", nil); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("Save() error = %v, want ErrStoreClosed", err)
	}
}

// TestRedisStoreLive runs against a real server when DRAGLIST_REDIS_ADDR is set.
func TestRedisStoreLive(t *testing.T) {
	addr := os.Getenv("DRAGLIST_REDIS_ADDR")
	if addr == "" {
		t.Skip("DRAGLIST_REDIS_ADDR not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := NewRedisClient(addr)
	defer client.Close()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not reachable: %v", err)
	}

	store := NewRedisStore(client, WithRedisPrefix("draglist-test:"), WithRedisTTL(time.Minute))
	if err := store.Save(ctx, "live", []string{"x", "y"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := store.Load(ctx, "live")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Errorf("Load() = %v", got)
	}
	_ = store.Delete(ctx, "live")
}
