package snapshot

import (
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendS3     = "s3"
)

// Config selects and configures a backend.
type Config struct {
	Backend string

	// S3
	Bucket   string
	Prefix   string
	Region   string
	Endpoint string

	// Redis
	RedisAddr      string
	RedisKeyPrefix string
}

// Open creates the store named by cfg.Backend.
// BackendNone (or "") returns a nil Store.
func Open(cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", BackendNone:
		return nil, nil
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("snapshot: redis backend requires an address")
		}
		client := NewRedisClient(cfg.RedisAddr)
		opts := []RedisStoreOption{withOwnedClient(client)}
		if cfg.RedisKeyPrefix != "" {
			opts = append(opts, WithRedisPrefix(cfg.RedisKeyPrefix))
		}
		return NewRedisStore(client, opts...), nil
	case BackendS3:
		if cfg.Bucket == "" {
			return nil, fmt.Errorf("snapshot: s3 backend requires a bucket")
		}
		return NewS3Store(NewS3Client(cfg.Region, cfg.Endpoint), cfg.Bucket, cfg.Prefix), nil
	default:
		return nil, fmt.Errorf("snapshot: unknown backend %q", cfg.Backend)
	}
}
