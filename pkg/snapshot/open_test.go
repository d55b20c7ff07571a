package snapshot

import "testing"

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr bool
	}{
		{name: "empty", cfg: Config{}, want: "<nil>"},
		{name: "none", cfg: Config{Backend: BackendNone}, want: "<nil>"},
		{name: "memory", cfg: Config{Backend: BackendMemory}, want: "*snapshot.MemoryStore"},
		{name: "redis", cfg: Config{Backend: BackendRedis, RedisAddr: "localhost:6379", RedisKeyPrefix: "x:"}, want: "*snapshot.RedisStore"},
		{name: "s3", cfg: Config{Backend: BackendS3, Bucket: "b", Region: "us-east-1"}, want: "*snapshot.S3Store"},
		{name: "redis without addr", cfg: Config{Backend: BackendRedis}, wantErr: true},
		{name: "s3 without bucket", cfg: Config{Backend: BackendS3}, wantErr: true},
		{name: "unknown", cfg: Config{Backend: "etcd"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Open() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if got := typeName(store); got != tt.want {
				t.Errorf("Open() = %s, want %s", got, tt.want)
			}
			if store != nil {
				store.Close()
			}
		})
	}
}

func TestOpenRedisPrefix(t *testing.T) {
	store, err := Open(Config{Backend: BackendRedis, RedisAddr: "localhost:6379", RedisKeyPrefix: "x:"})
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	if p := store.(*RedisStore).Prefix(); p != "x:" {
		t.Errorf("Prefix() = %q, want x:", p)
	}
}

func typeName(s Store) string {
	switch s.(type) {
	case nil:
		return "<nil>"
	case *MemoryStore:
		return "*snapshot.MemoryStore"
	case *RedisStore:
		return "*snapshot.RedisStore"
	case *S3Store:
		return "*snapshot.S3Store"
	default:
		return "unknown"
	}
}
