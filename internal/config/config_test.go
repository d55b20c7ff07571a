package config

import (
	"bytes"
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/draglist/internal/errors"
	"github.com/vango-dev/draglist/pkg/server"
	"github.com/vango-dev/draglist/pkg/snapshot"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func wantCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %s, got nil", code)
	}
	var de *errors.DraglistError
	if !stderrors.As(err, &de) {
		t.Fatalf("expected *DraglistError, got %T: %v", err, err)
	}
	if de.Code != code {
		t.Errorf("Code = %q, want %q (%v)", de.Code, code, err)
	}
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.List.ID != DefaultListID {
		t.Errorf("List.ID = %q, want %q", cfg.List.ID, DefaultListID)
	}
	if len(cfg.List.Items) != len(DefaultItems) {
		t.Errorf("List.Items = %v, want %v", cfg.List.Items, DefaultItems)
	}
	if cfg.Snapshot.Backend != snapshot.BackendMemory {
		t.Errorf("Snapshot.Backend = %q", cfg.Snapshot.Backend)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should default to true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}

	// Defaults must not alias the package-level seed.
	cfg.List.Items[0] = "changed"
	if DefaultItems[0] == "changed" {
		t.Error("New() shares DefaultItems")
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	wantCode(t, err, errors.CodeConfigNotFound)

	writeFile(t, tmpDir, ConfigFileName, `{
  "server": {
    "port": 9090,
    "readTimeout": "5s",
    "checkOrigin": "any"
  },
  "list": {
    "id": "fruit",
    "items": ["a", "b", "c"]
  },
  "metrics": {
    "enabled": false
  }
}
`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.List.ID != "fruit" {
		t.Errorf("List.ID = %q, want fruit", cfg.List.ID)
	}
	if strings.Join(cfg.List.Items, ",") != "a,b,c" {
		t.Errorf("List.Items = %v, want [a b c]", cfg.List.Items)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be false")
	}
	// Defaults fill what the file leaves out.
	if cfg.Server.WriteTimeout != "10s" {
		t.Errorf("Server.WriteTimeout = %q, want 10s", cfg.Server.WriteTimeout)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if cfg.Path() != filepath.Join(tmpDir, ConfigFileName) {
		t.Errorf("Path() = %q", cfg.Path())
	}
}

func TestLoadTOML(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, TOMLFileName, `[server]
port = 7070
title = "Chores"

[list]
items = ["wash", "dry", "fold"]

[snapshot]
backend = "redis"
redisAddr = "localhost:6379"

[log]
level = "debug"
format = "json"
`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Port != 7070 || cfg.Server.Title != "Chores" {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if strings.Join(cfg.List.Items, ",") != "wash,dry,fold" {
		t.Errorf("List.Items = %v", cfg.List.Items)
	}
	if cfg.Snapshot.Backend != snapshot.BackendRedis || cfg.Snapshot.RedisAddr != "localhost:6379" {
		t.Errorf("Snapshot = %+v", cfg.Snapshot)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q", cfg.Log.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadPrefersJSON(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, ConfigFileName, `{"server": {"port": 1111}}`)
	writeFile(t, tmpDir, TOMLFileName, "[server]\nport = 2222\n")

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 1111 {
		t.Errorf("Server.Port = %d, want 1111 from %s", cfg.Server.Port, ConfigFileName)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		file     string
		content  string
		code     string
		wantLine int
	}{
		{"invalid json", "bad.json", "{\n  \"server\": {\n    \"port\": ,\n  }\n}\n", errors.CodeConfigSyntax, 3},
		{"wrong type", "type.json", "{\n  \"server\": {\"port\": \"eighty\"}\n}\n", errors.CodeConfigSyntax, 2},
		{"unknown field", "unknown.json", `{"colour": "red"}`, errors.CodeConfigSyntax, 0},
		{"invalid toml", "bad.toml", "[server]\nport = = 1\n", errors.CodeConfigSyntax, 2},
		{"unknown toml key", "extra.toml", "[server]\ncolour = \"red\"\n", errors.CodeConfigInvalid, 0},
		{"unsupported extension", "draglist.yaml", "server: {}\n", errors.CodeConfigFormat, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tmpDir, tt.file, tt.content)
			_, err := LoadFile(path)
			wantCode(t, err, tt.code)

			if tt.wantLine == 0 {
				return
			}
			var de *errors.DraglistError
			stderrors.As(err, &de)
			if de.Location == nil {
				t.Fatal("expected a location")
			}
			if de.Location.Line != tt.wantLine {
				t.Errorf("Location.Line = %d, want %d", de.Location.Line, tt.wantLine)
			}
		})
	}

	_, err := LoadFile(filepath.Join(tmpDir, "missing.json"))
	wantCode(t, err, errors.CodeConfigNotFound)
}

func TestSave(t *testing.T) {
	for _, name := range []string{ConfigFileName, TOMLFileName} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			cfg := New()
			if err := cfg.Save(); err == nil {
				t.Error("Save without a path should fail")
			}

			cfg.Server.Port = 4321
			cfg.List.Items = []string{"x", "y"}
			cfg.Snapshot.Backend = snapshot.BackendNone
			if err := cfg.SaveTo(path); err != nil {
				t.Fatalf("SaveTo error: %v", err)
			}
			if cfg.Path() != path {
				t.Errorf("Path() = %q, want %q", cfg.Path(), path)
			}

			loaded, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile error: %v", err)
			}
			if loaded.Server.Port != 4321 {
				t.Errorf("Server.Port = %d, want 4321", loaded.Server.Port)
			}
			if strings.Join(loaded.List.Items, ",") != "x,y" {
				t.Errorf("List.Items = %v", loaded.List.Items)
			}
			if loaded.Snapshot.Backend != snapshot.BackendNone {
				t.Errorf("Snapshot.Backend = %q", loaded.Snapshot.Backend)
			}

			loaded.Log.Level = "warn"
			if err := loaded.Save(); err != nil {
				t.Fatalf("Save error: %v", err)
			}
			again, err := LoadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if again.Log.Level != "warn" {
				t.Errorf("Log.Level = %q, want warn", again.Log.Level)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		code   string
	}{
		{"valid", func(*Config) {}, ""},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, errors.CodeConfigInvalid},
		{"negative port", func(c *Config) { c.Server.Port = -1 }, errors.CodeConfigInvalid},
		{"bad timeout", func(c *Config) { c.Server.ReadTimeout = "soon" }, errors.CodeConfigInvalid},
		{"negative timeout", func(c *Config) { c.Server.WriteTimeout = "-1s" }, errors.CodeConfigInvalid},
		{"bad origin policy", func(c *Config) { c.Server.CheckOrigin = "some" }, errors.CodeConfigInvalid},
		{"empty list", func(c *Config) { c.List.Items = []string{} }, errors.CodeConfigInvalid},
		{"duplicate item", func(c *Config) { c.List.Items = []string{"a", "b", "a"} }, errors.CodeConfigDuplicate},
		{"unknown backend", func(c *Config) { c.Snapshot.Backend = "etcd" }, errors.CodeSnapshotBackend},
		{"redis without addr", func(c *Config) { c.Snapshot.Backend = snapshot.BackendRedis }, errors.CodeConfigInvalid},
		{"s3 without bucket", func(c *Config) { c.Snapshot.Backend = snapshot.BackendS3 }, errors.CodeConfigInvalid},
		{"s3 with bucket", func(c *Config) {
			c.Snapshot.Backend = snapshot.BackendS3
			c.Snapshot.Bucket = "orders"
		}, ""},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, errors.CodeCLIInvalidLogFlag},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, errors.CodeCLIInvalidLogFlag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			wantCode(t, err, tt.code)
		})
	}
}

func TestValidate_DuplicateDetail(t *testing.T) {
	cfg := New()
	cfg.List.Items = []string{"a", "b", "a"}
	err := cfg.Validate()

	var de *errors.DraglistError
	if !stderrors.As(err, &de) {
		t.Fatalf("Validate() = %v", err)
	}
	if !strings.Contains(de.Detail, `list.items[2] "a" repeats list.items[0]`) {
		t.Errorf("Detail = %q", de.Detail)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvPort:     "9191",
		EnvLogLevel: "DEBUG",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := New()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("Server.Port = %d, want 9191", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}

	env[EnvPort] = "eighty"
	wantCode(t, New().ApplyEnv(lookup), errors.CodeConfigInvalid)

	untouched := New()
	if err := untouched.ApplyEnv(func(string) (string, bool) { return "", false }); err != nil {
		t.Fatal(err)
	}
	if untouched.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", untouched.Server.Port, DefaultPort)
	}
}

func TestServerConfig(t *testing.T) {
	cfg := New()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 3000
	cfg.Server.ReadTimeout = "5s"
	cfg.Server.CheckOrigin = "any"
	cfg.Tracing.TracerName = "orders"

	sc := cfg.ServerConfig()
	if sc.Address != "127.0.0.1:3000" {
		t.Errorf("Address = %q", sc.Address)
	}
	if sc.ReadTimeout != 5*time.Second {
		t.Errorf("ReadTimeout = %v", sc.ReadTimeout)
	}
	if sc.WriteTimeout != 10*time.Second {
		t.Errorf("WriteTimeout = %v", sc.WriteTimeout)
	}
	if sc.MaxMessageSize != 64*1024 {
		t.Errorf("MaxMessageSize = %d", sc.MaxMessageSize)
	}
	if sc.TracerName != "orders" {
		t.Errorf("TracerName = %q", sc.TracerName)
	}
	if sc.CheckOrigin == nil {
		t.Fatal("CheckOrigin is nil")
	}
	if !sc.CheckOrigin(nil) {
		t.Error("checkOrigin \"any\" should accept every request")
	}

	if got := New().ServerConfig().Address; got != ":8080" {
		t.Errorf("default Address = %q, want :8080", got)
	}
	if New().ServerConfig().HeartbeatInterval != server.DefaultConfig().HeartbeatInterval {
		t.Error("HeartbeatInterval should keep the server default")
	}
}

func TestSnapshotConfig(t *testing.T) {
	cfg := New()
	cfg.Snapshot = SnapshotConfig{
		Backend:  snapshot.BackendS3,
		Bucket:   "orders",
		Prefix:   "lists/",
		Region:   "eu-west-1",
		Endpoint: "http://localhost:9000",
	}
	sc := cfg.SnapshotConfig()
	if sc.Backend != snapshot.BackendS3 || sc.Bucket != "orders" || sc.Prefix != "lists/" ||
		sc.Region != "eu-west-1" || sc.Endpoint != "http://localhost:9000" {
		t.Errorf("SnapshotConfig() = %+v", sc)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := New()
	cfg.Log.Format = "json"
	cfg.Log.Level = "warn"

	logger := cfg.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "component", "test")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record logged at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("expected JSON record, got %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		err  bool
	}{
		{"debug", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseLevel(%q) error = %v, want error %v", tt.in, err, tt.err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()
	if Exists(tmpDir) {
		t.Error("Exists() = true for empty dir")
	}
	writeFile(t, tmpDir, TOMLFileName, "")
	if !Exists(tmpDir) {
		t.Error("Exists() = false with draglist.toml present")
	}
}

func TestLineColumn(t *testing.T) {
	data := []byte("ab\ncd\nef")
	tests := []struct {
		offset    int64
		line, col int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{7, 3, 2},
		{100, 3, 3},
	}
	for _, tt := range tests {
		line, col := lineColumn(data, tt.offset)
		if line != tt.line || col != tt.col {
			t.Errorf("lineColumn(%d) = %d:%d, want %d:%d", tt.offset, line, col, tt.line, tt.col)
		}
	}
}
