package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/vango-dev/draglist/internal/errors"
	"github.com/vango-dev/draglist/pkg/reorder"
	"github.com/vango-dev/draglist/pkg/server"
	"github.com/vango-dev/draglist/pkg/snapshot"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "draglist.json"

	// TOMLFileName is the name of the TOML configuration file.
	TOMLFileName = "draglist.toml"

	// DefaultPort is the default server port.
	DefaultPort = 8080

	// DefaultHost is the default bind host. Empty binds all interfaces.
	DefaultHost = ""

	// DefaultListID is the id of the served list.
	DefaultListID = "draglist"
)

// Environment variables that override file values.
const (
	EnvPort     = "DRAGLIST_PORT"
	EnvLogLevel = "DRAGLIST_LOG_LEVEL"
)

// DefaultItems seeds the demo list.
var DefaultItems = []string{"Apples", "Bananas", "Cherries", "Dates", "Elderberries"}

// Config represents the complete draglist.json configuration.
type Config struct {
	Server   ServerConfig   `json:"server" toml:"server"`
	List     ListConfig     `json:"list" toml:"list"`
	Snapshot SnapshotConfig `json:"snapshot" toml:"snapshot"`
	Metrics  MetricsConfig  `json:"metrics" toml:"metrics"`
	Tracing  TracingConfig  `json:"tracing" toml:"tracing"`
	Log      LogConfig      `json:"log" toml:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP and WebSocket settings.
type ServerConfig struct {
	// Host is the interface to bind to.
	Host string `json:"host,omitempty" toml:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" toml:"port,omitempty"`

	// Title is the index page heading.
	Title string `json:"title,omitempty" toml:"title,omitempty"`

	// ReadTimeout is how long a session may stay silent (e.g., "60s").
	ReadTimeout string `json:"readTimeout,omitempty" toml:"readTimeout,omitempty"`

	// WriteTimeout bounds each frame write (e.g., "10s").
	WriteTimeout string `json:"writeTimeout,omitempty" toml:"writeTimeout,omitempty"`

	// MaxMessageSize is the largest accepted client frame in bytes.
	MaxMessageSize int64 `json:"maxMessageSize,omitempty" toml:"maxMessageSize,omitempty"`

	// CheckOrigin is "same" (default) or "any".
	CheckOrigin string `json:"checkOrigin,omitempty" toml:"checkOrigin,omitempty"`
}

// ListConfig describes the served list.
type ListConfig struct {
	// ID is the DOM id of the list and its snapshot key.
	ID string `json:"id,omitempty" toml:"id,omitempty"`

	// Items is the initial order. Items must be unique.
	Items []string `json:"items,omitempty" toml:"items,omitempty"`
}

// SnapshotConfig selects where committed orders are persisted.
type SnapshotConfig struct {
	// Backend is one of none, memory, redis or s3.
	Backend string `json:"backend,omitempty" toml:"backend,omitempty"`

	Bucket   string `json:"bucket,omitempty" toml:"bucket,omitempty"`
	Prefix   string `json:"prefix,omitempty" toml:"prefix,omitempty"`
	Region   string `json:"region,omitempty" toml:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty" toml:"endpoint,omitempty"`

	RedisAddr      string `json:"redisAddr,omitempty" toml:"redisAddr,omitempty"`
	RedisKeyPrefix string `json:"redisKeyPrefix,omitempty" toml:"redisKeyPrefix,omitempty"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled" toml:"enabled"`
	Namespace string `json:"namespace,omitempty" toml:"namespace,omitempty"`
}

// TracingConfig names the OpenTelemetry tracer.
type TracingConfig struct {
	TracerName string `json:"tracerName,omitempty" toml:"tracerName,omitempty"`
}

// LogConfig configures the slog handler built by the CLI.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty" toml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" toml:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           DefaultHost,
			Port:           DefaultPort,
			Title:          "draglist",
			ReadTimeout:    "60s",
			WriteTimeout:   "10s",
			MaxMessageSize: 64 * 1024,
			CheckOrigin:    "same",
		},
		List: ListConfig{
			ID:    DefaultListID,
			Items: append([]string(nil), DefaultItems...),
		},
		Snapshot: SnapshotConfig{
			Backend: snapshot.BackendMemory,
			Prefix:  "draglist/",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "draglist",
		},
		Tracing: TracingConfig{
			TracerName: "draglist",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for draglist.json first, then draglist.toml.
func Load(dir string) (*Config, error) {
	for _, name := range []string{ConfigFileName, TOMLFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New(errors.CodeConfigNotFound).
		WithDetail("No " + ConfigFileName + " or " + TOMLFileName + " found in " + dir).
		WithSuggestion("Run 'draglist init' to create one")
}

// LoadFile reads configuration from the specified file path. The format is
// chosen by extension.
func LoadFile(path string) (*Config, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".json" && ext != ".toml" {
		return nil, errors.New(errors.CodeConfigFormat).
			WithDetail(fmt.Sprintf("%s has extension %q; expected .json or .toml", path, ext))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeConfigNotFound).
				WithDetail("No configuration file at " + path).
				WithSuggestion("Run 'draglist init' to create one")
		}
		return nil, errors.New(errors.CodeConfigSyntax).Wrap(err)
	}

	cfg := New()
	// Items given in the file replace the defaults rather than merging.
	cfg.List.Items = nil

	if ext == ".toml" {
		err = decodeTOML(path, data, cfg)
	} else {
		err = decodeJSON(path, data, cfg)
	}
	if err != nil {
		return nil, err
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

func decodeJSON(path string, data []byte, cfg *Config) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err := dec.Decode(cfg)
	if err == nil {
		return nil
	}

	var offset int64 = -1
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case stderrors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case stderrors.As(err, &typeErr):
		offset = typeErr.Offset
	}

	de := errors.New(errors.CodeConfigSyntax).
		WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
		WithSuggestion("Check that the file is valid JSON").
		Wrap(err)
	if offset >= 0 {
		line, col := lineColumn(data, offset)
		de.WithLocation(path, line, col)
	}
	return de
}

func decodeTOML(path string, data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		de := errors.New(errors.CodeConfigSyntax).
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid TOML").
			Wrap(err)
		var pe toml.ParseError
		if stderrors.As(err, &pe) && pe.Position.Line > 0 {
			de.WithLocation(path, pe.Position.Line, 0)
		}
		return de
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("Unknown keys in " + filepath.Base(path) + ": " + strings.Join(keys, ", "))
	}
	return nil
}

// lineColumn converts a byte offset into a 1-based line and column.
func lineColumn(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col := 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path, as TOML when path ends in .toml
// and as JSON otherwise.
func (c *Config) SaveTo(path string) error {
	var buf bytes.Buffer
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return errors.New(errors.CodeConfigWrite).Wrap(err)
		}
	} else {
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return errors.New(errors.CodeConfigWrite).Wrap(err)
		}
		buf.Write(data)
		buf.WriteByte('\n')
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.New(errors.CodeConfigWrite).Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	d := New()

	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.Title == "" {
		c.Server.Title = d.Server.Title
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = d.Server.ReadTimeout
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = d.Server.WriteTimeout
	}
	if c.Server.MaxMessageSize == 0 {
		c.Server.MaxMessageSize = d.Server.MaxMessageSize
	}
	if c.Server.CheckOrigin == "" {
		c.Server.CheckOrigin = d.Server.CheckOrigin
	}

	if c.List.ID == "" {
		c.List.ID = d.List.ID
	}
	if c.List.Items == nil {
		c.List.Items = d.List.Items
	}

	if c.Snapshot.Backend == "" {
		c.Snapshot.Backend = d.Snapshot.Backend
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = d.Metrics.Namespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = d.Tracing.TracerName
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
}

// ApplyEnv overrides values from environment variables found by lookup
// (typically os.LookupEnv).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.New(errors.CodeConfigInvalid).
				WithDetail(fmt.Sprintf("%s=%q is not a port number", EnvPort, v)).
				Wrap(err)
		}
		c.Server.Port = port
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New(errors.CodeConfigInvalid).
			WithDetail(fmt.Sprintf("server.port must be between 0 and 65535, got %d", c.Server.Port))
	}
	if _, err := c.ReadTimeout(); err != nil {
		return err
	}
	if _, err := c.WriteTimeout(); err != nil {
		return err
	}
	if c.Server.MaxMessageSize < 0 {
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("server.maxMessageSize must not be negative")
	}
	switch c.Server.CheckOrigin {
	case "same", "any":
	default:
		return errors.New(errors.CodeConfigInvalid).
			WithDetail(fmt.Sprintf("server.checkOrigin must be \"same\" or \"any\", got %q", c.Server.CheckOrigin))
	}

	if len(c.List.Items) == 0 {
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("list.items must name at least one item")
	}
	if err := reorder.Validate(c.List.Items); err != nil {
		var dup *reorder.DuplicateItemError
		if stderrors.As(err, &dup) {
			return errors.New(errors.CodeConfigDuplicate).
				WithDetail(fmt.Sprintf("list.items[%d] %q repeats list.items[%d]",
					dup.Index, c.List.Items[dup.Index], dup.Previous)).
				Wrap(err)
		}
		return errors.New(errors.CodeConfigInvalid).Wrap(err)
	}

	switch c.Snapshot.Backend {
	case snapshot.BackendNone, snapshot.BackendMemory:
	case snapshot.BackendRedis:
		if c.Snapshot.RedisAddr == "" {
			return errors.New(errors.CodeConfigInvalid).
				WithDetail("snapshot.redisAddr is required for the redis backend")
		}
	case snapshot.BackendS3:
		if c.Snapshot.Bucket == "" {
			return errors.New(errors.CodeConfigInvalid).
				WithDetail("snapshot.bucket is required for the s3 backend")
		}
	default:
		return errors.New(errors.CodeSnapshotBackend).
			WithDetail(fmt.Sprintf("snapshot.backend %q is not one of none, memory, redis, s3", c.Snapshot.Backend))
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New(errors.CodeCLIInvalidLogFlag).
			WithDetail(fmt.Sprintf("log.format %q is not text or json", c.Log.Format))
	}
	return nil
}

// Address returns the listen address.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// ReadTimeout parses server.readTimeout.
func (c *Config) ReadTimeout() (time.Duration, error) {
	return parseDuration("server.readTimeout", c.Server.ReadTimeout)
}

// WriteTimeout parses server.writeTimeout.
func (c *Config) WriteTimeout() (time.Duration, error) {
	return parseDuration("server.writeTimeout", c.Server.WriteTimeout)
}

func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return 0, errors.New(errors.CodeConfigInvalid).
			WithDetail(fmt.Sprintf("%s %q is not a duration like \"30s\"", field, value)).
			Wrap(err)
	}
	return d, nil
}

// ServerConfig converts the file settings into a server.Config.
// Call Validate first; unparsable durations fall back to server defaults.
func (c *Config) ServerConfig() *server.Config {
	sc := server.DefaultConfig()
	sc.Address = c.Address()
	sc.Title = c.Server.Title
	if d, err := c.ReadTimeout(); err == nil && d > 0 {
		sc.ReadTimeout = d
	}
	if d, err := c.WriteTimeout(); err == nil && d > 0 {
		sc.WriteTimeout = d
	}
	if c.Server.MaxMessageSize > 0 {
		sc.MaxMessageSize = c.Server.MaxMessageSize
	}
	if c.Server.CheckOrigin == "any" {
		sc.CheckOrigin = server.AllowAllOrigins
	}
	sc.TracerName = c.Tracing.TracerName
	return sc
}

// SnapshotConfig converts the file settings into a snapshot.Config.
func (c *Config) SnapshotConfig() snapshot.Config {
	return snapshot.Config{
		Backend:        c.Snapshot.Backend,
		Bucket:         c.Snapshot.Bucket,
		Prefix:         c.Snapshot.Prefix,
		Region:         c.Snapshot.Region,
		Endpoint:       c.Snapshot.Endpoint,
		RedisAddr:      c.Snapshot.RedisAddr,
		RedisKeyPrefix: c.Snapshot.RedisKeyPrefix,
	}
}

// ParseLevel maps a log.level value to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.New(errors.CodeCLIInvalidLogFlag).
			WithDetail(fmt.Sprintf("log.level %q is not debug, info, warn or error", level))
	}
}

// Logger builds the slog.Logger described by the log section.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, _ := ParseLevel(c.Log.Level)
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range []string{ConfigFileName, TOMLFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}
