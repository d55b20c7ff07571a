package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/draglist/internal/config"
	"github.com/vango-dev/draglist/internal/errors"
	"github.com/vango-dev/draglist/pkg/metrics"
	"github.com/vango-dev/draglist/pkg/server"
	"github.com/vango-dev/draglist/pkg/snapshot"
)

// restoreTimeout bounds loading the stored order at startup.
const restoreTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var (
		configPath string
		port       int
		host       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the reorderable list",
		Long: `Serve the list over HTTP with a WebSocket per browser tab.

Configuration is read from --config, or from draglist.json or
draglist.toml in the current directory. Without either the built-in
defaults are used. DRAGLIST_PORT and DRAGLIST_LOG_LEVEL override the
file; flags override both.

Examples:
  draglist serve
  draglist serve --config deploy/draglist.toml
  draglist serve --port 9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to draglist.json or draglist.toml")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	return cmd
}

// loadConfig reads path, or the working directory's config when path is
// empty, then applies environment overrides.
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case path != "":
		cfg, err = config.LoadFile(path)
	case config.Exists("."):
		cfg, err = config.Load(".")
	default:
		cfg = config.New()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger := cfg.Logger(os.Stderr)
	slog.SetDefault(logger)
	log := logger.With("component", "cli")

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.New(metrics.WithNamespace(cfg.Metrics.Namespace))
	}

	store, err := snapshot.Open(cfg.SnapshotConfig())
	if err != nil {
		return errors.New(errors.CodeSnapshotBackend).Wrap(err)
	}
	if store != nil {
		defer store.Close()
	}

	order := server.NewOrder(cfg.List.ID, cfg.List.Items, store, cfg.Snapshot.Backend, collector)
	restoreCtx, cancel := context.WithTimeout(ctx, restoreTimeout)
	err = order.Restore(restoreCtx)
	cancel()
	if err != nil {
		return errors.New(errors.CodeSnapshotFailed).
			WithSuggestion("Set snapshot.backend to \"memory\" to run without persistence").
			Wrap(err)
	}

	srv := server.New(cfg.ServerConfig(), order,
		server.WithMetrics(collector),
		server.WithLogger(logger.With("component", "server")),
	)

	log.Info("serving list",
		"address", cfg.Address(),
		"list", cfg.List.ID,
		"items", len(order.Items()),
		"snapshot", cfg.Snapshot.Backend,
		"metrics", cfg.Metrics.Enabled,
	)
	if err := srv.Run(ctx); err != nil {
		return errors.New(errors.CodeServerListen).Wrap(err)
	}
	return nil
}
