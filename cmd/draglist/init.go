package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/draglist/internal/config"
	"github.com/vango-dev/draglist/internal/errors"
)

func initCmd() *cobra.Command {
	var (
		format string
		force  bool
		items  []string
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default configuration file",
		Long: `Write draglist.json (or draglist.toml with --format toml) into dir,
defaulting to the current directory.

Examples:
  draglist init
  draglist init --format toml --items wash,dry,fold
  draglist init ./deploy --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(cmd, dir, format, force, items)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Config format: json or toml")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration")
	cmd.Flags().StringSliceVar(&items, "items", nil, "Initial list items (comma separated)")
	return cmd
}

func runInit(cmd *cobra.Command, dir, format string, force bool, items []string) error {
	var name string
	switch format {
	case "json":
		name = config.ConfigFileName
	case "toml":
		name = config.TOMLFileName
	default:
		return errors.New(errors.CodeConfigFormat).
			WithDetail("--format must be json or toml, got " + format)
	}

	if !force && config.Exists(dir) {
		return errors.New(errors.CodeCLIConfigExists).
			WithDetail("A configuration file already exists in " + dir)
	}

	cfg := config.New()
	if len(items) > 0 {
		cfg.List.Items = items
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.New(errors.CodeConfigWrite).Wrap(err)
	}
	path := filepath.Join(dir, name)
	if err := cfg.SaveTo(path); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	success(out, "Created %s", path)
	info(out, "Run 'draglist serve' to start the server")
	return nil
}
