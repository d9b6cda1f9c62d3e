// Package cli wires the core packages into the liftlog command. It calls
// only exported store, search, seed, and importer APIs; everything here is
// presentation glue.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/liftlog/liftlog/internal/config"
	"github.com/liftlog/liftlog/internal/storage"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	ConfigPath string
	DBPath     string // overrides the configured store path
}

// NewRootCommand creates the root command for the liftlog CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "liftlog",
		Short:         "liftlog - local workout log",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "config.yaml", "path to config file")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "override the store file path")

	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewWorkoutCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewExercisesCommand(opts))

	return cmd
}

// openStore loads config, sets up logging, and opens the store with
// migrations applied. Every subcommand starts here.
func openStore(opts *RootOptions) (*storage.DB, *config.Config, *slog.Logger, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if opts.DBPath != "" {
		cfg.Database.Path = opts.DBPath
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.Log.Level),
	}))

	db, err := storage.Open(cfg.Database.Path, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening store: %w", err)
	}
	return db, cfg, log, nil
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
