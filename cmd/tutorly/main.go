package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tutorly/roster/internal/application"
	"github.com/tutorly/roster/internal/cli"
	"github.com/tutorly/roster/internal/config"
	"github.com/tutorly/roster/internal/logging"
	"github.com/tutorly/roster/internal/persistence/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run loads configuration, opens and migrates the database, restores the
// roster and drives the shell until exit or end of input.
func run(ctx context.Context, in io.Reader, out, errOut io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.New(errOut, cfg.LogLevel, cfg.LogFormat)
	if cfg.EnvFile != "" {
		logger.Info("loaded environment file", "path", cfg.EnvFile)
	}

	storageConfig := sqlite.DefaultConfig(cfg.DatabaseDSN)
	storage, err := sqlite.OpenWithConfig(storageConfig, logger)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := storage.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	store := application.NewRosterStoreWithLogger(storage, logger)
	r, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}

	if r.Len() == 0 && cfg.SeedSample {
		r, err = application.RestoreRoster(ctx, application.SampleRecords(), logger)
		if err != nil {
			return fmt.Errorf("failed to build sample roster: %w", err)
		}
		if err := store.Save(ctx, r); err != nil {
			return fmt.Errorf("failed to seed sample roster: %w", err)
		}
		logger.Info("seeded sample roster", "persons", r.Len())
	}

	shell := cli.NewShell(r, cli.Options{Store: store, Logger: logger})
	logger.Info("roster shell ready", "dsn", cfg.DatabaseDSN, "persons", r.Len())
	if err := shell.Run(ctx, in, out); err != nil {
		return fmt.Errorf("shell stopped: %w", err)
	}
	logger.Debug("roster shell exited")
	return nil
}
