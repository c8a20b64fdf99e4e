// Package sqlite stores the roster in a SQLite database through sqlx.
package sqlite

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/tutorly/roster/internal/persistence"
	"github.com/tutorly/roster/internal/persistence/sqlite/migration"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const driverName = "sqlite"

func init() {
	// modernc registers as "sqlite", which sqlx does not know by default.
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

// Storage implements persistence.RosterRepository on SQLite.
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

var _ persistence.RosterRepository = (*Storage)(nil)

// Open connects to the database at dsn with DefaultConfig.
func Open(dsn string) (*Storage, error) {
	return OpenWithConfig(DefaultConfig(dsn), nil)
}

// OpenWithConfig connects with explicit settings. A nil logger falls back to slog.Default.
func OpenWithConfig(cfg Config, logger *slog.Logger) (*Storage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid SQLite configuration: %w", err)
	}

	db, err := sqlx.Open(driverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// One connection keeps per-connection pragmas and in-memory databases stable.
	db.SetMaxOpenConns(1)

	for _, pragma := range cfg.pragmas() {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to configure SQLite database (%s): %w", pragma, err)
		}
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return NewStorage(db, logger), nil
}

// NewStorage wraps an already opened database.
func NewStorage(db *sqlx.DB, logger *slog.Logger) *Storage {
	if logger == nil {
		logger = slog.Default()
	}
	return &Storage{db: db, logger: logger.With("component", "sqlite")}
}

// Close releases the underlying connection.
func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Migrate applies the embedded schema migrations that have not run yet.
func (s *Storage) Migrate(ctx context.Context) error {
	manager := migration.NewManager(
		migration.NewFSScanner(migrationFiles, "migrations"),
		migration.NewSQLiteExecutor(s.db.DB),
		s.logger,
	)
	if err := manager.RunMigrations(ctx); err != nil {
		return fmt.Errorf("sqlite: migrate: %w", err)
	}
	return nil
}

// withTransaction runs fn in a transaction, rolling back when fn fails.
func (s *Storage) withTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction failed (rollback error: %v): %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
