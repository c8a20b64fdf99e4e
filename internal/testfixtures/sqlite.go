package testfixtures

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/tutorly/roster/internal/persistence"
	"github.com/tutorly/roster/internal/persistence/sqlite"
)

// SQLiteHarness is a migrated roster database in a per-test temporary
// directory. It is closed automatically when the test ends.
type SQLiteHarness struct {
	Roster  persistence.RosterRepository
	Storage *sqlite.Storage
	Path    string
}

// NewSQLiteHarness opens and migrates a fresh database file.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "roster.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	storage, err := sqlite.OpenWithConfig(sqlite.DefaultConfig(path), logger)
	if err != nil {
		tb.Fatalf("open roster database: %v", err)
	}
	tb.Cleanup(func() { _ = storage.Close() })

	if err := storage.Migrate(context.Background()); err != nil {
		tb.Fatalf("migrate roster database: %v", err)
	}

	return &SQLiteHarness{Roster: storage, Storage: storage, Path: path}
}

// Seed stores fixtures as the whole roster, in order.
func (h *SQLiteHarness) Seed(tb testing.TB, fixtures ...PersonFixture) []persistence.PersonRecord {
	tb.Helper()
	records := make([]persistence.PersonRecord, len(fixtures))
	for i, f := range fixtures {
		records[i] = f.Record()
		if records[i].ID == 0 {
			records[i].ID = i + 1
		}
	}
	if err := h.Roster.SavePersons(context.Background(), records); err != nil {
		tb.Fatalf("seed roster database: %v", err)
	}
	return records
}
