package migration

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockExecutor(t *testing.T) (*SQLiteExecutor, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	executor := NewSQLiteExecutor(db)
	fixed := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)
	executor.now = func() time.Time { return fixed }
	return executor, mock
}

func TestSQLiteExecutor_InitializeVersionTable(t *testing.T) {
	executor, mock := newMockExecutor(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, executor.InitializeVersionTable(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteExecutor_ExecuteMigration(t *testing.T) {
	migration := Migration{
		Version:  "001",
		FilePath: "migrations/001_create_roster.sql",
		SQL:      "CREATE TABLE a (id INTEGER);\nCREATE TABLE b (id INTEGER);",
		Checksum: "abc",
	}

	t.Run("runs statements and records the version in one transaction", func(t *testing.T) {
		executor, mock := newMockExecutor(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE a (id INTEGER)")).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE b (id INTEGER)")).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schema_migrations")).
			WithArgs("001", "2025-03-03T09:00:00Z", "abc", int64(0)).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		require.NoError(t, executor.ExecuteMigration(context.Background(), migration))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when a statement fails", func(t *testing.T) {
		executor, mock := newMockExecutor(t)
		boom := errors.New("syntax error")

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE a (id INTEGER)")).WillReturnError(boom)
		mock.ExpectRollback()

		err := executor.ExecuteMigration(context.Background(), migration)
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)

		var dbErr *DatabaseError
		require.ErrorAs(t, err, &dbErr)
		assert.Equal(t, "001", dbErr.Version)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSQLiteExecutor_AppliedMigrations(t *testing.T) {
	executor, mock := newMockExecutor(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT version, applied_at")).
		WillReturnRows(sqlmock.NewRows([]string{"version", "applied_at", "checksum", "execution_time_ms"}).
			AddRow("001", "2025-03-03T09:00:00Z", "abc", int64(12)))

	applied, err := executor.AppliedMigrations(context.Background())
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, "001", applied[0].Version)
	assert.Equal(t, 12*time.Millisecond, applied[0].ExecutionTime)
	assert.Equal(t, time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC), applied[0].AppliedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}
