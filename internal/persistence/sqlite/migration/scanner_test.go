package migration

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSScanner_ScanMigrations(t *testing.T) {
	t.Run("orders migrations by numeric version", func(t *testing.T) {
		fsys := fstest.MapFS{
			"migrations/010_add_index.sql":     {Data: []byte("CREATE INDEX idx ON persons(name);")},
			"migrations/002_add_sessions.sql":  {Data: []byte("-- sessions\nCREATE TABLE sessions (id INTEGER);")},
			"migrations/001_create_roster.sql": {Data: []byte("CREATE TABLE persons (id INTEGER);")},
			"migrations/README.md":             {Data: []byte("not a migration")},
		}

		migrations, err := NewFSScanner(fsys, "migrations").ScanMigrations()
		require.NoError(t, err)
		require.Len(t, migrations, 3)

		assert.Equal(t, "001", migrations[0].Version)
		assert.Equal(t, "create roster", migrations[0].Description)
		assert.Equal(t, "002", migrations[1].Version)
		assert.Equal(t, "010", migrations[2].Version)
		assert.Len(t, migrations[0].Checksum, 64)
	})

	t.Run("rejects malformed file names", func(t *testing.T) {
		fsys := fstest.MapFS{
			"migrations/create roster.sql": {Data: []byte("CREATE TABLE persons (id INTEGER);")},
		}

		_, err := NewFSScanner(fsys, "migrations").ScanMigrations()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidMigrationFile), "got %v", err)
	})

	t.Run("rejects duplicate versions", func(t *testing.T) {
		fsys := fstest.MapFS{
			"migrations/001_first.sql":  {Data: []byte("CREATE TABLE a (id INTEGER);")},
			"migrations/1_second.sql":   {Data: []byte("CREATE TABLE b (id INTEGER);")},
		}

		_, err := NewFSScanner(fsys, "migrations").ScanMigrations()
		assert.ErrorIs(t, err, ErrDuplicateVersion)
	})

	t.Run("rejects comment-only files", func(t *testing.T) {
		fsys := fstest.MapFS{
			"migrations/001_empty.sql": {Data: []byte("-- nothing here\n")},
		}

		_, err := NewFSScanner(fsys, "migrations").ScanMigrations()
		assert.ErrorIs(t, err, ErrInvalidMigrationFile)
	})
}

func TestSplitStatements(t *testing.T) {
	statements := splitStatements(`
-- Description: roster tables
CREATE TABLE a (id INTEGER);

CREATE TABLE b (
	id INTEGER -- trailing comments stay
);
`)

	require.Len(t, statements, 2)
	assert.Equal(t, "CREATE TABLE a (id INTEGER)", statements[0])
	assert.Contains(t, statements[1], "CREATE TABLE b (")
}
