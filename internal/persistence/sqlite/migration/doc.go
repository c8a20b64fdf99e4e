// Package migration applies versioned SQL migrations to a SQLite database.
//
// Migrations are read from an fs.FS (normally an embed.FS compiled into the
// binary) and must be named {version}_{description}.sql, for example
// "001_create_roster.sql". Each migration runs in its own transaction and is
// recorded in the schema_migrations table in that same transaction, so a
// failed migration leaves neither its changes nor its version behind.
//
// Example usage:
//
//	manager := NewManager(NewFSScanner(migrations, "migrations"), NewSQLiteExecutor(db), logger)
//	if err := manager.RunMigrations(ctx); err != nil {
//		return err
//	}
package migration
