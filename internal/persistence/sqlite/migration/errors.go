package migration

import (
	"errors"
	"fmt"
)

var (
	// ErrMigrationFailed is wrapped by the manager when applying a pending file fails.
	ErrMigrationFailed = errors.New("migration: execution failed")
	// ErrInvalidMigrationFile marks a file whose name or content cannot be used.
	ErrInvalidMigrationFile = errors.New("migration: invalid migration file")
	// ErrDuplicateVersion marks two files that resolve to the same version.
	ErrDuplicateVersion = errors.New("migration: duplicate version")
	// ErrVersionConflict marks a recorded version with no matching file.
	ErrVersionConflict = errors.New("migration: version conflict")
)

// MigrationError describes a failure tied to one migration file.
type MigrationError struct {
	Version   string
	FilePath  string
	Operation string
	Err       error
}

func (e *MigrationError) Error() string {
	subject := "migrations"
	if e.Version != "" {
		subject = "migration " + e.Version
	}
	return fmt.Sprintf("%s (%s): %s: %v", subject, e.FilePath, e.Operation, e.Err)
}

func (e *MigrationError) Unwrap() error { return e.Err }

// NewMigrationError builds a MigrationError. version may be empty when the
// file name could not be parsed.
func NewMigrationError(version, filePath, operation string, err error) *MigrationError {
	return &MigrationError{Version: version, FilePath: filePath, Operation: operation, Err: err}
}

// DatabaseError describes a failed statement against the roster database.
// Query holds the statement when one is known.
type DatabaseError struct {
	Version   string
	Query     string
	Operation string
	Err       error
}

func (e *DatabaseError) Error() string {
	if e.Version == "" {
		return fmt.Sprintf("migration database: %s: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("migration %s database: %s: %v", e.Version, e.Operation, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// NewDatabaseError builds a DatabaseError.
func NewDatabaseError(version, query, operation string, err error) *DatabaseError {
	return &DatabaseError{Version: version, Query: query, Operation: operation, Err: err}
}
