package sqlite

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorly/roster/internal/persistence"
)

func newMockStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewStorage(sqlx.NewDb(db, driverName), logger), mock
}

func TestStorage_LoadPersons(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, role, name")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "role", "name", "phone", "email", "address", "subject", "level", "price", "matched_id"}).
			AddRow(4, "tutor", "Alex Yeoh", "87438807", "alex@example.com", "Blk 30", "Mathematics", "2-5", "30-45", 9).
			AddRow(9, "student", "David Li", "91031282", "david@example.com", "Blk 436", "Mathematics", "3", "40", 4))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT person_id, tag FROM person_tags")).
		WillReturnRows(sqlmock.NewRows([]string{"person_id", "tag"}).
			AddRow(4, "weekends").
			AddRow(4, "patient"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT person_id, day, start_time")).
		WillReturnRows(sqlmock.NewRows([]string{"person_id", "day", "start_time", "duration_minutes", "subject", "price"}).
			AddRow(4, "MONDAY", "17:00", 90, "Mathematics", 40).
			AddRow(9, "MONDAY", "17:00", 90, "Mathematics", 40))

	records, err := storage.LoadPersons(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 4, records[0].ID)
	assert.Equal(t, []string{"weekends", "patient"}, records[0].Tags)
	assert.Equal(t, 9, records[0].MatchedID)
	require.NotNil(t, records[0].Session)
	assert.Equal(t, persistence.SessionRecord{Day: "MONDAY", Time: "17:00", DurationMinutes: 90, Subject: "Mathematics", Price: 40}, *records[0].Session)

	assert.Equal(t, "student", records[1].Role)
	assert.Nil(t, records[1].Tags)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_LoadPersonsQueryFailure(t *testing.T) {
	storage, mock := newMockStorage(t)
	boom := errors.New("disk I/O error")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, role, name")).WillReturnError(boom)

	_, err := storage.LoadPersons(context.Background())
	assert.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_SavePersons(t *testing.T) {
	records := []persistence.PersonRecord{
		{
			ID: 4, Role: "tutor", Name: "Alex Yeoh", Phone: "87438807", Email: "alex@example.com", Address: "Blk 30",
			Tags: []string{"weekends"}, Subject: "Mathematics", Level: "2-5", Price: "30-45", MatchedID: 9,
			Session: &persistence.SessionRecord{Day: "MONDAY", Time: "17:00", DurationMinutes: 90, Subject: "Mathematics", Price: 40},
		},
		{ID: 9, Role: "student", Name: "David Li", Phone: "91031282", Email: "david@example.com", Address: "Blk 436",
			Subject: "Mathematics", Level: "3", Price: "40"},
	}

	expectClear := func(mock sqlmock.Sqlmock) {
		mock.ExpectExec(regexp.QuoteMeta(deleteSessionsSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta(deleteTagsSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta(deletePersonsSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	t.Run("replaces the snapshot in one transaction", func(t *testing.T) {
		storage, mock := newMockStorage(t)

		mock.ExpectBegin()
		expectClear(mock)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO persons")).
			WithArgs(4, 0, "tutor", "Alex Yeoh", "87438807", "alex@example.com", "Blk 30", "Mathematics", "2-5", "30-45", 9).
			WillReturnResult(sqlmock.NewResult(4, 1))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO person_tags")).
			WithArgs(4, 0, "weekends").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sessions")).
			WithArgs(4, "MONDAY", "17:00", 90, "Mathematics", 40).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO persons")).
			WithArgs(9, 1, "student", "David Li", "91031282", "david@example.com", "Blk 436", "Mathematics", "3", "40", 0).
			WillReturnResult(sqlmock.NewResult(9, 1))
		mock.ExpectCommit()

		require.NoError(t, storage.SavePersons(context.Background(), records))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when an insert fails", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		boom := errors.New("UNIQUE constraint failed: persons.id")

		mock.ExpectBegin()
		expectClear(mock)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO persons")).WillReturnError(boom)
		mock.ExpectRollback()

		err := storage.SavePersons(context.Background(), records)
		assert.ErrorIs(t, err, boom)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects records without an id before touching the database", func(t *testing.T) {
		storage, mock := newMockStorage(t)

		err := storage.SavePersons(context.Background(), []persistence.PersonRecord{{Role: "tutor"}})
		assert.ErrorIs(t, err, persistence.ErrCorruptRecord)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
