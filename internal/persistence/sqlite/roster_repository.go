package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/tutorly/roster/internal/persistence"
)

const (
	selectPersonsSQL = `SELECT id, role, name, phone, email, address, subject, level, price, matched_id
FROM persons ORDER BY position ASC`
	selectTagsSQL     = `SELECT person_id, tag FROM person_tags ORDER BY person_id ASC, position ASC`
	selectSessionsSQL = `SELECT person_id, day, start_time, duration_minutes, subject, price FROM sessions`

	deleteSessionsSQL = `DELETE FROM sessions`
	deleteTagsSQL     = `DELETE FROM person_tags`
	deletePersonsSQL  = `DELETE FROM persons`

	insertPersonSQL = `INSERT INTO persons (id, position, role, name, phone, email, address, subject, level, price, matched_id)
VALUES (:id, :position, :role, :name, :phone, :email, :address, :subject, :level, :price, :matched_id)`
	insertTagSQL     = `INSERT INTO person_tags (person_id, position, tag) VALUES (?, ?, ?)`
	insertSessionSQL = `INSERT INTO sessions (person_id, day, start_time, duration_minutes, subject, price)
VALUES (:person_id, :day, :start_time, :duration_minutes, :subject, :price)`
)

type personRow struct {
	ID        int    `db:"id"`
	Position  int    `db:"position"`
	Role      string `db:"role"`
	Name      string `db:"name"`
	Phone     string `db:"phone"`
	Email     string `db:"email"`
	Address   string `db:"address"`
	Subject   string `db:"subject"`
	Level     string `db:"level"`
	Price     string `db:"price"`
	MatchedID int    `db:"matched_id"`
}

type tagRow struct {
	PersonID int    `db:"person_id"`
	Tag      string `db:"tag"`
}

type sessionRow struct {
	PersonID        int    `db:"person_id"`
	Day             string `db:"day"`
	StartTime       string `db:"start_time"`
	DurationMinutes int    `db:"duration_minutes"`
	Subject         string `db:"subject"`
	Price           int    `db:"price"`
}

// LoadPersons returns every stored person in roster order.
func (s *Storage) LoadPersons(ctx context.Context) ([]persistence.PersonRecord, error) {
	var persons []personRow
	if err := s.db.SelectContext(ctx, &persons, selectPersonsSQL); err != nil {
		return nil, fmt.Errorf("sqlite: select persons: %w", err)
	}

	var tags []tagRow
	if err := s.db.SelectContext(ctx, &tags, selectTagsSQL); err != nil {
		return nil, fmt.Errorf("sqlite: select tags: %w", err)
	}
	tagsByPerson := make(map[int][]string, len(persons))
	for _, tag := range tags {
		tagsByPerson[tag.PersonID] = append(tagsByPerson[tag.PersonID], tag.Tag)
	}

	var sessions []sessionRow
	if err := s.db.SelectContext(ctx, &sessions, selectSessionsSQL); err != nil {
		return nil, fmt.Errorf("sqlite: select sessions: %w", err)
	}
	sessionByPerson := make(map[int]*persistence.SessionRecord, len(sessions))
	for _, row := range sessions {
		sessionByPerson[row.PersonID] = &persistence.SessionRecord{
			Day:             row.Day,
			Time:            row.StartTime,
			DurationMinutes: row.DurationMinutes,
			Subject:         row.Subject,
			Price:           row.Price,
		}
	}

	records := make([]persistence.PersonRecord, len(persons))
	for i, row := range persons {
		records[i] = persistence.PersonRecord{
			ID:        row.ID,
			Role:      row.Role,
			Name:      row.Name,
			Phone:     row.Phone,
			Email:     row.Email,
			Address:   row.Address,
			Tags:      tagsByPerson[row.ID],
			Subject:   row.Subject,
			Level:     row.Level,
			Price:     row.Price,
			MatchedID: row.MatchedID,
			Session:   sessionByPerson[row.ID],
		}
	}

	s.logger.DebugContext(ctx, "persons loaded", "count", len(records))
	return records, nil
}

// SavePersons replaces the stored roster with records inside one transaction.
func (s *Storage) SavePersons(ctx context.Context, records []persistence.PersonRecord) error {
	for i, record := range records {
		if record.ID <= 0 {
			return fmt.Errorf("%w: record %d has no id", persistence.ErrCorruptRecord, i+1)
		}
	}

	err := s.withTransaction(ctx, func(tx *sqlx.Tx) error {
		for _, stmt := range []string{deleteSessionsSQL, deleteTagsSQL, deletePersonsSQL} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("sqlite: clear roster: %w", err)
			}
		}
		for i, record := range records {
			if err := insertPerson(ctx, tx, i, record); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "persons saved", "count", len(records))
	return nil
}

func insertPerson(ctx context.Context, tx *sqlx.Tx, position int, record persistence.PersonRecord) error {
	row := personRow{
		ID:        record.ID,
		Position:  position,
		Role:      record.Role,
		Name:      record.Name,
		Phone:     record.Phone,
		Email:     record.Email,
		Address:   record.Address,
		Subject:   record.Subject,
		Level:     record.Level,
		Price:     record.Price,
		MatchedID: record.MatchedID,
	}
	if _, err := tx.NamedExecContext(ctx, insertPersonSQL, row); err != nil {
		return fmt.Errorf("sqlite: insert person #%d: %w", record.ID, err)
	}

	for i, tag := range record.Tags {
		if _, err := tx.ExecContext(ctx, insertTagSQL, record.ID, i, tag); err != nil {
			return fmt.Errorf("sqlite: insert tag for person #%d: %w", record.ID, err)
		}
	}

	if session := record.Session; session != nil {
		if _, err := tx.NamedExecContext(ctx, insertSessionSQL, sessionRow{
			PersonID:        record.ID,
			Day:             session.Day,
			StartTime:       session.Time,
			DurationMinutes: session.DurationMinutes,
			Subject:         session.Subject,
			Price:           session.Price,
		}); err != nil {
			return fmt.Errorf("sqlite: insert session for person #%d: %w", record.ID, err)
		}
	}
	return nil
}
