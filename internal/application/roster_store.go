package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tutorly/roster/internal/persistence"
	"github.com/tutorly/roster/internal/roster"
)

// RosterStore loads the roster from and saves it to a persistence.RosterRepository.
type RosterStore struct {
	repo   persistence.RosterRepository
	logger *slog.Logger
}

// NewRosterStore constructs a store over repo.
func NewRosterStore(repo persistence.RosterRepository) *RosterStore {
	return NewRosterStoreWithLogger(repo, nil)
}

// NewRosterStoreWithLogger constructs a store with a specified logger.
func NewRosterStoreWithLogger(repo persistence.RosterRepository, logger *slog.Logger) *RosterStore {
	return &RosterStore{repo: repo, logger: defaultLogger(logger)}
}

// Load reads every record and rebuilds the roster. A store without a
// repository yields an empty roster.
func (s *RosterStore) Load(ctx context.Context) (r *roster.Roster, err error) {
	logger := serviceLogger(ctx, s.logger, "RosterStore", "Load")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to load roster", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "roster loaded", "persons", r.Len())
	}()

	if s.repo == nil {
		r = roster.New(nil)
		return
	}

	var records []persistence.PersonRecord
	records, err = s.repo.LoadPersons(ctx)
	if err != nil {
		err = fmt.Errorf("load persons: %w", err)
		return
	}
	r, err = RestoreRoster(ctx, records, logger)
	return
}

// Save writes the whole roster as one snapshot.
func (s *RosterStore) Save(ctx context.Context, r *roster.Roster) error {
	if s.repo == nil || r == nil {
		return nil
	}
	logger := serviceLogger(ctx, s.logger, "RosterStore", "Save")
	if err := s.repo.SavePersons(ctx, SnapshotRoster(r)); err != nil {
		logger.ErrorContext(ctx, "failed to save roster", "error", err)
		return fmt.Errorf("save persons: %w", err)
	}
	logger.DebugContext(ctx, "roster saved", "persons", r.Len())
	return nil
}

// SnapshotRoster converts every person, in roster order, into a record.
func SnapshotRoster(r *roster.Roster) []persistence.PersonRecord {
	persons := r.All()
	records := make([]persistence.PersonRecord, len(persons))
	for i, p := range persons {
		records[i] = personRecord(p)
	}
	return records
}

func personRecord(p roster.Person) persistence.PersonRecord {
	record := persistence.PersonRecord{
		ID:        p.ID(),
		Role:      string(p.Role()),
		Name:      p.Name(),
		Phone:     p.Phone(),
		Email:     p.Email(),
		Address:   p.Address(),
		Tags:      p.Tags(),
		Subject:   p.Subject().String(),
		Level:     p.Level().String(),
		Price:     p.Price().String(),
		MatchedID: p.MatchedID(),
	}
	if session, ok := p.Session(); ok {
		record.Session = &persistence.SessionRecord{
			Day:             strings.ToUpper(session.Day().String()),
			Time:            session.Clock(),
			DurationMinutes: int(session.Duration() / time.Minute),
			Subject:         session.Subject().String(),
			Price:           session.Price().Min(),
		}
	}
	return record
}

// RestoreRoster rebuilds a roster from records in two passes. The first pass
// registers every person, keeping stored IDs and numbering records without
// one from the highest stored ID upwards. The second pass resolves match
// links; links that are one-sided, dangling or between equal roles are
// dropped and logged, as are sessions the two sides do not agree on.
func RestoreRoster(ctx context.Context, records []persistence.PersonRecord, logger *slog.Logger) (*roster.Roster, error) {
	logger = defaultLogger(logger)

	ids := roster.NewIDAllocator()
	for i, record := range records {
		if record.ID < 0 {
			return nil, fmt.Errorf("%w: record %d has negative id %d", persistence.ErrCorruptRecord, i+1, record.ID)
		}
		ids.Bump(record.ID)
	}
	r := roster.New(ids)

	stored := make(map[int]persistence.PersonRecord, len(records))
	for i, record := range records {
		person, err := personFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", persistence.ErrCorruptRecord, i+1, err)
		}
		added, err := r.Add(person)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", persistence.ErrCorruptRecord, i+1, err)
		}
		if record.ID == 0 {
			logger.WarnContext(ctx, "renumbered person without id", "person_id", added.ID(), "name", added.Name())
		}
		stored[added.ID()] = record
	}

	for _, person := range r.All() {
		record := stored[person.ID()]
		if record.MatchedID == 0 {
			continue
		}
		counterpart, ok := r.FindByID(record.MatchedID)
		if !ok || stored[counterpart.ID()].MatchedID != person.ID() || counterpart.Role() == person.Role() {
			logger.WarnContext(ctx, "dropped unresolvable match link",
				"person_id", person.ID(),
				"matched_id", record.MatchedID,
			)
			continue
		}

		linked := person.WithMatch(counterpart.ID())
		if session, ok := agreedSession(record, stored[counterpart.ID()]); ok {
			linked = linked.WithSession(session)
		} else if record.Session != nil {
			logger.WarnContext(ctx, "dropped inconsistent session", "person_id", person.ID())
		}
		if err := r.Replace(person, linked); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func personFromRecord(record persistence.PersonRecord) (roster.Person, error) {
	role, err := roster.ParseRole(record.Role)
	if err != nil {
		return roster.Person{}, err
	}
	subject, err := roster.ParseSubject(record.Subject)
	if err != nil {
		return roster.Person{}, err
	}
	level, err := roster.ParseLevel(record.Level)
	if err != nil {
		return roster.Person{}, err
	}
	price, err := roster.ParsePrice(record.Price)
	if err != nil {
		return roster.Person{}, err
	}
	person, err := roster.NewPerson(roster.PersonInput{
		Role: role,
		Profile: roster.Profile{
			Name:    record.Name,
			Phone:   record.Phone,
			Email:   record.Email,
			Address: record.Address,
			Tags:    record.Tags,
		},
		Subject: subject,
		Level:   level,
		Price:   price,
	})
	if err != nil {
		return roster.Person{}, err
	}
	return person.WithID(record.ID), nil
}

// agreedSession returns the session both sides of a pair stored, if they agree.
func agreedSession(a, b persistence.PersonRecord) (roster.Session, bool) {
	if a.Session == nil || b.Session == nil {
		return roster.Session{}, false
	}
	first, err := sessionFromRecord(*a.Session)
	if err != nil {
		return roster.Session{}, false
	}
	second, err := sessionFromRecord(*b.Session)
	if err != nil || first != second {
		return roster.Session{}, false
	}
	return first, true
}

func sessionFromRecord(record persistence.SessionRecord) (roster.Session, error) {
	day, err := roster.ParseWeekday(record.Day)
	if err != nil {
		return roster.Session{}, err
	}
	start, err := roster.ParseClock(record.Time)
	if err != nil {
		return roster.Session{}, err
	}
	subject, err := roster.ParseSubject(record.Subject)
	if err != nil {
		return roster.Session{}, err
	}
	price, err := roster.SinglePrice(record.Price)
	if err != nil {
		return roster.Session{}, err
	}
	return roster.NewSession(day, start, time.Duration(record.DurationMinutes)*time.Minute, subject, price)
}
