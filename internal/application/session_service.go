package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tutorly/roster/internal/roster"
)

// SessionService schedules and cancels sessions between matched pairs.
type SessionService struct {
	roster *roster.Roster
	logger *slog.Logger
}

// NewSessionService constructs a session service over the shared roster.
func NewSessionService(r *roster.Roster) *SessionService {
	return NewSessionServiceWithLogger(r, nil)
}

// NewSessionServiceWithLogger constructs a session service with a specified logger.
func NewSessionServiceWithLogger(r *roster.Roster, logger *slog.Logger) *SessionService {
	return &SessionService{roster: r, logger: defaultLogger(logger)}
}

func (s *SessionService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "SessionService", operation, attrs...)
}

// AddSession gives the displayed person at params.Index and its counterpart
// the same session value.
func (s *SessionService) AddSession(ctx context.Context, params AddSessionParams) (msg string, err error) {
	if s == nil || s.roster == nil {
		err = fmt.Errorf("SessionService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "AddSession", "index", params.Index)
	defer func() {
		if err != nil {
			logger.WarnContext(ctx, "session rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "session added")
	}()

	var person, counterpart roster.Person
	person, counterpart, err = s.matchedPair(params.Index)
	if err != nil {
		return
	}

	var session roster.Session
	session, err = roster.NewSession(params.Day, params.Start, params.Duration, params.Subject, params.Price)
	if err != nil {
		return
	}

	if session.Subject() != person.Subject() {
		err = &SubjectMismatchError{PersonSubject: person.Subject(), SessionSubject: session.Subject()}
		return
	}

	tutor, student := person, counterpart
	if person.IsStudent() {
		tutor, student = counterpart, person
	}
	value := session.Price().Min()
	if !tutor.Price().IncludesValue(value) || !student.Price().IncludesValue(value) {
		err = &PriceOutOfRangeError{Tutor: tutor.Price(), Student: student.Price(), Value: value}
		return
	}

	if err = s.roster.ReplacePair(person.WithSession(session), counterpart.WithSession(session)); err != nil {
		return
	}

	msg = fmt.Sprintf("Added session for %s and their matched partner %s:\n%s",
		person.Name(), counterpart.Name(), session)
	return
}

// DeleteSession clears the session on both sides of the pair.
func (s *SessionService) DeleteSession(ctx context.Context, index int) (msg string, err error) {
	if s == nil || s.roster == nil {
		err = fmt.Errorf("SessionService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "DeleteSession", "index", index)
	defer func() {
		if err != nil {
			logger.WarnContext(ctx, "session delete rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "session deleted")
	}()

	var person, counterpart roster.Person
	person, counterpart, err = s.matchedPair(index)
	if err != nil {
		return
	}
	if !person.HasSession() {
		err = fmt.Errorf("%w: nothing to delete for %s", ErrNoSession, person.Name())
		return
	}

	if err = s.roster.ReplacePair(person.WithoutSession(), counterpart.WithoutSession()); err != nil {
		return
	}

	msg = fmt.Sprintf("Deleted session for %s and their matched partner %s.", person.Name(), counterpart.Name())
	return
}

func (s *SessionService) matchedPair(index int) (roster.Person, roster.Person, error) {
	person, err := displayedPerson(s.roster, index)
	if err != nil {
		return roster.Person{}, roster.Person{}, err
	}
	counterpart, ok := s.roster.Counterpart(person)
	if !ok {
		return roster.Person{}, roster.Person{}, fmt.Errorf("%w: %s cannot have a session", ErrNotMatched, person.Name())
	}
	return person, counterpart, nil
}

// displayedPerson resolves a 1-based position in the displayed list.
func displayedPerson(r *roster.Roster, index int) (roster.Person, error) {
	person, err := r.At(index)
	if errors.Is(err, roster.ErrIndexOutOfRange) {
		return roster.Person{}, invalidIndex(index)
	}
	return person, err
}
