package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tutorly/roster/internal/roster"
)

// MatchService links and unlinks tutor and student pairs.
type MatchService struct {
	roster *roster.Roster
	logger *slog.Logger
}

// NewMatchService constructs a match service over the shared roster.
func NewMatchService(r *roster.Roster) *MatchService {
	return NewMatchServiceWithLogger(r, nil)
}

// NewMatchServiceWithLogger constructs a match service with a specified logger.
func NewMatchServiceWithLogger(r *roster.Roster, logger *slog.Logger) *MatchService {
	return &MatchService{roster: r, logger: defaultLogger(logger)}
}

func (s *MatchService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "MatchService", operation, attrs...)
}

// Match links one tutor and one student after the compatibility gate passes.
// Both replacement values are built before the roster is touched.
func (s *MatchService) Match(ctx context.Context, params MatchParams) (msg string, err error) {
	if s == nil || s.roster == nil {
		err = fmt.Errorf("MatchService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "Match",
		"first_id", params.FirstID,
		"second_id", params.SecondID,
	)
	defer func() {
		if err != nil {
			logger.WarnContext(ctx, "match rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "persons matched")
	}()

	if params.FirstID == params.SecondID {
		err = ErrSameID
		return
	}

	first, ok := s.roster.FindByID(params.FirstID)
	if !ok {
		err = notFound(params.FirstID)
		return
	}
	second, ok := s.roster.FindByID(params.SecondID)
	if !ok {
		err = notFound(params.SecondID)
		return
	}

	var tutor, student roster.Person
	switch {
	case first.IsTutor() && second.IsStudent():
		tutor, student = first, second
	case first.IsStudent() && second.IsTutor():
		tutor, student = second, first
	default:
		err = ErrInvalidPair
		return
	}

	if tutor.IsMatched() || student.IsMatched() {
		err = ErrAlreadyMatched
		return
	}

	if iErr := checkCompatibility(tutor, student); iErr != nil {
		err = iErr
		return
	}

	linkedTutor := tutor.WithMatch(student.ID())
	linkedStudent := student.WithMatch(tutor.ID())
	if err = s.roster.ReplacePair(linkedTutor, linkedStudent); err != nil {
		return
	}

	msg = fmt.Sprintf("Matched student %s (id: #%d) with tutor %s (id: #%d)",
		linkedStudent.Name(), linkedStudent.ID(), linkedTutor.Name(), linkedTutor.ID())
	return
}

// Unmatch clears the link and any session on both sides of the pair that id belongs to.
func (s *MatchService) Unmatch(ctx context.Context, id int) (msg string, err error) {
	if s == nil || s.roster == nil {
		err = fmt.Errorf("MatchService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "Unmatch", "person_id", id)
	defer func() {
		if err != nil {
			logger.WarnContext(ctx, "unmatch rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "persons unmatched")
	}()

	target, ok := s.roster.FindByID(id)
	if !ok {
		err = notFound(id)
		return
	}
	if !target.IsMatched() {
		err = fmt.Errorf("%w: person with id #%d", ErrNotMatched, id)
		return
	}
	counterpart, ok := s.roster.Counterpart(target)
	if !ok {
		// A dangling link only needs the target cleared.
		if err = s.roster.Replace(target, target.WithoutMatch()); err != nil {
			return
		}
		msg = fmt.Sprintf("Unmatched %s %s (id: #%d); its counterpart #%d no longer exists.",
			target.Role(), target.Name(), target.ID(), target.MatchedID())
		return
	}

	updatedTarget := target.WithoutMatch()
	updatedCounterpart := counterpart.WithoutMatch()
	if err = s.roster.ReplacePair(updatedTarget, updatedCounterpart); err != nil {
		return
	}

	msg = fmt.Sprintf("Unmatched %s %s (id: #%d) and %s %s (id: #%d).",
		updatedTarget.Role(), updatedTarget.Name(), updatedTarget.ID(),
		updatedCounterpart.Role(), updatedCounterpart.Name(), updatedCounterpart.ID())
	return
}

// checkCompatibility reports every dimension on which tutor and student disagree.
func checkCompatibility(tutor, student roster.Person) error {
	var mismatches []Mismatch
	if tutor.Subject() != student.Subject() {
		mismatches = append(mismatches, Mismatch{
			Field: "subject",
			Message: fmt.Sprintf("Subject mismatch: tutor teaches %s but student needs %s",
				tutor.Subject(), student.Subject()),
		})
	}
	if !tutor.Level().Intersects(student.Level()) {
		mismatches = append(mismatches, Mismatch{
			Field: "level",
			Message: fmt.Sprintf("Level mismatch: tutor level %s does not overlap student level %s",
				tutor.Level(), student.Level()),
		})
	}
	if !tutor.Price().Overlaps(student.Price()) {
		mismatches = append(mismatches, Mismatch{
			Field: "price",
			Message: fmt.Sprintf("Price mismatch: tutor price %s does not overlap student price %s",
				tutor.Price(), student.Price()),
		})
	}
	if len(mismatches) == 0 {
		return nil
	}
	return &IncompatibleError{Mismatches: mismatches}
}
