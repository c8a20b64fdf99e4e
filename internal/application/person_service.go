package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/tutorly/roster/internal/roster"
)

// PersonService covers the add, edit, delete, list and find commands.
type PersonService struct {
	roster *roster.Roster
	logger *slog.Logger
}

// NewPersonService constructs a person service over the shared roster.
func NewPersonService(r *roster.Roster) *PersonService {
	return NewPersonServiceWithLogger(r, nil)
}

// NewPersonServiceWithLogger constructs a person service with a specified logger.
func NewPersonServiceWithLogger(r *roster.Roster, logger *slog.Logger) *PersonService {
	return &PersonService{roster: r, logger: defaultLogger(logger)}
}

func (s *PersonService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "PersonService", operation, attrs...)
}

// Add validates the input, rejects duplicates and registers the person under a fresh ID.
func (s *PersonService) Add(ctx context.Context, params AddPersonParams) (person roster.Person, err error) {
	if s == nil || s.roster == nil {
		err = fmt.Errorf("PersonService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "Add", "role", string(params.Input.Role))
	defer func() {
		if err != nil {
			logger.WarnContext(ctx, "failed to add person", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("person_id", person.ID()).InfoContext(ctx, "person added")
	}()

	var candidate roster.Person
	candidate, err = roster.NewPerson(params.Input)
	if err != nil {
		err = inputValidation(err)
		return
	}
	if existing, ok := s.roster.Conflict(candidate); ok {
		err = duplicateOf(existing)
		return
	}

	person, err = s.roster.Add(candidate)
	return
}

// Edit replaces the identity and domain fields of the displayed person at
// params.Index. ID, role, match and session are kept.
func (s *PersonService) Edit(ctx context.Context, params EditPersonParams) (person roster.Person, err error) {
	if s == nil || s.roster == nil {
		err = fmt.Errorf("PersonService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "Edit", "index", params.Index)
	defer func() {
		if err != nil {
			logger.WarnContext(ctx, "failed to edit person", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("person_id", person.ID()).InfoContext(ctx, "person edited")
	}()

	if params.Changes.IsEmpty() {
		vErr := &ValidationError{}
		vErr.add("fields", "at least one field to edit must be provided")
		err = vErr
		return
	}

	var existing roster.Person
	existing, err = displayedPerson(s.roster, params.Index)
	if err != nil {
		return
	}

	var edited roster.Person
	edited, err = roster.NewPerson(applyChanges(existing, params.Changes))
	if err != nil {
		err = inputValidation(err)
		return
	}

	updated := existing.WithDetails(edited)
	if conflict, ok := s.roster.Conflict(updated); ok {
		err = duplicateOf(conflict)
		return
	}
	if err = s.roster.Replace(existing, updated); err != nil {
		return
	}

	person = updated
	return
}

// Delete removes the displayed person at index and clears its counterpart's
// link and session before returning.
func (s *PersonService) Delete(ctx context.Context, index int) (person roster.Person, err error) {
	if s == nil || s.roster == nil {
		err = fmt.Errorf("PersonService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "Delete", "index", index)
	defer func() {
		if err != nil {
			logger.WarnContext(ctx, "failed to delete person", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("person_id", person.ID()).InfoContext(ctx, "person deleted")
	}()

	person, err = displayedPerson(s.roster, index)
	if err != nil {
		return
	}

	if counterpart, ok := s.roster.Counterpart(person); ok {
		if err = s.roster.Replace(counterpart, counterpart.WithoutMatch()); err != nil {
			return
		}
	}
	err = s.roster.Remove(person.ID())
	return
}

// List shows every person in insertion order.
func (s *PersonService) List(ctx context.Context) string {
	if s == nil || s.roster == nil {
		return "Listed all persons"
	}
	s.roster.ResetView()
	s.loggerWith(ctx, "List").DebugContext(ctx, "view reset", "count", s.roster.Len())
	return "Listed all persons"
}

// Find replaces the filter with the role and every supplied criterion.
func (s *PersonService) Find(ctx context.Context, params FindParams) (msg string, err error) {
	if s == nil || s.roster == nil {
		err = fmt.Errorf("PersonService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "Find", "role", string(params.Role))
	defer func() {
		if err != nil {
			logger.WarnContext(ctx, "find rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "filter applied", "filter", s.roster.Filter().String())
	}()

	predicate, vErr := FindPredicate(params)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	s.roster.SetFilter(predicate)
	msg = personsListed(len(s.roster.Filtered()))
	return
}

// FindPredicate validates params and builds the conjunction used by Find.
func FindPredicate(params FindParams) (roster.Predicate, *ValidationError) {
	vErr := &ValidationError{}
	if !params.Role.IsValid() {
		vErr.add("role", "please specify if you are trying to find tutors or students")
	}
	if len(params.Names) == 0 && len(params.Subjects) == 0 && len(params.Levels) == 0 && len(params.Prices) == 0 {
		vErr.add("criteria", "provide at least one of n/ s/ l/ p/")
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	terms := []roster.Predicate{roster.HasRole{Role: params.Role}}
	if len(params.Names) > 0 {
		terms = append(terms, roster.NameContains{Keywords: slices.Clone(params.Names)})
	}
	if len(params.Subjects) > 0 {
		terms = append(terms, roster.MatchingSubject{Subjects: slices.Clone(params.Subjects)})
	}
	if len(params.Levels) > 0 {
		terms = append(terms, roster.MatchingLevel{Levels: slices.Clone(params.Levels)})
	}
	if len(params.Prices) > 0 {
		terms = append(terms, roster.MatchingPrice{Prices: slices.Clone(params.Prices)})
	}
	return roster.And(terms...), nil
}

func applyChanges(existing roster.Person, changes PersonChanges) roster.PersonInput {
	input := roster.PersonInput{
		Role:    existing.Role(),
		Profile: existing.Profile(),
		Subject: existing.Subject(),
		Level:   existing.Level(),
		Price:   existing.Price(),
	}
	if changes.Name != nil {
		input.Profile.Name = *changes.Name
	}
	if changes.Phone != nil {
		input.Profile.Phone = *changes.Phone
	}
	if changes.Email != nil {
		input.Profile.Email = *changes.Email
	}
	if changes.Address != nil {
		input.Profile.Address = *changes.Address
	}
	if changes.Tags != nil {
		input.Profile.Tags = slices.Clone(*changes.Tags)
	}
	if changes.Subject != nil {
		input.Subject = *changes.Subject
	}
	if changes.Level != nil {
		input.Level = *changes.Level
	}
	if changes.Price != nil {
		input.Price = *changes.Price
	}
	return input
}

func duplicateOf(existing roster.Person) error {
	return fmt.Errorf("%w: conflicts with #%d %s (same name, phone or email)", ErrDuplicatePerson, existing.ID(), existing.Name())
}

// inputValidation turns value-type errors from roster.NewPerson into a ValidationError.
func inputValidation(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, roster.ErrInvalidProfile) {
		return profileValidation(err)
	}

	vErr := &ValidationError{}
	switch {
	case errors.Is(err, roster.ErrInvalidRole):
		vErr.add("role", err.Error())
	case errors.Is(err, roster.ErrInvalidSubject):
		vErr.add("subject", err.Error())
	case errors.Is(err, roster.ErrInvalidLevel):
		vErr.add("level", err.Error())
	case errors.Is(err, roster.ErrInvalidPrice):
		vErr.add("price", err.Error())
	default:
		return err
	}
	return vErr
}
