package application

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tutorly/roster/internal/roster"
)

var (
	// ErrNotFound is returned when no person carries the requested ID.
	ErrNotFound = errors.New("application: not found")
	// ErrInvalidIndex is returned when a displayed-list position does not exist.
	ErrInvalidIndex = errors.New("application: invalid person index")
	// ErrSameID is returned when a person is matched with itself.
	ErrSameID = errors.New("application: you must provide two different IDs")
	// ErrInvalidPair is returned unless one tutor and one student are given.
	ErrInvalidPair = errors.New("application: both IDs must refer to one student and one tutor")
	// ErrAlreadyMatched is returned when either party already has a match.
	ErrAlreadyMatched = errors.New("application: one or both persons are already matched")
	// ErrNotMatched is returned for match-dependent operations on unmatched persons.
	ErrNotMatched = errors.New("application: person is not matched with anyone")
	// ErrNoSession is returned when deleting a session that does not exist.
	ErrNoSession = errors.New("application: no active session")
	// ErrIncompatibleFields is wrapped by IncompatibleError.
	ErrIncompatibleFields = errors.New("application: incompatible tutor and student")
	// ErrSubjectMismatch is wrapped by SubjectMismatchError.
	ErrSubjectMismatch = errors.New("application: subject mismatch")
	// ErrPriceOutOfRange is wrapped by PriceOutOfRangeError.
	ErrPriceOutOfRange = errors.New("application: price out of range")
	// ErrDuplicatePerson is returned when a person shares a name, phone or email with another entry.
	ErrDuplicatePerson = errors.New("application: duplicate person")
)

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface, listing the offending fields.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	if len(v.FieldErrors) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(v.FieldErrors))
	for field := range v.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	msgs := make([]string, len(fields))
	for i, field := range fields {
		msgs[i] = fmt.Sprintf("%s: %s", field, v.FieldErrors[field])
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// Mismatch is one failed dimension of the compatibility gate.
type Mismatch struct {
	Field   string
	Message string
}

// IncompatibleError lists every dimension on which a tutor and student disagree.
type IncompatibleError struct {
	Mismatches []Mismatch
}

func (e *IncompatibleError) Error() string {
	msgs := make([]string, len(e.Mismatches))
	for i, m := range e.Mismatches {
		msgs[i] = m.Message
	}
	return "cannot match: " + strings.Join(msgs, "; ")
}

func (e *IncompatibleError) Unwrap() error { return ErrIncompatibleFields }

// SubjectMismatchError reports a session subject that differs from the person's.
type SubjectMismatchError struct {
	PersonSubject  roster.Subject
	SessionSubject roster.Subject
}

func (e *SubjectMismatchError) Error() string {
	return fmt.Sprintf("Subject mismatch: person's subject is %s but the session's subject is %s",
		e.PersonSubject, e.SessionSubject)
}

func (e *SubjectMismatchError) Unwrap() error { return ErrSubjectMismatch }

// PriceOutOfRangeError reports a session price outside the tutor's or student's range.
type PriceOutOfRangeError struct {
	Tutor   roster.Price
	Student roster.Price
	Value   int
}

func (e *PriceOutOfRangeError) Error() string {
	return fmt.Sprintf("Session price %d must be within both the tutor's price range (%s) and the student's price range (%s)",
		e.Value, e.Tutor, e.Student)
}

func (e *PriceOutOfRangeError) Unwrap() error { return ErrPriceOutOfRange }

func notFound(id int) error {
	return fmt.Errorf("%w: person with id #%d not found", ErrNotFound, id)
}

func invalidIndex(index int) error {
	return fmt.Errorf("%w: %d, choose a person from the displayed list", ErrInvalidIndex, index)
}

// profileValidation converts a roster.ProfileError into a ValidationError.
func profileValidation(err error) error {
	var pErr *roster.ProfileError
	if !errors.As(err, &pErr) {
		return err
	}
	vErr := &ValidationError{}
	for field, msg := range pErr.Fields {
		vErr.add(field, msg)
	}
	return vErr
}
