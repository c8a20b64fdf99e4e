package application

import (
	"errors"
	"testing"

	"github.com/tutorly/roster/internal/roster"
)

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	var err *ValidationError
	if err.Error() != "" {
		t.Fatalf("expected empty string for nil error, got %q", err.Error())
	}

	empty := &ValidationError{}
	if got := empty.Error(); got != "validation failed" {
		t.Fatalf("expected generic message for empty error, got %q", got)
	}

	withFields := &ValidationError{FieldErrors: map[string]string{"role": "missing", "criteria": "empty"}}
	if got := withFields.Error(); got != "validation failed: criteria: empty; role: missing" {
		t.Fatalf("expected sorted field messages, got %q", got)
	}
}

func TestValidationError_HasErrors(t *testing.T) {
	t.Parallel()

	if err := (&ValidationError{}).HasErrors(); err {
		t.Fatalf("expected HasErrors to report false for empty error")
	}

	if err := (&ValidationError{FieldErrors: map[string]string{"field": "bad"}}).HasErrors(); !err {
		t.Fatalf("expected HasErrors to report true when fields are present")
	}

	var nilErr *ValidationError
	if nilErr.HasErrors() {
		t.Fatalf("expected nil error to report no issues")
	}
}

func TestValidationError_Add(t *testing.T) {
	t.Parallel()

	base := &ValidationError{}
	base.add("first", "value")
	if got := base.FieldErrors["first"]; got != "value" {
		t.Fatalf("expected add to populate map, got %q", got)
	}

	base.add("first", "replaced")
	if len(base.FieldErrors) != 1 || base.FieldErrors["first"] != "replaced" {
		t.Fatalf("expected add to overwrite the field, got %v", base.FieldErrors)
	}
}

func TestDomainErrorsUnwrap(t *testing.T) {
	t.Parallel()

	incompatible := &IncompatibleError{Mismatches: []Mismatch{
		{Field: "subject", Message: "Subject mismatch: tutor teaches Mathematics but student needs Science"},
		{Field: "price", Message: "Price mismatch: tutor price 30-45 does not overlap student price 60"},
	}}
	if !errors.Is(incompatible, ErrIncompatibleFields) {
		t.Fatalf("expected IncompatibleError to unwrap to ErrIncompatibleFields")
	}
	want := "cannot match: Subject mismatch: tutor teaches Mathematics but student needs Science; Price mismatch: tutor price 30-45 does not overlap student price 60"
	if got := incompatible.Error(); got != want {
		t.Fatalf("unexpected message %q", got)
	}

	subject := &SubjectMismatchError{PersonSubject: "Mathematics", SessionSubject: "Science"}
	if !errors.Is(subject, ErrSubjectMismatch) {
		t.Fatalf("expected SubjectMismatchError to unwrap to ErrSubjectMismatch")
	}
	if got := subject.Error(); got != "Subject mismatch: person's subject is Mathematics but the session's subject is Science" {
		t.Fatalf("unexpected message %q", got)
	}

	price := &PriceOutOfRangeError{Tutor: roster.MustParsePrice("30-45"), Student: roster.MustParsePrice("40"), Value: 50}
	if !errors.Is(price, ErrPriceOutOfRange) {
		t.Fatalf("expected PriceOutOfRangeError to unwrap to ErrPriceOutOfRange")
	}
}

func TestProfileValidation(t *testing.T) {
	t.Parallel()

	_, err := roster.Profile{Name: "Alex", Phone: "1", Email: "alex@example.com", Address: "Blk 1"}.Normalize()
	converted := profileValidation(err)

	var vErr *ValidationError
	if !errors.As(converted, &vErr) {
		t.Fatalf("expected ValidationError, got %v", converted)
	}
	if _, ok := vErr.FieldErrors["phone"]; !ok {
		t.Fatalf("expected phone field error, got %v", vErr.FieldErrors)
	}

	other := errors.New("boom")
	if got := profileValidation(other); got != other {
		t.Fatalf("expected unrelated errors to pass through, got %v", got)
	}
}
