package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tutorly/roster/internal/logging"
	"github.com/tutorly/roster/internal/persistence"
	"github.com/tutorly/roster/internal/roster"
)

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

// serviceLogger scopes the command logger carried by ctx, falling back to
// base, to one service operation.
func serviceLogger(ctx context.Context, base *slog.Logger, serviceName, operation string, attrs ...any) *slog.Logger {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = defaultLogger(base)
	}

	scoped := logger.With("service", serviceName)
	if operation != "" {
		scoped = scoped.With("operation", operation)
	}
	if len(attrs) > 0 {
		scoped = scoped.With(attrs...)
	}
	return scoped
}

// errorKinds is checked in order; the first sentinel in the chain wins.
var errorKinds = []struct {
	target error
	kind   string
}{
	{ErrNotFound, "not_found"},
	{ErrInvalidIndex, "invalid_index"},
	{ErrSameID, "same_id"},
	{ErrInvalidPair, "invalid_pair"},
	{ErrAlreadyMatched, "already_matched"},
	{ErrNotMatched, "not_matched"},
	{ErrNoSession, "no_session"},
	{ErrIncompatibleFields, "incompatible_fields"},
	{ErrSubjectMismatch, "subject_mismatch"},
	{ErrPriceOutOfRange, "price_out_of_range"},
	{ErrDuplicatePerson, "duplicate_person"},
	{roster.ErrInvalidSession, "invalid_session"},
	{persistence.ErrCorruptRecord, "corrupt_record"},
}

// ErrorKind maps sentinel and validation errors to a stable logging label.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			return k.kind
		}
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return "validation"
	}
	return "unexpected"
}
