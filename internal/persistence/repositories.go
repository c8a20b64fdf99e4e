package persistence

import "context"

// RosterRepository loads and saves the whole roster as an ordered snapshot.
type RosterRepository interface {
	LoadPersons(ctx context.Context) ([]PersonRecord, error)
	// SavePersons replaces the stored roster with records, in order.
	SavePersons(ctx context.Context, records []PersonRecord) error
}
