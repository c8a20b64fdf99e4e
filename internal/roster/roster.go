// Package roster holds the tutoring domain model: range values, persons,
// sessions, predicates, ordering and the in-memory roster that owns them.
//
// The roster is the single shared state of the application. It is not safe
// for concurrent use; commands are applied one at a time and each command
// commits its replacements back-to-back before returning.
package roster

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrPersonNotFound is returned when no person carries the requested ID.
	ErrPersonNotFound = errors.New("roster: person not found")
	// ErrDuplicatePerson is returned when a person shares a name, phone or email with another entry.
	ErrDuplicatePerson = errors.New("roster: duplicate person")
	// ErrIndexOutOfRange is returned for displayed-list positions that do not exist.
	ErrIndexOutOfRange = errors.New("roster: index out of range")
)

// Roster is the ordered collection of all persons plus the current view
// (filter and ordering) used to address persons by displayed position.
type Roster struct {
	persons []Person
	filter  Predicate
	order   []SortKey
	ids     *IDAllocator
}

// New returns an empty roster. A nil allocator is replaced by one starting at 1.
func New(ids *IDAllocator) *Roster {
	if ids == nil {
		ids = NewIDAllocator()
	}
	return &Roster{filter: ShowAll{}, ids: ids}
}

// IDs exposes the allocator owned by the roster.
func (r *Roster) IDs() *IDAllocator { return r.ids }

// Len returns the number of persons regardless of the view.
func (r *Roster) Len() int { return len(r.persons) }

// Add appends p. Persons without an ID receive a fresh one; persons restored
// with an ID keep it and advance the allocator past it.
func (r *Roster) Add(p Person) (Person, error) {
	if existing, ok := r.Conflict(p); ok {
		return Person{}, fmt.Errorf("%w: %s conflicts with #%d %s", ErrDuplicatePerson, p.Name(), existing.ID(), existing.Name())
	}
	if p.ID() == 0 {
		p = p.WithID(r.ids.Next())
	} else {
		if _, ok := r.FindByID(p.ID()); ok {
			return Person{}, fmt.Errorf("%w: id #%d already in use", ErrDuplicatePerson, p.ID())
		}
		r.ids.Bump(p.ID())
	}
	r.persons = append(r.persons, p)
	return p, nil
}

// Conflict returns another person (different ID) that IsSamePerson as p.
func (r *Roster) Conflict(p Person) (Person, bool) {
	for _, existing := range r.persons {
		if existing.ID() != 0 && existing.ID() == p.ID() {
			continue
		}
		if existing.IsSamePerson(p) {
			return existing, true
		}
	}
	return Person{}, false
}

// FindByID looks a person up by identity.
func (r *Roster) FindByID(id int) (Person, bool) {
	if i := r.indexOf(id); i >= 0 {
		return r.persons[i], true
	}
	return Person{}, false
}

// Counterpart resolves the person p is matched with.
func (r *Roster) Counterpart(p Person) (Person, bool) {
	if !p.IsMatched() {
		return Person{}, false
	}
	return r.FindByID(p.MatchedID())
}

// Replace swaps the entry with old's ID for updated, keeping its position.
func (r *Roster) Replace(old, updated Person) error {
	if old.ID() != updated.ID() {
		return fmt.Errorf("roster: replacement must keep id #%d, got #%d", old.ID(), updated.ID())
	}
	i := r.indexOf(old.ID())
	if i < 0 {
		return fmt.Errorf("%w: #%d", ErrPersonNotFound, old.ID())
	}
	r.persons[i] = updated
	return nil
}

// ReplacePair commits two replacements together. Both targets are located
// before either is written, so a failure leaves the roster untouched.
func (r *Roster) ReplacePair(first, second Person) error {
	if first.ID() == second.ID() {
		return fmt.Errorf("roster: pair replacement needs two distinct ids, got #%d twice", first.ID())
	}
	i := r.indexOf(first.ID())
	if i < 0 {
		return fmt.Errorf("%w: #%d", ErrPersonNotFound, first.ID())
	}
	j := r.indexOf(second.ID())
	if j < 0 {
		return fmt.Errorf("%w: #%d", ErrPersonNotFound, second.ID())
	}
	r.persons[i] = first
	r.persons[j] = second
	return nil
}

// Remove deletes the person with id.
func (r *Roster) Remove(id int) error {
	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: #%d", ErrPersonNotFound, id)
	}
	r.persons = slices.Delete(r.persons, i, i+1)
	return nil
}

// All returns every person in insertion order.
func (r *Roster) All() []Person {
	return slices.Clone(r.persons)
}

// Filtered returns the displayed list: persons accepted by the filter, stably
// ordered by the current sort keys.
func (r *Roster) Filtered() []Person {
	out := make([]Person, 0, len(r.persons))
	for _, p := range r.persons {
		if r.filter.Test(p) {
			out = append(out, p)
		}
	}
	if len(r.order) > 0 {
		slices.SortStableFunc(out, Comparator(r.order))
	}
	return out
}

// At returns the person at the 1-based position of the displayed list.
func (r *Roster) At(index int) (Person, error) {
	shown := r.Filtered()
	if index < 1 || index > len(shown) {
		return Person{}, fmt.Errorf("%w: %d (displayed list has %d entries)", ErrIndexOutOfRange, index, len(shown))
	}
	return shown[index-1], nil
}

// Filter returns the active filter.
func (r *Roster) Filter() Predicate { return r.filter }

// SetFilter replaces the active filter; nil shows everyone.
func (r *Roster) SetFilter(p Predicate) {
	if p == nil {
		p = ShowAll{}
	}
	r.filter = p
}

// Order returns the active sort keys.
func (r *Roster) Order() []SortKey { return slices.Clone(r.order) }

// SetOrder installs sort keys for the displayed list; nil keeps insertion order.
func (r *Roster) SetOrder(keys []SortKey) {
	r.order = slices.Clone(keys)
}

// ResetView shows every person in insertion order.
func (r *Roster) ResetView() {
	r.filter = ShowAll{}
	r.order = nil
}

func (r *Roster) indexOf(id int) int {
	return slices.IndexFunc(r.persons, func(p Person) bool { return p.ID() == id })
}
