package testfixtures

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/tutorly/roster/internal/persistence"
	"github.com/tutorly/roster/internal/roster"
)

var personCounter uint64

// ----------------------------- Person fixtures -----------------------------

// PersonFixture represents a deterministic roster entry that can be
// materialised for domain, application or persistence tests.
type PersonFixture struct {
	ID      int
	Role    roster.Role
	Name    string
	Phone   string
	Email   string
	Address string
	Tags    []string
	Subject string
	Level   string
	Price   string
}

// PersonOption configures the generated person fixture.
type PersonOption func(*PersonFixture)

// NewPersonFixture returns a tutor teaching Mathematics at level 2-5 for
// 30-45 with a unique name, phone and email.
func NewPersonFixture(opts ...PersonOption) PersonFixture {
	idx := atomic.AddUint64(&personCounter, 1)
	fixture := PersonFixture{
		Role:    roster.RoleTutor,
		Name:    fmt.Sprintf("Person %03d", idx),
		Phone:   fmt.Sprintf("9%07d", idx),
		Email:   fmt.Sprintf("person-%03d@example.com", idx),
		Address: fmt.Sprintf("Blk %d Example Street", idx),
		Subject: "Mathematics",
		Level:   "2-5",
		Price:   "30-45",
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// NewTutorFixture is NewPersonFixture with the tutor role.
func NewTutorFixture(opts ...PersonOption) PersonFixture {
	return NewPersonFixture(append([]PersonOption{WithRole(roster.RoleTutor)}, opts...)...)
}

// NewStudentFixture is NewPersonFixture with the student role, level 3 and price 40.
func NewStudentFixture(opts ...PersonOption) PersonFixture {
	base := []PersonOption{WithRole(roster.RoleStudent), WithLevel("3"), WithPrice("40")}
	return NewPersonFixture(append(base, opts...)...)
}

// WithID sets the roster ID carried by records and persons.
func WithID(id int) PersonOption {
	return func(f *PersonFixture) {
		f.ID = id
	}
}

// WithRole overrides the role.
func WithRole(role roster.Role) PersonOption {
	return func(f *PersonFixture) {
		f.Role = role
	}
}

// WithName overrides the generated name.
func WithName(name string) PersonOption {
	return func(f *PersonFixture) {
		f.Name = name
	}
}

// WithPhone overrides the generated phone number.
func WithPhone(phone string) PersonOption {
	return func(f *PersonFixture) {
		f.Phone = phone
	}
}

// WithEmail overrides the generated email address.
func WithEmail(email string) PersonOption {
	return func(f *PersonFixture) {
		f.Email = email
	}
}

// WithTags sets the tag labels.
func WithTags(tags ...string) PersonOption {
	return func(f *PersonFixture) {
		f.Tags = tags
	}
}

// WithSubject overrides the subject.
func WithSubject(subject string) PersonOption {
	return func(f *PersonFixture) {
		f.Subject = subject
	}
}

// WithLevel overrides the level, e.g. "3" or "1-6".
func WithLevel(level string) PersonOption {
	return func(f *PersonFixture) {
		f.Level = level
	}
}

// WithPrice overrides the price, e.g. "40" or "30-45".
func WithPrice(price string) PersonOption {
	return func(f *PersonFixture) {
		f.Price = price
	}
}

// Input returns the fixture as a roster.PersonInput. Invalid level or price
// strings panic; tests exercising parse failures should build inputs directly.
func (f PersonFixture) Input() roster.PersonInput {
	return roster.PersonInput{
		Role: f.Role,
		Profile: roster.Profile{
			Name:    f.Name,
			Phone:   f.Phone,
			Email:   f.Email,
			Address: f.Address,
			Tags:    append([]string(nil), f.Tags...),
		},
		Subject: roster.Subject(f.Subject),
		Level:   roster.MustParseLevel(f.Level),
		Price:   roster.MustParsePrice(f.Price),
	}
}

// Person returns the fixture as a validated roster.Person carrying f.ID.
func (f PersonFixture) Person(tb testing.TB) roster.Person {
	tb.Helper()
	person, err := roster.NewPerson(f.Input())
	if err != nil {
		tb.Fatalf("invalid person fixture %q: %v", f.Name, err)
	}
	return person.WithID(f.ID)
}

// Record returns the fixture as a persistence.PersonRecord.
func (f PersonFixture) Record() persistence.PersonRecord {
	return persistence.PersonRecord{
		ID:      f.ID,
		Role:    string(f.Role),
		Name:    f.Name,
		Phone:   f.Phone,
		Email:   f.Email,
		Address: f.Address,
		Tags:    append([]string(nil), f.Tags...),
		Subject: f.Subject,
		Level:   f.Level,
		Price:   f.Price,
	}
}

// NewRoster adds every fixture, in order, to a fresh roster and returns it
// together with the registered persons.
func NewRoster(tb testing.TB, fixtures ...PersonFixture) (*roster.Roster, []roster.Person) {
	tb.Helper()
	r := roster.New(nil)
	persons := make([]roster.Person, 0, len(fixtures))
	for _, f := range fixtures {
		added, err := r.Add(f.Person(tb))
		if err != nil {
			tb.Fatalf("failed to add fixture %q: %v", f.Name, err)
		}
		persons = append(persons, added)
	}
	return r, persons
}
