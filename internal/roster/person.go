package roster

import (
	"fmt"
	"slices"
	"strings"
)

// PersonInput captures the caller supplied attributes of a new or edited person.
type PersonInput struct {
	Role    Role
	Profile Profile
	Subject Subject
	Level   Level
	Price   Price
}

// Person is an immutable roster entry. Mutators return modified copies; the
// roster's Replace is the only place a change becomes visible.
type Person struct {
	id      int
	role    Role
	profile Profile
	subject Subject
	level   Level
	price   Price

	matchedID  int
	session    Session
	hasSession bool
}

// NewPerson validates input and returns an unregistered person (ID 0).
func NewPerson(input PersonInput) (Person, error) {
	if !input.Role.IsValid() {
		return Person{}, fmt.Errorf("%w: %q", ErrInvalidRole, input.Role)
	}
	profile, err := input.Profile.Normalize()
	if err != nil {
		return Person{}, err
	}
	if _, err := ParseSubject(string(input.Subject)); err != nil {
		return Person{}, err
	}
	if input.Level.IsZero() {
		return Person{}, fmt.Errorf("%w: level is required", ErrInvalidLevel)
	}
	if input.Price.IsZero() {
		return Person{}, fmt.Errorf("%w: price is required", ErrInvalidPrice)
	}
	return Person{
		role:    input.Role,
		profile: profile,
		subject: Subject(strings.TrimSpace(string(input.Subject))),
		level:   input.Level,
		price:   input.Price,
	}, nil
}

// ID returns the roster identifier, 0 until the person is added.
func (p Person) ID() int { return p.id }

// Role returns the tutor/student tag.
func (p Person) Role() Role { return p.role }

// IsTutor reports whether p is a tutor.
func (p Person) IsTutor() bool { return p.role == RoleTutor }

// IsStudent reports whether p is a student.
func (p Person) IsStudent() bool { return p.role == RoleStudent }

// Name returns the display name.
func (p Person) Name() string { return p.profile.Name }

// Phone returns the phone number.
func (p Person) Phone() string { return p.profile.Phone }

// Email returns the email address.
func (p Person) Email() string { return p.profile.Email }

// Address returns the postal address.
func (p Person) Address() string { return p.profile.Address }

// Tags returns a copy of the sorted tag set.
func (p Person) Tags() []string { return slices.Clone(p.profile.Tags) }

// Profile returns a copy of the identity fields.
func (p Person) Profile() Profile {
	profile := p.profile
	profile.Tags = slices.Clone(p.profile.Tags)
	return profile
}

// Subject returns the taught or requested subject.
func (p Person) Subject() Subject { return p.subject }

// Level returns the level range.
func (p Person) Level() Level { return p.level }

// Price returns the price range.
func (p Person) Price() Price { return p.price }

// IsMatched reports whether p currently references a counterpart.
func (p Person) IsMatched() bool { return p.matchedID != 0 }

// MatchedID returns the counterpart's ID, or 0 when unmatched.
func (p Person) MatchedID() int { return p.matchedID }

// Session returns the scheduled session, if any.
func (p Person) Session() (Session, bool) { return p.session, p.hasSession }

// HasSession reports whether a session is scheduled.
func (p Person) HasSession() bool { return p.hasSession }

// WithID returns a copy carrying id.
func (p Person) WithID(id int) Person {
	p.id = id
	return p
}

// WithMatch returns a copy linked to the counterpart id.
func (p Person) WithMatch(counterpartID int) Person {
	p.matchedID = counterpartID
	return p
}

// WithoutMatch returns a copy with both the link and any session cleared.
func (p Person) WithoutMatch() Person {
	p.matchedID = 0
	p.session = Session{}
	p.hasSession = false
	return p
}

// WithSession returns a copy holding s. Callers must only attach sessions to matched persons.
func (p Person) WithSession(s Session) Person {
	p.session = s
	p.hasSession = true
	return p
}

// WithoutSession returns a copy with the session cleared and the link kept.
func (p Person) WithoutSession() Person {
	p.session = Session{}
	p.hasSession = false
	return p
}

// WithDetails returns a copy with new identity and domain fields while keeping
// id, role, match and session.
func (p Person) WithDetails(edited Person) Person {
	p.profile = edited.Profile()
	p.subject = edited.subject
	p.level = edited.level
	p.price = edited.price
	return p
}

// IsSamePerson is the weak identity used for duplicate detection: same name,
// phone or email.
func (p Person) IsSamePerson(other Person) bool {
	return p.profile.Name == other.profile.Name ||
		p.profile.Phone == other.profile.Phone ||
		p.profile.Email == other.profile.Email
}

// Equal compares every field, including the match link and session.
func (p Person) Equal(other Person) bool {
	return p.id == other.id &&
		p.role == other.role &&
		p.profile.Name == other.profile.Name &&
		p.profile.Phone == other.profile.Phone &&
		p.profile.Email == other.profile.Email &&
		p.profile.Address == other.profile.Address &&
		slices.Equal(p.profile.Tags, other.profile.Tags) &&
		p.subject == other.subject &&
		p.level == other.level &&
		p.price == other.price &&
		p.matchedID == other.matchedID &&
		p.hasSession == other.hasSession &&
		p.session == other.session
}

func (p Person) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s %s | %s | level %s | price %s", p.id, p.role, p.profile.Name, p.subject, p.level, p.price)
	if p.matchedID != 0 {
		fmt.Fprintf(&b, " | matched with #%d", p.matchedID)
	}
	if p.hasSession {
		fmt.Fprintf(&b, " | session %s", p.session)
	}
	if len(p.profile.Tags) > 0 {
		fmt.Fprintf(&b, " | tags %s", strings.Join(p.profile.Tags, ", "))
	}
	return b.String()
}
