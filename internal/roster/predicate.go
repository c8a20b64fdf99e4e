package roster

import (
	"fmt"
	"strings"
)

// Predicate is a stateless test over a person. Implementations are plain
// value structs so two predicates built from equal parameters are equal.
type Predicate interface {
	Test(p Person) bool
	String() string
}

// ShowAll accepts every person.
type ShowAll struct{}

func (ShowAll) Test(Person) bool { return true }
func (ShowAll) String() string   { return "all" }

// NameContains matches when any keyword equals, ignoring case, a whole word of the name.
type NameContains struct {
	Keywords []string
}

func (n NameContains) Test(p Person) bool {
	words := strings.Fields(p.Name())
	for _, keyword := range n.Keywords {
		for _, word := range words {
			if strings.EqualFold(word, keyword) {
				return true
			}
		}
	}
	return false
}

func (n NameContains) String() string {
	return fmt.Sprintf("name in %v", n.Keywords)
}

// MatchingSubject matches when the subject equals, ignoring case, any listed subject.
type MatchingSubject struct {
	Subjects []Subject
}

func (m MatchingSubject) Test(p Person) bool {
	for _, subject := range m.Subjects {
		if p.Subject().EqualFold(subject) {
			return true
		}
	}
	return false
}

func (m MatchingSubject) String() string {
	return fmt.Sprintf("subject in %v", m.Subjects)
}

// MatchingLevel matches when the person's level intersects any listed level.
type MatchingLevel struct {
	Levels []Level
}

func (m MatchingLevel) Test(p Person) bool {
	for _, level := range m.Levels {
		if p.Level().Intersects(level) {
			return true
		}
	}
	return false
}

func (m MatchingLevel) String() string {
	return fmt.Sprintf("level overlaps %v", m.Levels)
}

// MatchingPrice matches when the person's price overlaps any listed price.
type MatchingPrice struct {
	Prices []Price
}

func (m MatchingPrice) Test(p Person) bool {
	for _, price := range m.Prices {
		if p.Price().Overlaps(price) {
			return true
		}
	}
	return false
}

func (m MatchingPrice) String() string {
	return fmt.Sprintf("price overlaps %v", m.Prices)
}

// OverlappingLevel is the recommendation form of MatchingLevel with a single reference range.
type OverlappingLevel struct {
	Level Level
}

func (o OverlappingLevel) Test(p Person) bool { return p.Level().Intersects(o.Level) }

func (o OverlappingLevel) String() string {
	return fmt.Sprintf("level overlaps %s", o.Level)
}

// OverlappingPrice is the recommendation form of MatchingPrice with a single reference range.
type OverlappingPrice struct {
	Price Price
}

func (o OverlappingPrice) Test(p Person) bool { return p.Price().Overlaps(o.Price) }

func (o OverlappingPrice) String() string {
	return fmt.Sprintf("price overlaps %s", o.Price)
}

// HasRole matches persons of exactly one role.
type HasRole struct {
	Role Role
}

func (h HasRole) Test(p Person) bool { return p.Role() == h.Role }

func (h HasRole) String() string { return "role " + string(h.Role) }

// All is the short-circuiting conjunction of its terms, evaluated in order.
type All struct {
	Terms []Predicate
}

func (a All) Test(p Person) bool {
	for _, term := range a.Terms {
		if !term.Test(p) {
			return false
		}
	}
	return true
}

func (a All) String() string {
	if len(a.Terms) == 0 {
		return ShowAll{}.String()
	}
	parts := make([]string, len(a.Terms))
	for i, term := range a.Terms {
		parts[i] = term.String()
	}
	return strings.Join(parts, " and ")
}

// And combines predicates into one conjunction. Nil and ShowAll terms are
// dropped and nested conjunctions are flattened; a single remaining term is
// returned as is.
func And(terms ...Predicate) Predicate {
	flat := make([]Predicate, 0, len(terms))
	for _, term := range terms {
		switch t := term.(type) {
		case nil, ShowAll:
			continue
		case All:
			flat = append(flat, t.Terms...)
		default:
			flat = append(flat, t)
		}
	}
	switch len(flat) {
	case 0:
		return ShowAll{}
	case 1:
		return flat[0]
	}
	return All{Terms: flat}
}
