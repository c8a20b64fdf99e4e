package application

import (
	"time"

	"github.com/tutorly/roster/internal/roster"
	"github.com/tutorly/roster/internal/statistics"
)

// MatchParams identifies the two persons to link, in any role order.
type MatchParams struct {
	FirstID  int
	SecondID int
}

// AddSessionParams wraps the data required to schedule a session for a
// matched pair. Index addresses the displayed list (1-based).
type AddSessionParams struct {
	Index    int
	Day      time.Weekday
	Start    time.Duration
	Duration time.Duration
	Subject  roster.Subject
	Price    roster.Price
}

// RecommendParams selects the reference person and the dimensions to compare.
// When no dimension is enabled all three are used.
type RecommendParams struct {
	Index      int
	UseSubject bool
	UseLevel   bool
	UsePrice   bool
}

// SortTarget identifies the role narrowed by a sort, or a view reset.
type SortTarget string

const (
	// SortTutors narrows the displayed list to tutors before sorting.
	SortTutors SortTarget = "tutors"
	// SortStudents narrows the displayed list to students before sorting.
	SortStudents SortTarget = "students"
	// SortReset restores the unfiltered, unsorted list.
	SortReset SortTarget = "reset"
)

// Role returns the roster role a non-reset target narrows to.
func (t SortTarget) Role() roster.Role {
	switch t {
	case SortTutors:
		return roster.RoleTutor
	case SortStudents:
		return roster.RoleStudent
	}
	return ""
}

// SortParams wraps the sort target and its ordered keys.
type SortParams struct {
	Target SortTarget
	Keys   []roster.SortKey
}

// AddPersonParams wraps the attributes of a new roster entry.
type AddPersonParams struct {
	Input roster.PersonInput
}

// PersonChanges lists the fields an edit replaces. Nil fields are kept.
type PersonChanges struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
	Tags    *[]string
	Subject *roster.Subject
	Level   *roster.Level
	Price   *roster.Price
}

// IsEmpty reports whether no field would change.
func (c PersonChanges) IsEmpty() bool {
	return c.Name == nil && c.Phone == nil && c.Email == nil && c.Address == nil &&
		c.Tags == nil && c.Subject == nil && c.Level == nil && c.Price == nil
}

// EditPersonParams addresses a displayed person and the fields to change.
type EditPersonParams struct {
	Index   int
	Changes PersonChanges
}

// FindParams narrows the displayed list to one role plus optional criteria.
// Within one criterion any value may match; criteria are combined with AND.
type FindParams struct {
	Role     roster.Role
	Names    []string
	Subjects []roster.Subject
	Levels   []roster.Level
	Prices   []roster.Price
}

// Stats is the pair of role summaries reported by the stats command.
type Stats struct {
	Tutors   statistics.Summary
	Students statistics.Summary
}

func (s Stats) String() string {
	return "Tutor statistics\n" + s.Tutors.String() + "\n\nStudent statistics\n" + s.Students.String()
}
