// Package statistics aggregates roster snapshots into per-role summaries.
package statistics

import (
	"fmt"
	"strings"

	"github.com/tutorly/roster/internal/roster"
)

// NotAvailable is reported as the most common subject of an empty group.
const NotAvailable = "N/A"

// SubjectCount is the number of persons in a group sharing one subject.
type SubjectCount struct {
	Subject roster.Subject
	Count   int
}

// Summary describes one role group of the roster.
type Summary struct {
	Role              roster.Role
	Total             int
	AveragePrice      int
	MostCommonSubject string
	Subjects          []SubjectCount
	Matched           int
}

// Compute summarises the persons holding role. The average price is the
// truncated mean of each person's average price. Subjects are listed in
// first-seen order and the most common subject is the first one reaching the
// highest count.
func Compute(persons []roster.Person, role roster.Role) Summary {
	summary := Summary{Role: role, MostCommonSubject: NotAvailable}

	totalPrice := 0
	positions := make(map[roster.Subject]int)
	for _, p := range persons {
		if p.Role() != role {
			continue
		}
		summary.Total++
		totalPrice += p.Price().Average()
		if p.IsMatched() {
			summary.Matched++
		}
		if i, ok := positions[p.Subject()]; ok {
			summary.Subjects[i].Count++
			continue
		}
		positions[p.Subject()] = len(summary.Subjects)
		summary.Subjects = append(summary.Subjects, SubjectCount{Subject: p.Subject(), Count: 1})
	}

	if summary.Total == 0 {
		return summary
	}
	summary.AveragePrice = totalPrice / summary.Total

	best := summary.Subjects[0]
	for _, sc := range summary.Subjects[1:] {
		if sc.Count > best.Count {
			best = sc
		}
	}
	summary.MostCommonSubject = best.Subject.String()
	return summary
}

// SubjectList renders "Mathematics (2), Science (1)" or N/A.
func (s Summary) SubjectList() string {
	if len(s.Subjects) == 0 {
		return NotAvailable
	}
	parts := make([]string, len(s.Subjects))
	for i, sc := range s.Subjects {
		parts[i] = fmt.Sprintf("%s (%d)", sc.Subject, sc.Count)
	}
	return strings.Join(parts, ", ")
}

func (s Summary) String() string {
	title := strings.ToUpper(s.Role.Plural()[:1]) + s.Role.Plural()[1:]
	var b strings.Builder
	fmt.Fprintf(&b, "Total %s: %d\n", title, s.Total)
	fmt.Fprintf(&b, "Average Price: $%d\n", s.AveragePrice)
	fmt.Fprintf(&b, "Most Common Subject: %s\n", s.MostCommonSubject)
	fmt.Fprintf(&b, "All Subjects: %s\n", s.SubjectList())
	fmt.Fprintf(&b, "Matched %s: %d", title, s.Matched)
	return b.String()
}
