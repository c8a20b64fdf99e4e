package application

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/tutorly/roster/internal/roster"
	"github.com/tutorly/roster/internal/testfixtures"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// matchedRoster returns a roster holding a tutor (index 1) and a student
// (index 2) already matched with each other.
func matchedRoster(t *testing.T) (*roster.Roster, roster.Person, roster.Person) {
	t.Helper()
	r, persons := testfixtures.NewRoster(t,
		testfixtures.NewTutorFixture(testfixtures.WithName("Alex Yeoh")),
		testfixtures.NewStudentFixture(testfixtures.WithName("David Li")),
	)
	tutor := persons[0].WithMatch(persons[1].ID())
	student := persons[1].WithMatch(persons[0].ID())
	if err := r.ReplacePair(tutor, student); err != nil {
		t.Fatalf("failed to link fixtures: %v", err)
	}
	return r, tutor, student
}

func mondaySession(t *testing.T, price int) roster.Session {
	t.Helper()
	value, err := roster.SinglePrice(price)
	if err != nil {
		t.Fatalf("invalid price: %v", err)
	}
	session, err := roster.NewSession(time.Monday, 17*time.Hour, 90*time.Minute, "Mathematics", value)
	if err != nil {
		t.Fatalf("invalid session: %v", err)
	}
	return session
}

func mustFind(t *testing.T, r *roster.Roster, id int) roster.Person {
	t.Helper()
	p, ok := r.FindByID(id)
	if !ok {
		t.Fatalf("person #%d not found", id)
	}
	return p
}
