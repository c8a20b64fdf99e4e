package roster

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testPersonSeq int

func newTestPerson(t *testing.T, role Role, name, subject, level, price string) Person {
	t.Helper()
	testPersonSeq++
	person, err := NewPerson(PersonInput{
		Role: role,
		Profile: Profile{
			Name:    name,
			Phone:   fmt.Sprintf("9%07d", testPersonSeq),
			Email:   fmt.Sprintf("person%d@example.com", testPersonSeq),
			Address: "Blk 1 Example Street",
		},
		Subject: Subject(subject),
		Level:   MustParseLevel(level),
		Price:   MustParsePrice(price),
	})
	require.NoError(t, err)
	return person
}

func addAll(t *testing.T, r *Roster, persons ...Person) []Person {
	t.Helper()
	added := make([]Person, len(persons))
	for i, p := range persons {
		var err error
		added[i], err = r.Add(p)
		require.NoError(t, err)
	}
	return added
}

func testSession(t *testing.T) Session {
	t.Helper()
	session, err := NewSession(time.Monday, 17*time.Hour, time.Hour, "Mathematics", MustParsePrice("40"))
	require.NoError(t, err)
	return session
}
