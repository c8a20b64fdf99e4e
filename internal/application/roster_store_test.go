package application

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/tutorly/roster/internal/persistence"
	"github.com/tutorly/roster/internal/roster"
	"github.com/tutorly/roster/internal/testfixtures"
)

type rosterRepoStub struct {
	records []persistence.PersonRecord
	loadErr error
	saveErr error
	saved   []persistence.PersonRecord
}

func (s *rosterRepoStub) LoadPersons(context.Context) ([]persistence.PersonRecord, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.records, nil
}

func (s *rosterRepoStub) SavePersons(_ context.Context, records []persistence.PersonRecord) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = records
	return nil
}

func TestRosterStore_RoundTripThroughSQLite(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	store := NewRosterStoreWithLogger(harness.Roster, discardLogger())
	ctx := context.Background()

	r, tutor, student := matchedRoster(t)
	session := mondaySession(t, 40)
	if err := r.ReplacePair(tutor.WithSession(session), student.WithSession(session)); err != nil {
		t.Fatalf("failed to attach session: %v", err)
	}
	if _, err := r.Add(testfixtures.NewStudentFixture(testfixtures.WithTags("weekends", "exam")).Person(t)); err != nil {
		t.Fatalf("failed to add student: %v", err)
	}

	if err := store.Save(ctx, r); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	want, got := r.All(), loaded.All()
	if len(got) != len(want) {
		t.Fatalf("expected %d persons, got %d", len(want), len(got))
	}
	for i := range want {
		if !want[i].Equal(got[i]) {
			t.Fatalf("person %d differs:\nwant %s\ngot  %s", i, want[i], got[i])
		}
	}
	if loaded.IDs().Peek() != r.IDs().Peek() {
		t.Fatalf("expected allocator to resume at %d, got %d", r.IDs().Peek(), loaded.IDs().Peek())
	}
}

func TestRosterStore_WithoutRepository(t *testing.T) {
	store := NewRosterStoreWithLogger(nil, discardLogger())

	r, err := store.Load(context.Background())
	if err != nil || r.Len() != 0 {
		t.Fatalf("expected empty roster, got %v (%v)", r, err)
	}
	if err := store.Save(context.Background(), r); err != nil {
		t.Fatalf("expected save to be a no-op, got %v", err)
	}
}

func TestRosterStore_PropagatesRepositoryErrors(t *testing.T) {
	boom := errors.New("disk full")

	store := NewRosterStoreWithLogger(&rosterRepoStub{loadErr: boom}, discardLogger())
	if _, err := store.Load(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}

	store = NewRosterStoreWithLogger(&rosterRepoStub{saveErr: boom}, discardLogger())
	if err := store.Save(context.Background(), roster.New(nil)); !errors.Is(err, boom) {
		t.Fatalf("expected save error, got %v", err)
	}
}

func TestSnapshotRoster(t *testing.T) {
	r, tutor, _ := matchedRoster(t)
	session := mondaySession(t, 40)
	if err := r.Replace(tutor, tutor.WithSession(session)); err != nil {
		t.Fatalf("failed to attach session: %v", err)
	}

	records := SnapshotRoster(r)
	if len(records) != 2 {
		t.Fatalf("expected two records, got %d", len(records))
	}
	got := records[0]
	if got.Role != "tutor" || got.Level != "2-5" || got.Price != "30-45" || got.MatchedID != 2 {
		t.Fatalf("unexpected record %+v", got)
	}
	want := persistence.SessionRecord{Day: "MONDAY", Time: "17:00", DurationMinutes: 90, Subject: "Mathematics", Price: 40}
	if got.Session == nil || *got.Session != want {
		t.Fatalf("expected session %+v, got %+v", want, got.Session)
	}
	if records[1].Session != nil {
		t.Fatalf("expected no session on the student record")
	}
}

func TestRestoreRoster(t *testing.T) {
	session := &persistence.SessionRecord{Day: "MONDAY", Time: "17:00", DurationMinutes: 90, Subject: "Mathematics", Price: 40}

	t.Run("renumbers records without an id after the highest stored id", func(t *testing.T) {
		records := []persistence.PersonRecord{
			testfixtures.NewTutorFixture().Record(),
			testfixtures.NewStudentFixture(testfixtures.WithID(5)).Record(),
		}

		var logs bytes.Buffer
		r, err := RestoreRoster(context.Background(), records, slog.New(slog.NewTextHandler(&logs, nil)))
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		all := r.All()
		if all[0].ID() != 6 || all[1].ID() != 5 {
			t.Fatalf("expected ids 6 and 5, got %d and %d", all[0].ID(), all[1].ID())
		}
		if r.IDs().Peek() != 7 {
			t.Fatalf("expected next id 7, got %d", r.IDs().Peek())
		}
		if !strings.Contains(logs.String(), "renumbered person without id") {
			t.Fatalf("expected renumbering to be logged, got %q", logs.String())
		}
	})

	t.Run("keeps mutual links and agreed sessions", func(t *testing.T) {
		tutor := testfixtures.NewTutorFixture(testfixtures.WithID(1)).Record()
		student := testfixtures.NewStudentFixture(testfixtures.WithID(2)).Record()
		tutor.MatchedID, student.MatchedID = 2, 1
		tutor.Session, student.Session = session, session

		r, err := RestoreRoster(context.Background(), []persistence.PersonRecord{tutor, student}, discardLogger())
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		for _, id := range []int{1, 2} {
			p := mustFind(t, r, id)
			if !p.IsMatched() || !p.HasSession() {
				t.Fatalf("expected #%d matched with a session", id)
			}
		}
	})

	t.Run("drops one-sided, dangling and same-role links", func(t *testing.T) {
		oneSided := testfixtures.NewTutorFixture(testfixtures.WithID(1)).Record()
		oneSided.MatchedID = 2
		unlinked := testfixtures.NewStudentFixture(testfixtures.WithID(2)).Record()
		dangling := testfixtures.NewStudentFixture(testfixtures.WithID(3)).Record()
		dangling.MatchedID = 99
		tutorA := testfixtures.NewTutorFixture(testfixtures.WithID(4)).Record()
		tutorB := testfixtures.NewTutorFixture(testfixtures.WithID(5)).Record()
		tutorA.MatchedID, tutorB.MatchedID = 5, 4

		var logs bytes.Buffer
		r, err := RestoreRoster(context.Background(),
			[]persistence.PersonRecord{oneSided, unlinked, dangling, tutorA, tutorB},
			slog.New(slog.NewTextHandler(&logs, nil)))
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		for _, p := range r.All() {
			if p.IsMatched() {
				t.Fatalf("expected #%d to be unmatched", p.ID())
			}
		}
		if got := strings.Count(logs.String(), "dropped unresolvable match link"); got != 4 {
			t.Fatalf("expected four dropped links, got %d in %q", got, logs.String())
		}
	})

	t.Run("drops sessions the pair disagrees on", func(t *testing.T) {
		tutor := testfixtures.NewTutorFixture(testfixtures.WithID(1)).Record()
		student := testfixtures.NewStudentFixture(testfixtures.WithID(2)).Record()
		tutor.MatchedID, student.MatchedID = 2, 1
		other := *session
		other.Day = "FRIDAY"
		tutor.Session, student.Session = session, &other

		r, err := RestoreRoster(context.Background(), []persistence.PersonRecord{tutor, student}, discardLogger())
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		for _, id := range []int{1, 2} {
			p := mustFind(t, r, id)
			if !p.IsMatched() || p.HasSession() {
				t.Fatalf("expected #%d matched without a session", id)
			}
		}
	})

	t.Run("rejects corrupt records", func(t *testing.T) {
		bad := testfixtures.NewTutorFixture(testfixtures.WithLevel("9")).Record()
		if _, err := RestoreRoster(context.Background(), []persistence.PersonRecord{bad}, discardLogger()); !errors.Is(err, persistence.ErrCorruptRecord) {
			t.Fatalf("expected ErrCorruptRecord, got %v", err)
		}

		negative := testfixtures.NewTutorFixture(testfixtures.WithID(-1)).Record()
		if _, err := RestoreRoster(context.Background(), []persistence.PersonRecord{negative}, discardLogger()); !errors.Is(err, persistence.ErrCorruptRecord) {
			t.Fatalf("expected ErrCorruptRecord, got %v", err)
		}

		first := testfixtures.NewTutorFixture(testfixtures.WithID(1)).Record()
		twin := testfixtures.NewStudentFixture(testfixtures.WithID(2), testfixtures.WithEmail(first.Email)).Record()
		if _, err := RestoreRoster(context.Background(), []persistence.PersonRecord{first, twin}, discardLogger()); !errors.Is(err, persistence.ErrCorruptRecord) {
			t.Fatalf("expected duplicate to be reported as corrupt, got %v", err)
		}
	})
}
