package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterAdd(t *testing.T) {
	r := New(nil)

	added := addAll(t, r,
		newTestPerson(t, RoleTutor, "Alex Yeoh", "Mathematics", "2-5", "30-45"),
		newTestPerson(t, RoleStudent, "Bernice Yu", "Science", "2", "30"),
	)
	assert.Equal(t, 1, added[0].ID())
	assert.Equal(t, 2, added[1].ID())
	assert.Equal(t, 2, r.Len())

	t.Run("rejects a person sharing a name", func(t *testing.T) {
		_, err := r.Add(newTestPerson(t, RoleStudent, "Alex Yeoh", "English", "4", "40"))
		assert.ErrorIs(t, err, ErrDuplicatePerson)
		assert.Equal(t, 2, r.Len())
	})

	t.Run("keeps restored ids and advances the allocator", func(t *testing.T) {
		restored, err := r.Add(newTestPerson(t, RoleTutor, "Irfan Ibrahim", "Science", "1-4", "30-60").WithID(10))
		require.NoError(t, err)
		assert.Equal(t, 10, restored.ID())
		assert.Equal(t, 11, r.IDs().Peek())
	})

	t.Run("rejects an id already in use", func(t *testing.T) {
		_, err := r.Add(newTestPerson(t, RoleTutor, "Meera Tan", "Mathematics", "1-3", "20-35").WithID(10))
		assert.ErrorIs(t, err, ErrDuplicatePerson)
	})
}

func TestRosterConflictIgnoresSelf(t *testing.T) {
	r := New(nil)
	added := addAll(t, r, newTestPerson(t, RoleTutor, "Alex Yeoh", "Mathematics", "2-5", "30-45"))

	_, ok := r.Conflict(added[0])
	assert.False(t, ok)

	_, ok = r.Conflict(newTestPerson(t, RoleStudent, "Alex Yeoh", "Science", "2", "30"))
	assert.True(t, ok)
}

func TestRosterReplace(t *testing.T) {
	r := New(nil)
	added := addAll(t, r,
		newTestPerson(t, RoleTutor, "Alex Yeoh", "Mathematics", "2-5", "30-45"),
		newTestPerson(t, RoleStudent, "David Li", "Mathematics", "3", "40"),
	)
	tutor, student := added[0], added[1]

	require.NoError(t, r.Replace(tutor, tutor.WithMatch(student.ID())))
	got, ok := r.FindByID(tutor.ID())
	require.True(t, ok)
	assert.Equal(t, student.ID(), got.MatchedID())

	err := r.Replace(tutor, student)
	assert.Error(t, err, "replacement must keep the id")

	err = r.Replace(tutor.WithID(99), tutor.WithID(99))
	assert.ErrorIs(t, err, ErrPersonNotFound)
}

func TestRosterReplacePair(t *testing.T) {
	r := New(nil)
	added := addAll(t, r,
		newTestPerson(t, RoleTutor, "Alex Yeoh", "Mathematics", "2-5", "30-45"),
		newTestPerson(t, RoleStudent, "David Li", "Mathematics", "3", "40"),
	)
	tutor, student := added[0], added[1]

	require.NoError(t, r.ReplacePair(tutor.WithMatch(student.ID()), student.WithMatch(tutor.ID())))
	counterpart, ok := r.Counterpart(mustFind(t, r, tutor.ID()))
	require.True(t, ok)
	assert.Equal(t, student.ID(), counterpart.ID())

	t.Run("leaves the roster untouched when one side is missing", func(t *testing.T) {
		before := r.All()
		err := r.ReplacePair(tutor.WithoutMatch(), student.WithID(42))
		assert.ErrorIs(t, err, ErrPersonNotFound)
		assert.Equal(t, before, r.All())
	})

	t.Run("needs two distinct ids", func(t *testing.T) {
		assert.Error(t, r.ReplacePair(tutor, tutor))
	})
}

func TestRosterRemove(t *testing.T) {
	r := New(nil)
	added := addAll(t, r,
		newTestPerson(t, RoleTutor, "Alex Yeoh", "Mathematics", "2-5", "30-45"),
		newTestPerson(t, RoleStudent, "David Li", "Mathematics", "3", "40"),
	)

	require.NoError(t, r.Remove(added[0].ID()))
	assert.Equal(t, 1, r.Len())
	_, ok := r.FindByID(added[0].ID())
	assert.False(t, ok)

	assert.ErrorIs(t, r.Remove(added[0].ID()), ErrPersonNotFound)

	next, err := r.Add(newTestPerson(t, RoleTutor, "Meera Tan", "Mathematics", "1-3", "20-35"))
	require.NoError(t, err)
	assert.Equal(t, 3, next.ID(), "ids are never reused")
}

func TestRosterView(t *testing.T) {
	r := New(nil)
	addAll(t, r,
		newTestPerson(t, RoleTutor, "Alex Yeoh", "Mathematics", "2-5", "30-45"),
		newTestPerson(t, RoleStudent, "Bernice Yu", "Science", "2", "50"),
		newTestPerson(t, RoleStudent, "David Li", "Mathematics", "3", "35"),
		newTestPerson(t, RoleStudent, "Roy Balakrishnan", "English", "4", "40"),
	)

	r.SetFilter(HasRole{Role: RoleStudent})
	r.SetOrder([]SortKey{SortByPrice})

	shown := r.Filtered()
	require.Len(t, shown, 3)
	assert.Equal(t, []string{"David Li", "Roy Balakrishnan", "Bernice Yu"}, names(shown))

	first, err := r.At(1)
	require.NoError(t, err)
	assert.Equal(t, "David Li", first.Name())

	_, err = r.At(0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = r.At(4)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	assert.Equal(t, []string{"Alex Yeoh", "Bernice Yu", "David Li", "Roy Balakrishnan"}, names(r.All()), "All ignores the view")

	r.SetFilter(nil)
	assert.Equal(t, ShowAll{}, r.Filter())

	r.ResetView()
	assert.Empty(t, r.Order())
	assert.Equal(t, names(r.All()), names(r.Filtered()))
}

func mustFind(t *testing.T, r *Roster, id int) Person {
	t.Helper()
	p, ok := r.FindByID(id)
	require.True(t, ok)
	return p
}

func names(persons []Person) []string {
	out := make([]string, len(persons))
	for i, p := range persons {
		out[i] = p.Name()
	}
	return out
}
