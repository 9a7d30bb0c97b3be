package ledger

import (
	"testing"

	"github.com/devlarabar/fitnotes-v2/internal"
	"github.com/stretchr/testify/assert"
)

func set(id int64, date string, exerciseID int64) internal.WorkoutSet {
	return internal.WorkoutSet{
		ID:         id,
		OwnerID:    1,
		Date:       date,
		ExerciseID: exerciseID,
		Measurement: internal.WeightReps{
			Weight: 100, WeightUnit: 1, Reps: 5,
		},
	}
}

func TestAddKeepsDescendingOrder(t *testing.T) {
	l := New(1)
	l.AddSet(set(2, "2026-08-01", 10))
	l.AddSet(set(5, "2026-08-03", 10))
	l.AddSet(set(3, "2026-08-01", 11))
	l.AddSet(set(4, "2026-08-02", 10))

	snap := l.Snapshot()
	var ids []int64
	for _, s := range snap {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int64{5, 4, 3, 2}, ids)
}

func TestHistoryForExerciseNewestFirst(t *testing.T) {
	l := New(1)
	l.AddSet(set(1, "2026-08-01", 10))
	l.AddSet(set(2, "2026-08-01", 10))
	l.AddSet(set(3, "2026-08-05", 10))
	l.AddSet(set(4, "2026-08-03", 99))

	hist := l.HistoryForExercise(10)
	assert.Len(t, hist, 3)
	assert.Equal(t, int64(3), hist[0].ID)
	assert.Equal(t, int64(2), hist[1].ID)
	assert.Equal(t, int64(1), hist[2].ID)
}

func TestSetsForDate(t *testing.T) {
	l := New(1)
	l.AddSet(set(1, "2026-08-01", 10))
	l.AddSet(set(2, "2026-08-02", 10))
	l.AddSet(set(3, "2026-08-01", 11))

	day := l.SetsForDate("2026-08-01")
	assert.Len(t, day, 2)
	for _, s := range day {
		assert.Equal(t, "2026-08-01", s.Date)
	}
	assert.Empty(t, l.SetsForDate("2026-08-09"))
}

func TestPatchSetReturnsSnapshot(t *testing.T) {
	l := New(1)
	l.AddSet(set(1, "2026-08-01", 10))

	snap, ok := l.PatchSet(1, internal.SetPatch{
		Measurement: internal.WeightReps{Weight: 105, WeightUnit: 1, Reps: 3},
	})
	assert.True(t, ok)
	assert.Equal(t, 100.0, snap.Measurement.(internal.WeightReps).Weight)

	cur := l.Snapshot()[0]
	assert.Equal(t, 105.0, cur.Measurement.(internal.WeightReps).Weight)

	// Rollback restores the snapshot verbatim.
	assert.True(t, l.RestoreSet(snap))
	cur = l.Snapshot()[0]
	assert.Equal(t, 100.0, cur.Measurement.(internal.WeightReps).Weight)
}

func TestPatchUnknownIDIsNotFound(t *testing.T) {
	l := New(1)
	_, ok := l.PatchSet(42, internal.SetPatch{})
	assert.False(t, ok)
	_, ok = l.RemoveSet(42)
	assert.False(t, ok)
}

func TestPatchDateReorders(t *testing.T) {
	l := New(1)
	l.AddSet(set(1, "2026-08-01", 10))
	l.AddSet(set(2, "2026-08-02", 10))

	d := "2026-08-03"
	_, ok := l.PatchSet(1, internal.SetPatch{Date: &d})
	assert.True(t, ok)
	assert.Equal(t, int64(1), l.Snapshot()[0].ID)
}

func TestRemoveAndReAddPreservesPosition(t *testing.T) {
	l := New(1)
	l.AddSet(set(1, "2026-08-01", 10))
	l.AddSet(set(2, "2026-08-01", 10))
	l.AddSet(set(3, "2026-08-02", 10))

	snap, ok := l.RemoveSet(2)
	assert.True(t, ok)
	assert.Len(t, l.Snapshot(), 2)

	l.AddSet(snap)
	var ids []int64
	for _, s := range l.Snapshot() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int64{3, 2, 1}, ids)
}

func TestActiveDates(t *testing.T) {
	l := New(1)
	l.AddSet(set(1, "2026-08-02", 10))
	l.AddSet(set(2, "2026-08-01", 10))
	l.AddSet(set(3, "2026-08-02", 11))

	assert.Equal(t, []string{"2026-08-01", "2026-08-02"}, l.ActiveDates())
}

func TestComments(t *testing.T) {
	l := New(1)
	_, ok := l.Comment("2026-08-01")
	assert.False(t, ok)

	l.PutComment(internal.DayComment{ID: 7, OwnerID: 1, Date: "2026-08-01", Text: "leg day"})
	c, ok := l.Comment("2026-08-01")
	assert.True(t, ok)
	assert.Equal(t, "leg day", c.Text)

	// One note per date: a second put replaces.
	l.PutComment(internal.DayComment{ID: 7, OwnerID: 1, Date: "2026-08-01", Text: "rest day"})
	c, _ = l.Comment("2026-08-01")
	assert.Equal(t, "rest day", c.Text)

	removed, ok := l.RemoveComment(7)
	assert.True(t, ok)
	assert.Equal(t, "rest day", removed.Text)
	_, ok = l.Comment("2026-08-01")
	assert.False(t, ok)
}

func TestLoadReplacesContents(t *testing.T) {
	l := New(1)
	l.AddSet(set(99, "2026-08-01", 10))
	l.Load(
		[]internal.WorkoutSet{set(1, "2026-08-02", 10), set(2, "2026-08-04", 10)},
		[]internal.DayComment{{ID: 1, OwnerID: 1, Date: "2026-08-02", Text: "hi"}},
	)
	snap := l.Snapshot()
	assert.Len(t, snap, 2)
	assert.Equal(t, int64(2), snap[0].ID)
	_, ok := l.Comment("2026-08-02")
	assert.True(t, ok)
}
