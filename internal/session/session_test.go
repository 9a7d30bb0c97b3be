package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/devlarabar/fitnotes-v2/internal"
	"github.com/devlarabar/fitnotes-v2/internal/catalog"
	"github.com/devlarabar/fitnotes-v2/internal/gateway"
)

func f64(v float64) *float64 { return &v }
func i(v int) *int           { return &v }
func str(v string) *string   { return &v }

func newTestManager(t *testing.T) (*Manager, *gateway.MemoryGateway) {
	t.Helper()
	g := gateway.NewMemoryGateway()
	g.SeedCatalog(
		[]internal.Exercise{
			{ID: 1, Name: "Bench Press", CategoryID: 1, Kind: internal.KindWeightReps},
			{ID: 2, Name: "Running", CategoryID: 2, Kind: internal.KindDistance},
			{ID: 3, Name: "Plank", CategoryID: 3, Kind: internal.KindDuration},
		},
		[]internal.Category{
			{ID: 1, Name: "Chest"},
			{ID: 2, Name: "Cardio"},
			{ID: 3, Name: "Core"},
		},
		[]internal.Unit{{ID: 1, Name: "lbs"}},
		[]internal.Unit{{ID: 1, Name: "miles"}},
	)

	cat, err := catalog.Load(context.Background(), g)
	require.NoError(t, err)

	logger := internal.NewZapLogger(zap.NewNop().Sugar())
	return NewManager(g, g, cat, logger, 1000), g
}

func newTestSession(t *testing.T) (*Session, *gateway.MemoryGateway) {
	t.Helper()
	mgr, g := newTestManager(t)
	s, err := mgr.Session(context.Background(), 1)
	require.NoError(t, err)
	return s, g
}

func TestSessionRequiresOwner(t *testing.T) {
	mgr, _ := newTestManager(t)
	_, err := mgr.Session(context.Background(), 0)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestInsertSetRoundTrip(t *testing.T) {
	s, _ := newTestSession(t)

	set, err := s.InsertSet(context.Background(), &InsertSetRequest{
		ExerciseID: 1,
		Date:       "2026-03-10",
		Weight:     f64(100),
		Reps:       i(5),
	})
	require.NoError(t, err)
	assert.Positive(t, set.ID)
	assert.False(t, set.Pending())
	assert.True(t, set.IsPersonalRecord, "first ever set is a record")
	assert.Equal(t, "Bench Press", set.ExerciseName)
	assert.Equal(t, "Chest", set.CategoryName)

	day := s.ListSetsForDate("2026-03-10")
	require.Len(t, day, 1)
	assert.Equal(t, set.ID, day[0].ID)
}

func TestInsertSetClassifiesAgainstHistory(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	first, err := s.InsertSet(ctx, &InsertSetRequest{ExerciseID: 1, Date: "2026-03-01", Weight: f64(100), Reps: i(5)})
	require.NoError(t, err)
	assert.True(t, first.IsPersonalRecord)

	fewer, err := s.InsertSet(ctx, &InsertSetRequest{ExerciseID: 1, Date: "2026-03-02", Weight: f64(100), Reps: i(4)})
	require.NoError(t, err)
	assert.False(t, fewer.IsPersonalRecord)

	heavier, err := s.InsertSet(ctx, &InsertSetRequest{ExerciseID: 1, Date: "2026-03-03", Weight: f64(105), Reps: i(1)})
	require.NoError(t, err)
	assert.True(t, heavier.IsPersonalRecord)
}

func TestInsertSetRollsBackOnGatewayFailure(t *testing.T) {
	s, g := newTestSession(t)

	g.FailNext(errors.New("boom"))
	_, err := s.InsertSet(context.Background(), &InsertSetRequest{
		ExerciseID: 1,
		Date:       "2026-03-10",
		Weight:     f64(100),
		Reps:       i(5),
	})
	require.Error(t, err)

	assert.Empty(t, s.ListSetsForDate("2026-03-10"), "pending set must not survive a failed insert")
	assert.Empty(t, s.WorkoutDates())
}

func TestInsertSetRejectsWrongFieldsForKind(t *testing.T) {
	s, _ := newTestSession(t)

	_, err := s.InsertSet(context.Background(), &InsertSetRequest{ExerciseID: 1, Date: "2026-03-10", Distance: f64(5)})
	assert.Error(t, err, "weight exercise needs weight and reps")

	_, err = s.InsertSet(context.Background(), &InsertSetRequest{ExerciseID: 3, Date: "2026-03-10", Duration: "0:00"})
	assert.Error(t, err, "zero time is not a hold")

	_, err = s.InsertSet(context.Background(), &InsertSetRequest{ExerciseID: 99, Date: "2026-03-10", Weight: f64(10), Reps: i(1)})
	assert.Error(t, err)
}

func TestUpdateSetRollsBackOnGatewayFailure(t *testing.T) {
	s, g := newTestSession(t)
	ctx := context.Background()

	set, err := s.InsertSet(ctx, &InsertSetRequest{ExerciseID: 1, Date: "2026-03-10", Weight: f64(100), Reps: i(5), Comment: "warm-up"})
	require.NoError(t, err)

	g.FailNext(errors.New("boom"))
	err = s.UpdateSet(ctx, set.ID, &UpdateSetRequest{Comment: str("heavy")})
	require.Error(t, err)

	day := s.ListSetsForDate("2026-03-10")
	require.Len(t, day, 1)
	assert.Equal(t, "warm-up", day[0].Comment, "failed update must restore the snapshot")
}

func TestUpdateSetMovesDate(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	set, err := s.InsertSet(ctx, &InsertSetRequest{ExerciseID: 1, Date: "2026-03-10", Weight: f64(100), Reps: i(5)})
	require.NoError(t, err)

	require.NoError(t, s.UpdateSet(ctx, set.ID, &UpdateSetRequest{Date: str("2026-03-12")}))
	assert.Empty(t, s.ListSetsForDate("2026-03-10"))
	moved := s.ListSetsForDate("2026-03-12")
	require.Len(t, moved, 1)
	assert.Equal(t, set.ID, moved[0].ID)
}

func TestUpdateSetNotFound(t *testing.T) {
	s, _ := newTestSession(t)
	err := s.UpdateSet(context.Background(), 42, &UpdateSetRequest{Comment: str("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteSetRollsBackOnGatewayFailure(t *testing.T) {
	s, g := newTestSession(t)
	ctx := context.Background()

	set, err := s.InsertSet(ctx, &InsertSetRequest{ExerciseID: 1, Date: "2026-03-10", Weight: f64(100), Reps: i(5)})
	require.NoError(t, err)

	g.FailNext(errors.New("boom"))
	require.Error(t, s.DeleteSet(ctx, set.ID))

	day := s.ListSetsForDate("2026-03-10")
	require.Len(t, day, 1, "failed delete must restore the set")
	assert.Equal(t, set.ID, day[0].ID)
}

func TestDeleteSet(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	set, err := s.InsertSet(ctx, &InsertSetRequest{ExerciseID: 1, Date: "2026-03-10", Weight: f64(100), Reps: i(5)})
	require.NoError(t, err)

	require.NoError(t, s.DeleteSet(ctx, set.ID))
	assert.Empty(t, s.ListSetsForDate("2026-03-10"))
	assert.ErrorIs(t, s.DeleteSet(ctx, set.ID), ErrNotFound)
}

func TestDayCommentLifecycle(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	created, err := s.SaveDayComment(ctx, "2026-03-10", "felt strong")
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	updated, err := s.SaveDayComment(ctx, "2026-03-10", "felt tired")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	got, ok := s.DayComment("2026-03-10")
	require.True(t, ok)
	assert.Equal(t, "felt tired", got.Text)

	// Saving empty text deletes the note.
	deleted, err := s.SaveDayComment(ctx, "2026-03-10", "")
	require.NoError(t, err)
	assert.Nil(t, deleted)
	_, ok = s.DayComment("2026-03-10")
	assert.False(t, ok)

	// Empty save with no note is a no-op.
	none, err := s.SaveDayComment(ctx, "2026-03-10", "")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestDayCommentCreateRollsBack(t *testing.T) {
	s, g := newTestSession(t)

	g.FailNext(errors.New("boom"))
	_, err := s.SaveDayComment(context.Background(), "2026-03-10", "note")
	require.Error(t, err)
	_, ok := s.DayComment("2026-03-10")
	assert.False(t, ok)
}

func TestDayCommentUpdateRollsBack(t *testing.T) {
	s, g := newTestSession(t)
	ctx := context.Background()

	_, err := s.SaveDayComment(ctx, "2026-03-10", "original")
	require.NoError(t, err)

	g.FailNext(errors.New("boom"))
	_, err = s.SaveDayComment(ctx, "2026-03-10", "edited")
	require.Error(t, err)

	got, ok := s.DayComment("2026-03-10")
	require.True(t, ok)
	assert.Equal(t, "original", got.Text)
}

func TestSessionBootstrapsFromGateway(t *testing.T) {
	mgr, g := newTestManager(t)
	ctx := context.Background()

	seed := internal.WorkoutSet{
		OwnerID:     1,
		Date:        "2026-03-01",
		ExerciseID:  1,
		CategoryID:  1,
		Measurement: internal.WeightReps{Weight: 90, Reps: 8},
	}
	_, err := g.CreateSet(ctx, &seed)
	require.NoError(t, err)

	s, err := mgr.Session(ctx, 1)
	require.NoError(t, err)

	day := s.ListSetsForDate("2026-03-01")
	require.Len(t, day, 1)
	assert.Equal(t, "Bench Press", day[0].ExerciseName, "bootstrap enriches catalog names")

	again, err := mgr.Session(ctx, 1)
	require.NoError(t, err)
	assert.Same(t, s, again)
}

func TestSummary(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	_, err := s.InsertSet(ctx, &InsertSetRequest{ExerciseID: 1, Date: "2026-03-01", Weight: f64(100), Reps: i(5)})
	require.NoError(t, err)
	_, err = s.InsertSet(ctx, &InsertSetRequest{ExerciseID: 1, Date: "2026-03-03", Weight: f64(100), Reps: i(7)})
	require.NoError(t, err)
	_, err = s.InsertSet(ctx, &InsertSetRequest{ExerciseID: 1, Date: "2026-03-05", Weight: f64(105), Reps: i(2)})
	require.NoError(t, err)

	sum := s.Summary(1, 0)
	require.NotNil(t, sum)
	assert.Equal(t, 105.0, sum.Summary.MaxWeight)
	assert.Equal(t, 2, sum.Summary.BestReps, "best reps counted at the max weight only")
	assert.Len(t, sum.Series, 3)

	assert.Nil(t, s.Summary(2, 0), "no history means no summary")
	assert.Nil(t, s.Summary(99, 0), "unknown exercise")
}
