// Package session owns one signed-in owner's workout ledger and runs
// the optimistic mutation protocol against the persistence gateway:
// apply locally first, then reconcile with the remote result or roll
// back to the pre-mutation snapshot.
package session

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/devlarabar/fitnotes-v2/internal"
	"github.com/devlarabar/fitnotes-v2/internal/analytics"
	"github.com/devlarabar/fitnotes-v2/internal/catalog"
	"github.com/devlarabar/fitnotes-v2/internal/gateway"
	"github.com/devlarabar/fitnotes-v2/internal/ledger"
	"github.com/devlarabar/fitnotes-v2/internal/records"
)

var (
	// ErrUnauthenticated is returned before any optimistic mutation
	// when no owner id is available.
	ErrUnauthenticated = errors.New("session: no owner is signed in")
	// ErrNotFound means the record was already gone locally, usually a
	// concurrent deletion. Benign: the ledger is unchanged.
	ErrNotFound = errors.New("session: record not found")
)

type Session struct {
	ownerID  int64
	ledger   *ledger.Ledger
	sets     gateway.SetRepository
	comments gateway.CommentRepository
	catalog  *catalog.Catalog
	logger   internal.Logger
	pageSize int

	// Pending ids count down from -1 so the newest pending record has
	// the most negative id.
	pendingID atomic.Int64
}

// PRSummary is the record summary plus its chart series.
type PRSummary struct {
	ExerciseID int64                   `json:"exercise"`
	Summary    records.Summary         `json:"summary"`
	Series     []records.ProgressPoint `json:"series,omitempty"`
}

// InsertSet runs the insert protocol: classify against prior history,
// apply a pending record optimistically, persist, then swap the pending
// record for the persisted one. On failure the pending record is
// removed and the ledger nets out untouched.
func (s *Session) InsertSet(ctx context.Context, req *InsertSetRequest) (*internal.WorkoutSet, error) {
	if s.ownerID == 0 {
		return nil, ErrUnauthenticated
	}
	if err := ValidateInsertSetRequest(req); err != nil {
		return nil, internal.NewAppError(400, err.Error())
	}
	exercise, ok := s.catalog.Exercise(req.ExerciseID)
	if !ok {
		return nil, internal.NewAppError(400, "unknown exercise")
	}
	m, err := buildMeasurement(exercise.Kind, req.Weight, req.WeightUnit, req.Reps, req.Distance, req.DistanceUnit, req.Duration)
	if err != nil {
		return nil, internal.NewAppError(400, err.Error())
	}

	isPR := s.classify(ctx, exercise.ID, m)

	pending := internal.WorkoutSet{
		ID:               s.pendingID.Add(-1),
		OwnerID:          s.ownerID,
		Date:             req.Date,
		ExerciseID:       exercise.ID,
		CategoryID:       exercise.CategoryID,
		Measurement:      m,
		Comment:          req.Comment,
		IsPersonalRecord: isPR,
	}
	s.catalog.Enrich(&pending)
	s.ledger.AddSet(pending)

	toCreate := pending
	toCreate.ID = 0
	persisted, err := s.sets.CreateSet(context.WithoutCancel(ctx), &toCreate)

	s.ledger.RemoveSet(pending.ID)
	if err != nil {
		s.logger.Errorf("session: insert rolled back for owner %d: %v", s.ownerID, err)
		return nil, err
	}
	s.catalog.Enrich(persisted)
	s.ledger.AddSet(*persisted)
	return persisted, nil
}

// classify drains the exercise's full remote history page by page and
// asks the classifier. A failed scan logs and counts as "not a record";
// the insert itself still proceeds.
func (s *Session) classify(ctx context.Context, exerciseID int64, m internal.Measurement) bool {
	pager := &records.HistoryPager{
		PageSize: s.pageSize,
		Fetch: func(ctx context.Context, offset, limit int) ([]internal.WorkoutSet, error) {
			return s.sets.SetsByExercise(ctx, exerciseID, s.ownerID, offset, limit)
		},
	}
	prior, err := pager.Drain(ctx)
	if err != nil {
		s.logger.Warnf("session: record scan failed for exercise %d: %v", exerciseID, err)
		return false
	}
	return records.Classify(m, prior)
}

// UpdateSet patches the ledger first, then the gateway. On failure the
// pre-mutation snapshot is patched back verbatim.
func (s *Session) UpdateSet(ctx context.Context, id int64, req *UpdateSetRequest) error {
	if s.ownerID == 0 {
		return ErrUnauthenticated
	}
	if err := ValidateUpdateSetRequest(req); err != nil {
		return internal.NewAppError(400, err.Error())
	}

	patch := internal.SetPatch{Comment: req.Comment, Date: req.Date}
	if req.touchesMeasurement() {
		current, ok := findSet(s.ledger.Snapshot(), id)
		if !ok {
			return ErrNotFound
		}
		exercise, ok := s.catalog.Exercise(current.ExerciseID)
		if !ok {
			return internal.NewAppError(400, "unknown exercise")
		}
		var duration string
		if req.Duration != nil {
			duration = *req.Duration
		}
		m, err := buildMeasurement(exercise.Kind, req.Weight, req.WeightUnit, req.Reps, req.Distance, req.DistanceUnit, duration)
		if err != nil {
			return internal.NewAppError(400, err.Error())
		}
		patch.Measurement = m
	}

	snapshot, ok := s.ledger.PatchSet(id, patch)
	if !ok {
		return ErrNotFound
	}
	if err := s.sets.UpdateSet(context.WithoutCancel(ctx), id, patch); err != nil {
		s.logger.Errorf("session: update of set %d rolled back: %v", id, err)
		s.ledger.RestoreSet(snapshot)
		return err
	}
	return nil
}

// DeleteSet removes the set optimistically and re-adds the snapshot at
// its original id and position if the remote delete fails.
func (s *Session) DeleteSet(ctx context.Context, id int64) error {
	if s.ownerID == 0 {
		return ErrUnauthenticated
	}
	snapshot, ok := s.ledger.RemoveSet(id)
	if !ok {
		return ErrNotFound
	}
	if err := s.sets.DeleteSet(context.WithoutCancel(ctx), id); err != nil {
		s.logger.Errorf("session: delete of set %d rolled back: %v", id, err)
		s.ledger.AddSet(snapshot)
		return err
	}
	return nil
}

// SaveDayComment creates or updates the day's note. Saving empty text
// deletes an existing note and is a no-op otherwise.
func (s *Session) SaveDayComment(ctx context.Context, date, text string) (*internal.DayComment, error) {
	if s.ownerID == 0 {
		return nil, ErrUnauthenticated
	}
	if text == "" {
		if _, ok := s.ledger.Comment(date); ok {
			return nil, s.DeleteDayComment(ctx, date)
		}
		return nil, nil
	}

	if existing, ok := s.ledger.Comment(date); ok {
		updated := existing
		updated.Text = text
		s.ledger.PutComment(updated)
		if err := s.comments.UpdateComment(context.WithoutCancel(ctx), existing.ID, text); err != nil {
			s.logger.Errorf("session: comment update for %s rolled back: %v", date, err)
			s.ledger.PutComment(existing)
			return nil, err
		}
		return &updated, nil
	}

	pending := internal.DayComment{
		ID:      s.pendingID.Add(-1),
		OwnerID: s.ownerID,
		Date:    date,
		Text:    text,
	}
	s.ledger.PutComment(pending)
	persisted, err := s.comments.CreateComment(context.WithoutCancel(ctx), &pending)
	if err != nil {
		s.logger.Errorf("session: comment create for %s rolled back: %v", date, err)
		s.ledger.RemoveComment(pending.ID)
		return nil, err
	}
	s.ledger.PutComment(*persisted)
	return persisted, nil
}

func (s *Session) DeleteDayComment(ctx context.Context, date string) error {
	if s.ownerID == 0 {
		return ErrUnauthenticated
	}
	existing, ok := s.ledger.Comment(date)
	if !ok {
		return ErrNotFound
	}
	s.ledger.RemoveComment(existing.ID)
	if err := s.comments.DeleteComment(context.WithoutCancel(ctx), existing.ID); err != nil {
		s.logger.Errorf("session: comment delete for %s rolled back: %v", date, err)
		s.ledger.PutComment(existing)
		return err
	}
	return nil
}

// --- Read surface ---

func (s *Session) ListSetsForDate(date string) []internal.WorkoutSet {
	return s.ledger.SetsForDate(date)
}

func (s *Session) HistoryForExercise(exerciseID int64) []internal.WorkoutSet {
	return s.ledger.HistoryForExercise(exerciseID)
}

func (s *Session) WorkoutDates() []string {
	return s.ledger.ActiveDates()
}

func (s *Session) DayComment(date string) (internal.DayComment, bool) {
	return s.ledger.Comment(date)
}

func (s *Session) Analytics(windowDays int) analytics.Stats {
	return analytics.Compute(s.ledger.Snapshot(), windowDays, time.Now())
}

// Summary returns the exercise's record summary and progress series, or
// nil when the exercise is unknown or has no history.
func (s *Session) Summary(exerciseID int64, sinceDays int) *PRSummary {
	exercise, ok := s.catalog.Exercise(exerciseID)
	if !ok {
		return nil
	}
	history := s.ledger.HistoryForExercise(exerciseID)
	sum := records.Summarize(exercise.Kind, history)
	if sum == nil {
		return nil
	}
	since := ""
	if sinceDays > 0 {
		since = time.Now().UTC().AddDate(0, 0, -sinceDays).Format("2006-01-02")
	}
	return &PRSummary{
		ExerciseID: exerciseID,
		Summary:    *sum,
		Series:     records.ProgressSeries(exercise.Kind, history, since),
	}
}

func findSet(sets []internal.WorkoutSet, id int64) (internal.WorkoutSet, bool) {
	for _, s := range sets {
		if s.ID == id {
			return s, true
		}
	}
	return internal.WorkoutSet{}, false
}
