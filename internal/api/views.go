package api

import "github.com/devlarabar/fitnotes-v2/internal"

// setView is the wire shape of a set: the measurement variant is spread
// over flat nullable fields the way the persistence service stores it.
type setView struct {
	ID         int64  `json:"id"`
	Date       string `json:"date"`
	ExerciseID int64  `json:"exercise"`
	CategoryID int64  `json:"category"`
	internal.SetFields
	Comment          string `json:"comment,omitempty"`
	IsPersonalRecord bool   `json:"is_pr"`
	Pending          bool   `json:"pending,omitempty"`
	ExerciseName     string `json:"exercise_name,omitempty"`
	CategoryName     string `json:"category_name,omitempty"`
}

func newSetView(s internal.WorkoutSet) setView {
	return setView{
		ID:               s.ID,
		Date:             s.Date,
		ExerciseID:       s.ExerciseID,
		CategoryID:       s.CategoryID,
		SetFields:        internal.FlattenMeasurement(s.Measurement),
		Comment:          s.Comment,
		IsPersonalRecord: s.IsPersonalRecord,
		Pending:          s.Pending(),
		ExerciseName:     s.ExerciseName,
		CategoryName:     s.CategoryName,
	}
}

func newSetViews(sets []internal.WorkoutSet) []setView {
	out := make([]setView, len(sets))
	for i, s := range sets {
		out[i] = newSetView(s)
	}
	return out
}
