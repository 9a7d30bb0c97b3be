package internal

// MeasurementKind tags an exercise with the shape of data its sets carry.
type MeasurementKind string

const (
	KindWeightReps MeasurementKind = "weight_reps"
	KindDistance   MeasurementKind = "distance"
	KindDuration   MeasurementKind = "duration"
)

// Measurement is the payload of a logged set. Exactly one concrete
// variant applies per set, determined by the exercise's MeasurementKind.
type Measurement interface {
	Kind() MeasurementKind
}

type WeightReps struct {
	Weight     float64 `json:"weight"`
	WeightUnit int64   `json:"weight_unit"`
	Reps       int     `json:"reps"`
}

func (WeightReps) Kind() MeasurementKind { return KindWeightReps }

// DistanceEffort covers distance exercises. Duration is an H:MM:SS clock
// string and may be empty when the effort was not timed.
type DistanceEffort struct {
	Distance     float64 `json:"distance"`
	DistanceUnit int64   `json:"distance_unit"`
	Duration     string  `json:"time,omitempty"`
}

func (DistanceEffort) Kind() MeasurementKind { return KindDistance }

type TimedHold struct {
	Duration string `json:"time"`
}

func (TimedHold) Kind() MeasurementKind { return KindDuration }

// WorkoutSet is one logged attempt at an exercise. IDs live in two
// namespaces: positive ids are assigned by the persistence service,
// negative ids are local placeholders awaiting confirmation.
type WorkoutSet struct {
	ID               int64       `json:"id"`
	OwnerID          int64       `json:"owner_id"`
	Date             string      `json:"date"` // YYYY-MM-DD, no time component
	ExerciseID       int64       `json:"exercise"`
	CategoryID       int64       `json:"category"`
	Measurement      Measurement `json:"-"`
	Comment          string      `json:"comment,omitempty"`
	IsPersonalRecord bool        `json:"is_pr"`

	// Cross-referenced catalog names, filled in on reconciliation.
	ExerciseName string `json:"exercise_name,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
}

// Pending reports whether the set has not yet been confirmed remotely.
func (s *WorkoutSet) Pending() bool { return s.ID < 0 }

// SetPatch is a partial update of a WorkoutSet. Nil fields are untouched.
type SetPatch struct {
	Measurement Measurement
	Comment     *string
	Date        *string
}

// DayComment is the at-most-one note per (owner, date).
type DayComment struct {
	ID      int64  `json:"id"`
	OwnerID int64  `json:"owner_id"`
	Date    string `json:"date"`
	Text    string `json:"comment"`
}

type User struct {
	ID    int64  `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name"`
}

// --- Static catalog reference data ---

type Exercise struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	CategoryID int64           `json:"category"`
	Kind       MeasurementKind `json:"measurement_type"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Unit struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SetFields is the flat, nullable-column representation of a Measurement,
// used at storage and transport boundaries.
type SetFields struct {
	Weight       *float64 `json:"weight,omitempty"`
	WeightUnit   *int64   `json:"weight_unit,omitempty"`
	Reps         *int     `json:"reps,omitempty"`
	Distance     *float64 `json:"distance,omitempty"`
	DistanceUnit *int64   `json:"distance_unit,omitempty"`
	Duration     *string  `json:"time,omitempty"`
}

// FlattenMeasurement spreads a Measurement variant over nullable fields.
func FlattenMeasurement(m Measurement) SetFields {
	var f SetFields
	switch v := m.(type) {
	case WeightReps:
		f.Weight = &v.Weight
		f.WeightUnit = &v.WeightUnit
		f.Reps = &v.Reps
	case DistanceEffort:
		f.Distance = &v.Distance
		f.DistanceUnit = &v.DistanceUnit
		if v.Duration != "" {
			f.Duration = &v.Duration
		}
	case TimedHold:
		f.Duration = &v.Duration
	}
	return f
}

// Measurement rebuilds the tagged variant from flat fields. The shape of
// the populated fields decides the variant, mirroring how the persistence
// service stores sets as one wide row.
func (f SetFields) Measurement() Measurement {
	switch {
	case f.Weight != nil && f.Reps != nil:
		m := WeightReps{Weight: *f.Weight, Reps: *f.Reps}
		if f.WeightUnit != nil {
			m.WeightUnit = *f.WeightUnit
		}
		return m
	case f.Distance != nil:
		m := DistanceEffort{Distance: *f.Distance}
		if f.DistanceUnit != nil {
			m.DistanceUnit = *f.DistanceUnit
		}
		if f.Duration != nil {
			m.Duration = *f.Duration
		}
		return m
	case f.Duration != nil:
		return TimedHold{Duration: *f.Duration}
	}
	return nil
}
