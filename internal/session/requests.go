package session

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/devlarabar/fitnotes-v2/internal"
	"github.com/devlarabar/fitnotes-v2/internal/timefmt"
)

var validate = validator.New()

// InsertSetRequest carries the flat field shape the UI submits. Which
// fields are required depends on the exercise's measurement kind.
type InsertSetRequest struct {
	ExerciseID   int64    `json:"exercise" validate:"required,gt=0"`
	Date         string   `json:"date" validate:"required,datetime=2006-01-02"`
	Weight       *float64 `json:"weight" validate:"omitempty,gte=0"`
	WeightUnit   *int64   `json:"weight_unit" validate:"omitempty,gt=0"`
	Reps         *int     `json:"reps" validate:"omitempty,gte=0"`
	Distance     *float64 `json:"distance" validate:"omitempty,gte=0"`
	DistanceUnit *int64   `json:"distance_unit" validate:"omitempty,gt=0"`
	Duration     string   `json:"time"`
	Comment      string   `json:"comment"`
}

func ValidateInsertSetRequest(req *InsertSetRequest) error {
	return validate.Struct(req)
}

// UpdateSetRequest is a partial edit. Measurement fields, when present,
// replace the whole measurement; comment and date pass through as-is.
type UpdateSetRequest struct {
	Weight       *float64 `json:"weight" validate:"omitempty,gte=0"`
	WeightUnit   *int64   `json:"weight_unit" validate:"omitempty,gt=0"`
	Reps         *int     `json:"reps" validate:"omitempty,gte=0"`
	Distance     *float64 `json:"distance" validate:"omitempty,gte=0"`
	DistanceUnit *int64   `json:"distance_unit" validate:"omitempty,gt=0"`
	Duration     *string  `json:"time"`
	Comment      *string  `json:"comment"`
	Date         *string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

func ValidateUpdateSetRequest(req *UpdateSetRequest) error {
	return validate.Struct(req)
}

func (r *UpdateSetRequest) touchesMeasurement() bool {
	return r.Weight != nil || r.Reps != nil || r.Distance != nil || r.Duration != nil
}

// buildMeasurement assembles the tagged variant the exercise's kind
// demands, rejecting field combinations that do not fit it.
func buildMeasurement(kind internal.MeasurementKind, weight *float64, weightUnit *int64, reps *int, distance *float64, distanceUnit *int64, duration string) (internal.Measurement, error) {
	switch kind {
	case internal.KindWeightReps:
		if weight == nil || reps == nil {
			return nil, fmt.Errorf("weight and reps are required for a %s exercise", kind)
		}
		m := internal.WeightReps{Weight: *weight, Reps: *reps}
		if weightUnit != nil {
			m.WeightUnit = *weightUnit
		}
		return m, nil
	case internal.KindDistance:
		if distance == nil {
			return nil, fmt.Errorf("distance is required for a %s exercise", kind)
		}
		m := internal.DistanceEffort{Distance: *distance, Duration: timefmt.Normalize(duration)}
		if distanceUnit != nil {
			m.DistanceUnit = *distanceUnit
		}
		return m, nil
	case internal.KindDuration:
		if timefmt.IsZero(duration) {
			return nil, fmt.Errorf("a non-zero time is required for a %s exercise", kind)
		}
		return internal.TimedHold{Duration: timefmt.Normalize(duration)}, nil
	}
	return nil, fmt.Errorf("unknown measurement kind %q", kind)
}
