package records

import (
	"sort"

	"github.com/devlarabar/fitnotes-v2/internal"
	"github.com/devlarabar/fitnotes-v2/internal/timefmt"
)

// Summary is the per-exercise record shown on the progress page. Which
// fields are populated depends on the measurement kind.
type Summary struct {
	Kind internal.MeasurementKind `json:"kind"`

	// weight_reps: the heaviest weight ever lifted and the best reps
	// achieved at that weight.
	MaxWeight  float64 `json:"max_weight,omitempty"`
	BestReps   int     `json:"best_reps,omitempty"`
	WeightUnit int64   `json:"weight_unit,omitempty"`

	// distance: the longest distance and the fastest duration logged at
	// that distance.
	MaxDistance  float64 `json:"max_distance,omitempty"`
	BestDuration string  `json:"best_duration,omitempty"`
	DistanceUnit int64   `json:"distance_unit,omitempty"`

	// duration: the longest hold.
	MaxDuration string `json:"max_duration,omitempty"`
}

// Summarize computes the display summary for an exercise's history.
// Returns nil when there is no history. Best reps are counted only among
// sets at the historical max weight; that keeps the headline "150 kg x 4"
// internally consistent rather than mixing the max weight with rep counts
// achieved at lighter loads.
func Summarize(kind internal.MeasurementKind, history []internal.WorkoutSet) *Summary {
	if len(history) == 0 {
		return nil
	}

	switch kind {
	case internal.KindDistance:
		sum := &Summary{Kind: kind, MaxDistance: maxDistance(history)}
		bestSec, found := 0, false
		for _, s := range history {
			d, ok := s.Measurement.(internal.DistanceEffort)
			if !ok || d.Distance != sum.MaxDistance {
				continue
			}
			if sum.DistanceUnit == 0 {
				sum.DistanceUnit = d.DistanceUnit
			}
			if timefmt.IsZero(d.Duration) {
				continue
			}
			if sec := timefmt.Seconds(d.Duration); !found || sec < bestSec {
				bestSec, found = sec, true
			}
		}
		if found {
			sum.BestDuration = timefmt.Format(bestSec)
		}
		return sum
	case internal.KindDuration:
		sec, ok := maxDuration(history)
		if !ok {
			return nil
		}
		return &Summary{Kind: kind, MaxDuration: timefmt.Format(sec)}
	default:
		sum := &Summary{Kind: internal.KindWeightReps, MaxWeight: maxWeight(history)}
		for _, s := range history {
			w, ok := s.Measurement.(internal.WeightReps)
			if !ok || w.Weight != sum.MaxWeight {
				continue
			}
			if sum.WeightUnit == 0 {
				sum.WeightUnit = w.WeightUnit
			}
			if w.Reps > sum.BestReps {
				sum.BestReps = w.Reps
			}
		}
		return sum
	}
}

// ProgressPoint is one date's best value for charting.
type ProgressPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// ProgressSeries reduces a history to a per-date best value, ascending
// by date. The charted value follows the measurement kind: weight,
// distance, or duration in seconds. Dates before since are dropped;
// an empty since keeps everything.
func ProgressSeries(kind internal.MeasurementKind, history []internal.WorkoutSet, since string) []ProgressPoint {
	best := make(map[string]float64)
	for _, s := range history {
		if since != "" && s.Date < since {
			continue
		}
		var value float64
		switch v := s.Measurement.(type) {
		case internal.WeightReps:
			value = v.Weight
		case internal.DistanceEffort:
			if kind == internal.KindDuration {
				value = float64(timefmt.Seconds(v.Duration))
			} else {
				value = v.Distance
			}
		case internal.TimedHold:
			value = float64(timefmt.Seconds(v.Duration))
		default:
			continue
		}
		if value > best[s.Date] {
			best[s.Date] = value
		} else if _, ok := best[s.Date]; !ok {
			best[s.Date] = value
		}
	}

	out := make([]ProgressPoint, 0, len(best))
	for date, value := range best {
		out = append(out, ProgressPoint{Date: date, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
