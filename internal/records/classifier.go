// Package records decides whether a newly logged set is a personal
// record and derives the per-exercise record summary shown in the UI.
package records

import (
	"github.com/devlarabar/fitnotes-v2/internal"
	"github.com/devlarabar/fitnotes-v2/internal/timefmt"
)

// Classify reports whether a new set with measurement m is a personal
// record given the owner's full prior history for the exercise. The
// first ever set always is one.
//
// Weight/reps: more weight than ever lifted, or more reps than ever done
// at exactly this weight. Timed distance: farther than ever, faster than
// any prior timed set, or farther than any prior set at roughly this
// duration. Untimed distance: farther than ever. Duration only: longer
// than ever held.
func Classify(m internal.Measurement, prior []internal.WorkoutSet) bool {
	if len(prior) == 0 {
		return true
	}

	switch v := m.(type) {
	case internal.WeightReps:
		if v.Weight > maxWeight(prior) {
			return true
		}
		if reps, ok := maxRepsAtWeight(prior, v.Weight); ok && v.Reps > reps {
			return true
		}
	case internal.DistanceEffort:
		if timefmt.IsZero(v.Duration) {
			return v.Distance > maxDistance(prior)
		}
		cur := timefmt.Seconds(v.Duration)
		if v.Distance > maxDistance(prior) {
			return true
		}
		if min, ok := minDuration(prior); ok && cur < min {
			return true
		}
		if d, ok := maxDistanceNearDuration(prior, cur); ok && v.Distance > d {
			return true
		}
	case internal.TimedHold:
		max, ok := maxDuration(prior)
		if !ok || timefmt.Seconds(v.Duration) > max {
			return true
		}
	}
	return false
}

func maxWeight(sets []internal.WorkoutSet) float64 {
	max := 0.0
	for _, s := range sets {
		if w, ok := s.Measurement.(internal.WeightReps); ok && w.Weight > max {
			max = w.Weight
		}
	}
	return max
}

func maxRepsAtWeight(sets []internal.WorkoutSet, weight float64) (int, bool) {
	max, found := 0, false
	for _, s := range sets {
		w, ok := s.Measurement.(internal.WeightReps)
		if !ok || w.Weight != weight {
			continue
		}
		found = true
		if w.Reps > max {
			max = w.Reps
		}
	}
	return max, found
}

func maxDistance(sets []internal.WorkoutSet) float64 {
	max := 0.0
	for _, s := range sets {
		if d, ok := s.Measurement.(internal.DistanceEffort); ok && d.Distance > max {
			max = d.Distance
		}
	}
	return max
}

// minDuration returns the fastest timed effort across all distances.
func minDuration(sets []internal.WorkoutSet) (int, bool) {
	min, found := 0, false
	for _, s := range sets {
		sec, ok := timedSeconds(s)
		if !ok {
			continue
		}
		if !found || sec < min {
			min, found = sec, true
		}
	}
	return min, found
}

// maxDistanceNearDuration returns the longest distance among prior sets
// whose duration is within one second of cur.
func maxDistanceNearDuration(sets []internal.WorkoutSet, cur int) (float64, bool) {
	max, found := 0.0, false
	for _, s := range sets {
		d, ok := s.Measurement.(internal.DistanceEffort)
		if !ok || timefmt.IsZero(d.Duration) {
			continue
		}
		if diff := timefmt.Seconds(d.Duration) - cur; diff > -1 && diff < 1 {
			found = true
			if d.Distance > max {
				max = d.Distance
			}
		}
	}
	return max, found
}

func maxDuration(sets []internal.WorkoutSet) (int, bool) {
	max, found := 0, false
	for _, s := range sets {
		sec, ok := timedSeconds(s)
		if !ok {
			continue
		}
		found = true
		if sec > max {
			max = sec
		}
	}
	return max, found
}

// timedSeconds extracts a non-zero duration from any variant carrying one.
func timedSeconds(s internal.WorkoutSet) (int, bool) {
	switch v := s.Measurement.(type) {
	case internal.DistanceEffort:
		if !timefmt.IsZero(v.Duration) {
			return timefmt.Seconds(v.Duration), true
		}
	case internal.TimedHold:
		if !timefmt.IsZero(v.Duration) {
			return timefmt.Seconds(v.Duration), true
		}
	}
	return 0, false
}
