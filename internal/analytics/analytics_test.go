package analytics

import (
	"testing"
	"time"

	"github.com/devlarabar/fitnotes-v2/internal"
	"github.com/stretchr/testify/assert"
)

func day(date string) time.Time {
	t, _ := time.Parse("2006-01-02", date)
	return t
}

func setsOn(dates ...string) []internal.WorkoutSet {
	var out []internal.WorkoutSet
	for i, d := range dates {
		out = append(out, internal.WorkoutSet{
			ID:          int64(i + 1),
			Date:        d,
			ExerciseID:  int64(i%3 + 1),
			Measurement: internal.WeightReps{Weight: 60, Reps: 5},
		})
	}
	return out
}

func TestStreaksMonToWedThenFriday(t *testing.T) {
	// Mon 2026-08-24 .. Wed 2026-08-26, gap Thursday, Fri 2026-08-28.
	sets := setsOn("2026-08-24", "2026-08-25", "2026-08-26", "2026-08-28")

	onFriday := Compute(sets, 90, day("2026-08-28"))
	assert.Equal(t, 3, onFriday.LongestStreak)
	assert.Equal(t, 1, onFriday.CurrentStreak, "Friday itself is active")

	onSaturday := Compute(sets, 90, day("2026-08-29"))
	assert.Equal(t, 1, onSaturday.CurrentStreak, "last activity was yesterday")

	onSunday := Compute(sets, 90, day("2026-08-30"))
	assert.Equal(t, 0, onSunday.CurrentStreak, "gap of more than one day")
	assert.Equal(t, 3, onSunday.LongestStreak)
}

func TestCurrentStreakCountsBackwards(t *testing.T) {
	sets := setsOn("2026-08-26", "2026-08-27", "2026-08-28")
	stats := Compute(sets, 90, day("2026-08-28"))
	assert.Equal(t, 3, stats.CurrentStreak)
	assert.Equal(t, 3, stats.LongestStreak)
}

func TestActiveDaysAndTotals(t *testing.T) {
	sets := setsOn("2026-08-01", "2026-08-01", "2026-08-02")
	stats := Compute(sets, 90, day("2026-08-30"))

	assert.Equal(t, 2, stats.ActiveDays)
	assert.Equal(t, 3, stats.TotalSets)
	assert.Equal(t, 3, stats.DistinctExercises)
	assert.Equal(t, 2, stats.ActiveRate) // round(2/90*100)
}

func TestWindowExcludesOldSets(t *testing.T) {
	sets := setsOn("2026-01-01", "2026-08-29")
	stats := Compute(sets, 90, day("2026-08-30"))

	assert.Equal(t, 1, stats.ActiveDays)
	assert.Equal(t, 1, stats.TotalSets)
}

func TestMostActiveWeekdayTieBreak(t *testing.T) {
	// One Monday, one Wednesday: the tie goes to the first weekday in
	// Sunday-first order, which is Monday.
	sets := setsOn("2026-08-24", "2026-08-26")
	stats := Compute(sets, 90, day("2026-08-30"))
	assert.Equal(t, "Monday", stats.MostActiveWeekday)

	// Two Mondays beat one Wednesday.
	sets = setsOn("2026-08-17", "2026-08-24", "2026-08-26")
	stats = Compute(sets, 90, day("2026-08-30"))
	assert.Equal(t, "Monday", stats.MostActiveWeekday)
}

func TestEmptyWindow(t *testing.T) {
	stats := Compute(nil, 90, day("2026-08-30"))
	assert.Equal(t, 0, stats.ActiveDays)
	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Equal(t, 0, stats.LongestStreak)
	assert.Empty(t, stats.MostActiveWeekday)
}

func TestSingleActiveDay(t *testing.T) {
	stats := Compute(setsOn("2026-08-30"), 90, day("2026-08-30"))
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 1, stats.LongestStreak)
	assert.Equal(t, "Sunday", stats.MostActiveWeekday)
}

func TestDefaultWindow(t *testing.T) {
	stats := Compute(nil, 0, day("2026-08-30"))
	assert.Equal(t, DefaultWindowDays, stats.WindowDays)
}
