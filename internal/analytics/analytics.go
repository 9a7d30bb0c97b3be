// Package analytics derives adherence statistics from a ledger snapshot
// restricted to a trailing window of calendar days.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/devlarabar/fitnotes-v2/internal"
)

const dateLayout = "2006-01-02"

// DefaultWindowDays is the trailing window shown on the progress page.
const DefaultWindowDays = 90

type Stats struct {
	WindowDays        int    `json:"window_days"`
	ActiveDays        int    `json:"active_days"`
	ActiveRate        int    `json:"active_rate"` // rounded percent
	TotalSets         int    `json:"total_sets"`
	DistinctExercises int    `json:"distinct_exercises"`
	MostActiveWeekday string `json:"most_active_weekday"`
	CurrentStreak     int    `json:"current_streak"`
	LongestStreak     int    `json:"longest_streak"`
}

// Compute derives Stats from a snapshot of sets. today anchors the
// window and the current-streak check; only its calendar day matters.
func Compute(sets []internal.WorkoutSet, windowDays int, today time.Time) Stats {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	end := truncate(today)
	start := end.AddDate(0, 0, -windowDays)

	stats := Stats{WindowDays: windowDays}
	seenDates := make(map[string]struct{})
	seenExercises := make(map[int64]struct{})
	var activeDays []time.Time

	for _, s := range sets {
		d, err := time.Parse(dateLayout, s.Date)
		if err != nil || d.Before(start) || d.After(end) {
			continue
		}
		stats.TotalSets++
		seenExercises[s.ExerciseID] = struct{}{}
		if _, ok := seenDates[s.Date]; !ok {
			seenDates[s.Date] = struct{}{}
			activeDays = append(activeDays, d)
		}
	}

	stats.ActiveDays = len(activeDays)
	stats.ActiveRate = int(math.Round(float64(stats.ActiveDays) / float64(windowDays) * 100))
	stats.DistinctExercises = len(seenExercises)

	if len(activeDays) == 0 {
		return stats
	}

	sort.Slice(activeDays, func(i, j int) bool { return activeDays[i].Before(activeDays[j]) })
	stats.MostActiveWeekday = mostActiveWeekday(activeDays)
	stats.CurrentStreak = currentStreak(activeDays, end)
	stats.LongestStreak = longestStreak(activeDays)
	return stats
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// mostActiveWeekday counts distinct active dates per weekday and picks
// the highest. Ties go to the earlier weekday in Sunday-first order.
func mostActiveWeekday(days []time.Time) string {
	var counts [7]int
	for _, d := range days {
		counts[int(d.Weekday())]++
	}
	best := time.Sunday
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if counts[wd] > counts[best] {
			best = wd
		}
	}
	return best.String()
}

// currentStreak counts consecutive active days ending at today or
// yesterday. A gap of more than one day since the last active date
// means there is no current streak.
func currentStreak(days []time.Time, today time.Time) int {
	last := days[len(days)-1]
	if dayDiff(last, today) > 1 {
		return 0
	}
	streak := 1
	for i := len(days) - 2; i >= 0; i-- {
		if dayDiff(days[i], days[i+1]) != 1 {
			break
		}
		streak++
	}
	return streak
}

// longestStreak finds the longest run of consecutive active days in a
// single ascending pass.
func longestStreak(days []time.Time) int {
	longest, run := 0, 1
	for i := 1; i < len(days); i++ {
		if dayDiff(days[i-1], days[i]) == 1 {
			run++
		} else {
			if run > longest {
				longest = run
			}
			run = 1
		}
	}
	if run > longest {
		longest = run
	}
	return longest
}

func dayDiff(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
