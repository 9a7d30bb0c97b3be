package records

import (
	"testing"

	"github.com/devlarabar/fitnotes-v2/internal"
	"github.com/stretchr/testify/assert"
)

func TestSummarizeEmptyHistory(t *testing.T) {
	assert.Nil(t, Summarize(internal.KindWeightReps, nil))
}

func TestSummarizeWeightReps(t *testing.T) {
	history := []internal.WorkoutSet{
		wr(100, 5),
		wr(110, 2),
		wr(110, 3),
		wr(90, 12),
	}
	sum := Summarize(internal.KindWeightReps, history)
	assert.NotNil(t, sum)
	assert.Equal(t, 110.0, sum.MaxWeight)
	// Best reps counted only among sets at the max weight, not the 12
	// reps done at 90.
	assert.Equal(t, 3, sum.BestReps)
}

func TestSummarizeDistance(t *testing.T) {
	history := []internal.WorkoutSet{
		dist(5.0, "0:26:00"),
		dist(10.0, "0:55:00"),
		dist(10.0, "0:52:30"),
	}
	sum := Summarize(internal.KindDistance, history)
	assert.NotNil(t, sum)
	assert.Equal(t, 10.0, sum.MaxDistance)
	assert.Equal(t, "0:52:30", sum.BestDuration)
}

func TestSummarizeDistanceUntimed(t *testing.T) {
	sum := Summarize(internal.KindDistance, []internal.WorkoutSet{dist(3.5, "")})
	assert.NotNil(t, sum)
	assert.Equal(t, 3.5, sum.MaxDistance)
	assert.Empty(t, sum.BestDuration)
}

func TestSummarizeDuration(t *testing.T) {
	history := []internal.WorkoutSet{hold("0:01:00"), hold("0:02:15")}
	sum := Summarize(internal.KindDuration, history)
	assert.NotNil(t, sum)
	assert.Equal(t, "0:02:15", sum.MaxDuration)
}

func TestProgressSeries(t *testing.T) {
	history := []internal.WorkoutSet{
		{Date: "2026-08-02", Measurement: internal.WeightReps{Weight: 100, Reps: 5}},
		{Date: "2026-08-02", Measurement: internal.WeightReps{Weight: 105, Reps: 2}},
		{Date: "2026-08-01", Measurement: internal.WeightReps{Weight: 95, Reps: 8}},
	}
	series := ProgressSeries(internal.KindWeightReps, history, "")
	assert.Equal(t, []ProgressPoint{
		{Date: "2026-08-01", Value: 95},
		{Date: "2026-08-02", Value: 105},
	}, series)

	since := ProgressSeries(internal.KindWeightReps, history, "2026-08-02")
	assert.Len(t, since, 1)
	assert.Equal(t, "2026-08-02", since[0].Date)
}
