// Package gateway is the persistence boundary. The core treats every
// call as fallible and unordered across concurrent requests: a call
// either fully applies or fully fails, and the caller reconciles or
// rolls back its optimistic state accordingly.
package gateway

import (
	"context"

	"github.com/devlarabar/fitnotes-v2/internal"
)

type SetRepository interface {
	// CreateSet persists a new set and returns the record with its
	// service-assigned id. The id on the argument is ignored.
	CreateSet(ctx context.Context, set *internal.WorkoutSet) (*internal.WorkoutSet, error)
	UpdateSet(ctx context.Context, id int64, patch internal.SetPatch) error
	DeleteSet(ctx context.Context, id int64) error
	// SetsByExercise returns one offset-based page of an exercise's
	// history. A page shorter than limit signals end of data.
	SetsByExercise(ctx context.Context, exerciseID, ownerID int64, offset, limit int) ([]internal.WorkoutSet, error)
	SetsByOwner(ctx context.Context, ownerID int64) ([]internal.WorkoutSet, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, c *internal.DayComment) (*internal.DayComment, error)
	UpdateComment(ctx context.Context, id int64, text string) error
	DeleteComment(ctx context.Context, id int64) error
	CommentsByOwner(ctx context.Context, ownerID int64) ([]internal.DayComment, error)
}

// CatalogRepository serves the static reference data, fetched once at
// startup.
type CatalogRepository interface {
	Exercises(ctx context.Context) ([]internal.Exercise, error)
	Categories(ctx context.Context) ([]internal.Category, error)
	WeightUnits(ctx context.Context) ([]internal.Unit, error)
	DistanceUnits(ctx context.Context) ([]internal.Unit, error)
}
