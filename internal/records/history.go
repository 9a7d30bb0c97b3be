package records

import (
	"context"

	"github.com/devlarabar/fitnotes-v2/internal"
)

// DefaultPageSize bounds a single history request. Exercises with years
// of sets are fetched page by page instead of in one unbounded payload.
const DefaultPageSize = 1000

// FetchPage returns one page of an exercise's history, offset-based.
type FetchPage func(ctx context.Context, offset, limit int) ([]internal.WorkoutSet, error)

// HistoryPager drains an exercise's full history from the persistence
// gateway. A page shorter than the page size signals end of data.
type HistoryPager struct {
	Fetch    FetchPage
	PageSize int
}

func (p *HistoryPager) Drain(ctx context.Context) ([]internal.WorkoutSet, error) {
	size := p.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	var all []internal.WorkoutSet
	for offset := 0; ; offset += size {
		page, err := p.Fetch(ctx, offset, size)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < size {
			return all, nil
		}
	}
}
