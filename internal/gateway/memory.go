package gateway

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/devlarabar/fitnotes-v2/internal"
)

// MemoryGateway is an in-memory implementation used by tests and local
// experiments. FailNext makes the next mutating call fail, which is how
// the rollback paths are exercised.
type MemoryGateway struct {
	mu       sync.Mutex
	sets     map[int64]internal.WorkoutSet
	comments map[int64]internal.DayComment
	catalog  catalogFile
	nextID   int64
	failNext error
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{
		sets:     make(map[int64]internal.WorkoutSet),
		comments: make(map[int64]internal.DayComment),
		nextID:   1,
	}
}

// SeedCatalog installs reference data.
func (g *MemoryGateway) SeedCatalog(exercises []internal.Exercise, categories []internal.Category, weightUnits, distanceUnits []internal.Unit) {
	g.catalog = catalogFile{
		Exercises:     exercises,
		Categories:    categories,
		WeightUnits:   weightUnits,
		DistanceUnits: distanceUnits,
	}
}

// FailNext arms a one-shot failure for the next mutating call.
func (g *MemoryGateway) FailNext(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failNext = err
}

func (g *MemoryGateway) takeFailure() error {
	err := g.failNext
	g.failNext = nil
	return err
}

// --- SetRepository ---

func (g *MemoryGateway) CreateSet(ctx context.Context, set *internal.WorkoutSet) (*internal.WorkoutSet, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.takeFailure(); err != nil {
		return nil, err
	}
	persisted := *set
	persisted.ID = g.nextID
	g.nextID++
	g.sets[persisted.ID] = persisted
	out := persisted
	return &out, nil
}

func (g *MemoryGateway) UpdateSet(ctx context.Context, id int64, patch internal.SetPatch) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.takeFailure(); err != nil {
		return err
	}
	s, ok := g.sets[id]
	if !ok {
		return errors.New("gateway: set not found")
	}
	if patch.Measurement != nil {
		s.Measurement = patch.Measurement
	}
	if patch.Comment != nil {
		s.Comment = *patch.Comment
	}
	if patch.Date != nil {
		s.Date = *patch.Date
	}
	g.sets[id] = s
	return nil
}

func (g *MemoryGateway) DeleteSet(ctx context.Context, id int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.takeFailure(); err != nil {
		return err
	}
	if _, ok := g.sets[id]; !ok {
		return errors.New("gateway: set not found")
	}
	delete(g.sets, id)
	return nil
}

func (g *MemoryGateway) SetsByExercise(ctx context.Context, exerciseID, ownerID int64, offset, limit int) ([]internal.WorkoutSet, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var matched []internal.WorkoutSet
	for _, s := range g.sets {
		if s.ExerciseID == exerciseID && s.OwnerID == ownerID {
			matched = append(matched, s)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (g *MemoryGateway) SetsByOwner(ctx context.Context, ownerID int64) ([]internal.WorkoutSet, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []internal.WorkoutSet
	for _, s := range g.sets {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// --- CommentRepository ---

func (g *MemoryGateway) CreateComment(ctx context.Context, c *internal.DayComment) (*internal.DayComment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.takeFailure(); err != nil {
		return nil, err
	}
	for _, existing := range g.comments {
		if existing.OwnerID == c.OwnerID && existing.Date == c.Date {
			return nil, errors.New("gateway: day comment already exists for date")
		}
	}
	persisted := *c
	persisted.ID = g.nextID
	g.nextID++
	g.comments[persisted.ID] = persisted
	out := persisted
	return &out, nil
}

func (g *MemoryGateway) UpdateComment(ctx context.Context, id int64, text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.takeFailure(); err != nil {
		return err
	}
	c, ok := g.comments[id]
	if !ok {
		return errors.New("gateway: day comment not found")
	}
	c.Text = text
	g.comments[id] = c
	return nil
}

func (g *MemoryGateway) DeleteComment(ctx context.Context, id int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.takeFailure(); err != nil {
		return err
	}
	if _, ok := g.comments[id]; !ok {
		return errors.New("gateway: day comment not found")
	}
	delete(g.comments, id)
	return nil
}

func (g *MemoryGateway) CommentsByOwner(ctx context.Context, ownerID int64) ([]internal.DayComment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []internal.DayComment
	for _, c := range g.comments {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// --- CatalogRepository ---

func (g *MemoryGateway) Exercises(ctx context.Context) ([]internal.Exercise, error) {
	return g.catalog.Exercises, nil
}

func (g *MemoryGateway) Categories(ctx context.Context) ([]internal.Category, error) {
	return g.catalog.Categories, nil
}

func (g *MemoryGateway) WeightUnits(ctx context.Context) ([]internal.Unit, error) {
	return g.catalog.WeightUnits, nil
}

func (g *MemoryGateway) DistanceUnits(ctx context.Context) ([]internal.Unit, error) {
	return g.catalog.DistanceUnits, nil
}

// --- Compile-time assertions ---
var _ SetRepository = (*MemoryGateway)(nil)
var _ CommentRepository = (*MemoryGateway)(nil)
var _ CatalogRepository = (*MemoryGateway)(nil)
