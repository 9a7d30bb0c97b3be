// Package catalog caches the static reference data: exercises with
// their measurement kinds, categories, and units. Fetched once at
// startup; the core only reads it.
package catalog

import (
	"context"
	"fmt"

	"github.com/devlarabar/fitnotes-v2/internal"
	"github.com/devlarabar/fitnotes-v2/internal/gateway"
)

type Catalog struct {
	exercises     map[int64]internal.Exercise
	categories    map[int64]internal.Category
	ordered       []internal.Exercise
	categoryList  []internal.Category
	weightUnits   []internal.Unit
	distanceUnits []internal.Unit
}

func Load(ctx context.Context, repo gateway.CatalogRepository) (*Catalog, error) {
	exercises, err := repo.Exercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to load exercises: %w", err)
	}
	categories, err := repo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to load categories: %w", err)
	}
	weightUnits, err := repo.WeightUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to load weight units: %w", err)
	}
	distanceUnits, err := repo.DistanceUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to load distance units: %w", err)
	}

	c := &Catalog{
		exercises:     make(map[int64]internal.Exercise, len(exercises)),
		categories:    make(map[int64]internal.Category, len(categories)),
		ordered:       exercises,
		categoryList:  categories,
		weightUnits:   weightUnits,
		distanceUnits: distanceUnits,
	}
	for _, e := range exercises {
		c.exercises[e.ID] = e
	}
	for _, cat := range categories {
		c.categories[cat.ID] = cat
	}
	return c, nil
}

func (c *Catalog) Exercise(id int64) (internal.Exercise, bool) {
	e, ok := c.exercises[id]
	return e, ok
}

func (c *Catalog) CategoryName(id int64) string {
	if cat, ok := c.categories[id]; ok {
		return cat.Name
	}
	return ""
}

// Enrich fills the cross-referenced display names on a set.
func (c *Catalog) Enrich(s *internal.WorkoutSet) {
	if e, ok := c.exercises[s.ExerciseID]; ok {
		s.ExerciseName = e.Name
	}
	s.CategoryName = c.CategoryName(s.CategoryID)
}

func (c *Catalog) Exercises() []internal.Exercise  { return c.ordered }
func (c *Catalog) Categories() []internal.Category { return c.categoryList }
func (c *Catalog) WeightUnits() []internal.Unit    { return c.weightUnits }
func (c *Catalog) DistanceUnits() []internal.Unit  { return c.distanceUnits }
