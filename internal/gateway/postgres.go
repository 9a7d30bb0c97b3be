package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devlarabar/fitnotes-v2/internal"
)

type PostgresGateway struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresGateway(dsn string, logger internal.Logger) (*PostgresGateway, error) {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		logger.Errorf("gateway: failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresGateway{pool: pool, logger: logger}, nil
}

func (p *PostgresGateway) Close() {
	p.pool.Close()
}

const setColumns = `id, owner_id, date, exercise, category, weight, weight_unit, reps, distance, distance_unit, time, comment, is_pr`

// --- SetRepository ---

func (p *PostgresGateway) CreateSet(ctx context.Context, set *internal.WorkoutSet) (*internal.WorkoutSet, error) {
	f := internal.FlattenMeasurement(set.Measurement)
	row := p.pool.QueryRow(ctx, `INSERT INTO workout_sets (owner_id, date, exercise, category, weight, weight_unit, reps, distance, distance_unit, time, comment, is_pr)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''), $12) RETURNING id`,
		set.OwnerID, set.Date, set.ExerciseID, set.CategoryID,
		f.Weight, f.WeightUnit, f.Reps, f.Distance, f.DistanceUnit, f.Duration,
		set.Comment, set.IsPersonalRecord)

	persisted := *set
	if err := row.Scan(&persisted.ID); err != nil {
		p.logger.Errorf("gateway: failed to insert set: %v", err)
		return nil, err
	}
	return &persisted, nil
}

func (p *PostgresGateway) UpdateSet(ctx context.Context, id int64, patch internal.SetPatch) error {
	var clauses []string
	var args []interface{}
	add := func(col string, v interface{}) {
		args = append(args, v)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Measurement != nil {
		f := internal.FlattenMeasurement(patch.Measurement)
		add("weight", f.Weight)
		add("weight_unit", f.WeightUnit)
		add("reps", f.Reps)
		add("distance", f.Distance)
		add("distance_unit", f.DistanceUnit)
		add("time", f.Duration)
	}
	if patch.Comment != nil {
		add("comment", *patch.Comment)
	}
	if patch.Date != nil {
		add("date", *patch.Date)
	}
	if len(clauses) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE workout_sets SET %s WHERE id = $%d`, strings.Join(clauses, ", "), len(args))
	if _, err := p.pool.Exec(ctx, query, args...); err != nil {
		p.logger.Errorf("gateway: failed to update set %d: %v", id, err)
		return err
	}
	return nil
}

func (p *PostgresGateway) DeleteSet(ctx context.Context, id int64) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM workout_sets WHERE id = $1`, id); err != nil {
		p.logger.Errorf("gateway: failed to delete set %d: %v", id, err)
		return err
	}
	return nil
}

func (p *PostgresGateway) SetsByExercise(ctx context.Context, exerciseID, ownerID int64, offset, limit int) ([]internal.WorkoutSet, error) {
	rows, err := p.pool.Query(ctx, `SELECT `+setColumns+` FROM workout_sets
		WHERE exercise = $1 AND owner_id = $2 ORDER BY id OFFSET $3 LIMIT $4`,
		exerciseID, ownerID, offset, limit)
	if err != nil {
		p.logger.Errorf("gateway: failed to query sets by exercise: %v", err)
		return nil, err
	}
	return scanSets(rows)
}

func (p *PostgresGateway) SetsByOwner(ctx context.Context, ownerID int64) ([]internal.WorkoutSet, error) {
	rows, err := p.pool.Query(ctx, `SELECT `+setColumns+` FROM workout_sets
		WHERE owner_id = $1 ORDER BY date DESC, id DESC`, ownerID)
	if err != nil {
		p.logger.Errorf("gateway: failed to query sets by owner: %v", err)
		return nil, err
	}
	return scanSets(rows)
}

type pgxRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Close()
	Err() error
}

func scanSets(rows pgxRows) ([]internal.WorkoutSet, error) {
	defer rows.Close()
	var sets []internal.WorkoutSet
	for rows.Next() {
		var s internal.WorkoutSet
		var f internal.SetFields
		var comment *string
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.Date, &s.ExerciseID, &s.CategoryID,
			&f.Weight, &f.WeightUnit, &f.Reps, &f.Distance, &f.DistanceUnit, &f.Duration,
			&comment, &s.IsPersonalRecord); err != nil {
			return nil, err
		}
		s.Measurement = f.Measurement()
		if comment != nil {
			s.Comment = *comment
		}
		sets = append(sets, s)
	}
	return sets, rows.Err()
}

// --- CommentRepository ---

func (p *PostgresGateway) CreateComment(ctx context.Context, c *internal.DayComment) (*internal.DayComment, error) {
	row := p.pool.QueryRow(ctx, `INSERT INTO day_comments (owner_id, date, comment) VALUES ($1, $2, $3) RETURNING id`,
		c.OwnerID, c.Date, c.Text)
	persisted := *c
	if err := row.Scan(&persisted.ID); err != nil {
		p.logger.Errorf("gateway: failed to insert day comment: %v", err)
		return nil, err
	}
	return &persisted, nil
}

func (p *PostgresGateway) UpdateComment(ctx context.Context, id int64, text string) error {
	if _, err := p.pool.Exec(ctx, `UPDATE day_comments SET comment = $1 WHERE id = $2`, text, id); err != nil {
		p.logger.Errorf("gateway: failed to update day comment %d: %v", id, err)
		return err
	}
	return nil
}

func (p *PostgresGateway) DeleteComment(ctx context.Context, id int64) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM day_comments WHERE id = $1`, id); err != nil {
		p.logger.Errorf("gateway: failed to delete day comment %d: %v", id, err)
		return err
	}
	return nil
}

func (p *PostgresGateway) CommentsByOwner(ctx context.Context, ownerID int64) ([]internal.DayComment, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, owner_id, date, comment FROM day_comments WHERE owner_id = $1`, ownerID)
	if err != nil {
		p.logger.Errorf("gateway: failed to query day comments: %v", err)
		return nil, err
	}
	defer rows.Close()
	var comments []internal.DayComment
	for rows.Next() {
		var c internal.DayComment
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Date, &c.Text); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// --- CatalogRepository ---

func (p *PostgresGateway) Exercises(ctx context.Context) ([]internal.Exercise, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, name, category, measurement_type FROM exercises ORDER BY name`)
	if err != nil {
		p.logger.Errorf("gateway: failed to query exercises: %v", err)
		return nil, err
	}
	defer rows.Close()
	var out []internal.Exercise
	for rows.Next() {
		var e internal.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.CategoryID, &e.Kind); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (p *PostgresGateway) Categories(ctx context.Context) ([]internal.Category, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		p.logger.Errorf("gateway: failed to query categories: %v", err)
		return nil, err
	}
	defer rows.Close()
	var out []internal.Category
	for rows.Next() {
		var c internal.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (p *PostgresGateway) WeightUnits(ctx context.Context) ([]internal.Unit, error) {
	return p.units(ctx, "weight_units")
}

func (p *PostgresGateway) DistanceUnits(ctx context.Context) ([]internal.Unit, error) {
	return p.units(ctx, "distance_units")
}

func (p *PostgresGateway) units(ctx context.Context, table string) ([]internal.Unit, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, name FROM `+table+` ORDER BY id`)
	if err != nil {
		p.logger.Errorf("gateway: failed to query %s: %v", table, err)
		return nil, err
	}
	defer rows.Close()
	var out []internal.Unit
	for rows.Next() {
		var u internal.Unit
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// --- Compile-time assertions ---
var _ SetRepository = (*PostgresGateway)(nil)
var _ CommentRepository = (*PostgresGateway)(nil)
var _ CatalogRepository = (*PostgresGateway)(nil)
