package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quistberg/ladle/internal/domain"
)

// Pool connection defaults.
const (
	DefaultMaxConnections  = 10
	DefaultMinConnections  = 2
	DefaultMaxConnIdleTime = 5 * time.Minute
	DefaultMaxConnLifetime = 30 * time.Minute
)

// NewPool creates a PostgreSQL connection pool and verifies connectivity.
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	config.MaxConns = DefaultMaxConnections
	config.MinConns = DefaultMinConnections
	config.MaxConnIdleTime = DefaultMaxConnIdleTime
	config.MaxConnLifetime = DefaultMaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// PostgresRepository stores the recipe book in PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository wraps a connected pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// RecordDiscovery upserts a discovery keyed by result name; the first
// recording wins so the book remembers how a dish was first made.
func (r *PostgresRepository) RecordDiscovery(ctx context.Context, runID string, d domain.Discovery) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO recipe_discoveries (result, method, inputs, run_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (result) DO NOTHING`,
		d.Result, d.Method, d.Inputs, runID)
	if err != nil {
		return fmt.Errorf("failed to record discovery: %w", err)
	}
	return nil
}

// RecipeBook returns every discovery in recording order.
func (r *PostgresRepository) RecipeBook(ctx context.Context) ([]domain.Discovery, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT result, method, inputs
		FROM recipe_discoveries
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipe book: %w", err)
	}
	defer rows.Close()

	var out []domain.Discovery
	for rows.Next() {
		var d domain.Discovery
		if err := rows.Scan(&d.Result, &d.Method, &d.Inputs); err != nil {
			return nil, fmt.Errorf("failed to scan discovery: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// SaveRunSummary appends a finished run's outcome.
func (r *PostgresRepository) SaveRunSummary(ctx context.Context, s domain.RunSummary) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO run_summaries (run_id, day_reached, boss_beaten, victory, reason)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (run_id) DO UPDATE
		SET day_reached = EXCLUDED.day_reached,
		    boss_beaten = EXCLUDED.boss_beaten,
		    victory     = EXCLUDED.victory,
		    reason      = EXCLUDED.reason`,
		s.RunID, s.DayReached, s.BossBeaten, s.Victory, s.Reason)
	if err != nil {
		return fmt.Errorf("failed to save run summary: %w", err)
	}
	return nil
}

// LastRunSummary returns the most recently saved run outcome.
func (r *PostgresRepository) LastRunSummary(ctx context.Context) (domain.RunSummary, bool, error) {
	var s domain.RunSummary
	err := r.pool.QueryRow(ctx, `
		SELECT run_id, day_reached, boss_beaten, victory, reason
		FROM run_summaries
		ORDER BY id DESC
		LIMIT 1`).Scan(&s.RunID, &s.DayReached, &s.BossBeaten, &s.Victory, &s.Reason)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.RunSummary{}, false, nil
	}
	if err != nil {
		return domain.RunSummary{}, false, fmt.Errorf("failed to query last run summary: %w", err)
	}
	return s, true, nil
}
