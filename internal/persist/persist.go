// Package persist records the player-facing recipe book and run summaries.
// The engine publishes events; recording is best-effort and never blocks or
// fails a run.
package persist

import (
	"context"

	"github.com/quistberg/ladle/internal/domain"
)

// Repository stores discoveries and run outcomes across sessions.
type Repository interface {
	RecordDiscovery(ctx context.Context, runID string, d domain.Discovery) error
	RecipeBook(ctx context.Context) ([]domain.Discovery, error)
	SaveRunSummary(ctx context.Context, s domain.RunSummary) error
	LastRunSummary(ctx context.Context) (domain.RunSummary, bool, error)
}
