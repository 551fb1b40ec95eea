package persist

import (
	"context"
	"sync"

	"github.com/quistberg/ladle/internal/domain"
)

// MemoryRepository keeps the recipe book in process memory. Used when no
// database is configured and in tests.
type MemoryRepository struct {
	mu          sync.RWMutex
	discoveries []domain.Discovery
	seen        map[string]bool
	summaries   []domain.RunSummary
}

// NewMemoryRepository creates an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{seen: make(map[string]bool)}
}

// RecordDiscovery stores a discovery, deduplicated by result name.
func (r *MemoryRepository) RecordDiscovery(_ context.Context, _ string, d domain.Discovery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seen[d.Result] {
		return nil
	}
	r.seen[d.Result] = true
	r.discoveries = append(r.discoveries, d)
	return nil
}

// RecipeBook returns every recorded discovery.
func (r *MemoryRepository) RecipeBook(_ context.Context) ([]domain.Discovery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Discovery, len(r.discoveries))
	copy(out, r.discoveries)
	return out, nil
}

// SaveRunSummary appends a run outcome.
func (r *MemoryRepository) SaveRunSummary(_ context.Context, s domain.RunSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summaries = append(r.summaries, s)
	return nil
}

// LastRunSummary returns the most recent run outcome.
func (r *MemoryRepository) LastRunSummary(_ context.Context) (domain.RunSummary, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.summaries) == 0 {
		return domain.RunSummary{}, false, nil
	}
	return r.summaries[len(r.summaries)-1], true, nil
}
