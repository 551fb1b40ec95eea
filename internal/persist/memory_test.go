package persist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quistberg/ladle/internal/domain"
)

func TestMemoryRepository_DedupesByResult(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	d := domain.Discovery{Method: "combine", Inputs: []string{"Bread", "Cheese"}, Result: "Grilled Cheese"}
	require.NoError(t, repo.RecordDiscovery(ctx, "run-1", d))
	require.NoError(t, repo.RecordDiscovery(ctx, "run-2", domain.Discovery{
		Method: "split", Inputs: []string{"Melt"}, Result: "Grilled Cheese",
	}))

	book, err := repo.RecipeBook(ctx)
	require.NoError(t, err)
	require.Len(t, book, 1, "first discovery wins")
	assert.Equal(t, "combine", book[0].Method)
}

func TestMemoryRepository_LastRunSummary(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, found, err := repo.LastRunSummary(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.SaveRunSummary(ctx, domain.RunSummary{RunID: "a", DayReached: 3}))
	require.NoError(t, repo.SaveRunSummary(ctx, domain.RunSummary{RunID: "b", DayReached: 7, Victory: true}))

	last, found, err := repo.LastRunSummary(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "b", last.RunID)
	assert.True(t, last.Victory)
}
