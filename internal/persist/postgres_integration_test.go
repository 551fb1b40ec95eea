package persist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/quistberg/ladle/internal/domain"
)

func TestPostgresRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	var pgContainer *postgres.PostgresContainer
	var err error

	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("Skipping integration test due to panic (likely Docker issue): %v", r)
			}
		}()
		pgContainer, err = postgres.Run(ctx,
			"postgres:15-alpine",
			postgres.WithDatabase("testdb"),
			postgres.WithUsername("testuser"),
			postgres.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(5*time.Second)),
		)
	}()
	if pgContainer == nil {
		if err != nil {
			t.Fatalf("failed to start postgres container: %v", err)
		}
		return
	}
	require.NoError(t, err)
	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %v", err)
		}
	}()

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, Migrate(connStr))

	pool, err := NewPool(ctx, connStr)
	require.NoError(t, err)
	defer pool.Close()

	repo := NewPostgresRepository(pool)

	t.Run("RecordDiscovery first recording wins", func(t *testing.T) {
		first := domain.Discovery{
			Result: "Grilled Cheese",
			Method: "combine",
			Inputs: []string{"Bread", "Cheese"},
		}
		require.NoError(t, repo.RecordDiscovery(ctx, "run-1", first))

		later := domain.Discovery{
			Result: "Grilled Cheese",
			Method: "mutate",
			Inputs: []string{"Cheese"},
		}
		require.NoError(t, repo.RecordDiscovery(ctx, "run-2", later))

		book, err := repo.RecipeBook(ctx)
		require.NoError(t, err)
		require.Len(t, book, 1)
		assert.Equal(t, "combine", book[0].Method)
		assert.Equal(t, []string{"Bread", "Cheese"}, book[0].Inputs)
	})

	t.Run("RecipeBook preserves recording order", func(t *testing.T) {
		require.NoError(t, repo.RecordDiscovery(ctx, "run-1", domain.Discovery{
			Result: "Melt Supreme",
			Method: "amplify",
			Inputs: []string{"Grilled Cheese"},
		}))

		book, err := repo.RecipeBook(ctx)
		require.NoError(t, err)
		require.Len(t, book, 2)
		assert.Equal(t, "Grilled Cheese", book[0].Result)
		assert.Equal(t, "Melt Supreme", book[1].Result)
	})

	t.Run("RunSummary upsert and last", func(t *testing.T) {
		_, ok, err := repo.LastRunSummary(ctx)
		require.NoError(t, err)
		assert.False(t, ok, "no summaries yet")

		require.NoError(t, repo.SaveRunSummary(ctx, domain.RunSummary{
			RunID:      "run-1",
			DayReached: 4,
			Reason:     "BANKRUPT",
		}))
		require.NoError(t, repo.SaveRunSummary(ctx, domain.RunSummary{
			RunID:      "run-2",
			DayReached: 9,
			BossBeaten: true,
			Victory:    true,
			Reason:     "VICTORY",
		}))

		last, ok, err := repo.LastRunSummary(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "run-2", last.RunID)
		assert.True(t, last.Victory)

		// Re-saving the same run updates in place rather than appending.
		require.NoError(t, repo.SaveRunSummary(ctx, domain.RunSummary{
			RunID:      "run-2",
			DayReached: 10,
			BossBeaten: true,
			Victory:    true,
			Reason:     "VICTORY",
		}))
		last, ok, err = repo.LastRunSummary(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 10, last.DayReached)
	})
}
