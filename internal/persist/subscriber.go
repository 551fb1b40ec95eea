package persist

import (
	"context"

	"github.com/quistberg/ladle/internal/domain"
	"github.com/quistberg/ladle/internal/event"
	"github.com/quistberg/ladle/internal/logger"
)

// SubscribeToEvents records discoveries and run outcomes off the event bus.
// Storage failures are logged and swallowed; persistence never fails a run.
func SubscribeToEvents(bus event.Bus, repo Repository) {
	bus.Subscribe(event.RecipeDiscovered, func(ctx context.Context, e event.Event) error {
		p, ok := e.Payload.(event.RecipeDiscoveredPayloadV1)
		if !ok {
			return nil
		}
		d := domain.Discovery{Method: p.Method, Inputs: p.Inputs, Result: p.Result}
		if err := repo.RecordDiscovery(ctx, p.RunID, d); err != nil {
			logger.FromContext(ctx).Warn("failed to record discovery", "result", d.Result, "error", err)
		}
		return nil
	})

	bus.Subscribe(event.RunEnded, func(ctx context.Context, e event.Event) error {
		p, ok := e.Payload.(event.RunEndedPayloadV1)
		if !ok {
			return nil
		}
		if err := repo.SaveRunSummary(ctx, p.Summary); err != nil {
			logger.FromContext(ctx).Warn("failed to save run summary", "run_id", p.Summary.RunID, "error", err)
		}
		return nil
	})
}
