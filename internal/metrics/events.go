package metrics

import (
	"context"

	"github.com/quistberg/ladle/internal/event"
)

// SubscribeToEvents wires game metrics to run events. Handlers never fail.
func SubscribeToEvents(bus event.Bus) {
	bus.Subscribe(event.DishServed, func(_ context.Context, e event.Event) error {
		if p, ok := e.Payload.(event.DishServedPayloadV1); ok {
			DishesServed.WithLabelValues(p.Rating).Inc()
			ServeDistance.Observe(p.Distance)
			PaymentAmount.Observe(p.Payment)
		}
		return nil
	})

	bus.Subscribe(event.RecipeDiscovered, func(_ context.Context, e event.Event) error {
		if p, ok := e.Payload.(event.RecipeDiscoveredPayloadV1); ok {
			RecipesDiscovered.WithLabelValues(p.Method).Inc()
		}
		return nil
	})

	bus.Subscribe(event.DayEnded, func(_ context.Context, e event.Event) error {
		DaysCompleted.Inc()
		return nil
	})

	bus.Subscribe(event.BossDefeated, func(_ context.Context, e event.Event) error {
		BossesDefeated.Inc()
		return nil
	})

	bus.Subscribe(event.RunEnded, func(_ context.Context, e event.Event) error {
		if p, ok := e.Payload.(event.RunEndedPayloadV1); ok {
			outcome := "defeat"
			if p.Summary.Victory {
				outcome = "victory"
			}
			RunsEnded.WithLabelValues(outcome).Inc()
		}
		return nil
	})
}
