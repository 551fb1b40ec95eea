package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/quistberg/ladle/internal/domain"
)

// Type represents the type of an event
type Type string

// EventSchemaVersion is the current event schema version.
const EventSchemaVersion = "1.0"

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"`
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Run event types
const (
	RecipeDiscovered Type = "recipe.discovered"
	DishServed       Type = "dish.served"
	DayEnded         Type = "day.ended"
	BossDefeated     Type = "boss.defeated"
	RunEnded         Type = "run.ended"
)

// RecipeDiscoveredPayloadV1 is the typed payload for recipe discovery events
type RecipeDiscoveredPayloadV1 struct {
	RunID     string   `json:"run_id"`
	Method    string   `json:"method"`
	Inputs    []string `json:"inputs"`
	Result    string   `json:"result"`
	Timestamp int64    `json:"timestamp"`
}

// DishServedPayloadV1 is the typed payload for dish-served events
type DishServedPayloadV1 struct {
	RunID    string  `json:"run_id"`
	Dish     string  `json:"dish"`
	Customer string  `json:"customer"`
	Rating   string  `json:"rating"`
	Distance float64 `json:"distance"`
	Payment  float64 `json:"payment"`
	Boss     bool    `json:"boss"`
}

// BossDefeatedPayloadV1 is the typed payload for boss-defeated events
type BossDefeatedPayloadV1 struct {
	RunID string `json:"run_id"`
	Boss  string `json:"boss"`
	Day   int    `json:"day"`
}

// DayEndedPayloadV1 is the typed payload for day-ended events
type DayEndedPayloadV1 struct {
	RunID    string  `json:"run_id"`
	Day      int     `json:"day"`
	Money    float64 `json:"money"`
	RentPaid float64 `json:"rent_paid"`
}

// RunEndedPayloadV1 is the typed payload for run-ended events
type RunEndedPayloadV1 struct {
	Summary domain.RunSummary `json:"summary"`
}

// NewRecipeDiscoveredEvent creates a recipe discovery event with a typed payload
func NewRecipeDiscoveredEvent(runID string, d domain.Discovery) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RecipeDiscovered,
		Payload: RecipeDiscoveredPayloadV1{
			RunID:     runID,
			Method:    d.Method,
			Inputs:    d.Inputs,
			Result:    d.Result,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewDishServedEvent creates a dish-served event
func NewDishServedEvent(runID, dish, customer, rating string, distance, payment float64, boss bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DishServed,
		Payload: DishServedPayloadV1{
			RunID:    runID,
			Dish:     dish,
			Customer: customer,
			Rating:   rating,
			Distance: distance,
			Payment:  payment,
			Boss:     boss,
		},
	}
}

// NewBossDefeatedEvent creates a boss-defeated event
func NewBossDefeatedEvent(runID, boss string, day int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BossDefeated,
		Payload: BossDefeatedPayloadV1{RunID: runID, Boss: boss, Day: day},
	}
}

// NewDayEndedEvent creates a day-ended event
func NewDayEndedEvent(runID string, day int, money, rentPaid float64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DayEnded,
		Payload: DayEndedPayloadV1{RunID: runID, Day: day, Money: money, RentPaid: rentPaid},
	}
}

// NewRunEndedEvent creates a run-ended event carrying the final summary
func NewRunEndedEvent(summary domain.RunSummary) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RunEnded,
		Payload: RunEndedPayloadV1{Summary: summary},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d event handler(s) failed for %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
