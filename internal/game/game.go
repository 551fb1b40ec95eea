// Package game is the orchestrator: it owns the canonical run state, routes
// player actions into the engine services, and drives deferred follow-ups
// (next customer, next day) through the scheduler.
package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/quistberg/ladle/internal/content"
	"github.com/quistberg/ladle/internal/domain"
	"github.com/quistberg/ladle/internal/effects"
	"github.com/quistberg/ladle/internal/kitchen"
	"github.com/quistberg/ladle/internal/logger"
	"github.com/quistberg/ladle/internal/metrics"
	"github.com/quistberg/ladle/internal/progression"
	"github.com/quistberg/ladle/internal/scheduler"
	"github.com/quistberg/ladle/internal/serving"
)

// Follow-up delays. Presentation pacing, not correctness; tests use the
// synchronous scheduler.
const (
	CustomerSpawnDelay = 800 * time.Millisecond
	NextCourseDelay    = 800 * time.Millisecond
	NextDayDelay       = 1500 * time.Millisecond
)

// ReasonVictory ends a run the good way.
const ReasonVictory = "VICTORY"

// Deps bundles the engine services a Game drives.
type Deps struct {
	Kitchen     kitchen.Service
	Serving     serving.Service
	Progression progression.Service
	Effects     effects.Service
	Tables      *content.Tables
	Scheduler   scheduler.Scheduler
	Presenter   Presenter
}

// Game owns one run. All exported methods are safe for concurrent use; a
// mutex serializes mutations so there is exactly one mutator at a time.
type Game struct {
	mu    sync.Mutex
	deps  Deps
	ctx   context.Context
	state *domain.RunState

	// Offers pending a ChooseArtifact/DeclineArtifacts decision. The day
	// stays closed until the decision lands.
	offers []domain.Artifact
}

// New creates an unstarted game.
func New(ctx context.Context, deps Deps) *Game {
	return &Game{deps: deps, ctx: ctx}
}

// Start opens day 1 and seats the first customer.
func (g *Game) Start() error {
	g.mu.Lock()
	if g.state != nil {
		g.mu.Unlock()
		return fmt.Errorf("game already started")
	}
	g.state = g.deps.Progression.NewRun(g.ctx)
	metrics.RunsStarted.Inc()
	if err := g.deps.Progression.StartDay(g.ctx, g.state); err != nil {
		g.mu.Unlock()
		return err
	}
	g.deps.Presenter.Render(g.state)
	g.mu.Unlock()

	g.deps.Scheduler.Defer(CustomerSpawnDelay, g.spawnCustomer)
	return nil
}

// Stop cancels pending follow-ups.
func (g *Game) Stop() {
	g.deps.Scheduler.Stop()
}

// RunID returns the run identifier.
func (g *Game) RunID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == nil {
		return ""
	}
	return g.state.RunID
}

// Snapshot returns a deep copy of the run state for rendering. Handlers
// encode it after the lock is released, so nothing may alias live state.
func (g *Game) Snapshot() domain.RunState {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == nil {
		return domain.RunState{}
	}
	return g.state.Clone()
}

// Offers returns the artifact offers awaiting a decision.
func (g *Game) Offers() []domain.Artifact {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]domain.Artifact, len(g.offers))
	copy(out, g.offers)
	return out
}

func (g *Game) spawnCustomer() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == nil || g.state.GameOver || !g.state.DayActive {
		return
	}
	if err := g.deps.Serving.SpawnCustomer(g.ctx, g.state); err != nil {
		logger.FromContext(g.ctx).Warn("customer spawn failed", "error", err)
		return
	}
	g.deps.Presenter.Render(g.state)
}

func (g *Game) startNextDay() {
	g.mu.Lock()
	if g.state == nil || g.state.GameOver {
		g.mu.Unlock()
		return
	}
	if err := g.deps.Progression.StartDay(g.ctx, g.state); err != nil {
		g.mu.Unlock()
		return
	}
	g.deps.Presenter.Render(g.state)
	g.mu.Unlock()

	g.deps.Scheduler.Defer(CustomerSpawnDelay, g.spawnCustomer)
}

// SelectItem toggles a countertop selection.
func (g *Game) SelectItem(index int, selected bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == nil || g.state.GameOver {
		return domain.ErrRunOver
	}
	if index < 0 || index >= len(g.state.Countertop) {
		return fmt.Errorf("%w: index %d", domain.ErrWrongSelection, index)
	}
	if selected {
		g.state.Selected[index] = true
	} else {
		delete(g.state.Selected, index)
	}
	return nil
}

// SelectConsumable marks a consumable for use.
func (g *Game) SelectConsumable(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == nil || g.state.GameOver {
		return domain.ErrRunOver
	}
	if g.state.Consumables[id] <= 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotOwned, id)
	}
	g.state.SelectedConsumable = id
	return nil
}

// action runs a mutation under the lock and renders on success.
func (g *Game) action(fn func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == nil || g.state.GameOver {
		return domain.ErrRunOver
	}
	if err := fn(); err != nil {
		g.deps.Presenter.Log(domain.LogError, err.Error())
		return err
	}
	g.deps.Presenter.Render(g.state)
	return nil
}

// Withdraw moves an ingredient from storage to the countertop.
func (g *Game) Withdraw(name string) error {
	return g.action(func() error { return g.deps.Kitchen.Withdraw(g.ctx, g.state, name) })
}

// Combine runs the pan on the two selected items.
func (g *Game) Combine() error {
	return g.action(func() error {
		_, err := g.deps.Kitchen.Combine(g.ctx, g.state)
		return err
	})
}

// Split runs the cutting board on the selected item.
func (g *Game) Split() error {
	return g.action(func() error {
		_, err := g.deps.Kitchen.Split(g.ctx, g.state)
		return err
	})
}

// Amplify runs the amplifier on the selected item.
func (g *Game) Amplify() error {
	return g.action(func() error {
		_, err := g.deps.Kitchen.Amplify(g.ctx, g.state)
		return err
	})
}

// Mutate runs the microwave on the selected item.
func (g *Game) Mutate() error {
	return g.action(func() error {
		_, err := g.deps.Kitchen.Mutate(g.ctx, g.state)
		return err
	})
}

// Trash discards the selected items.
func (g *Game) Trash() error {
	return g.action(func() error {
		_, err := g.deps.Kitchen.Trash(g.ctx, g.state)
		return err
	})
}

// MerchantBuy unlocks an ingredient from the merchant's list.
func (g *Game) MerchantBuy(name string) error {
	return g.action(func() error { return g.deps.Kitchen.MerchantBuy(g.ctx, g.state, name) })
}

// Serve offers the selected dish to the current customer or boss.
func (g *Game) Serve() error {
	return g.action(func() error {
		pending, err := g.deps.Serving.Serve(g.ctx, g.state)
		if err != nil {
			return err
		}
		g.deps.Presenter.ShowFeedback(pending)
		return nil
	})
}

// Taste samples the selected item. May end the run.
func (g *Game) Taste() (map[domain.Attribute]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == nil || g.state.GameOver {
		return nil, domain.ErrRunOver
	}
	feedback, err := g.deps.Serving.Taste(g.ctx, g.state)
	if err != nil {
		g.deps.Presenter.Log(domain.LogError, err.Error())
		return nil, err
	}
	if g.state.GameOver {
		g.finishLocked(g.state.GameOverReason)
	}
	g.deps.Presenter.Render(g.state)
	return feedback, nil
}

// SelectPaymentItem toggles a feedback line item.
func (g *Game) SelectPaymentItem(itemID string, selected bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == nil || g.state.GameOver {
		return domain.ErrRunOver
	}
	return g.deps.Serving.SelectPaymentItem(g.state, itemID, selected)
}

// Collect applies the pending feedback and drives the follow-up transition.
func (g *Game) Collect() error {
	g.mu.Lock()
	if g.state == nil || g.state.GameOver {
		g.mu.Unlock()
		return domain.ErrRunOver
	}
	outcome, err := g.deps.Serving.Collect(g.ctx, g.state)
	if err != nil {
		g.mu.Unlock()
		return err
	}
	g.deps.Presenter.Render(g.state)

	var followUp func()
	var delay time.Duration

	switch outcome {
	case serving.OutcomeGameOver:
		g.finishLocked(g.state.GameOverReason)

	case serving.OutcomeNextCustomer:
		followUp, delay = g.spawnCustomer, CustomerSpawnDelay

	case serving.OutcomeBossNextCourse:
		// Boss stays seated; the next course is already active.

	case serving.OutcomeBossBonus:
		g.deps.Presenter.ShowFeedback(g.state.Pending)

	case serving.OutcomeVictory:
		g.deps.Presenter.ShowVictory()

	case serving.OutcomeDayComplete:
		followUp = g.completeDay
	}
	g.mu.Unlock()

	if followUp != nil {
		g.deps.Scheduler.Defer(delay, followUp)
	}
	return nil
}

// completeDay settles the day and either presents artifact offers or
// schedules the next day.
func (g *Game) completeDay() {
	g.mu.Lock()
	if g.state == nil || g.state.GameOver {
		g.mu.Unlock()
		return
	}
	offers, err := g.deps.Progression.EndDay(g.ctx, g.state)
	if err != nil {
		g.mu.Unlock()
		return
	}
	if g.state.GameOver {
		g.deps.Presenter.ShowGameOver(g.state.GameOverReason)
		g.mu.Unlock()
		return
	}
	g.deps.Presenter.Render(g.state)

	if len(offers) > 0 {
		g.offers = offers
		g.deps.Presenter.ShowArtifactChoice(offers)
		g.mu.Unlock()
		return
	}
	g.mu.Unlock()
	g.deps.Scheduler.Defer(NextDayDelay, g.startNextDay)
}

// ChooseArtifact accepts one of the pending offers and opens the next day.
func (g *Game) ChooseArtifact(id string) error {
	g.mu.Lock()
	if g.state == nil || g.state.GameOver {
		g.mu.Unlock()
		return domain.ErrRunOver
	}
	if len(g.offers) == 0 {
		g.mu.Unlock()
		return domain.ErrPoolEmpty
	}
	offered := false
	for _, a := range g.offers {
		if a.ID == id {
			offered = true
			break
		}
	}
	if !offered {
		g.mu.Unlock()
		return fmt.Errorf("%w: %s was not offered", domain.ErrUnknownArtifact, id)
	}
	if err := g.deps.Effects.AcquireArtifact(g.ctx, g.state, id); err != nil {
		g.mu.Unlock()
		return err
	}
	g.offers = nil
	g.deps.Presenter.Render(g.state)
	g.mu.Unlock()

	g.deps.Scheduler.Defer(NextDayDelay, g.startNextDay)
	return nil
}

// DeclineArtifacts passes on the offers and opens the next day.
func (g *Game) DeclineArtifacts() error {
	g.mu.Lock()
	if g.state == nil || g.state.GameOver {
		g.mu.Unlock()
		return domain.ErrRunOver
	}
	if len(g.offers) == 0 {
		g.mu.Unlock()
		return domain.ErrPoolEmpty
	}
	g.offers = nil
	g.mu.Unlock()

	g.deps.Scheduler.Defer(NextDayDelay, g.startNextDay)
	return nil
}

// UseConsumable applies a consumable. Effects that dismiss the customer may
// complete the day or pull in the next patron.
func (g *Game) UseConsumable(id string) error {
	g.mu.Lock()
	if g.state == nil || g.state.GameOver {
		g.mu.Unlock()
		return domain.ErrRunOver
	}
	if err := g.deps.Effects.UseConsumable(g.ctx, g.state, id); err != nil {
		g.deps.Presenter.Log(domain.LogError, err.Error())
		g.mu.Unlock()
		return err
	}
	g.deps.Presenter.Render(g.state)

	var followUp func()
	var delay time.Duration
	if g.state.DayActive && g.state.Pending == nil &&
		g.state.CurrentCustomer == nil && g.state.CurrentBoss == nil {
		if g.state.CustomersServed >= g.state.CustomersPerDay {
			followUp = g.completeDay
		} else {
			followUp, delay = g.spawnCustomer, CustomerSpawnDelay
		}
	}
	g.mu.Unlock()

	if followUp != nil {
		g.deps.Scheduler.Defer(delay, followUp)
	}
	return nil
}

// ContinueEndless keeps a victorious run going without further bosses.
func (g *Game) ContinueEndless() error {
	g.mu.Lock()
	if g.state == nil || g.state.GameOver {
		g.mu.Unlock()
		return domain.ErrRunOver
	}
	if !g.state.Victory {
		g.mu.Unlock()
		return fmt.Errorf("endless mode requires a victory first")
	}
	g.deps.Progression.EnableEndless(g.ctx, g.state)

	var followUp func()
	var delay time.Duration
	if g.state.DayActive && g.state.CustomersServed >= g.state.CustomersPerDay {
		followUp = g.completeDay
	} else if g.state.DayActive {
		followUp, delay = g.spawnCustomer, CustomerSpawnDelay
	}
	g.mu.Unlock()

	if followUp != nil {
		g.deps.Scheduler.Defer(delay, followUp)
	}
	return nil
}

// Finish ends the run explicitly, typically after a victory screen.
func (g *Game) Finish() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == nil {
		return domain.ErrRunOver
	}
	if g.state.GameOver {
		return nil
	}
	reason := g.state.GameOverReason
	if g.state.Victory {
		reason = ReasonVictory
	}
	g.state.GameOver = true
	g.state.GameOverReason = reason
	g.finishLocked(reason)
	return nil
}

// finishLocked publishes the run summary and the game-over view. Callers
// hold the mutex.
func (g *Game) finishLocked(reason string) {
	g.deps.Progression.EndRun(g.ctx, g.state, reason)
	g.deps.Presenter.ShowGameOver(reason)
}
