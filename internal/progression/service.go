// Package progression runs the day lifecycle: run setup, day start, the
// end-of-day settlement (regen, rent, bankruptcy), and endless mode.
package progression

import (
	"context"

	"github.com/google/uuid"

	"github.com/quistberg/ladle/internal/content"
	"github.com/quistberg/ladle/internal/domain"
	"github.com/quistberg/ladle/internal/event"
	"github.com/quistberg/ladle/internal/hook"
	"github.com/quistberg/ladle/internal/logger"
	"github.com/quistberg/ladle/internal/utils"
)

// Default economy tuning.
const (
	DefaultStartMoney      = 50.0
	DefaultStartSanity     = 100.0
	DefaultStartRent       = 15.0
	DefaultRentMultiplier  = 1.25
	DefaultRegenFraction   = 0.3
	DefaultBaseQuota       = 3
	DefaultQuotaGrowthDays = 2 // +1 customer every this many days
	DefaultArtifactOffers  = 3
)

// Log message constants
const (
	LogMsgRunStarted  = "run started"
	LogMsgDayStarted  = "day started"
	LogMsgDayEnded    = "day ended"
	LogMsgRentFrozen  = "rent increase frozen"
	LogMsgVetoApplied = "bankruptcy forgiven"
	LogMsgEndless     = "endless mode enabled"
)

// Config carries the economy tunables.
type Config struct {
	StartMoney      float64
	StartSanity     float64
	StartRent       float64
	RentMultiplier  float64
	RegenFraction   float64
	BaseQuota       int
	QuotaGrowthDays int
	ArtifactOffers  int
}

// DefaultConfig returns the shipped tuning.
func DefaultConfig() Config {
	return Config{
		StartMoney:      DefaultStartMoney,
		StartSanity:     DefaultStartSanity,
		StartRent:       DefaultStartRent,
		RentMultiplier:  DefaultRentMultiplier,
		RegenFraction:   DefaultRegenFraction,
		BaseQuota:       DefaultBaseQuota,
		QuotaGrowthDays: DefaultQuotaGrowthDays,
		ArtifactOffers:  DefaultArtifactOffers,
	}
}

// Service drives the day state machine.
type Service interface {
	NewRun(ctx context.Context) *domain.RunState
	StartDay(ctx context.Context, state *domain.RunState) error
	EndDay(ctx context.Context, state *domain.RunState) ([]domain.Artifact, error)
	EnableEndless(ctx context.Context, state *domain.RunState)
	EndRun(ctx context.Context, state *domain.RunState, reason string)
}

type service struct {
	cfg    Config
	tables *content.Tables
	hooks  *hook.Registry
	rng    utils.Rand
	bus    event.Bus
}

// NewService creates the progression engine.
func NewService(cfg Config, tables *content.Tables, hooks *hook.Registry, rng utils.Rand, bus event.Bus) Service {
	return &service{cfg: cfg, tables: tables, hooks: hooks, rng: rng, bus: bus}
}

// NewRun builds the initial run state: starting atoms unlocked, merchant
// price list populated, artifact pool shuffled, day 0 (StartDay opens day 1).
func (s *service) NewRun(ctx context.Context) *domain.RunState {
	state := &domain.RunState{
		RunID:                uuid.NewString(),
		Money:                s.cfg.StartMoney,
		Sanity:               s.cfg.StartSanity,
		MaxSanity:            s.cfg.StartSanity,
		Rent:                 s.cfg.StartRent,
		Selected:             make(map[int]bool),
		AvailableIngredients: make(map[string]float64),
		MerchantPrices:       make(map[string]float64),
		PurchaseCounts:       make(map[string]int),
		Consumables:          make(map[string]int),
	}

	for _, atom := range s.tables.Atoms {
		if atom.Starting {
			state.AvailableIngredients[atom.Name] = atom.Cost
		} else if atom.MerchantPrice > 0 {
			state.MerchantPrices[atom.Name] = atom.MerchantPrice
		}
	}

	pool := make([]string, 0, len(s.tables.Artifacts))
	for _, a := range s.tables.Artifacts {
		pool = append(pool, a.ID)
	}
	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	state.ArtifactPool = pool

	logger.FromContext(ctx).Info(LogMsgRunStarted,
		"run_id", state.RunID, "money", state.Money, "ingredients", len(state.AvailableIngredients))
	return state
}

// quota computes the day's customer count before artifact modifiers.
func (s *service) quota(day int) int {
	return s.cfg.BaseQuota + (day-1)/s.cfg.QuotaGrowthDays
}

// StartDay opens the next day: increments the counter, grows rent unless
// frozen, recomputes the quota, and fires the day-start hooks.
func (s *service) StartDay(ctx context.Context, state *domain.RunState) error {
	if state.GameOver {
		return domain.ErrRunOver
	}
	log := logger.FromContext(ctx)

	state.Day++
	state.CustomersServed = 0
	state.CurrentCustomer = nil
	state.CurrentBoss = nil

	if state.Day > 1 {
		if state.RentFrozen {
			state.RentFrozen = false
			log.Info(LogMsgRentFrozen, "day", state.Day, "rent", state.Rent)
		} else {
			state.Rent = utils.Round2(state.Rent * s.cfg.RentMultiplier)
		}
	}

	state.CustomersPerDay = int(s.hooks.RunAccumulating(hook.CustomersPerDay, state.Artifacts, &hook.Context{
		State:   state,
		Default: float64(s.quota(state.Day)),
	}))
	state.DayActive = true

	s.hooks.RunSideEffecting(hook.DayStart, state.Artifacts, &hook.Context{State: state})

	log.Info(LogMsgDayStarted,
		"day", state.Day, "rent", state.Rent, "quota", state.CustomersPerDay, "money", state.Money)
	return nil
}

// EndDay settles the day: day-end hooks, countertop clear, sanity regen,
// rent deduction with the bankruptcy veto, then artifact offers. A bankrupt
// day returns no offers and a game-over state.
func (s *service) EndDay(ctx context.Context, state *domain.RunState) ([]domain.Artifact, error) {
	if state.GameOver {
		return nil, domain.ErrRunOver
	}
	log := logger.FromContext(ctx)

	state.DayActive = false
	state.CurrentCustomer = nil

	// Recycling hooks see the countertop before it clears.
	s.hooks.RunSideEffecting(hook.DayEnd, state.Artifacts, &hook.Context{State: state})
	state.Countertop = nil
	state.ClearSelection()

	maxSanity := s.hooks.RunAccumulating(hook.MaxSanity, state.Artifacts, &hook.Context{
		State:   state,
		Default: state.MaxSanity,
	})
	state.Sanity = utils.Clamp(state.Sanity+maxSanity*s.cfg.RegenFraction, 0, maxSanity)

	rentPaid := state.Rent
	state.Money = utils.Round2(state.Money - rentPaid)

	if state.Money < 0 {
		remaining := s.hooks.RunAccumulating(hook.BankruptcyVeto, state.Artifacts, &hook.Context{
			State:   state,
			Default: state.Money,
		})
		if remaining < 0 {
			state.GameOver = true
			state.GameOverReason = domain.ReasonBankrupt
			log.Info(LogMsgDayEnded, "day", state.Day, "money", state.Money, "bankrupt", true)
			s.EndRun(ctx, state, domain.ReasonBankrupt)
			return nil, nil
		}
		state.Money = utils.Round2(remaining)
		log.Info(LogMsgVetoApplied, "day", state.Day, "money", state.Money)
	}

	if s.bus != nil {
		_ = s.bus.Publish(ctx, event.NewDayEndedEvent(state.RunID, state.Day, state.Money, rentPaid))
	}
	log.Info(LogMsgDayEnded,
		"day", state.Day, "money", state.Money, "sanity", state.Sanity, "rent_paid", rentPaid)

	return s.drawOffers(state), nil
}

// drawOffers takes up to the configured number of artifacts off the front of
// the pre-shuffled pool without removing them; acquisition removes the chosen
// one.
func (s *service) drawOffers(state *domain.RunState) []domain.Artifact {
	n := s.cfg.ArtifactOffers
	if n > len(state.ArtifactPool) {
		n = len(state.ArtifactPool)
	}
	offers := make([]domain.Artifact, 0, n)
	for _, id := range state.ArtifactPool[:n] {
		if a, ok := s.tables.ArtifactByID(id); ok {
			offers = append(offers, a)
		}
	}
	return offers
}

// EnableEndless keeps a victorious run going with bosses retired.
func (s *service) EnableEndless(ctx context.Context, state *domain.RunState) {
	state.EndlessMode = true
	logger.FromContext(ctx).Info(LogMsgEndless, "day", state.Day)
}

// EndRun publishes the final summary.
func (s *service) EndRun(ctx context.Context, state *domain.RunState, reason string) {
	if s.bus == nil {
		return
	}
	_ = s.bus.Publish(ctx, event.NewRunEndedEvent(domain.RunSummary{
		RunID:      state.RunID,
		DayReached: state.Day,
		BossBeaten: state.BossesDefeated > 0,
		Victory:    state.Victory,
		Reason:     reason,
	}))
}
