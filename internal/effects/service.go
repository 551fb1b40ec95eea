package effects

import (
	"context"
	"fmt"

	"github.com/quistberg/ladle/internal/content"
	"github.com/quistberg/ladle/internal/domain"
	"github.com/quistberg/ladle/internal/hook"
	"github.com/quistberg/ladle/internal/kitchen"
	"github.com/quistberg/ladle/internal/logger"
	"github.com/quistberg/ladle/internal/utils"
)

// Log message constants
const (
	LogMsgConsumableUsed    = "consumable used"
	LogMsgConsumableGranted = "consumable granted"
	LogMsgArtifactAcquired  = "artifact acquired"
	LogMsgGrantRefunded     = "grant refunded for cash"
)

// Service applies consumables and artifact acquisitions to the run state.
// A failed use leaves the quantity untouched; a success decrements exactly
// one and clears the selection.
type Service interface {
	UseConsumable(ctx context.Context, state *domain.RunState, id string) error
	GrantConsumable(ctx context.Context, state *domain.RunState, id string) error
	AcquireArtifact(ctx context.Context, state *domain.RunState, id string) error
}

type service struct {
	tables   *content.Tables
	resolver *content.Resolver
	hooks    *hook.Registry
	rng      utils.Rand
}

// NewService creates the effect application service. The registry must be
// the same one the rest of the engine dispatches through.
func NewService(tables *content.Tables, resolver *content.Resolver, hooks *hook.Registry, rng utils.Rand) Service {
	return &service{tables: tables, resolver: resolver, hooks: hooks, rng: rng}
}

func (s *service) capacity(state *domain.RunState) int {
	return int(s.hooks.RunAccumulating(hook.CountertopCapacity, state.Artifacts, &hook.Context{
		State:   state,
		Default: kitchen.DefaultCountertopCapacity,
	}))
}

// UseConsumable dispatches the consumable's effect. Every branch validates
// before mutating so a failure never charges the consumable.
func (s *service) UseConsumable(ctx context.Context, state *domain.RunState, id string) error {
	if state.GameOver {
		return domain.ErrRunOver
	}
	if !state.DayActive {
		return domain.ErrDayInactive
	}
	if state.Pending != nil {
		return domain.ErrFeedbackPending
	}
	if state.Consumables[id] <= 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotOwned, id)
	}
	def, ok := s.tables.ConsumableByID(id)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownConsumable, id)
	}

	if err := s.apply(ctx, state, def); err != nil {
		return err
	}

	state.Consumables[id]--
	if state.Consumables[id] <= 0 {
		delete(state.Consumables, id)
	}
	state.ClearSelection()

	logger.FromContext(ctx).Info(LogMsgConsumableUsed, "id", id, "effect", string(def.Effect.Type))
	return nil
}

func (s *service) requireOne(state *domain.RunState) (*domain.Item, error) {
	sel := state.SelectedIndices()
	if len(sel) != 1 {
		return nil, fmt.Errorf("%w: need 1, have %d", domain.ErrWrongSelection, len(sel))
	}
	return state.Countertop[sel[0]], nil
}

func (s *service) effectiveMaxSanity(state *domain.RunState) float64 {
	return s.hooks.RunAccumulating(hook.MaxSanity, state.Artifacts, &hook.Context{
		State:   state,
		Default: state.MaxSanity,
	})
}

func (s *service) apply(ctx context.Context, state *domain.RunState, def domain.Consumable) error {
	spec := def.Effect
	switch spec.Type {
	case domain.EffectAttributeBoost:
		item, err := s.requireOne(state)
		if err != nil {
			return err
		}
		item.AddModifier(spec.Attribute, spec.Value)
		return nil

	case domain.EffectSanityRestore:
		state.Sanity = utils.Clamp(state.Sanity+spec.Value, 0, s.effectiveMaxSanity(state))
		return nil

	case domain.EffectLuckyCoin:
		charges := int(spec.Value)
		if charges < 1 {
			charges = 1
		}
		state.LuckyCoinCharges += charges
		return nil

	case domain.EffectEmergencyServe:
		if state.CurrentBoss != nil {
			return domain.ErrBossDisallowed
		}
		if state.CurrentCustomer == nil {
			return domain.ErrNoCustomer
		}
		state.Money = utils.Round2(state.Money + spec.Value)
		state.CurrentCustomer = nil
		state.CustomersServed++
		return nil

	case domain.EffectDuplicateItem:
		item, err := s.requireOne(state)
		if err != nil {
			return err
		}
		if len(state.Countertop) >= s.capacity(state) {
			return domain.ErrCounterFull
		}
		state.Countertop = append(state.Countertop, item.Clone())
		return nil

	case domain.EffectRandomUnlock:
		locked := make([]content.AtomDef, 0, len(s.tables.Atoms))
		for _, atom := range s.tables.Atoms {
			if _, unlocked := state.AvailableIngredients[atom.Name]; !unlocked {
				locked = append(locked, atom)
			}
		}
		if len(locked) == 0 {
			return fmt.Errorf("%w: every ingredient is unlocked", domain.ErrPoolEmpty)
		}
		pick := locked[s.rng.Intn(len(locked))]
		state.AvailableIngredients[pick.Name] = pick.Cost
		delete(state.MerchantPrices, pick.Name)
		return nil

	case domain.EffectForceRating:
		state.ForcedRating = spec.Rating
		return nil

	case domain.EffectCursedBoost:
		item, err := s.requireOne(state)
		if err != nil {
			return err
		}
		profile := s.resolver.Resolve(item)
		for attr, v := range profile {
			if v != 0 {
				item.AddModifier(attr, spec.Value)
			}
		}
		item.AddModifier(domain.AttrVoidLevel, CursedVoidBoost)
		return nil

	case domain.EffectGrantArtifact:
		if len(state.ArtifactPool) == 0 {
			// Empty pool degrades to the consumable's cash value.
			state.Money = utils.Round2(state.Money + spec.Value)
			logger.FromContext(ctx).Info(LogMsgGrantRefunded, "refund", spec.Value)
			return nil
		}
		pick := state.ArtifactPool[s.rng.Intn(len(state.ArtifactPool))]
		return s.AcquireArtifact(ctx, state, pick)

	case domain.EffectSkipCustomer:
		if state.CurrentBoss != nil {
			return domain.ErrBossDisallowed
		}
		if state.CurrentCustomer == nil {
			return domain.ErrNoCustomer
		}
		state.CurrentCustomer = nil
		state.CustomersServed++
		return nil

	case domain.EffectFreeWithdrawals:
		state.FreeWithdrawals += int(spec.Value)
		return nil

	default:
		return fmt.Errorf("%w: effect %q", domain.ErrUnknownConsumable, spec.Type)
	}
}

// GrantConsumable adds one unit, respecting the inventory capacity.
func (s *service) GrantConsumable(ctx context.Context, state *domain.RunState, id string) error {
	if _, ok := s.tables.ConsumableByID(id); !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownConsumable, id)
	}
	if state.ConsumableCount() >= domain.DefaultConsumableCapacity {
		return domain.ErrInventoryFull
	}
	state.Consumables[id]++
	logger.FromContext(ctx).Info(LogMsgConsumableGranted, "id", id, "quantity", state.Consumables[id])
	return nil
}

// AcquireArtifact removes the artifact from the pool, appends it in
// acquisition order, and fires any immediate on-acquire effect.
func (s *service) AcquireArtifact(ctx context.Context, state *domain.RunState, id string) error {
	def, ok := s.tables.ArtifactByID(id)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownArtifact, id)
	}
	if state.HasArtifact(id) {
		return fmt.Errorf("%w: already owned %s", domain.ErrUnknownArtifact, id)
	}

	for i, poolID := range state.ArtifactPool {
		if poolID == id {
			state.ArtifactPool = append(state.ArtifactPool[:i], state.ArtifactPool[i+1:]...)
			break
		}
	}
	state.Artifacts = append(state.Artifacts, id)

	s.hooks.RunSideEffecting(hook.Acquire, []string{id}, &hook.Context{State: state})

	logger.FromContext(ctx).Info(LogMsgArtifactAcquired, "id", id, "name", def.Name, "owned", len(state.Artifacts))
	return nil
}
