package kitchen

import (
	"context"
	"fmt"

	"github.com/quistberg/ladle/internal/content"
	"github.com/quistberg/ladle/internal/domain"
	"github.com/quistberg/ladle/internal/event"
	"github.com/quistberg/ladle/internal/hook"
	"github.com/quistberg/ladle/internal/logger"
	"github.com/quistberg/ladle/internal/utils"
)

// Config carries the engine tunables.
type Config struct {
	CountertopCapacity  int
	OverheatProbability float64
	ApplianceUnlockDays map[domain.Appliance]int
}

// DefaultConfig returns the shipped tuning.
func DefaultConfig() Config {
	return Config{
		CountertopCapacity:  DefaultCountertopCapacity,
		OverheatProbability: DefaultOverheatProbability,
		ApplianceUnlockDays: DefaultApplianceUnlockDays,
	}
}

// Service implements the countertop transformations. Every operation
// validates its preconditions before mutating anything; a failed validation
// leaves the run state untouched.
type Service interface {
	Withdraw(ctx context.Context, state *domain.RunState, name string) error
	Combine(ctx context.Context, state *domain.RunState) (*domain.Item, error)
	Split(ctx context.Context, state *domain.RunState) ([]*domain.Item, error)
	Amplify(ctx context.Context, state *domain.RunState) (*domain.Item, error)
	Mutate(ctx context.Context, state *domain.RunState) (*domain.Item, error)
	Trash(ctx context.Context, state *domain.RunState) (float64, error)
	MerchantBuy(ctx context.Context, state *domain.RunState, name string) error
	Capacity(state *domain.RunState) int
	ApplianceUnlocked(state *domain.RunState, a domain.Appliance) bool
}

type service struct {
	cfg    Config
	tables *content.Tables
	hooks  *hook.Registry
	rng    utils.Rand
	bus    event.Bus
}

// NewService creates a new appliance engine.
func NewService(cfg Config, tables *content.Tables, hooks *hook.Registry, rng utils.Rand, bus event.Bus) Service {
	return &service{cfg: cfg, tables: tables, hooks: hooks, rng: rng, bus: bus}
}

// Capacity is the countertop limit after artifact expansion.
func (s *service) Capacity(state *domain.RunState) int {
	cap := s.hooks.RunAccumulating(hook.CountertopCapacity, state.Artifacts, &hook.Context{
		State:   state,
		Default: float64(s.cfg.CountertopCapacity),
	})
	return int(cap)
}

// ApplianceUnlocked reports whether the appliance is usable on the current day.
func (s *service) ApplianceUnlocked(state *domain.RunState, a domain.Appliance) bool {
	day, ok := s.cfg.ApplianceUnlockDays[a]
	if !ok {
		return true
	}
	return state.Day >= day
}

func (s *service) guard(state *domain.RunState) error {
	if state.GameOver {
		return domain.ErrRunOver
	}
	if !state.DayActive {
		return domain.ErrDayInactive
	}
	if state.Pending != nil {
		return domain.ErrFeedbackPending
	}
	return nil
}

func (s *service) requireSelection(state *domain.RunState, n int) ([]int, error) {
	sel := state.SelectedIndices()
	if len(sel) != n {
		return nil, fmt.Errorf("%w: need %d, have %d", domain.ErrWrongSelection, n, len(sel))
	}
	return sel, nil
}

// trackedCost returns the recorded base cost for a name, 0 when unknown.
func (s *service) trackedCost(state *domain.RunState, name string) float64 {
	return state.AvailableIngredients[name]
}

// unlock makes a transformation result available as an ingredient, or lowers
// its recorded cost. Skipped entirely when the inputs were temporary-tagged.
// Returns true when the name is newly available.
func (s *service) unlock(ctx context.Context, state *domain.RunState, name string, cost float64, temporary bool, method string, inputs []string) bool {
	if temporary {
		return false
	}
	log := logger.FromContext(ctx)

	current, exists := state.AvailableIngredients[name]
	if exists {
		if cost < current {
			state.AvailableIngredients[name] = cost
			log.Info(LogMsgCostLowered, "name", name, "old", current, "new", cost)
		}
		return false
	}

	state.AvailableIngredients[name] = cost
	log.Info(LogMsgUnlocked, "name", name, "cost", cost, "method", method)

	if s.bus != nil && method != "" {
		_ = s.bus.Publish(ctx, event.NewRecipeDiscoveredEvent(state.RunID, domain.Discovery{
			Method: method,
			Inputs: inputs,
			Result: name,
		}))
	}
	return true
}

// Withdraw moves one unlocked ingredient from storage to the countertop,
// charging the effective cost.
func (s *service) Withdraw(ctx context.Context, state *domain.RunState, name string) error {
	if err := s.guard(state); err != nil {
		return err
	}
	baseCost, ok := state.AvailableIngredients[name]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotUnlocked, name)
	}
	if len(state.Countertop) >= s.Capacity(state) {
		return domain.ErrCounterFull
	}

	// Cost pipeline: base -> artifact cost modifiers -> bulk discount ->
	// free-withdrawal counter.
	hctx := &hook.Context{State: state, ItemName: name, Default: baseCost}
	cost := s.hooks.RunAccumulating(hook.IngredientCost, state.Artifacts, hctx)
	hctx.Default = cost
	cost = s.hooks.RunAccumulating(hook.BulkDiscount, state.Artifacts, hctx)

	freeUsed := false
	if state.FreeWithdrawals > 0 {
		cost = 0
		freeUsed = true
	}

	cost = utils.Round2(cost)
	if state.Money < cost {
		return fmt.Errorf("%w: need $%.2f", domain.ErrInsufficientFunds, cost)
	}

	state.Money = utils.Round2(state.Money - cost)
	if freeUsed {
		state.FreeWithdrawals--
	}
	state.PurchaseCounts[name]++
	state.Countertop = append(state.Countertop, domain.NewItem(name))
	state.ClearSelection()

	logger.FromContext(ctx).Info(LogMsgWithdrew, "name", name, "cost", cost, "money", state.Money)
	return nil
}

// Combine merges the two selected items through the pan. An unknown pair
// yields the fixed failure dish and unlocks nothing.
func (s *service) Combine(ctx context.Context, state *domain.RunState) (*domain.Item, error) {
	if err := s.guard(state); err != nil {
		return nil, err
	}
	if !s.ApplianceUnlocked(state, domain.AppliancePan) {
		return nil, fmt.Errorf("%w: pan", domain.ErrApplianceLocked)
	}
	sel, err := s.requireSelection(state, 2)
	if err != nil {
		return nil, err
	}

	a, b := state.Countertop[sel[0]], state.Countertop[sel[1]]
	resultName, found := s.tables.CombineResult(a.Name, b.Name)
	temporary := a.Temporary() || b.Temporary()

	// Remove before adding: net -1, so capacity can never block here.
	state.RemoveCountertop(sel)

	var result *domain.Item
	if !found {
		result = domain.NewItem(content.FailureDish)
		result.MergeModifiers(a)
		result.MergeModifiers(b)
	} else {
		result = domain.NewItem(resultName)
		result.MergeModifiers(a)
		result.MergeModifiers(b)
		cost := s.trackedCost(state, a.Name) + s.trackedCost(state, b.Name)
		s.unlock(ctx, state, resultName, utils.Round2(cost), temporary, MethodCombine, []string{a.Name, b.Name})
	}

	state.Countertop = append(state.Countertop, result)
	state.ClearSelection()

	logger.FromContext(ctx).Info(LogMsgCombined, "a", a.Name, "b", b.Name, "result", result.Name, "matched", found)
	return result, nil
}

// Split cuts the selected item into its two parts on the board. Aborts
// before removing anything when the net +1 would exceed capacity.
func (s *service) Split(ctx context.Context, state *domain.RunState) ([]*domain.Item, error) {
	if err := s.guard(state); err != nil {
		return nil, err
	}
	if !s.ApplianceUnlocked(state, domain.ApplianceBoard) {
		return nil, fmt.Errorf("%w: board", domain.ErrApplianceLocked)
	}
	sel, err := s.requireSelection(state, 1)
	if err != nil {
		return nil, err
	}

	src := state.Countertop[sel[0]]
	parts, ok := s.tables.SplitResult(src.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %s cannot be split", domain.ErrNoSuchRecipe, src.Name)
	}
	if len(state.Countertop)-1+2 > s.Capacity(state) {
		return nil, domain.ErrCounterFull
	}

	state.RemoveCountertop(sel)

	temporary := src.Temporary()
	halfCost := utils.Round2(s.trackedCost(state, src.Name) / 2)
	out := make([]*domain.Item, 0, 2)
	for _, name := range parts {
		part := domain.NewItem(name)
		part.MergeModifiers(src)
		s.unlock(ctx, state, name, halfCost, temporary, MethodSplit, []string{src.Name})
		state.Countertop = append(state.Countertop, part)
		out = append(out, part)
	}
	state.ClearSelection()

	logger.FromContext(ctx).Info(LogMsgSplit, "source", src.Name, "parts", parts)
	return out, nil
}

// Amplify replaces the selected item in place with its amplified form.
func (s *service) Amplify(ctx context.Context, state *domain.RunState) (*domain.Item, error) {
	if err := s.guard(state); err != nil {
		return nil, err
	}
	if !s.ApplianceUnlocked(state, domain.ApplianceAmplifier) {
		return nil, fmt.Errorf("%w: amplifier", domain.ErrApplianceLocked)
	}
	sel, err := s.requireSelection(state, 1)
	if err != nil {
		return nil, err
	}

	src := state.Countertop[sel[0]]
	resultName, ok := s.tables.AmplifyResult(src.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %s cannot be amplified", domain.ErrNoSuchRecipe, src.Name)
	}

	result := domain.NewItem(resultName)
	result.MergeModifiers(src)
	state.Countertop[sel[0]] = result

	s.unlock(ctx, state, resultName, s.trackedCost(state, src.Name), src.Temporary(), MethodAmplify, []string{src.Name})
	state.ClearSelection()

	logger.FromContext(ctx).Info(LogMsgAmplified, "source", src.Name, "result", resultName)
	return result, nil
}

// Mutate runs the selected item through the microwave. A table entry is
// deterministic; otherwise the overheat roll decides between the generic
// overheated variant and the hazardous byproduct.
func (s *service) Mutate(ctx context.Context, state *domain.RunState) (*domain.Item, error) {
	if err := s.guard(state); err != nil {
		return nil, err
	}
	if !s.ApplianceUnlocked(state, domain.ApplianceMicrowave) {
		return nil, fmt.Errorf("%w: microwave", domain.ErrApplianceLocked)
	}
	sel, err := s.requireSelection(state, 1)
	if err != nil {
		return nil, err
	}

	src := state.Countertop[sel[0]]
	state.RemoveCountertop(sel)

	resultName, ok := s.tables.MutateResult(src.Name)
	if !ok {
		if s.rng.Float64() < s.cfg.OverheatProbability {
			resultName = content.OverheatedPrefix + src.Name
		} else {
			resultName = content.HazardByproduct
		}
	}

	result := domain.NewItem(resultName)
	result.MergeModifiers(src)
	state.Countertop = append(state.Countertop, result)

	s.unlock(ctx, state, resultName, s.trackedCost(state, src.Name), src.Temporary(), MethodMutate, []string{src.Name})
	state.ClearSelection()

	logger.FromContext(ctx).Info(LogMsgMutated, "source", src.Name, "result", resultName, "deterministic", ok)
	return result, nil
}

// Trash discards every selected item, crediting whatever the refund hook
// returns per item.
func (s *service) Trash(ctx context.Context, state *domain.RunState) (float64, error) {
	if err := s.guard(state); err != nil {
		return 0, err
	}
	sel := state.SelectedIndices()
	if len(sel) == 0 {
		return 0, fmt.Errorf("%w: nothing selected", domain.ErrWrongSelection)
	}

	removed := state.RemoveCountertop(sel)
	refund := 0.0
	for _, item := range removed {
		refund += s.hooks.RunAccumulating(hook.TrashRefund, state.Artifacts, &hook.Context{
			State:    state,
			Item:     item,
			ItemName: item.Name,
			Default:  0,
		})
	}
	refund = utils.Round2(refund)
	state.Money = utils.Round2(state.Money + refund)
	state.ClearSelection()

	logger.FromContext(ctx).Info(LogMsgTrashed, "count", len(removed), "refund", refund)
	return refund, nil
}

// MerchantBuy unlocks an ingredient at its merchant price, explicitly
// overwriting any recorded cost.
func (s *service) MerchantBuy(ctx context.Context, state *domain.RunState, name string) error {
	if err := s.guard(state); err != nil {
		return err
	}
	price, ok := state.MerchantPrices[name]
	if !ok {
		return fmt.Errorf("%w: merchant does not sell %s", domain.ErrNoSuchRecipe, name)
	}
	if state.Money < price {
		return fmt.Errorf("%w: need $%.2f", domain.ErrInsufficientFunds, price)
	}

	atom, ok := s.tables.Atom(name)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownFood, name)
	}

	state.Money = utils.Round2(state.Money - price)
	// Merchant purchase overwrites the stored cost regardless of direction.
	state.AvailableIngredients[name] = atom.Cost
	delete(state.MerchantPrices, name)

	logger.FromContext(ctx).Info(LogMsgUnlocked, "name", name, "cost", atom.Cost, "method", "merchant")
	return nil
}
