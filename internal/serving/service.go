// Package serving implements the customer state machine: spawning, the
// regular and boss serve flows, taste tests, and payment collection. Nothing
// touches money or sanity until the player collects a pending feedback.
package serving

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/quistberg/ladle/internal/content"
	"github.com/quistberg/ladle/internal/domain"
	"github.com/quistberg/ladle/internal/event"
	"github.com/quistberg/ladle/internal/hook"
	"github.com/quistberg/ladle/internal/logger"
	"github.com/quistberg/ladle/internal/match"
	"github.com/quistberg/ladle/internal/utils"
)

// Outcome tells the orchestrator what follows a successful collection.
type Outcome string

const (
	OutcomeNextCustomer   Outcome = "next_customer"
	OutcomeDayComplete    Outcome = "day_complete"
	OutcomeBossNextCourse Outcome = "boss_next_course"
	OutcomeBossBonus      Outcome = "boss_bonus"
	OutcomeVictory        Outcome = "victory"
	OutcomeGameOver       Outcome = "game_over"
)

// Config carries the serving tunables.
type Config struct {
	Match              match.Config
	PoorSanityCost     float64
	TerribleSanityCost float64
	BossFailPenalty    float64
	TasteSanityCost    float64
}

// DefaultConfig returns the shipped tuning.
func DefaultConfig() Config {
	return Config{
		Match:              match.DefaultConfig(),
		PoorSanityCost:     DefaultPoorSanityCost,
		TerribleSanityCost: DefaultTerribleSanityCost,
		BossFailPenalty:    DefaultBossFailPenalty,
		TasteSanityCost:    DefaultTasteSanityCost,
	}
}

// Service is the customer/serving state machine.
type Service interface {
	SpawnCustomer(ctx context.Context, state *domain.RunState) error
	Serve(ctx context.Context, state *domain.RunState) (*domain.PendingFeedback, error)
	SelectPaymentItem(state *domain.RunState, itemID string, selected bool) error
	Collect(ctx context.Context, state *domain.RunState) (Outcome, error)
	Taste(ctx context.Context, state *domain.RunState) (map[domain.Attribute]string, error)
}

type service struct {
	cfg      Config
	tables   *content.Tables
	resolver *content.Resolver
	hooks    *hook.Registry
	rng      utils.Rand
	bus      event.Bus
}

// NewService creates the serving state machine.
func NewService(cfg Config, tables *content.Tables, resolver *content.Resolver, hooks *hook.Registry, rng utils.Rand, bus event.Bus) Service {
	return &service{cfg: cfg, tables: tables, resolver: resolver, hooks: hooks, rng: rng, bus: bus}
}

func (s *service) guard(state *domain.RunState) error {
	if state.GameOver {
		return domain.ErrRunOver
	}
	if !state.DayActive {
		return domain.ErrDayInactive
	}
	return nil
}

// SpawnCustomer fills the empty customer slot. The day's final slot belongs
// to the boss on a boss day, unless the run has gone endless.
func (s *service) SpawnCustomer(ctx context.Context, state *domain.RunState) error {
	if err := s.guard(state); err != nil {
		return err
	}
	if state.Pending != nil {
		return domain.ErrFeedbackPending
	}
	if state.CurrentCustomer != nil || state.CurrentBoss != nil {
		return nil
	}
	log := logger.FromContext(ctx)

	finalSlot := state.CustomersServed == state.CustomersPerDay-1
	if finalSlot && !state.EndlessMode {
		if boss, ok := s.tables.BossForDay(state.Day); ok {
			b := boss
			b.CurrentCourse = 0
			b.CoursesServed = 0
			b.CoursesPassed = 0
			state.CurrentBoss = &b
			log.Info(LogMsgBossSpawned, "boss", b.Name, "courses", len(b.Orders))
			return nil
		}
	}

	eligible := make([]domain.Customer, 0, len(s.tables.Customers))
	for _, c := range s.tables.Customers {
		if c.SpawnDay <= state.Day {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) == 0 {
		return fmt.Errorf("%w: no eligible template for day %d", domain.ErrNoCustomer, state.Day)
	}

	pick := eligible[s.rng.Intn(len(eligible))]
	state.CurrentCustomer = &pick
	log.Info(LogMsgCustomerSpawned, "name", pick.Name, "day", state.Day)
	return nil
}

// Serve dispatches to the regular or boss flow depending on who holds the
// customer slot. The served item leaves the countertop immediately; payment
// waits for collection.
func (s *service) Serve(ctx context.Context, state *domain.RunState) (*domain.PendingFeedback, error) {
	if err := s.guard(state); err != nil {
		return nil, err
	}
	if state.Pending != nil {
		return nil, domain.ErrFeedbackPending
	}
	sel := state.SelectedIndices()
	if len(sel) != 1 {
		return nil, fmt.Errorf("%w: need 1, have %d", domain.ErrWrongSelection, len(sel))
	}

	switch {
	case state.CurrentBoss != nil:
		return s.serveBossCourse(ctx, state, sel[0])
	case state.CurrentCustomer != nil:
		return s.serveRegular(ctx, state, sel[0])
	default:
		return nil, domain.ErrNoCustomer
	}
}

// applyPaymentBonuses runs the payment through the artifact multiplier hook
// and the lucky-coin charges, returning the final amount and the bonus labels.
func (s *service) applyPaymentBonuses(state *domain.RunState, payment float64) (float64, []string) {
	var mods []string

	boosted := s.hooks.RunAccumulating(hook.PaymentMultiplier, state.Artifacts, &hook.Context{
		State:   state,
		Default: payment,
	})
	if boosted != payment {
		mods = append(mods, ModifierArtifactBonus)
	}
	payment = boosted

	for state.LuckyCoinCharges > 0 {
		payment *= 2
		state.LuckyCoinCharges--
		mods = append(mods, ModifierLuckyCoin)
	}
	return utils.Round2(payment), mods
}

// sanityCostItem builds a mandatory sanity-loss line item.
func (s *service) sanityCostItem(cost float64) domain.PaymentItem {
	return domain.PaymentItem{
		ID:     uuid.NewString(),
		Label:  LabelSanityHit,
		Kind:   domain.PaymentSanityCost,
		Value:  cost,
		Binded: true,
	}
}

func (s *service) serveRegular(ctx context.Context, state *domain.RunState, idx int) (*domain.PendingFeedback, error) {
	customer := state.CurrentCustomer
	item := state.Countertop[idx]
	state.RemoveCountertop([]int{idx})
	state.ClearSelection()

	profile := s.resolver.Resolve(item)
	distance := match.Distance(profile, customer.Demand)

	var mods []string
	rating := s.cfg.Match.SatisfactionRating(distance)
	paymentDistance := distance
	if state.ForcedRating != "" {
		rating = s.cfg.Match.RatingByTier(match.Tier(state.ForcedRating))
		if rating.Tier == match.TierPerfect {
			paymentDistance = 0
		}
		state.ForcedRating = ""
		mods = append(mods, ModifierGoldenPlate)
	}

	payment := s.cfg.Match.Payment(paymentDistance)
	payment, bonusMods := s.applyPaymentBonuses(state, payment)
	mods = append(mods, bonusMods...)

	items := []domain.PaymentItem{{
		ID:        uuid.NewString(),
		Label:     LabelPayment,
		Kind:      domain.PaymentMoney,
		Value:     payment,
		Selected:  true,
		Modifiers: mods,
	}}

	switch rating.Tier {
	case match.TierPoor:
		items = append(items, s.sanityCostItem(s.cfg.PoorSanityCost))
	case match.TierTerrible:
		items = append(items, s.sanityCostItem(s.cfg.TerribleSanityCost))
	}

	state.Pending = &domain.PendingFeedback{
		Kind:     domain.FeedbackRegular,
		Rating:   string(rating.Tier),
		Emoji:    rating.Emoji,
		Color:    rating.Color,
		Comment:  commentByTier[rating.Tier],
		Distance: utils.Round2(distance),
		Items:    items,
	}

	logger.FromContext(ctx).Info(LogMsgDishServed,
		"dish", item.Name, "customer", customer.Name,
		"distance", state.Pending.Distance, "rating", state.Pending.Rating, "payment", payment)

	if s.bus != nil {
		_ = s.bus.Publish(ctx, event.NewDishServedEvent(
			state.RunID, item.Name, customer.Name, state.Pending.Rating, distance, payment, false))
	}
	return state.Pending, nil
}

func (s *service) serveBossCourse(ctx context.Context, state *domain.RunState, idx int) (*domain.PendingFeedback, error) {
	boss := state.CurrentBoss
	course := boss.Course()
	if course == nil {
		return nil, fmt.Errorf("%w: no course remaining", domain.ErrNoCustomer)
	}

	item := state.Countertop[idx]
	state.RemoveCountertop([]int{idx})
	state.ClearSelection()

	profile := s.resolver.Resolve(item)
	distance := match.Distance(profile, course.Demand)
	passed := distance <= course.MaxDistance
	rating := s.cfg.Match.SatisfactionRating(distance)

	var items []domain.PaymentItem
	if passed {
		payment := s.cfg.Match.Payment(distance)
		payment, mods := s.applyPaymentBonuses(state, payment)
		items = append(items, domain.PaymentItem{
			ID:        uuid.NewString(),
			Label:     LabelCoursePay,
			Kind:      domain.PaymentMoney,
			Value:     payment,
			Selected:  true,
			Modifiers: mods,
		})
	} else {
		items = append(items, domain.PaymentItem{
			ID:     uuid.NewString(),
			Label:  LabelCoursePenalty,
			Kind:   domain.PaymentSanityCost,
			Value:  s.cfg.BossFailPenalty,
			Binded: true,
		})
	}

	boss.CoursesServed++
	if passed {
		boss.CoursesPassed++
	}

	state.Pending = &domain.PendingFeedback{
		Kind:     domain.FeedbackBossCourse,
		Rating:   string(rating.Tier),
		Emoji:    rating.Emoji,
		Color:    rating.Color,
		Comment:  commentByTier[rating.Tier],
		Distance: utils.Round2(distance),
		Passed:   passed,
		Items:    items,
	}

	logger.FromContext(ctx).Info(LogMsgBossCourse,
		"boss", boss.Name, "course", course.Name, "dish", item.Name,
		"distance", state.Pending.Distance, "passed", passed)

	if s.bus != nil {
		_ = s.bus.Publish(ctx, event.NewDishServedEvent(
			state.RunID, item.Name, boss.Name, state.Pending.Rating, distance, 0, true))
	}
	return state.Pending, nil
}

// SelectPaymentItem toggles a feedback line item.
func (s *service) SelectPaymentItem(state *domain.RunState, itemID string, selected bool) error {
	if state.Pending == nil {
		return domain.ErrNoCustomer
	}
	item := state.Pending.Item(itemID)
	if item == nil {
		return fmt.Errorf("%w: payment item %s", domain.ErrWrongSelection, itemID)
	}
	item.Selected = selected
	return nil
}

// effectiveMaxSanity is the sanity cap after artifact bonuses.
func (s *service) effectiveMaxSanity(state *domain.RunState) float64 {
	return s.hooks.RunAccumulating(hook.MaxSanity, state.Artifacts, &hook.Context{
		State:   state,
		Default: state.MaxSanity,
	})
}

// applyPaymentItems applies every selected line item by kind. The sanity
// check runs after everything else has been applied.
func (s *service) applyPaymentItems(ctx context.Context, state *domain.RunState) {
	log := logger.FromContext(ctx)
	maxSanity := s.effectiveMaxSanity(state)

	for _, item := range state.Pending.Items {
		if !item.Selected {
			continue
		}
		switch item.Kind {
		case domain.PaymentMoney:
			state.Money = utils.Round2(state.Money + item.Value)
		case domain.PaymentSanityCost:
			state.Sanity -= item.Value
		case domain.PaymentSanityGain:
			state.Sanity = utils.Clamp(state.Sanity+item.Value, 0, maxSanity)
		case domain.PaymentConsumable:
			if state.ConsumableCount() >= domain.DefaultConsumableCapacity {
				// Full inventory degrades the grant to its cash value.
				state.Money = utils.Round2(state.Money + item.Value)
				log.Info("consumable grant refunded", "id", item.GrantID, "refund", item.Value)
			} else {
				state.Consumables[item.GrantID]++
			}
		}
	}

	if state.Sanity <= 0 {
		state.GameOver = true
		state.GameOverReason = domain.ReasonSanityDepleted
	}
}

// Collect applies the pending feedback and advances the state machine. The
// returned Outcome tells the orchestrator the follow-up: spawn the next
// customer, end the day, stay on the boss, show the bonus page, or end the
// run.
func (s *service) Collect(ctx context.Context, state *domain.RunState) (Outcome, error) {
	if state.GameOver {
		return "", domain.ErrRunOver
	}
	if state.Pending == nil {
		return "", domain.ErrNoCustomer
	}
	if state.Pending.BindedUnselected() {
		return "", domain.ErrBindedUnselected
	}

	pending := state.Pending
	s.applyPaymentItems(ctx, state)
	state.Pending = nil

	log := logger.FromContext(ctx)
	log.Info(LogMsgPaymentCollected, "kind", string(pending.Kind), "money", state.Money, "sanity", state.Sanity)

	if state.GameOver {
		return OutcomeGameOver, nil
	}

	switch pending.Kind {
	case domain.FeedbackRegular:
		state.CurrentCustomer = nil
		state.CustomersServed++
		if state.CustomersServed >= state.CustomersPerDay {
			return OutcomeDayComplete, nil
		}
		return OutcomeNextCustomer, nil

	case domain.FeedbackBossCourse:
		boss := state.CurrentBoss
		if boss.OnFinalCourse() {
			if pending.Passed {
				state.Pending = s.bossBonusFeedback(boss)
				return OutcomeBossBonus, nil
			}
			// Final course failed: the boss leaves unimpressed.
			state.CurrentBoss = nil
			state.CustomersServed++
			if state.CustomersServed >= state.CustomersPerDay {
				return OutcomeDayComplete, nil
			}
			return OutcomeNextCustomer, nil
		}
		boss.CurrentCourse++
		return OutcomeBossNextCourse, nil

	case domain.FeedbackBossBonus:
		boss := state.CurrentBoss
		state.CurrentBoss = nil
		state.CustomersServed++
		state.BossesDefeated++
		if s.bus != nil {
			_ = s.bus.Publish(ctx, event.NewBossDefeatedEvent(state.RunID, boss.Name, state.Day))
		}
		if boss.Day >= s.tables.FinalBossDay() {
			state.Victory = true
			return OutcomeVictory, nil
		}
		if state.CustomersServed >= state.CustomersPerDay {
			return OutcomeDayComplete, nil
		}
		return OutcomeNextCustomer, nil

	default:
		return "", fmt.Errorf("unknown feedback kind %q", pending.Kind)
	}
}

func (s *service) bossBonusFeedback(boss *domain.Boss) *domain.PendingFeedback {
	rating := s.cfg.Match.RatingByTier(match.TierPerfect)
	return &domain.PendingFeedback{
		Kind:    domain.FeedbackBossBonus,
		Rating:  string(rating.Tier),
		Emoji:   rating.Emoji,
		Color:   rating.Color,
		Comment: fmt.Sprintf("%s bows. The full menu was worthy.", boss.Name),
		Passed:  true,
		Items: []domain.PaymentItem{{
			ID:       uuid.NewString(),
			Label:    LabelVictoryBonus,
			Kind:     domain.PaymentMoney,
			Value:    boss.VictoryBonus,
			Selected: true,
		}},
	}
}

// Taste reveals bucketed feedback text for the selected item's resolved
// profile, at a sanity price. The item stays on the countertop.
func (s *service) Taste(ctx context.Context, state *domain.RunState) (map[domain.Attribute]string, error) {
	if err := s.guard(state); err != nil {
		return nil, err
	}
	if state.Pending != nil {
		return nil, domain.ErrFeedbackPending
	}
	sel := state.SelectedIndices()
	if len(sel) != 1 {
		return nil, fmt.Errorf("%w: need 1, have %d", domain.ErrWrongSelection, len(sel))
	}

	item := state.Countertop[sel[0]]
	profile := s.resolver.Resolve(item)

	cost := s.hooks.RunAccumulating(hook.TasteCost, state.Artifacts, &hook.Context{
		State:   state,
		Item:    item,
		Default: s.cfg.TasteSanityCost,
	})
	state.Sanity -= cost

	// A sanity-draining dish bites back when sampled.
	if drain := profile[domain.AttrSanity]; drain < 0 {
		state.Sanity += drain
	}
	state.ClearSelection()

	feedback := s.resolver.TasteFeedback(profile)
	logger.FromContext(ctx).Info(LogMsgTasted, "item", item.Name, "cost", cost, "sanity", state.Sanity)

	if state.Sanity <= 0 {
		state.GameOver = true
		state.GameOverReason = domain.ReasonSanityDepleted
	}
	return feedback, nil
}
