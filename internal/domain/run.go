package domain

import (
	"maps"
	"slices"
	"sort"
)

// Appliance identifies a countertop appliance.
type Appliance string

const (
	AppliancePan       Appliance = "pan"
	ApplianceBoard     Appliance = "board"
	ApplianceAmplifier Appliance = "amplifier"
	ApplianceMicrowave Appliance = "microwave"
)

// RunState is the canonical mutable state for a single run. There is exactly
// one mutator at a time; components receive a handle to this struct and
// mutate it in place inside player-triggered actions.
type RunState struct {
	RunID string `json:"run_id"`

	Money     float64 `json:"money"`
	Sanity    float64 `json:"sanity"`
	MaxSanity float64 `json:"max_sanity"`
	Day       int     `json:"day"`
	Rent      float64 `json:"rent"`

	CustomersServed int  `json:"customers_served"`
	CustomersPerDay int  `json:"customers_per_day"`
	DayActive       bool `json:"day_active"`
	EndlessMode     bool `json:"endless_mode"`

	Countertop []*Item      `json:"countertop"`
	Selected   map[int]bool `json:"selected"`

	// Ingredient unlock state. Presence in the map is availability; the
	// value is the recorded base cost. The two never diverge.
	AvailableIngredients map[string]float64 `json:"available_ingredients"`
	MerchantPrices       map[string]float64 `json:"merchant_prices"`
	PurchaseCounts       map[string]int     `json:"purchase_counts"`

	Artifacts    []string       `json:"artifacts"` // acquisition order
	ArtifactPool []string       `json:"artifact_pool"`
	Consumables  map[string]int `json:"consumables"`

	SelectedConsumable string `json:"selected_consumable,omitempty"`

	// One-shot and counter effects accrued from consumables/artifacts.
	LuckyCoinCharges   int    `json:"lucky_coin_charges"`
	FreeWithdrawals    int    `json:"free_withdrawals"`
	ForcedRating       string `json:"forced_rating,omitempty"`
	RentFrozen         bool   `json:"rent_frozen"`
	BankruptcyVetoUsed bool   `json:"bankruptcy_veto_used"`

	CurrentCustomer *Customer        `json:"current_customer,omitempty"`
	CurrentBoss     *Boss            `json:"current_boss,omitempty"`
	Pending         *PendingFeedback `json:"pending_feedback,omitempty"`

	GameOver       bool   `json:"game_over"`
	GameOverReason string `json:"game_over_reason,omitempty"`
	Victory        bool   `json:"victory"`
	BossesDefeated int    `json:"bosses_defeated"`
}

// SelectedIndices returns the selected countertop indices in ascending order.
func (s *RunState) SelectedIndices() []int {
	out := make([]int, 0, len(s.Selected))
	for i, on := range s.Selected {
		if on && i >= 0 && i < len(s.Countertop) {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

// ClearSelection drops the countertop and consumable selections.
func (s *RunState) ClearSelection() {
	s.Selected = make(map[int]bool)
	s.SelectedConsumable = ""
}

// HasArtifact reports whether the artifact has been acquired this run.
func (s *RunState) HasArtifact(id string) bool {
	for _, a := range s.Artifacts {
		if a == id {
			return true
		}
	}
	return false
}

// DefaultConsumableCapacity limits the total consumable quantity per run.
const DefaultConsumableCapacity = 6

// ConsumableCount returns the total quantity across all consumable ids,
// which is what the inventory capacity limits.
func (s *RunState) ConsumableCount() int {
	total := 0
	for _, q := range s.Consumables {
		total += q
	}
	return total
}

// RemoveCountertop removes the items at the given ascending indices and
// returns them in the same order.
func (s *RunState) RemoveCountertop(indices []int) []*Item {
	removed := make([]*Item, 0, len(indices))
	for _, idx := range indices {
		removed = append(removed, s.Countertop[idx])
	}
	// Delete from the back so earlier indices stay valid.
	for i := len(indices) - 1; i >= 0; i-- {
		idx := indices[i]
		s.Countertop = append(s.Countertop[:idx], s.Countertop[idx+1:]...)
	}
	return removed
}

// Clone returns a deep copy that stays valid after the caller releases the
// run's lock. Every map, the countertop items, and the customer, boss, and
// pending-feedback records are copied.
func (s *RunState) Clone() RunState {
	out := *s

	out.Countertop = make([]*Item, len(s.Countertop))
	for i, item := range s.Countertop {
		out.Countertop[i] = item.Clone()
	}
	out.Selected = maps.Clone(s.Selected)
	out.AvailableIngredients = maps.Clone(s.AvailableIngredients)
	out.MerchantPrices = maps.Clone(s.MerchantPrices)
	out.PurchaseCounts = maps.Clone(s.PurchaseCounts)
	out.Consumables = maps.Clone(s.Consumables)
	out.Artifacts = slices.Clone(s.Artifacts)
	out.ArtifactPool = slices.Clone(s.ArtifactPool)

	if s.CurrentCustomer != nil {
		c := *s.CurrentCustomer
		c.Demand = maps.Clone(c.Demand)
		out.CurrentCustomer = &c
	}
	if s.CurrentBoss != nil {
		b := *s.CurrentBoss
		b.Orders = make([]BossCourse, len(s.CurrentBoss.Orders))
		for i, course := range s.CurrentBoss.Orders {
			course.Demand = maps.Clone(course.Demand)
			b.Orders[i] = course
		}
		out.CurrentBoss = &b
	}
	if s.Pending != nil {
		p := *s.Pending
		p.Items = make([]PaymentItem, len(s.Pending.Items))
		for i, item := range s.Pending.Items {
			item.Modifiers = slices.Clone(item.Modifiers)
			p.Items[i] = item
		}
		out.Pending = &p
	}
	return out
}

// RunSummary is the persisted outcome of a finished (or ongoing) run.
type RunSummary struct {
	RunID      string `json:"run_id"`
	DayReached int    `json:"day_reached"`
	BossBeaten bool   `json:"boss_beaten"`
	Victory    bool   `json:"victory"`
	Reason     string `json:"reason,omitempty"`
}

// Discovery records how a recipe result was first produced, for the
// player-facing recipe book.
type Discovery struct {
	Method string   `json:"method"` // combine, split, amplify, mutate
	Inputs []string `json:"inputs"`
	Result string   `json:"result"`
}
