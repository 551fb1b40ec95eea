package effects

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quistberg/ladle/internal/content"
	"github.com/quistberg/ladle/internal/domain"
	"github.com/quistberg/ladle/internal/hook"
)

type fakeRand struct {
	f float64
	n int
}

func (r fakeRand) Float64() float64            { return r.f }
func (r fakeRand) Intn(int) int                { return r.n }
func (r fakeRand) Shuffle(int, func(i, j int)) {}

func testTables() *content.Tables {
	return &content.Tables{
		Atoms: []content.AtomDef{
			{Name: "Bread", Cost: 1, Starting: true},
			{Name: "Fish", Cost: 3.5, MerchantPrice: 12},
		},
		Default: domain.Profile{},
		Foods: map[string]domain.Profile{
			"Chili Bomb": {domain.AttrSpicy: 5, domain.AttrFilling: 2},
		},
		Artifacts: []domain.Artifact{
			{ID: "iron_lease", Name: "Iron Lease", Effect: domain.EffectSpec{Type: domain.EffectRentFreeze}},
			{ID: "tip_jar", Name: "Tip Jar", Effect: domain.EffectSpec{Type: domain.EffectPaymentBonus, Value: 1.2}},
		},
		Consumables: []domain.Consumable{
			{ID: "chili_oil", Effect: domain.EffectSpec{Type: domain.EffectAttributeBoost, Attribute: domain.AttrSpicy, Value: 3}},
			{ID: "chamomile_tea", Effect: domain.EffectSpec{Type: domain.EffectSanityRestore, Value: 15}},
			{ID: "lucky_coin", Effect: domain.EffectSpec{Type: domain.EffectLuckyCoin, Value: 1}},
			{ID: "emergency_takeout", Effect: domain.EffectSpec{Type: domain.EffectEmergencyServe, Value: 12}},
			{ID: "cloning_fork", Effect: domain.EffectSpec{Type: domain.EffectDuplicateItem}},
			{ID: "mystery_seasoning", Effect: domain.EffectSpec{Type: domain.EffectRandomUnlock}},
			{ID: "golden_plate", Effect: domain.EffectSpec{Type: domain.EffectForceRating, Rating: "PERFECT"}},
			{ID: "void_essence", Effect: domain.EffectSpec{Type: domain.EffectCursedBoost, Value: 2}},
			{ID: "artifact_voucher", Effect: domain.EffectSpec{Type: domain.EffectGrantArtifact, Value: 25}},
			{ID: "doorbell", Effect: domain.EffectSpec{Type: domain.EffectSkipCustomer}},
			{ID: "coupon_ticket", Effect: domain.EffectSpec{Type: domain.EffectFreeWithdrawals, Value: 3}},
		},
	}
}

func testState() *domain.RunState {
	return &domain.RunState{
		Money:                50,
		Sanity:               60,
		MaxSanity:            100,
		Day:                  1,
		DayActive:            true,
		CustomersPerDay:      3,
		Selected:             make(map[int]bool),
		AvailableIngredients: map[string]float64{"Bread": 1},
		MerchantPrices:       map[string]float64{"Fish": 12},
		PurchaseCounts:       make(map[string]int),
		Consumables:          make(map[string]int),
		ArtifactPool:         []string{"iron_lease", "tip_jar"},
	}
}

func newTestService(rng fakeRand) Service {
	tables := testTables()
	return NewService(tables, content.NewResolver(tables), hook.NewRegistry(), rng)
}

func useOne(t *testing.T, svc Service, state *domain.RunState, id string) error {
	t.Helper()
	state.Consumables[id] = 1
	return svc.UseConsumable(context.Background(), state, id)
}

func TestUseConsumable_Guards(t *testing.T) {
	svc := newTestService(fakeRand{})
	ctx := context.Background()

	t.Run("not owned", func(t *testing.T) {
		state := testState()
		assert.ErrorIs(t, svc.UseConsumable(ctx, state, "chili_oil"), domain.ErrNotOwned)
	})

	t.Run("day inactive", func(t *testing.T) {
		state := testState()
		state.DayActive = false
		state.Consumables["chili_oil"] = 1
		assert.ErrorIs(t, svc.UseConsumable(ctx, state, "chili_oil"), domain.ErrDayInactive)
	})

	t.Run("unknown id", func(t *testing.T) {
		state := testState()
		state.Consumables["mystery"] = 1
		assert.ErrorIs(t, svc.UseConsumable(ctx, state, "mystery"), domain.ErrUnknownConsumable)
	})
}

func TestUseConsumable_PendingFeedbackBlocks(t *testing.T) {
	svc := newTestService(fakeRand{})
	ctx := context.Background()

	// A seated patron with an uncollected feedback: dismissing them here
	// would let one patron fill two quota slots once the feedback lands.
	for _, id := range []string{"doorbell", "emergency_takeout", "chamomile_tea"} {
		t.Run(id, func(t *testing.T) {
			state := testState()
			state.CurrentCustomer = &domain.Customer{Name: "Luce"}
			state.Pending = &domain.PendingFeedback{Kind: domain.FeedbackRegular}
			state.Consumables[id] = 1

			err := svc.UseConsumable(ctx, state, id)
			assert.ErrorIs(t, err, domain.ErrFeedbackPending)
			assert.Equal(t, 1, state.Consumables[id], "failed use never charges")
			assert.NotNil(t, state.CurrentCustomer, "patron stays seated")
			assert.Zero(t, state.CustomersServed)
		})
	}
}

func TestAttributeBoost(t *testing.T) {
	svc := newTestService(fakeRand{})
	state := testState()
	state.Countertop = []*domain.Item{domain.NewItem("Bread")}
	state.Selected = map[int]bool{0: true}

	require.NoError(t, useOne(t, svc, state, "chili_oil"))

	assert.Equal(t, 3.0, state.Countertop[0].Modifiers[domain.AttrSpicy])
	assert.Empty(t, state.Consumables, "spent")
	assert.Empty(t, state.Selected)
}

func TestAttributeBoost_FailureKeepsConsumable(t *testing.T) {
	svc := newTestService(fakeRand{})
	state := testState()

	err := useOne(t, svc, state, "chili_oil")
	assert.ErrorIs(t, err, domain.ErrWrongSelection)
	assert.Equal(t, 1, state.Consumables["chili_oil"], "failed use never charges")
}

func TestSanityRestore_Clamped(t *testing.T) {
	svc := newTestService(fakeRand{})
	state := testState()
	state.Sanity = 95

	require.NoError(t, useOne(t, svc, state, "chamomile_tea"))
	assert.Equal(t, 100.0, state.Sanity)
}

func TestLuckyCoin(t *testing.T) {
	svc := newTestService(fakeRand{})
	state := testState()

	require.NoError(t, useOne(t, svc, state, "lucky_coin"))
	assert.Equal(t, 1, state.LuckyCoinCharges)
}

func TestEmergencyServe(t *testing.T) {
	svc := newTestService(fakeRand{})

	t.Run("success", func(t *testing.T) {
		state := testState()
		state.CurrentCustomer = &domain.Customer{Name: "Hungry Student"}

		require.NoError(t, useOne(t, svc, state, "emergency_takeout"))

		assert.Equal(t, 62.0, state.Money)
		assert.Nil(t, state.CurrentCustomer)
		assert.Equal(t, 1, state.CustomersServed, "counts toward the quota")
	})

	t.Run("boss refuses", func(t *testing.T) {
		state := testState()
		state.CurrentBoss = &domain.Boss{Name: "The Critic"}
		err := useOne(t, svc, state, "emergency_takeout")
		assert.ErrorIs(t, err, domain.ErrBossDisallowed)
		assert.Equal(t, 1, state.Consumables["emergency_takeout"])
	})

	t.Run("no customer", func(t *testing.T) {
		state := testState()
		err := useOne(t, svc, state, "emergency_takeout")
		assert.ErrorIs(t, err, domain.ErrNoCustomer)
	})
}

func TestDuplicateItem(t *testing.T) {
	svc := newTestService(fakeRand{})
	state := testState()
	item := domain.NewItem("Chili Bomb")
	item.AddModifier(domain.AttrSpicy, 1)
	state.Countertop = []*domain.Item{item}
	state.Selected = map[int]bool{0: true}

	require.NoError(t, useOne(t, svc, state, "cloning_fork"))

	require.Len(t, state.Countertop, 2)
	assert.Equal(t, "Chili Bomb", state.Countertop[1].Name)
	assert.Equal(t, 1.0, state.Countertop[1].Modifiers[domain.AttrSpicy])
	assert.NotSame(t, state.Countertop[0], state.Countertop[1])
}

func TestDuplicateItem_CounterFull(t *testing.T) {
	svc := newTestService(fakeRand{})
	state := testState()
	for i := 0; i < 8; i++ {
		state.Countertop = append(state.Countertop, domain.NewItem("Bread"))
	}
	state.Selected = map[int]bool{0: true}

	err := useOne(t, svc, state, "cloning_fork")
	assert.ErrorIs(t, err, domain.ErrCounterFull)
	assert.Equal(t, 1, state.Consumables["cloning_fork"])
}

func TestRandomUnlock(t *testing.T) {
	svc := newTestService(fakeRand{})
	state := testState()

	require.NoError(t, useOne(t, svc, state, "mystery_seasoning"))

	assert.Equal(t, 3.5, state.AvailableIngredients["Fish"], "unlocks at base cost")
	_, listed := state.MerchantPrices["Fish"]
	assert.False(t, listed, "merchant listing drops with the unlock")
}

func TestRandomUnlock_EverythingUnlocked(t *testing.T) {
	svc := newTestService(fakeRand{})
	state := testState()
	state.AvailableIngredients["Fish"] = 3.5

	err := useOne(t, svc, state, "mystery_seasoning")
	assert.ErrorIs(t, err, domain.ErrPoolEmpty)
	assert.Equal(t, 1, state.Consumables["mystery_seasoning"])
}

func TestForceRating(t *testing.T) {
	svc := newTestService(fakeRand{})
	state := testState()

	require.NoError(t, useOne(t, svc, state, "golden_plate"))
	assert.Equal(t, "PERFECT", state.ForcedRating)
}

func TestCursedBoost(t *testing.T) {
	svc := newTestService(fakeRand{})
	state := testState()
	state.Countertop = []*domain.Item{domain.NewItem("Chili Bomb")}
	state.Selected = map[int]bool{0: true}

	require.NoError(t, useOne(t, svc, state, "void_essence"))

	item := state.Countertop[0]
	assert.Equal(t, 2.0, item.Modifiers[domain.AttrSpicy], "every present attribute gets the boost")
	assert.Equal(t, 2.0, item.Modifiers[domain.AttrFilling])
	assert.Equal(t, float64(CursedVoidBoost), item.Modifiers[domain.AttrVoidLevel])
}

func TestGrantArtifact(t *testing.T) {
	t.Run("from the pool", func(t *testing.T) {
		svc := newTestService(fakeRand{n: 0})
		state := testState()

		require.NoError(t, useOne(t, svc, state, "artifact_voucher"))

		assert.Equal(t, []string{"iron_lease"}, state.Artifacts)
		assert.Equal(t, []string{"tip_jar"}, state.ArtifactPool)
	})

	t.Run("empty pool refunds cash", func(t *testing.T) {
		svc := newTestService(fakeRand{})
		state := testState()
		state.ArtifactPool = nil

		require.NoError(t, useOne(t, svc, state, "artifact_voucher"))

		assert.Equal(t, 75.0, state.Money)
		assert.Empty(t, state.Artifacts)
	})
}

func TestSkipCustomer(t *testing.T) {
	svc := newTestService(fakeRand{})
	state := testState()
	state.CurrentCustomer = &domain.Customer{Name: "Hungry Student"}

	require.NoError(t, useOne(t, svc, state, "doorbell"))

	assert.Nil(t, state.CurrentCustomer)
	assert.Equal(t, 1, state.CustomersServed)
	assert.Equal(t, 50.0, state.Money, "skipping pays nothing")
}

func TestFreeWithdrawals(t *testing.T) {
	svc := newTestService(fakeRand{})
	state := testState()

	require.NoError(t, useOne(t, svc, state, "coupon_ticket"))
	assert.Equal(t, 3, state.FreeWithdrawals)
}

func TestGrantConsumable(t *testing.T) {
	svc := newTestService(fakeRand{})
	state := testState()

	require.NoError(t, svc.GrantConsumable(context.Background(), state, "lucky_coin"))
	assert.Equal(t, 1, state.Consumables["lucky_coin"])

	t.Run("inventory full", func(t *testing.T) {
		state.Consumables["chamomile_tea"] = domain.DefaultConsumableCapacity
		err := svc.GrantConsumable(context.Background(), state, "lucky_coin")
		assert.ErrorIs(t, err, domain.ErrInventoryFull)
	})

	t.Run("unknown id", func(t *testing.T) {
		err := svc.GrantConsumable(context.Background(), state, "nope")
		assert.ErrorIs(t, err, domain.ErrUnknownConsumable)
	})
}

func TestAcquireArtifact(t *testing.T) {
	svc := newTestService(fakeRand{})
	state := testState()

	require.NoError(t, svc.AcquireArtifact(context.Background(), state, "tip_jar"))

	assert.Equal(t, []string{"tip_jar"}, state.Artifacts)
	assert.Equal(t, []string{"iron_lease"}, state.ArtifactPool)

	err := svc.AcquireArtifact(context.Background(), state, "tip_jar")
	assert.Error(t, err, "double acquisition refused")
}

func TestAcquireArtifact_FiresAcquireHook(t *testing.T) {
	tables := testTables()
	hooks := hook.NewRegistry()
	hooks.Register(hook.Acquire, "iron_lease", func(ctx *hook.Context, _ float64) float64 {
		ctx.State.RentFrozen = true
		return 0
	})
	svc := NewService(tables, content.NewResolver(tables), hooks, fakeRand{})
	state := testState()

	require.NoError(t, svc.AcquireArtifact(context.Background(), state, "iron_lease"))
	assert.True(t, state.RentFrozen)
}
