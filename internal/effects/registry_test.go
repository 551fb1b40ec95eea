package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quistberg/ladle/internal/content"
	"github.com/quistberg/ladle/internal/domain"
	"github.com/quistberg/ladle/internal/hook"
	"github.com/quistberg/ladle/internal/kitchen"
)

func registryTables() *content.Tables {
	return &content.Tables{
		Atoms: []content.AtomDef{
			{Name: "Bread", Cost: 1, Starting: true},
			{Name: "Fish", Cost: 3.5},
		},
		Artifacts: []domain.Artifact{
			{ID: "coupon_book", Effect: domain.EffectSpec{Type: domain.EffectIngredientDiscount, Value: 0.8}},
			{ID: "punch_card", Effect: domain.EffectSpec{Type: domain.EffectBulkDiscount, Every: 5}},
			{ID: "tip_jar", Effect: domain.EffectSpec{Type: domain.EffectPaymentBonus, Value: 1.2}},
			{ID: "folding_shelf", Effect: domain.EffectSpec{Type: domain.EffectCounterExpansion, Value: 2}},
			{ID: "neon_sign", Effect: domain.EffectSpec{Type: domain.EffectExtraCustomers, Value: 1}},
			{ID: "plush_apron", Effect: domain.EffectSpec{Type: domain.EffectMaxSanityBonus, Value: 20}},
			{ID: "tasting_spoon", Effect: domain.EffectSpec{Type: domain.EffectTasteDiscount, Value: 0.5}},
			{ID: "compost_bin", Effect: domain.EffectSpec{Type: domain.EffectTrashRefund, Value: 0.5}},
			{ID: "midnight_recycler", Effect: domain.EffectSpec{Type: domain.EffectDayEndRecycle, Value: 0.5}},
			{ID: "pantry_gnome", Effect: domain.EffectSpec{Type: domain.EffectDayStartStock}},
			{ID: "guardian_ledger", Effect: domain.EffectSpec{Type: domain.EffectBankruptcyVeto}},
			{ID: "iron_lease", Effect: domain.EffectSpec{Type: domain.EffectRentFreeze}},
		},
	}
}

func registryState(owned ...string) *domain.RunState {
	return &domain.RunState{
		Money:                50,
		Sanity:               100,
		MaxSanity:            100,
		AvailableIngredients: map[string]float64{"Bread": 1},
		PurchaseCounts:       make(map[string]int),
		Artifacts:            owned,
	}
}

func TestIngredientDiscount(t *testing.T) {
	reg := BuildRegistry(registryTables(), fakeRand{})
	state := registryState("coupon_book")

	got := reg.RunAccumulating(hook.IngredientCost, state.Artifacts, &hook.Context{
		State: state, ItemName: "Bread", Default: 10,
	})
	assert.Equal(t, 8.0, got)
}

func TestBulkDiscount_EveryNth(t *testing.T) {
	reg := BuildRegistry(registryTables(), fakeRand{})
	state := registryState("punch_card")

	ctx := &hook.Context{State: state, ItemName: "Bread", Default: 10}

	state.PurchaseCounts["Bread"] = 3 // 4th purchase
	assert.Equal(t, 10.0, reg.RunAccumulating(hook.BulkDiscount, state.Artifacts, ctx))

	state.PurchaseCounts["Bread"] = 4 // 5th purchase
	assert.Equal(t, 0.0, reg.RunAccumulating(hook.BulkDiscount, state.Artifacts, ctx))
}

func TestAccumulatingValueHooks(t *testing.T) {
	reg := BuildRegistry(registryTables(), fakeRand{})

	tests := []struct {
		name    string
		hook    hook.Name
		owner   string
		in, out float64
	}{
		{"payment bonus", hook.PaymentMultiplier, "tip_jar", 20, 24},
		{"counter expansion", hook.CountertopCapacity, "folding_shelf", 8, 10},
		{"extra customers", hook.CustomersPerDay, "neon_sign", 3, 4},
		{"max sanity bonus", hook.MaxSanity, "plush_apron", 100, 120},
		{"taste discount", hook.TasteCost, "tasting_spoon", 10, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := registryState(tt.owner)
			got := reg.RunAccumulating(tt.hook, state.Artifacts, &hook.Context{State: state, Default: tt.in})
			assert.Equal(t, tt.out, got)
		})
	}
}

func TestTrashRefundHook(t *testing.T) {
	reg := BuildRegistry(registryTables(), fakeRand{})
	state := registryState("compost_bin")

	got := reg.RunAccumulating(hook.TrashRefund, state.Artifacts, &hook.Context{
		State: state, ItemName: "Bread", Default: 0,
	})
	assert.Equal(t, 0.5, got, "half the recorded cost")
}

func TestDayEndRecycle(t *testing.T) {
	reg := BuildRegistry(registryTables(), fakeRand{})
	state := registryState("midnight_recycler")
	state.Countertop = []*domain.Item{domain.NewItem("Bread"), domain.NewItem("Bread")}

	reg.RunSideEffecting(hook.DayEnd, state.Artifacts, &hook.Context{State: state})
	assert.Equal(t, 51.0, state.Money)
}

func TestDayStartStock(t *testing.T) {
	reg := BuildRegistry(registryTables(), fakeRand{n: 0})
	state := registryState("pantry_gnome")

	reg.RunSideEffecting(hook.DayStart, state.Artifacts, &hook.Context{State: state})

	require.Len(t, state.Countertop, 1)
	assert.Equal(t, "Bread", state.Countertop[0].Name, "only starting atoms are stocked")
	assert.True(t, state.Countertop[0].Temporary(), "gnome stock cannot unlock recipes")
}

func TestDayStartStock_RespectsCapacity(t *testing.T) {
	reg := BuildRegistry(registryTables(), fakeRand{n: 0})
	state := registryState("pantry_gnome")
	for i := 0; i < kitchen.DefaultCountertopCapacity; i++ {
		state.Countertop = append(state.Countertop, domain.NewItem("Bread"))
	}

	reg.RunSideEffecting(hook.DayStart, state.Artifacts, &hook.Context{State: state})
	assert.Len(t, state.Countertop, kitchen.DefaultCountertopCapacity)
}

func TestBankruptcyVeto_SingleUse(t *testing.T) {
	reg := BuildRegistry(registryTables(), fakeRand{})
	state := registryState("guardian_ledger")

	got := reg.RunAccumulating(hook.BankruptcyVeto, state.Artifacts, &hook.Context{State: state, Default: -10})
	assert.Equal(t, 0.0, got)
	assert.True(t, state.BankruptcyVetoUsed)

	got = reg.RunAccumulating(hook.BankruptcyVeto, state.Artifacts, &hook.Context{State: state, Default: -10})
	assert.Equal(t, -10.0, got, "the page tears out")
}

func TestRentFreeze_OnAcquire(t *testing.T) {
	reg := BuildRegistry(registryTables(), fakeRand{})
	state := registryState()

	reg.RunSideEffecting(hook.Acquire, []string{"iron_lease"}, &hook.Context{State: state})
	assert.True(t, state.RentFrozen)
}
