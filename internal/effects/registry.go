// Package effects binds the data-described artifact and consumable
// definitions to the engine's hook registry. The engine never names a
// specific artifact; everything dispatches on the effect type tag.
package effects

import (
	"github.com/quistberg/ladle/internal/content"
	"github.com/quistberg/ladle/internal/domain"
	"github.com/quistberg/ladle/internal/hook"
	"github.com/quistberg/ladle/internal/kitchen"
	"github.com/quistberg/ladle/internal/utils"
)

// CursedVoidBoost is the fixed void-level delta the cursed boost adds on top
// of its per-attribute boost.
const CursedVoidBoost = 5

// BuildRegistry registers a hook handler for every artifact in the tables.
// Handlers close over their own EffectSpec; ownership gating happens in the
// registry dispatch, so registering everything up front is safe.
func BuildRegistry(tables *content.Tables, rng utils.Rand) *hook.Registry {
	reg := hook.NewRegistry()
	for _, artifact := range tables.Artifacts {
		registerArtifact(reg, tables, rng, artifact)
	}
	return reg
}

func registerArtifact(reg *hook.Registry, tables *content.Tables, rng utils.Rand, a domain.Artifact) {
	spec := a.Effect
	switch spec.Type {
	case domain.EffectIngredientDiscount:
		reg.Register(hook.IngredientCost, a.ID, func(_ *hook.Context, running float64) float64 {
			return running * spec.Value
		})

	case domain.EffectBulkDiscount:
		reg.Register(hook.BulkDiscount, a.ID, func(ctx *hook.Context, running float64) float64 {
			if spec.Every > 0 && (ctx.State.PurchaseCounts[ctx.ItemName]+1)%spec.Every == 0 {
				return 0
			}
			return running
		})

	case domain.EffectPaymentBonus:
		reg.Register(hook.PaymentMultiplier, a.ID, func(_ *hook.Context, running float64) float64 {
			return running * spec.Value
		})

	case domain.EffectCounterExpansion:
		reg.Register(hook.CountertopCapacity, a.ID, func(_ *hook.Context, running float64) float64 {
			return running + spec.Value
		})

	case domain.EffectExtraCustomers:
		reg.Register(hook.CustomersPerDay, a.ID, func(_ *hook.Context, running float64) float64 {
			return running + spec.Value
		})

	case domain.EffectMaxSanityBonus:
		reg.Register(hook.MaxSanity, a.ID, func(_ *hook.Context, running float64) float64 {
			return running + spec.Value
		})

	case domain.EffectTasteDiscount:
		reg.Register(hook.TasteCost, a.ID, func(_ *hook.Context, running float64) float64 {
			return running * spec.Value
		})

	case domain.EffectTrashRefund:
		reg.Register(hook.TrashRefund, a.ID, func(ctx *hook.Context, running float64) float64 {
			return running + ctx.State.AvailableIngredients[ctx.ItemName]*spec.Value
		})

	case domain.EffectDayEndRecycle:
		reg.Register(hook.DayEnd, a.ID, func(ctx *hook.Context, _ float64) float64 {
			refund := 0.0
			for _, item := range ctx.State.Countertop {
				refund += ctx.State.AvailableIngredients[item.Name] * spec.Value
			}
			ctx.State.Money = utils.Round2(ctx.State.Money + refund)
			return 0
		})

	case domain.EffectDayStartStock:
		reg.Register(hook.DayStart, a.ID, func(ctx *hook.Context, _ float64) float64 {
			capacity := reg.RunAccumulating(hook.CountertopCapacity, ctx.State.Artifacts, &hook.Context{
				State:   ctx.State,
				Default: kitchen.DefaultCountertopCapacity,
			})
			if len(ctx.State.Countertop) >= int(capacity) {
				return 0
			}
			starting := startingAtoms(tables)
			if len(starting) == 0 {
				return 0
			}
			item := domain.NewItem(starting[rng.Intn(len(starting))])
			item.MarkTemporary()
			ctx.State.Countertop = append(ctx.State.Countertop, item)
			return 0
		})

	case domain.EffectBankruptcyVeto:
		reg.Register(hook.BankruptcyVeto, a.ID, func(ctx *hook.Context, running float64) float64 {
			if running < 0 && !ctx.State.BankruptcyVetoUsed {
				ctx.State.BankruptcyVetoUsed = true
				return 0
			}
			return running
		})

	case domain.EffectRentFreeze:
		reg.Register(hook.Acquire, a.ID, func(ctx *hook.Context, _ float64) float64 {
			ctx.State.RentFrozen = true
			return 0
		})
	}
}

func startingAtoms(tables *content.Tables) []string {
	out := make([]string, 0, len(tables.Atoms))
	for _, atom := range tables.Atoms {
		if atom.Starting {
			out = append(out, atom.Name)
		}
	}
	return out
}
