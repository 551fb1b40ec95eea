package hook

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quistberg/ladle/internal/domain"
)

func TestRunAccumulating_NoHandlersPassthrough(t *testing.T) {
	reg := NewRegistry()
	ctx := &Context{State: &domain.RunState{}, Default: 7.5}

	got := reg.RunAccumulating(IngredientCost, []string{"a", "b"}, ctx)
	assert.Equal(t, 7.5, got)
}

func TestRunAccumulating_OwnershipGates(t *testing.T) {
	reg := NewRegistry()
	reg.Register(IngredientCost, "discount", func(_ *Context, running float64) float64 {
		return running * 0.5
	})

	ctx := &Context{Default: 10}

	// Registered but not owned: handler must not fire.
	assert.Equal(t, 10.0, reg.RunAccumulating(IngredientCost, nil, ctx))
	assert.Equal(t, 10.0, reg.RunAccumulating(IngredientCost, []string{"other"}, ctx))

	assert.Equal(t, 5.0, reg.RunAccumulating(IngredientCost, []string{"discount"}, ctx))
}

func TestRunAccumulating_AcquisitionOrder(t *testing.T) {
	reg := NewRegistry()
	reg.Register(PaymentMultiplier, "plus", func(_ *Context, running float64) float64 {
		return running + 10
	})
	reg.Register(PaymentMultiplier, "times", func(_ *Context, running float64) float64 {
		return running * 2
	})

	ctx := &Context{Default: 5}

	// (5 + 10) * 2 vs 5 * 2 + 10: order is the owned slice order.
	assert.Equal(t, 30.0, reg.RunAccumulating(PaymentMultiplier, []string{"plus", "times"}, ctx))
	assert.Equal(t, 20.0, reg.RunAccumulating(PaymentMultiplier, []string{"times", "plus"}, ctx))
}

func TestRunSideEffecting(t *testing.T) {
	reg := NewRegistry()
	fired := []string{}
	reg.Register(DayStart, "a", func(_ *Context, _ float64) float64 {
		fired = append(fired, "a")
		return 0
	})
	reg.Register(DayStart, "b", func(_ *Context, _ float64) float64 {
		fired = append(fired, "b")
		return 0
	})

	reg.RunSideEffecting(DayStart, []string{"b", "a", "unowned"}, &Context{})
	assert.Equal(t, []string{"b", "a"}, fired)
}
