// Package hook is the extension point decoupling the engine from individual
// artifact and consumable implementations. Effects register handlers against
// named hooks; the engine dispatches by owned ids in acquisition order and
// never names a specific effect.
package hook

import (
	"github.com/quistberg/ladle/internal/domain"
)

// Name identifies an engine extension point.
type Name string

const (
	IngredientCost     Name = "ingredient_cost"     // accumulating: effective withdrawal cost
	BulkDiscount       Name = "bulk_discount"       // accumulating: cost after purchase-count discount
	PaymentMultiplier  Name = "payment_multiplier"  // accumulating: serve payout multiplier
	CountertopCapacity Name = "countertop_capacity" // accumulating: capacity override
	CustomersPerDay    Name = "customers_per_day"   // accumulating: daily quota override
	MaxSanity          Name = "max_sanity"          // accumulating: sanity cap override
	TasteCost          Name = "taste_cost"          // accumulating: taste-test sanity cost
	TrashRefund        Name = "trash_refund"        // accumulating: per-item refund on trash
	BankruptcyVeto     Name = "bankruptcy_veto"     // accumulating: deficit after forgiveness
	DayStart           Name = "day_start"           // side-effecting: after a new day opens
	DayEnd             Name = "day_end"             // side-effecting: before countertop clears
	Acquire            Name = "acquire"             // side-effecting: immediately on artifact pickup
)

// Context carries the shared state and call-site parameters into handlers.
// Default seeds accumulating runs; Item/ItemName are set where an operation
// targets a specific countertop item or ingredient.
type Context struct {
	State    *domain.RunState
	Item     *domain.Item
	ItemName string
	Default  float64
}

// Handler transforms the running value of an accumulating hook. Side-effecting
// hooks ignore the inputs' value and return.
type Handler func(ctx *Context, running float64) float64

type key struct {
	name  Name
	owner string
}

// Registry maps (hook, owner id) pairs to handlers.
type Registry struct {
	handlers map[key]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[key]Handler)}
}

// Register associates a handler with a hook and an owner identity. Owning
// the artifact/consumable is necessary and sufficient for the handler to fire.
func (r *Registry) Register(name Name, ownerID string, h Handler) {
	r.handlers[key{name: name, owner: ownerID}] = h
}

// RunAccumulating threads a value through every registered handler owned by
// an id in owned, in the given (acquisition) order, starting from
// ctx.Default. With no matching handlers the default passes through
// unchanged, so the no-artifacts baseline behaves like hook-free code.
func (r *Registry) RunAccumulating(name Name, owned []string, ctx *Context) float64 {
	running := ctx.Default
	for _, id := range owned {
		if h, ok := r.handlers[key{name: name, owner: id}]; ok {
			running = h(ctx, running)
		}
	}
	return running
}

// RunSideEffecting invokes matching handlers for their side effects only.
func (r *Registry) RunSideEffecting(name Name, owned []string, ctx *Context) {
	for _, id := range owned {
		if h, ok := r.handlers[key{name: name, owner: id}]; ok {
			h(ctx, 0)
		}
	}
}
