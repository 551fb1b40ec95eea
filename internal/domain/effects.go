package domain

// EffectType tags a data-described artifact or consumable effect. The engine
// dispatches on the tag through the hook registry and never names a specific
// artifact inline.
type EffectType string

const (
	// Artifact effect types (persistent, hook-registered)
	EffectIngredientDiscount EffectType = "ingredient_discount"
	EffectBulkDiscount       EffectType = "bulk_discount"
	EffectPaymentBonus       EffectType = "payment_bonus"
	EffectCounterExpansion   EffectType = "counter_expansion"
	EffectExtraCustomers     EffectType = "extra_customers"
	EffectMaxSanityBonus     EffectType = "max_sanity_bonus"
	EffectTasteDiscount      EffectType = "taste_discount"
	EffectTrashRefund        EffectType = "trash_refund"
	EffectDayEndRecycle      EffectType = "day_end_recycle"
	EffectDayStartStock      EffectType = "day_start_stock"
	EffectBankruptcyVeto     EffectType = "bankruptcy_veto"
	EffectRentFreeze         EffectType = "rent_freeze"

	// Consumable effect types (one-shot, use-dispatched)
	EffectAttributeBoost  EffectType = "attribute_boost"
	EffectSanityRestore   EffectType = "sanity_restore"
	EffectLuckyCoin       EffectType = "lucky_coin"
	EffectEmergencyServe  EffectType = "emergency_serve"
	EffectDuplicateItem   EffectType = "duplicate_item"
	EffectRandomUnlock    EffectType = "random_unlock"
	EffectForceRating     EffectType = "force_rating"
	EffectCursedBoost     EffectType = "cursed_boost"
	EffectGrantArtifact   EffectType = "grant_artifact"
	EffectSkipCustomer    EffectType = "skip_customer"
	EffectFreeWithdrawals EffectType = "free_withdrawals"
)

// EffectSpec is the data half of an effect definition. Which fields are
// meaningful depends on Type.
type EffectSpec struct {
	Type      EffectType `json:"type"`
	Value     float64    `json:"value,omitempty"`
	Attribute Attribute  `json:"attribute,omitempty"`
	Every     int        `json:"every,omitempty"`  // bulk discount period
	Rating    string     `json:"rating,omitempty"` // forced rating tier
}

// Artifact is a permanent run modifier drawn from the pool.
type Artifact struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Effect      EffectSpec `json:"effect"`
}

// Rarity buckets for consumables.
type Rarity string

const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
)

// Consumable is a single-use item held in the consumable inventory.
type Consumable struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Rarity      Rarity     `json:"rarity"`
	Effect      EffectSpec `json:"effect"`
}
