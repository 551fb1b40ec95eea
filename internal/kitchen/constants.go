package kitchen

import "github.com/quistberg/ladle/internal/domain"

// Default tuning for the appliance engine.
const (
	DefaultCountertopCapacity  = 8
	DefaultOverheatProbability = 0.3
)

// DefaultApplianceUnlockDays gates appliances by day number.
var DefaultApplianceUnlockDays = map[domain.Appliance]int{
	domain.AppliancePan:       1,
	domain.ApplianceBoard:     2,
	domain.ApplianceAmplifier: 4,
	domain.ApplianceMicrowave: 6,
}

// Transformation method names recorded in the recipe book.
const (
	MethodCombine = "combine"
	MethodSplit   = "split"
	MethodAmplify = "amplify"
	MethodMutate  = "mutate"
)

// Log message constants
const (
	LogMsgWithdrew    = "ingredient withdrawn"
	LogMsgCombined    = "items combined"
	LogMsgSplit       = "item split"
	LogMsgAmplified   = "item amplified"
	LogMsgMutated     = "item mutated"
	LogMsgTrashed     = "items trashed"
	LogMsgUnlocked    = "ingredient unlocked"
	LogMsgCostLowered = "ingredient cost lowered"
)
