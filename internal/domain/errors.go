package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	// Player action errors (non-fatal, state unchanged)
	ErrMsgWrongSelection    = "wrong selection count"
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgCounterFull       = "countertop is full"
	ErrMsgDayInactive       = "day is not active"
	ErrMsgFeedbackPending   = "feedback is pending"
	ErrMsgNoCustomer        = "no customer present"
	ErrMsgBossDisallowed    = "cannot do that to a boss"
	ErrMsgApplianceLocked   = "appliance is locked"
	ErrMsgNotUnlocked       = "ingredient is not unlocked"
	ErrMsgNoSuchRecipe      = "no recipe for that"
	ErrMsgInventoryFull     = "consumable inventory is full"
	ErrMsgNotOwned          = "consumable not owned"
	ErrMsgBindedUnselected  = "mandatory payment items must be selected"
	ErrMsgRunOver           = "run is over"

	// Resource exhaustion
	ErrMsgPoolEmpty = "artifact pool is empty"

	// Content errors
	ErrMsgUnknownFood       = "unknown food"
	ErrMsgUnknownConsumable = "unknown consumable"
	ErrMsgUnknownArtifact   = "unknown artifact"

	// Terminal condition reasons (states, not errors)
	ReasonSanityDepleted = "SANITY DEPLETED"
	ReasonBankrupt       = "BANKRUPT"
)

// Common domain errors. Wrap with fmt.Errorf("%w: %s", domain.ErrXxx, details)
// for additional context.
var (
	ErrWrongSelection    = errors.New(ErrMsgWrongSelection)
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrCounterFull       = errors.New(ErrMsgCounterFull)
	ErrDayInactive       = errors.New(ErrMsgDayInactive)
	ErrFeedbackPending   = errors.New(ErrMsgFeedbackPending)
	ErrNoCustomer        = errors.New(ErrMsgNoCustomer)
	ErrBossDisallowed    = errors.New(ErrMsgBossDisallowed)
	ErrApplianceLocked   = errors.New(ErrMsgApplianceLocked)
	ErrNotUnlocked       = errors.New(ErrMsgNotUnlocked)
	ErrNoSuchRecipe      = errors.New(ErrMsgNoSuchRecipe)
	ErrInventoryFull     = errors.New(ErrMsgInventoryFull)
	ErrNotOwned          = errors.New(ErrMsgNotOwned)
	ErrBindedUnselected  = errors.New(ErrMsgBindedUnselected)
	ErrRunOver           = errors.New(ErrMsgRunOver)
	ErrPoolEmpty         = errors.New(ErrMsgPoolEmpty)
	ErrUnknownFood       = errors.New(ErrMsgUnknownFood)
	ErrUnknownConsumable = errors.New(ErrMsgUnknownConsumable)
	ErrUnknownArtifact   = errors.New(ErrMsgUnknownArtifact)
)

// LogCategory tags presentation-sink log lines.
type LogCategory string

const (
	LogSystem     LogCategory = "system"
	LogError      LogCategory = "error"
	LogNarrative  LogCategory = "narrative"
	LogCustomer   LogCategory = "customer"
	LogArtifact   LogCategory = "artifact"
	LogConsumable LogCategory = "consumable"
)
