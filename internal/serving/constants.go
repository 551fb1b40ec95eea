package serving

import "github.com/quistberg/ladle/internal/match"

// Default tuning for the serving flow.
const (
	DefaultPoorSanityCost     = 5
	DefaultTerribleSanityCost = 10
	DefaultBossFailPenalty    = 15
	DefaultTasteSanityCost    = 10
)

// Payment item labels.
const (
	LabelPayment       = "Payment"
	LabelSanityHit     = "Sanity hit"
	LabelCoursePay     = "Course payment"
	LabelCoursePenalty = "Course penalty"
	LabelVictoryBonus  = "Victory bonus"
)

// Payment modifier labels shown on the feedback breakdown.
const (
	ModifierArtifactBonus = "artifact bonus"
	ModifierLuckyCoin     = "lucky coin"
	ModifierGoldenPlate   = "golden plate"
)

// commentByTier is the one-liner a customer says at each satisfaction tier.
var commentByTier = map[match.Tier]string{
	match.TierPerfect:   "This is exactly what I dreamed of.",
	match.TierExcellent: "Wonderful. I'll be back.",
	match.TierGood:      "Pretty good, actually.",
	match.TierOkay:      "It's... food.",
	match.TierPoor:      "I've had worse. Barely.",
	match.TierTerrible:  "What IS this?",
}

// Log message constants
const (
	LogMsgCustomerSpawned  = "customer spawned"
	LogMsgBossSpawned      = "boss spawned"
	LogMsgDishServed       = "dish served"
	LogMsgBossCourse       = "boss course served"
	LogMsgPaymentCollected = "payment collected"
	LogMsgTasted           = "item tasted"
)
