// Package match computes how well a dish fits a customer's demand and what
// it pays. All functions are pure; tuning lives in Config.
package match

import (
	"math"

	"github.com/quistberg/ladle/internal/domain"
	"github.com/quistberg/ladle/internal/utils"
)

// Tier is a discrete satisfaction bucket.
type Tier string

const (
	TierPerfect   Tier = "PERFECT"
	TierExcellent Tier = "EXCELLENT"
	TierGood      Tier = "GOOD"
	TierOkay      Tier = "OKAY"
	TierPoor      Tier = "POOR"
	TierTerrible  Tier = "TERRIBLE"
)

// Rating is the presentation triple for a satisfaction tier.
type Rating struct {
	Tier  Tier   `json:"tier"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

// Threshold maps an inclusive upper distance bound to a rating.
type Threshold struct {
	Max    float64
	Rating Rating
}

// Config carries the run-wide matching constants. Nothing here is hardcoded
// at call sites.
type Config struct {
	PaymentBase     float64
	PaymentDecay    float64 // decay base, > 1
	PaymentExponent float64
	Thresholds      []Threshold // ascending Max; beyond the last is TERRIBLE
	Terrible        Rating
}

// DefaultConfig returns the shipped tuning.
func DefaultConfig() Config {
	return Config{
		PaymentBase:     20,
		PaymentDecay:    1.5,
		PaymentExponent: 1.2,
		Thresholds: []Threshold{
			{Max: 0.5, Rating: Rating{Tier: TierPerfect, Emoji: "🤩", Color: "#ffd700"}},
			{Max: 2.0, Rating: Rating{Tier: TierExcellent, Emoji: "😋", Color: "#7cfc00"}},
			{Max: 4.0, Rating: Rating{Tier: TierGood, Emoji: "🙂", Color: "#9acd32"}},
			{Max: 6.5, Rating: Rating{Tier: TierOkay, Emoji: "😐", Color: "#d3d3d3"}},
			{Max: 9.0, Rating: Rating{Tier: TierPoor, Emoji: "🤢", Color: "#ff8c00"}},
		},
		Terrible: Rating{Tier: TierTerrible, Emoji: "🤮", Color: "#ff0000"},
	}
}

// distanceWhitelist is precomputed for O(1) membership checks.
var distanceWhitelist = func() map[domain.Attribute]bool {
	m := make(map[domain.Attribute]bool, len(domain.DistanceAttributes))
	for _, a := range domain.DistanceAttributes {
		m[a] = true
	}
	return m
}()

// Distance returns the Euclidean distance between a resolved profile and a
// demand vector, restricted to whitelisted attributes the demand actually
// names. A food attribute missing from the profile counts as 0; attributes
// the demand omits are skipped entirely.
func Distance(profile domain.Profile, demand domain.DemandVector) float64 {
	sum := 0.0
	for attr, want := range demand {
		if !distanceWhitelist[attr] {
			continue
		}
		have := profile[attr]
		d := have - want
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Payment converts a distance into a payout: base * decay^(-d^exponent),
// clamped to >= 0 and rounded to 2 decimal places. Distance 0 pays base.
func (c Config) Payment(distance float64) float64 {
	pay := c.PaymentBase * math.Pow(c.PaymentDecay, -math.Pow(distance, c.PaymentExponent))
	if pay < 0 {
		pay = 0
	}
	return utils.Round2(pay)
}

// SatisfactionRating buckets a distance into a tier. The first threshold the
// distance does not exceed wins; boundaries are inclusive.
func (c Config) SatisfactionRating(distance float64) Rating {
	for _, t := range c.Thresholds {
		if distance <= t.Max {
			return t.Rating
		}
	}
	return c.Terrible
}

// RatingByTier resolves a tier name back to its Rating, used by the
// forced-rating consumable. Unknown names fall back to TERRIBLE.
func (c Config) RatingByTier(tier Tier) Rating {
	for _, t := range c.Thresholds {
		if t.Rating.Tier == tier {
			return t.Rating
		}
	}
	return c.Terrible
}
