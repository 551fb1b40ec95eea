package content

import (
	"github.com/quistberg/ladle/internal/domain"
)

// AtomDef is a base, non-craftable ingredient as defined in atoms.json.
type AtomDef struct {
	Name          string  `json:"name"`
	Cost          float64 `json:"cost"`
	MerchantPrice float64 `json:"merchant_price,omitempty"` // 0 = not sold by the merchant
	Starting      bool    `json:"starting"`                 // unlocked at run start
}

// CombineEntry maps an unordered ingredient pair to a result.
type CombineEntry struct {
	Inputs [2]string `json:"inputs"`
	Result string    `json:"result"`
}

// SplitEntry maps a dish to its two parts.
type SplitEntry struct {
	Source string    `json:"source"`
	Parts  [2]string `json:"parts"`
}

// MapEntry is a one-to-one transformation (amplify, mutate).
type MapEntry struct {
	Source string `json:"source"`
	Result string `json:"result"`
}

// TasteBucket is one feedback text range for an attribute.
type TasteBucket struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Msg string  `json:"msg"`
}

// Tables holds every content table for a run. Loaded once before the run
// starts and immutable afterwards.
type Tables struct {
	Atoms       []AtomDef
	Combine     []CombineEntry
	Split       map[string][2]string
	Amplify     map[string]string
	Mutate      map[string]string
	Default     domain.Profile
	Foods       map[string]domain.Profile
	Customers   []domain.Customer
	Bosses      []domain.Boss
	Artifacts   []domain.Artifact
	Consumables []domain.Consumable
	Taste       map[domain.Attribute][]TasteBucket

	atomSet map[string]bool
}

// Fixed fallback/byproduct item names shared by the appliance engine.
const (
	FailureDish      = "Inedible Mush"
	HazardByproduct  = "Glowing Sludge"
	OverheatedPrefix = "Overheated "
)

// CombineResult looks up the combine table by both orderings of the pair.
func (t *Tables) CombineResult(a, b string) (string, bool) {
	for _, e := range t.Combine {
		if (e.Inputs[0] == a && e.Inputs[1] == b) || (e.Inputs[0] == b && e.Inputs[1] == a) {
			return e.Result, true
		}
	}
	return "", false
}

// SplitResult looks up the split table.
func (t *Tables) SplitResult(name string) ([2]string, bool) {
	parts, ok := t.Split[name]
	return parts, ok
}

// AmplifyResult looks up the amplify table.
func (t *Tables) AmplifyResult(name string) (string, bool) {
	r, ok := t.Amplify[name]
	return r, ok
}

// MutateResult looks up the deterministic mutate table.
func (t *Tables) MutateResult(name string) (string, bool) {
	r, ok := t.Mutate[name]
	return r, ok
}

// IsAtom reports whether the name is a base ingredient.
func (t *Tables) IsAtom(name string) bool {
	return t.atomSet[name]
}

// IsSimpleDish reports whether some combine pair producing the name consists
// of two atoms.
func (t *Tables) IsSimpleDish(name string) bool {
	for _, e := range t.Combine {
		if e.Result == name && t.atomSet[e.Inputs[0]] && t.atomSet[e.Inputs[1]] {
			return true
		}
	}
	return false
}

// Atom returns the atom definition for a name, if it is one.
func (t *Tables) Atom(name string) (AtomDef, bool) {
	for _, a := range t.Atoms {
		if a.Name == name {
			return a, true
		}
	}
	return AtomDef{}, false
}

// ArtifactByID resolves an artifact definition.
func (t *Tables) ArtifactByID(id string) (domain.Artifact, bool) {
	for _, a := range t.Artifacts {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Artifact{}, false
}

// ConsumableByID resolves a consumable definition.
func (t *Tables) ConsumableByID(id string) (domain.Consumable, bool) {
	for _, c := range t.Consumables {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Consumable{}, false
}

// BossForDay returns the boss configured for the given day, if any.
func (t *Tables) BossForDay(day int) (domain.Boss, bool) {
	for _, b := range t.Bosses {
		if b.Day == day {
			return b, true
		}
	}
	return domain.Boss{}, false
}

// FinalBossDay returns the highest configured boss day (0 when no bosses).
func (t *Tables) FinalBossDay() int {
	max := 0
	for _, b := range t.Bosses {
		if b.Day > max {
			max = b.Day
		}
	}
	return max
}
