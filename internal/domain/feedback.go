package domain

// PaymentKind classifies a feedback line item.
type PaymentKind string

const (
	PaymentMoney      PaymentKind = "money"
	PaymentSanityCost PaymentKind = "sanity_cost"
	PaymentSanityGain PaymentKind = "sanity_gain"
	PaymentConsumable PaymentKind = "consumable"
)

// FeedbackKind identifies which serve flow produced a pending feedback.
type FeedbackKind string

const (
	FeedbackRegular    FeedbackKind = "regular"
	FeedbackBossCourse FeedbackKind = "boss_course"
	FeedbackBossBonus  FeedbackKind = "boss_bonus"
)

// PaymentItem is one line of an itemized payment breakdown. Binded items are
// mandatory (typically costs) and must be selected before collection.
type PaymentItem struct {
	ID        string      `json:"id"`
	Label     string      `json:"label"`
	Kind      PaymentKind `json:"kind"`
	Value     float64     `json:"value"`
	GrantID   string      `json:"grant_id,omitempty"` // consumable id for PaymentConsumable
	Binded    bool        `json:"binded"`
	Selected  bool        `json:"selected"`
	Modifiers []string    `json:"modifiers,omitempty"` // applied bonus labels
}

// PendingFeedback holds a served dish's computed outcome until the player
// collects it. While active, no dish may be served and no customer spawns.
type PendingFeedback struct {
	Kind     FeedbackKind  `json:"kind"`
	Rating   string        `json:"rating"`
	Emoji    string        `json:"emoji"`
	Color    string        `json:"color"`
	Comment  string        `json:"comment"`
	Distance float64       `json:"distance"`
	Passed   bool          `json:"passed"` // boss course success
	Items    []PaymentItem `json:"items"`
}

// Item returns the payment item with the given id, or nil.
func (f *PendingFeedback) Item(id string) *PaymentItem {
	for i := range f.Items {
		if f.Items[i].ID == id {
			return &f.Items[i]
		}
	}
	return nil
}

// BindedUnselected reports whether any mandatory line item is still
// unselected, which blocks collection.
func (f *PendingFeedback) BindedUnselected() bool {
	for i := range f.Items {
		if f.Items[i].Binded && !f.Items[i].Selected {
			return true
		}
	}
	return false
}
