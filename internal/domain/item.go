package domain

// Item is a food instance on the countertop or in transit between
// appliances. Items are always proper values with a name and a modifier map;
// a bare name string is normalized into an Item at the boundary.
type Item struct {
	Name      string                `json:"name"`
	Modifiers map[Attribute]float64 `json:"modifiers,omitempty"`
}

// NewItem constructs an item with an empty modifier set.
func NewItem(name string) *Item {
	return &Item{Name: name, Modifiers: make(map[Attribute]float64)}
}

// Clone returns an independent copy of the item.
func (i *Item) Clone() *Item {
	c := NewItem(i.Name)
	for k, v := range i.Modifiers {
		c.Modifiers[k] = v
	}
	return c
}

// AddModifier layers a runtime delta on the item. Zero deltas are dropped so
// the modifier map only ever holds intentional changes.
func (i *Item) AddModifier(attr Attribute, delta float64) {
	if i.Modifiers == nil {
		i.Modifiers = make(map[Attribute]float64)
	}
	next := i.Modifiers[attr] + delta
	if next == 0 {
		delete(i.Modifiers, attr)
		return
	}
	i.Modifiers[attr] = next
}

// MergeModifiers folds another item's modifiers into this one additively.
// The temporary tag propagates: a dish made from a temporary input is itself
// temporary.
func (i *Item) MergeModifiers(other *Item) {
	for k, v := range other.Modifiers {
		if k == AttrTemporary {
			i.MarkTemporary()
			continue
		}
		i.AddModifier(k, v)
	}
}

// MarkTemporary tags the item so transformations using it cannot unlock
// permanent recipes.
func (i *Item) MarkTemporary() {
	if i.Modifiers == nil {
		i.Modifiers = make(map[Attribute]float64)
	}
	i.Modifiers[AttrTemporary] = 1
}

// Temporary reports whether the item carries the temporary tag.
func (i *Item) Temporary() bool {
	return i.Modifiers[AttrTemporary] != 0
}
