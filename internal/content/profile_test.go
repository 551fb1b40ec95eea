package content

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quistberg/ladle/internal/domain"
)

func resolverFixture() *Resolver {
	return NewResolver(&Tables{
		Atoms:   []AtomDef{{Name: "Bread", Cost: 1, Starting: true}},
		Default: domain.Profile{domain.AttrFilling: 1, domain.AttrMoisture: 1},
		Foods: map[string]domain.Profile{
			"Bread":       {domain.AttrFilling: 3, domain.AttrContainsGluten: 1},
			"Chili Bomb":  {domain.AttrSpicy: 5},
			"Sad Pudding": {domain.AttrSanity: -2},
		},
		Taste: map[domain.Attribute][]TasteBucket{
			domain.AttrSpicy: {
				{Min: 1, Max: 3, Msg: "A warm tingle."},
				{Min: 3.5, Max: 99, Msg: "Your ears are ringing."},
			},
		},
		atomSet: map[string]bool{"Bread": true},
	})
}

func TestBase_OverrideOnDefault(t *testing.T) {
	r := resolverFixture()
	p := r.Base("Bread")

	assert.Equal(t, 3.0, p[domain.AttrFilling], "override wins")
	assert.Equal(t, 1.0, p[domain.AttrMoisture], "default fills the gaps")
	assert.Equal(t, 1.0, p[domain.AttrContainsGluten])
}

func TestBase_UnknownFoodFallback(t *testing.T) {
	r := resolverFixture()
	p := r.Base("Mystery Goop")

	assert.Equal(t, float64(FallbackSanityDrain), p[domain.AttrSanity])
	assert.Equal(t, 1.0, p[domain.AttrFilling], "fallback still carries the default table")
}

func TestResolve_LayersModifiers(t *testing.T) {
	r := resolverFixture()
	item := domain.NewItem("Chili Bomb")
	item.AddModifier(domain.AttrSpicy, 2)
	item.MarkTemporary()

	p := r.Resolve(item)
	assert.Equal(t, 7.0, p[domain.AttrSpicy])
	_, present := p[domain.AttrTemporary]
	assert.False(t, present, "temporary tag is bookkeeping, not an attribute")
}

func TestResolve_DoesNotMutateCachedBase(t *testing.T) {
	r := resolverFixture()
	item := domain.NewItem("Chili Bomb")
	item.AddModifier(domain.AttrSpicy, 2)

	r.Resolve(item)
	assert.Equal(t, 5.0, r.Base("Chili Bomb")[domain.AttrSpicy])
}

func TestKnown(t *testing.T) {
	r := resolverFixture()
	assert.True(t, r.Known("Bread"))
	assert.True(t, r.Known("Chili Bomb"))
	assert.False(t, r.Known("Mystery Goop"))
}

func TestTasteFeedback_Buckets(t *testing.T) {
	r := resolverFixture()

	mild := r.TasteFeedback(domain.Profile{domain.AttrSpicy: 2})
	assert.Equal(t, "A warm tingle.", mild[domain.AttrSpicy])

	fierce := r.TasteFeedback(domain.Profile{domain.AttrSpicy: 6})
	assert.Equal(t, "Your ears are ringing.", fierce[domain.AttrSpicy])

	bland := r.TasteFeedback(domain.Profile{domain.AttrSpicy: 0})
	_, present := bland[domain.AttrSpicy]
	assert.False(t, present, "values outside every bucket produce no line")
}

func TestDisplayName(t *testing.T) {
	r := resolverFixture()
	assert.Equal(t, "Grilled Cheese", r.DisplayName("grilled cheese"))
}
