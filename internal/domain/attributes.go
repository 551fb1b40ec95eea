package domain

// Attribute identifies a single axis of a food's resolved profile.
type Attribute string

const (
	AttrSavory        Attribute = "savory"
	AttrSweet         Attribute = "sweet"
	AttrSalty         Attribute = "salty"
	AttrSour          Attribute = "sour"
	AttrBitter        Attribute = "bitter"
	AttrSpicy         Attribute = "spicy"
	AttrTemperature   Attribute = "temperature"
	AttrMoisture      Attribute = "moisture"
	AttrGrease        Attribute = "grease"
	AttrCrunch        Attribute = "crunch"
	AttrChew          Attribute = "chew"
	AttrSoft          Attribute = "soft"
	AttrFilling       Attribute = "filling"
	AttrEnergizing    Attribute = "energizing"
	AttrCalming       Attribute = "calming"
	AttrHealth        Attribute = "health"
	AttrSanity        Attribute = "sanity"
	AttrSadness       Attribute = "sadness"
	AttrFear          Attribute = "fear"
	AttrSentience     Attribute = "sentience"
	AttrRadioactivity Attribute = "radioactivity"
	AttrVoidLevel     Attribute = "voidLevel"

	// Boolean-like flags (0 or 1 in profiles)
	AttrIsBurnt        Attribute = "isBurnt"
	AttrIsRaw          Attribute = "isRaw"
	AttrIsVegetarian   Attribute = "isVegetarian"
	AttrIsVegan        Attribute = "isVegan"
	AttrContainsGluten Attribute = "containsGluten"
	AttrContainsBone   Attribute = "containsBone"

	// AttrTemporary marks an item whose transformations must not unlock
	// permanent recipes. It is a modifier key, never a profile attribute.
	AttrTemporary Attribute = "temporary"
)

// DistanceAttributes is the whitelist of attributes that participate in
// demand matching. Flags and bookkeeping keys are excluded.
var DistanceAttributes = []Attribute{
	AttrSavory, AttrSweet, AttrSalty, AttrSour, AttrBitter, AttrSpicy,
	AttrTemperature, AttrMoisture, AttrGrease, AttrCrunch, AttrChew,
	AttrSoft, AttrFilling, AttrEnergizing, AttrCalming, AttrHealth,
	AttrSadness, AttrFear, AttrSentience, AttrRadioactivity, AttrVoidLevel,
}

// Profile is a fully resolved attribute vector for a food item.
type Profile map[Attribute]float64

// DemandVector is a sparse desired-attribute map. Attributes absent from the
// map are "don't care" and are skipped by distance computation.
type DemandVector map[Attribute]float64

// Clone returns an independent copy of the profile.
func (p Profile) Clone() Profile {
	c := make(Profile, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}
