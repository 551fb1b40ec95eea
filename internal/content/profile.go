package content

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/quistberg/ladle/internal/domain"
)

const profileCacheSize = 256

// FallbackSanityDrain is the sanity attribute of the unknown-food fallback
// profile. Looking up a name absent from the tables must not crash; it
// resolves to a mildly sanity-draining mystery instead.
const FallbackSanityDrain = -1

// Resolver computes resolved attribute profiles on demand. Base profiles
// (default table + per-food override) are cached by name; runtime modifiers
// are layered per call and never cached.
type Resolver struct {
	tables *Tables
	cache  *lru.Cache[string, domain.Profile]
	caser  cases.Caser
}

// NewResolver creates a resolver over loaded tables.
func NewResolver(t *Tables) *Resolver {
	cache, _ := lru.New[string, domain.Profile](profileCacheSize)
	return &Resolver{
		tables: t,
		cache:  cache,
		caser:  cases.Title(language.English),
	}
}

// Known reports whether the name appears in the food attribute table or the
// atom list.
func (r *Resolver) Known(name string) bool {
	if _, ok := r.tables.Foods[name]; ok {
		return true
	}
	return r.tables.IsAtom(name)
}

// Base returns the resolved base profile for a food name: default table plus
// per-food override. Unknown names get the fallback profile.
func (r *Resolver) Base(name string) domain.Profile {
	if cached, ok := r.cache.Get(name); ok {
		return cached
	}

	profile := r.tables.Default.Clone()
	if override, ok := r.tables.Foods[name]; ok {
		for k, v := range override {
			profile[k] = v
		}
	} else if !r.tables.IsAtom(name) {
		profile[domain.AttrSanity] = profile[domain.AttrSanity] + FallbackSanityDrain
	}

	r.cache.Add(name, profile)
	return profile
}

// Resolve returns the full profile for an item: base plus the item's runtime
// modifiers. The temporary tag is bookkeeping, not an attribute, and is
// excluded.
func (r *Resolver) Resolve(item *domain.Item) domain.Profile {
	profile := r.Base(item.Name).Clone()
	for k, v := range item.Modifiers {
		if k == domain.AttrTemporary {
			continue
		}
		profile[k] = profile[k] + v
	}
	return profile
}

// DisplayName renders a food name for presentation.
func (r *Resolver) DisplayName(name string) string {
	return r.caser.String(name)
}

// TasteFeedback returns the feedback line for each attribute whose resolved
// value falls inside a configured bucket, keyed by attribute.
func (r *Resolver) TasteFeedback(profile domain.Profile) map[domain.Attribute]string {
	out := make(map[domain.Attribute]string)
	for attr, buckets := range r.tables.Taste {
		v := profile[attr]
		for _, b := range buckets {
			if v >= b.Min && v <= b.Max {
				out[attr] = b.Msg
				break
			}
		}
	}
	return out
}
