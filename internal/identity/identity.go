// Package identity derives the stable identifier and unique slug for
// records accepted by the reconciliation engine. Identifiers are pure
// functions of the normalized fields, so re-running an import against
// the same inputs reproduces the same ids byte for byte.
package identity

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/calviaapp/bizdir/internal/normalize"
)

// Namespace is the fixed UUIDv5 namespace for every derived identifier.
var Namespace = uuid.MustParse("11111111-1111-1111-1111-111111111111")

// BusinessID derives the stable identifier for a business from the
// duplicate-matching keys and resolved taxonomy ids. Any change to
// name, address, website, category or area yields a different id; such
// a change is treated as a new entity on re-import, not an update.
func BusinessID(nameKey, addrKey, websiteKey, categoryID, areaID string) string {
	composite := fmt.Sprintf("zip-business:%s:%s:%s:%s:%s", nameKey, addrKey, websiteKey, categoryID, areaID)
	return uuid.NewSHA1(Namespace, []byte(composite)).String()
}

// ListingID derives the stable listing id for a synced business.
func ListingID(businessID string) string {
	return uuid.NewSHA1(Namespace, []byte("business-listing:"+businessID)).String()
}

// SyncCategoryID derives the stable id for a category materialized
// during cross-catalog sync.
func SyncCategoryID(slug, parentID string) string {
	return uuid.NewSHA1(Namespace, []byte(fmt.Sprintf("calvia-sync-category:%s:%s", slug, parentID))).String()
}

// SlugSet tracks slugs already taken, seeded from the existing store at
// run start. It only ever grows within a run.
type SlugSet map[string]struct{}

// NewSlugSet builds a slug set from the existing business slugs.
func NewSlugSet(existing []string) SlugSet {
	set := make(SlugSet, len(existing))
	for _, slug := range existing {
		if slug == "" {
			continue
		}
		set[normalize.Fold(slug)] = struct{}{}
	}
	return set
}

// Contains reports whether a slug is already taken.
func (s SlugSet) Contains(slug string) bool {
	_, ok := s[slug]
	return ok
}

// ChooseSlug picks a unique human-readable slug for an accepted record:
// the simplified name slug if free, else name plus area slug, else name
// plus the first segment of the derived id, which is unique by
// construction. The chosen slug is claimed before returning.
func (s SlugSet) ChooseSlug(name, areaSlug, businessID string) string {
	base := normalize.Slugify(name)
	if base == "" {
		base = "business"
	}
	if !s.Contains(base) {
		s[base] = struct{}{}
		return base
	}

	withArea := base + "-" + areaSlug
	if !s.Contains(withArea) {
		s[withArea] = struct{}{}
		return withArea
	}

	fallback := base + "-" + firstSegment(businessID)
	s[fallback] = struct{}{}
	return fallback
}

func firstSegment(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
