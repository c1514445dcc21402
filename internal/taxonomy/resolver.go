package taxonomy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/calviaapp/bizdir/internal/directory"
	"github.com/calviaapp/bizdir/internal/normalize"
)

// Resolver maps raw category and address text to canonical taxonomy
// entries using the static tables and the run's read-only snapshot.
// Resolution failures are outcomes, not errors: every failure carries
// the hold action and a human-readable reason for the review report.
type Resolver struct {
	tables     *Tables
	categories map[string][]directory.Category
	areas      map[string]directory.Area
}

// NewResolver builds a resolver over the given tables and snapshot maps.
func NewResolver(tables *Tables, categories map[string][]directory.Category, areas map[string]directory.Area) *Resolver {
	return &Resolver{
		tables:     tables,
		categories: categories,
		areas:      areas,
	}
}

// Category resolves a raw category cell. On failure the returned reason
// is non-empty and the record is to be held as ambiguous.
func (r *Resolver) Category(raw string) (*directory.Category, string) {
	key := normalize.CategoryKey(raw)
	if r.tables.AmbiguousCategory(key) {
		return nil, fmt.Sprintf("Ambiguous category %q", raw)
	}
	slug, ok := r.tables.CategoryAliases[key]
	if !ok {
		return nil, fmt.Sprintf("Unmapped category %q", raw)
	}
	category := pickCategory(r.categories, slug)
	if category == nil {
		return nil, fmt.Sprintf("Mapped slug %q not found in store", slug)
	}
	return category, ""
}

// pickCategory chooses deterministically among entries sharing a slug:
// top-level entries win over nested ones, then the lowest display order,
// then the alphabetically first name. Load order never matters.
func pickCategory(categories map[string][]directory.Category, slug string) *directory.Category {
	candidates := categories[slug]
	if len(candidates) == 0 {
		return nil
	}
	var topLevel []directory.Category
	for _, c := range candidates {
		if c.TopLevel() {
			topLevel = append(topLevel, c)
		}
	}
	pool := candidates
	if len(topLevel) > 0 {
		pool = topLevel
	}
	sorted := make([]directory.Category, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].DisplayOrder != sorted[j].DisplayOrder {
			return sorted[i].DisplayOrder < sorted[j].DisplayOrder
		}
		return sorted[i].Name < sorted[j].Name
	})
	picked := sorted[0]
	return &picked
}

// Area resolves a raw address onto an area. The zero action means
// resolved; otherwise the returned action and reason describe the hold.
func (r *Resolver) Area(address string) (*directory.Area, directory.Action, string) {
	slug := r.areaSlug(address)
	if slug == "" {
		return nil, directory.ActionHoldAmbiguous, "Could not infer area from address"
	}
	if slug == OutOfScopeSlug {
		return nil, directory.ActionHoldOutOfScope, fmt.Sprintf("Address outside Calvia scope: %s", address)
	}
	if !r.tables.InScope(slug) {
		return nil, directory.ActionHoldOutOfScope, fmt.Sprintf("Area %q is out of import scope", slug)
	}
	area, ok := r.areas[slug]
	if !ok {
		return nil, directory.ActionHoldAmbiguous, fmt.Sprintf("Area slug %q not found in store", slug)
	}
	return &area, "", ""
}

// areaSlug scans the ordered phrase list and returns the slug of the
// first phrase contained in the folded address. First match wins, so a
// named sub-area listed before its containing town shadows it.
func (r *Resolver) areaSlug(address string) string {
	text := normalize.Fold(address)
	if text == "" {
		return ""
	}
	for _, entry := range r.tables.AreaPhrases {
		if strings.Contains(text, entry.Phrase) {
			return entry.Slug
		}
	}
	return ""
}
