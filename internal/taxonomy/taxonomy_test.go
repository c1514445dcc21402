package taxonomy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calviaapp/bizdir/internal/directory"
	"github.com/calviaapp/bizdir/internal/taxonomy"
)

func testSnapshot() (map[string][]directory.Category, map[string]directory.Area) {
	categories := map[string][]directory.Category{
		"pharmacies": {
			{ID: "cat-pharm-sub", Slug: "pharmacies", Name: "Pharmacies", ParentID: "cat-health", DisplayOrder: 1},
			{ID: "cat-pharm-top", Slug: "pharmacies", Name: "Pharmacies", DisplayOrder: 3},
		},
		"golf-courses": {
			{ID: "cat-golf", Slug: "golf-courses", Name: "Golf Courses", DisplayOrder: 2},
		},
	}
	areas := map[string]directory.Area{
		"santa-ponsa": {ID: "area-sp", Slug: "santa-ponsa", Name: "Santa Ponsa"},
		"magaluf":     {ID: "area-mg", Slug: "magaluf", Name: "Magaluf"},
		"calvia-vila": {ID: "area-cv", Slug: "calvia-vila", Name: "Calvia Vila"},
	}
	return categories, areas
}

func newTestResolver(t *testing.T) *taxonomy.Resolver {
	t.Helper()
	categories, areas := testSnapshot()
	return taxonomy.NewResolver(taxonomy.Default(), categories, areas)
}

func TestDefaultTablesParse(t *testing.T) {
	tables := taxonomy.Default()

	require.NotEmpty(t, tables.CategoryAliases)
	require.NotEmpty(t, tables.AreaPhrases)
	assert.True(t, tables.AmbiguousCategory("pharmacy/dental"))
	assert.True(t, tables.InScope("magaluf"))
	assert.False(t, tables.InScope("palma"))
}

func TestCategoryResolution(t *testing.T) {
	r := newTestResolver(t)

	category, reason := r.Category("Pharmacy")
	require.Empty(t, reason)
	assert.Equal(t, "cat-pharm-top", category.ID)

	_, reason = r.Category("Pharmacy / Dental")
	assert.Contains(t, reason, "Ambiguous category")

	_, reason = r.Category("Quantum Plumbing")
	assert.Contains(t, reason, "Unmapped category")

	// Mapped but absent from the loaded taxonomy.
	_, reason = r.Category("Tennis Club")
	assert.Contains(t, reason, "not found in store")
}

func TestCategoryPrefersTopLevelRegardlessOfOrder(t *testing.T) {
	// Same snapshot with the candidate list reversed must pick the same
	// entry: the top-level one, despite its higher display order.
	categories, areas := testSnapshot()
	reversed := map[string][]directory.Category{
		"pharmacies": {categories["pharmacies"][1], categories["pharmacies"][0]},
	}

	for _, cats := range []map[string][]directory.Category{categories, reversed} {
		r := taxonomy.NewResolver(taxonomy.Default(), cats, areas)
		category, reason := r.Category("pharmacy")
		require.Empty(t, reason)
		assert.Equal(t, "cat-pharm-top", category.ID)
	}
}

func TestAreaResolution(t *testing.T) {
	r := newTestResolver(t)

	area, action, reason := r.Area("Av. Rei Jaume I, Santa Ponsa, Mallorca")
	require.Empty(t, reason)
	assert.Equal(t, directory.Action(""), action)
	assert.Equal(t, "area-sp", area.ID)

	// Accent folding: Calvià resolves like Calvia.
	area, _, reason = r.Area("Carrer Major 3, Calvià")
	require.Empty(t, reason)
	assert.Equal(t, "area-cv", area.ID)

	_, action, reason = r.Area("Carrer Inventada 1")
	assert.Equal(t, directory.ActionHoldAmbiguous, action)
	assert.Equal(t, "Could not infer area from address", reason)

	// Recognized locality mapped to the out-of-scope sentinel.
	_, action, reason = r.Area("Placa Major, Manacor")
	assert.Equal(t, directory.ActionHoldOutOfScope, action)
	assert.Contains(t, reason, "outside Calvia scope")

	// Recognized slug outside the allow-list.
	_, action, reason = r.Area("Passeig Maritim, Palma")
	assert.Equal(t, directory.ActionHoldOutOfScope, action)
	assert.Contains(t, reason, "out of import scope")

	// In-scope slug missing from the loaded snapshot.
	_, action, reason = r.Area("Carrer des Pins, Peguera")
	assert.Equal(t, directory.ActionHoldAmbiguous, action)
	assert.Contains(t, reason, "not found in store")
}

func TestAreaPhrasePrecedence(t *testing.T) {
	r := newTestResolver(t)

	// "calvia vila" is listed before "calvia": an address containing the
	// sub-area phrase must resolve to it, never to the bare town match.
	area, _, reason := r.Area("Carrer de sa Capelleta, Calvia Vila, Calvia")
	require.Empty(t, reason)
	assert.Equal(t, "calvia-vila", area.Slug)
}

func TestBucketKeywordRouting(t *testing.T) {
	tables := taxonomy.Default()

	assert.Equal(t, "real_estate", tables.Bucket("real-estate-agencies").Key)
	assert.Equal(t, "dining", tables.Bucket("beach-clubs").Key)
	assert.Equal(t, "activities", tables.Bucket("water-sports").Key)
	assert.Equal(t, "health", tables.Bucket("dentists").Key)
	assert.Equal(t, "daily_life", tables.Bucket("supermarkets").Key)
}
