package identity_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calviaapp/bizdir/internal/identity"
)

func TestBusinessIDIsStable(t *testing.T) {
	a := identity.BusinessID("cafesol", "carrermajor3", "cafesol.es", "cat-1", "area-1")
	b := identity.BusinessID("cafesol", "carrermajor3", "cafesol.es", "cat-1", "area-1")

	assert.Equal(t, a, b)
	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), parsed.Version())
}

func TestBusinessIDChangesWithAnyField(t *testing.T) {
	base := identity.BusinessID("cafesol", "carrermajor3", "cafesol.es", "cat-1", "area-1")

	assert.NotEqual(t, base, identity.BusinessID("cafeluna", "carrermajor3", "cafesol.es", "cat-1", "area-1"))
	assert.NotEqual(t, base, identity.BusinessID("cafesol", "carrermajor4", "cafesol.es", "cat-1", "area-1"))
	assert.NotEqual(t, base, identity.BusinessID("cafesol", "carrermajor3", "", "cat-1", "area-1"))
	assert.NotEqual(t, base, identity.BusinessID("cafesol", "carrermajor3", "cafesol.es", "cat-2", "area-1"))
	assert.NotEqual(t, base, identity.BusinessID("cafesol", "carrermajor3", "cafesol.es", "cat-1", "area-2"))
}

func TestDerivedIDFamiliesAreDisjoint(t *testing.T) {
	assert.NotEqual(t, identity.ListingID("x"), identity.SyncCategoryID("x", ""))
}

func TestChooseSlugFallbackChain(t *testing.T) {
	slugs := identity.NewSlugSet([]string{"blue-bar"})
	id := identity.BusinessID("bluebar", "", "", "cat-1", "area-1")

	withArea := slugs.ChooseSlug("Blue Bar", "magaluf", id)
	assert.Equal(t, "blue-bar-magaluf", withArea)

	// Same base and area taken: fall back to the id prefix.
	withID := slugs.ChooseSlug("Blue Bar", "magaluf", id)
	assert.Equal(t, "blue-bar-"+strings.SplitN(id, "-", 2)[0], withID)
}

func TestChooseSlugClaimsBase(t *testing.T) {
	slugs := identity.NewSlugSet(nil)

	first := slugs.ChooseSlug("Café Sol", "santa-ponsa", "aaaa-bbbb")
	assert.Equal(t, "cafe-sol", first)
	assert.True(t, slugs.Contains("cafe-sol"))

	second := slugs.ChooseSlug("Cafe Sol", "palmanova", "cccc-dddd")
	assert.Equal(t, "cafe-sol-palmanova", second)
}

func TestChooseSlugEmptyName(t *testing.T) {
	slugs := identity.NewSlugSet(nil)
	assert.Equal(t, "business", slugs.ChooseSlug("***", "magaluf", "eeee-ffff"))
}
