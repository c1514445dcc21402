package dedupe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calviaapp/bizdir/internal/dedupe"
	"github.com/calviaapp/bizdir/internal/directory"
)

func existingBusinesses() []directory.Business {
	return []directory.Business{
		{
			ID:      "biz-1",
			Slug:    "cafe-sol",
			Name:    "Café Sol",
			Address: "Carrer Major 3, Santa Ponsa",
			Website: "https://cafesol.es",
			AreaID:  "area-sp",
		},
		{
			ID:     "biz-2",
			Slug:   "blue-bar",
			Name:   "Blue Bar",
			AreaID: "area-mg",
		},
	}
}

func keysFor(name, address, website string) dedupe.Keys {
	return dedupe.KeysFor(directory.SourceRecord{Name: name, Address: address, Website: website})
}

func TestMatchNameAddress(t *testing.T) {
	d := dedupe.NewDetector(existingBusinesses())

	// Formatting differences must not defeat the match.
	reason := d.Match(keysFor("CAFE SOL", "carrer major 3 - santa ponsa!", ""), "area-other")
	assert.Contains(t, reason, "name+address")
}

func TestEmptyAddressNeverMatchesEmptyAddress(t *testing.T) {
	d := dedupe.NewDetector(existingBusinesses())

	// biz-2 has no address; a new record with no address and a website
	// must not match under rule 1, and rule 2 misses too.
	reason := d.Match(keysFor("Blue Bar", "", "bluebar.example"), "area-mg")
	assert.Empty(t, reason)
}

func TestWebsitePresenceSelectsRule(t *testing.T) {
	d := dedupe.NewDetector(existingBusinesses())

	// Website present and matching rule 2.
	reason := d.Match(keysFor("Cafe Sol", "somewhere else", "WWW.CafeSol.es/"), "area-sp")
	assert.Contains(t, reason, "name+area+website")

	// Website present but different: rule 3 must NOT be consulted even
	// though name+area would match.
	reason = d.Match(keysFor("Cafe Sol", "somewhere else", "othersite.es"), "area-sp")
	assert.Empty(t, reason)

	// Website absent: rule 3 applies.
	reason = d.Match(keysFor("Cafe Sol", "somewhere else", ""), "area-sp")
	assert.Contains(t, reason, "website missing")
}

func TestMatchBatchClaimsKey(t *testing.T) {
	d := dedupe.NewDetector(nil)
	keys := keysFor("New Place", "Carrer Nou 1, Magaluf", "newplace.es")

	assert.False(t, d.MatchBatch(keys, "cat-1", "area-mg"))
	assert.True(t, d.MatchBatch(keys, "cat-1", "area-mg"))

	// A single differing dimension is a different batch key.
	assert.False(t, d.MatchBatch(keys, "cat-2", "area-mg"))
}

func TestAcceptMakesRecordVisibleToLaterRows(t *testing.T) {
	d := dedupe.NewDetector(nil)
	keys := keysFor("New Place", "Carrer Nou 1, Magaluf", "")

	assert.Empty(t, d.Match(keys, "area-mg"))
	d.Accept(keys, "area-mg")
	assert.Contains(t, d.Match(keys, "area-mg"), "name+address")
}
