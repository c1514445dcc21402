// Package dedupe decides whether a source record matches a business the
// store already has, or an earlier row of the same import batch. All
// lookups use normalized comparison keys; the indexes are seeded from
// the store snapshot and updated after every accepted record so later
// rows see earlier ones as already existing.
package dedupe

import (
	"github.com/calviaapp/bizdir/internal/directory"
	"github.com/calviaapp/bizdir/internal/normalize"
)

// Keys are the normalized comparison keys of one record.
type Keys struct {
	Name    string
	Address string
	Website string
}

// KeysFor derives the comparison keys of a source record.
func KeysFor(record directory.SourceRecord) Keys {
	return Keys{
		Name:    normalize.Key(record.Name),
		Address: normalize.Key(record.Address),
		Website: normalize.WebsiteKey(record.Website),
	}
}

type nameAddr struct {
	name string
	addr string
}

type nameArea struct {
	name   string
	areaID string
}

type nameAreaWeb struct {
	name    string
	areaID  string
	website string
}

type batchKey struct {
	name       string
	addr       string
	website    string
	categoryID string
	areaID     string
}

// Detector holds the three store-backed indexes plus the in-batch
// composite index. One Detector belongs to exactly one run; nothing else
// may mutate it.
type Detector struct {
	byNameAddr    map[nameAddr]struct{}
	byNameArea    map[nameArea]struct{}
	byNameAreaWeb map[nameAreaWeb]struct{}
	batch         map[batchKey]struct{}
}

// NewDetector seeds the indexes from the existing-store snapshot.
func NewDetector(existing []directory.Business) *Detector {
	d := &Detector{
		byNameAddr:    make(map[nameAddr]struct{}, len(existing)),
		byNameArea:    make(map[nameArea]struct{}, len(existing)),
		byNameAreaWeb: make(map[nameAreaWeb]struct{}, len(existing)),
		batch:         make(map[batchKey]struct{}),
	}
	for _, business := range existing {
		nameKey := normalize.Key(business.Name)
		addrKey := normalize.Key(business.Address)
		websiteKey := normalize.WebsiteKey(business.Website)
		d.byNameAddr[nameAddr{nameKey, addrKey}] = struct{}{}
		d.byNameArea[nameArea{nameKey, business.AreaID}] = struct{}{}
		d.byNameAreaWeb[nameAreaWeb{nameKey, business.AreaID, websiteKey}] = struct{}{}
	}
	return d
}

// Match checks a record's keys against the store-backed indexes in strict
// precedence and returns the reason of the first rule that matched:
//
//  1. name+address, only when the address key is non-empty
//  2. name+area+website, only when a website key is present
//  3. name+area, only when no website key is present
//
// The first applicable rule decides; an empty reason means no match.
func (d *Detector) Match(keys Keys, areaID string) string {
	if keys.Address != "" {
		if _, ok := d.byNameAddr[nameAddr{keys.Name, keys.Address}]; ok {
			return "Existing business matches normalized name+address"
		}
	}
	if keys.Website != "" {
		if _, ok := d.byNameAreaWeb[nameAreaWeb{keys.Name, areaID, keys.Website}]; ok {
			return "Existing business matches normalized name+area+website"
		}
		return ""
	}
	if _, ok := d.byNameArea[nameArea{keys.Name, areaID}]; ok {
		return "Existing business matches normalized name+area (website missing)"
	}
	return ""
}

// MatchBatch checks the in-batch composite key: two rows of the same
// import identical on every identity dimension must not both insert,
// even when the store has no prior entry for them. Returns false and
// claims the key when it is new.
func (d *Detector) MatchBatch(keys Keys, categoryID, areaID string) bool {
	key := batchKey{keys.Name, keys.Address, keys.Website, categoryID, areaID}
	if _, ok := d.batch[key]; ok {
		return true
	}
	d.batch[key] = struct{}{}
	return false
}

// Accept records an accepted insert in the store-backed indexes so later
// rows in the same batch treat it as existing.
func (d *Detector) Accept(keys Keys, areaID string) {
	d.byNameAddr[nameAddr{keys.Name, keys.Address}] = struct{}{}
	d.byNameArea[nameArea{keys.Name, areaID}] = struct{}{}
	d.byNameAreaWeb[nameAreaWeb{keys.Name, areaID, keys.Website}] = struct{}{}
}
