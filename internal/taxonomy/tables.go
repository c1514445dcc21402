// Package taxonomy resolves raw category and address text onto the
// canonical taxonomy. The static alias and phrase tables are ordered
// immutable configuration loaded at startup; the area phrase list is
// first-match so its ordering is load-bearing.
package taxonomy

import (
	_ "embed"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/calviaapp/bizdir/pkg/errors"
)

//go:embed data/tables.yaml
var defaultTables []byte

// AreaPhrase maps one location phrase to an area slug. A phrase may map
// to the out-of-scope sentinel for known-but-excluded localities.
type AreaPhrase struct {
	Phrase string `yaml:"phrase"`
	Slug   string `yaml:"slug"`
}

// OutOfScopeSlug is the sentinel slug for recognized localities outside
// the import scope.
const OutOfScopeSlug = "out-of-scope"

// ParentBucket routes a materialized sync category under one of the
// fixed top-level listing buckets via slug keyword matching.
type ParentBucket struct {
	Key      string   `yaml:"key"`
	ID       string   `yaml:"id"`
	Keywords []string `yaml:"keywords"`
}

// SyncTables configures the businesses-to-listings cross-catalog sync.
type SyncTables struct {
	SlugMap       map[string]string `yaml:"slug_map"`
	ParentBuckets []ParentBucket    `yaml:"parent_buckets"`
	DefaultBucket ParentBucket      `yaml:"default_bucket"`
}

// Tables holds the static resolution tables.
type Tables struct {
	CategoryAliases     map[string]string `yaml:"category_aliases"`
	AmbiguousCategories []string          `yaml:"ambiguous_categories"`
	AreaPhrases         []AreaPhrase      `yaml:"area_phrases"`
	InScopeAreas        []string          `yaml:"in_scope_areas"`
	Sync                SyncTables        `yaml:"sync"`

	ambiguous map[string]struct{}
	inScope   map[string]struct{}
}

// Default returns the embedded tables.
func Default() *Tables {
	tables, err := parse(defaultTables)
	if err != nil {
		// The embedded document is validated by tests; a decode failure
		// here is a build defect.
		panic(err)
	}
	return tables
}

// Load reads tables from a YAML file, overriding the embedded defaults.
func Load(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError("taxonomy", "reading tables file", err)
	}
	tables, err := parse(data)
	if err != nil {
		return nil, errors.NewConfigError("taxonomy", "decoding tables file", err)
	}
	return tables, nil
}

func parse(data []byte) (*Tables, error) {
	var tables Tables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, err
	}
	tables.ambiguous = make(map[string]struct{}, len(tables.AmbiguousCategories))
	for _, key := range tables.AmbiguousCategories {
		tables.ambiguous[key] = struct{}{}
	}
	tables.inScope = make(map[string]struct{}, len(tables.InScopeAreas))
	for _, slug := range tables.InScopeAreas {
		tables.inScope[slug] = struct{}{}
	}
	return &tables, nil
}

// AmbiguousCategory reports whether a normalized category key is in the
// static ambiguous-key set.
func (t *Tables) AmbiguousCategory(key string) bool {
	_, ok := t.ambiguous[key]
	return ok
}

// InScope reports whether an area slug is on the import allow-list.
func (t *Tables) InScope(slug string) bool {
	_, ok := t.inScope[slug]
	return ok
}

// Bucket picks the parent bucket for a materialized sync category by
// scanning bucket keywords against the source slug, falling back to the
// default bucket.
func (t *Tables) Bucket(slug string) ParentBucket {
	s := strings.ToLower(slug)
	for _, bucket := range t.Sync.ParentBuckets {
		for _, keyword := range bucket.Keywords {
			if strings.Contains(s, keyword) {
				return bucket
			}
		}
	}
	return t.Sync.DefaultBucket
}
