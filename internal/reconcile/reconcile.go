// Package reconcile evaluates ingested source records against the store
// snapshot and produces the import plan: one evaluated record per source
// row, in source order, with a deterministic action and stable derived
// identifiers for accepted rows. Re-running against unchanged inputs
// yields a byte-identical plan.
package reconcile

import (
	"github.com/calviaapp/bizdir/internal/dedupe"
	"github.com/calviaapp/bizdir/internal/directory"
	"github.com/calviaapp/bizdir/internal/identity"
	"github.com/calviaapp/bizdir/internal/normalize"
	"github.com/calviaapp/bizdir/internal/taxonomy"
)

// Run owns the mutable state of one reconciliation pass: the duplicate
// indexes and the used-slug set. Build a fresh Run per import so state
// never leaks between runs.
type Run struct {
	resolver *taxonomy.Resolver
	detector *dedupe.Detector
	slugs    identity.SlugSet
}

// NewRun seeds a reconciliation pass from the store snapshot.
func NewRun(tables *taxonomy.Tables, snapshot directory.Snapshot) *Run {
	slugs := make([]string, 0, len(snapshot.Businesses))
	for _, business := range snapshot.Businesses {
		slugs = append(slugs, business.Slug)
	}
	return &Run{
		resolver: taxonomy.NewResolver(tables, snapshot.CategoriesBySlug, snapshot.AreasBySlug),
		detector: dedupe.NewDetector(snapshot.Businesses),
		slugs:    identity.NewSlugSet(slugs),
	}
}

// Evaluate processes source records strictly in order and returns one
// evaluated record per input. Later rows observe the cumulative effect
// of earlier accepted rows (in-batch dedup, slug uniqueness), so the
// pass is single-threaded by design.
func (r *Run) Evaluate(records []directory.SourceRecord) []directory.EvaluatedRecord {
	plan := make([]directory.EvaluatedRecord, 0, len(records))
	for _, record := range records {
		plan = append(plan, r.evaluate(record))
	}
	return plan
}

// evaluate applies the outcome precedence to one record. The first
// applicable outcome wins and the remaining checks are skipped.
func (r *Run) evaluate(record directory.SourceRecord) directory.EvaluatedRecord {
	if record.Name == "" {
		return held(record, directory.ActionHoldAmbiguous, "Missing business name", nil, nil)
	}

	if normalize.IsRepeatName(record.Name) {
		return held(record, directory.ActionSkipDuplicate, "Explicit '(Repeat)' marker", nil, nil)
	}

	category, reason := r.resolver.Category(record.CategoryRaw)
	if reason != "" {
		return held(record, directory.ActionHoldAmbiguous, reason, nil, nil)
	}

	area, action, reason := r.resolver.Area(record.Address)
	if reason != "" {
		return held(record, action, reason, category, nil)
	}

	// The in-batch composite key is claimed before the store rules run:
	// an identical twin row later in the batch must surface as a batch
	// duplicate even though the accepted first row also feeds the
	// store-backed indexes.
	keys := dedupe.KeysFor(record)
	if r.detector.MatchBatch(keys, category.ID, area.ID) {
		return held(record, directory.ActionSkipDuplicate, "Duplicate row within import batch", category, area)
	}

	if reason := r.detector.Match(keys, area.ID); reason != "" {
		return held(record, directory.ActionSkipDuplicate, reason, category, area)
	}

	businessID := identity.BusinessID(keys.Name, keys.Address, keys.Website, category.ID, area.ID)
	businessSlug := r.slugs.ChooseSlug(record.Name, area.Slug, businessID)
	r.detector.Accept(keys, area.ID)

	return directory.EvaluatedRecord{
		Source:       record,
		Action:       directory.ActionInsert,
		Reason:       "Ready for import",
		Category:     category,
		Area:         area,
		BusinessID:   businessID,
		BusinessSlug: businessSlug,
	}
}

func held(record directory.SourceRecord, action directory.Action, reason string, category *directory.Category, area *directory.Area) directory.EvaluatedRecord {
	return directory.EvaluatedRecord{
		Source:   record,
		Action:   action,
		Reason:   reason,
		Category: category,
		Area:     area,
	}
}

// Partition splits a plan into insert rows and everything else, in
// order, for reporting and for the apply pass.
func Partition(plan []directory.EvaluatedRecord) (inserts, others []directory.EvaluatedRecord) {
	for _, record := range plan {
		if record.Action == directory.ActionInsert {
			inserts = append(inserts, record)
		} else {
			others = append(others, record)
		}
	}
	return inserts, others
}

// Summary counts evaluated records per action.
func Summary(plan []directory.EvaluatedRecord) map[directory.Action]int {
	counts := make(map[directory.Action]int)
	for _, record := range plan {
		counts[record.Action]++
	}
	return counts
}
