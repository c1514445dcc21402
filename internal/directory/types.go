// Package directory defines the canonical data model shared by the
// ingestion, reconciliation and persistence layers: taxonomy entries,
// stored businesses, raw source rows and the evaluated import plan.
package directory

// Action is the reconciliation outcome for a single source record.
type Action string

// Reconciliation outcomes. Every evaluated record carries exactly one.
const (
	// ActionInsert marks a record as new and ready for import.
	ActionInsert Action = "INSERT"
	// ActionSkipDuplicate marks a record as a duplicate of an existing
	// business or of an earlier row in the same batch.
	ActionSkipDuplicate Action = "SKIP_DUPLICATE"
	// ActionHoldAmbiguous parks a record for human review when a field
	// could not be resolved confidently.
	ActionHoldAmbiguous Action = "HOLD_AMBIGUOUS"
	// ActionHoldOutOfScope parks a record whose address falls outside
	// the import scope.
	ActionHoldOutOfScope Action = "HOLD_OUT_OF_SCOPE"
)

// String returns the string representation of an action.
func (a Action) String() string {
	return string(a)
}

// Category is one canonical taxonomy entry. Multiple entries may share a
// slug (a top-level page and a nested subcategory); resolution prefers
// the top-level one deterministically.
type Category struct {
	ID           string
	Slug         string
	Name         string
	ParentID     string // empty for top-level categories
	DisplayOrder int
}

// TopLevel reports whether the category has no parent.
func (c Category) TopLevel() bool {
	return c.ParentID == ""
}

// Area is one canonical geographic area. Areas are reference data only;
// the import never invents new ones.
type Area struct {
	ID        string
	Slug      string
	Name      string
	Latitude  float64
	Longitude float64
}

// Business is a previously persisted directory entry, loaded once per
// run as a read-only snapshot and used to seed the duplicate indexes.
type Business struct {
	ID      string
	Slug    string
	Name    string
	Address string
	Website string
	AreaID  string
}

// SourceRecord is one row read from an ingested sheet. SourceRow is
// 1-based and counts the header row, matching what a human sees when
// they open the sheet.
type SourceRecord struct {
	SourceFile    string
	SourceRow     int
	Name          string
	CategoryRaw   string
	Address       string
	Contact       string
	RatingReviews string
	Website       string
	Notes         string
}

// EvaluatedRecord pairs a source record with its reconciliation outcome.
// Category and Area are set once resolved, even for held or skipped
// records, so reports can show how far resolution got. BusinessID and
// BusinessSlug are only set for ActionInsert.
type EvaluatedRecord struct {
	Source       SourceRecord
	Action       Action
	Reason       string
	Category     *Category
	Area         *Area
	BusinessID   string
	BusinessSlug string
}

// Snapshot is the read-only view of the store taken before a run:
// taxonomy entries keyed by slug and the existing businesses. The
// engine never re-queries the store mid-run.
type Snapshot struct {
	CategoriesBySlug map[string][]Category
	AreasBySlug      map[string]Area
	Businesses       []Business
}
