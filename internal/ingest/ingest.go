// Package ingest reads business sheets out of source bundles: ZIP
// archives of CSV exports or XLSX workbooks. Each usable sheet row
// becomes one SourceRecord; sheet and member ordering is made
// deterministic so repeated ingestion of the same bundle yields the
// same record sequence.
package ingest

import (
	"path/filepath"
	"strings"

	"github.com/calviaapp/bizdir/internal/directory"
	"github.com/calviaapp/bizdir/pkg/errors"
)

// Required sheet columns. Sheets missing any of them are not business
// sheets and are skipped entirely.
var requiredColumns = []string{
	"Name",
	"Category",
	"Address",
	"Contact",
	"Rating/Reviews",
	"Website",
	"Notes",
}

// Sheets whose names contain one of these hints hold non-business data
// (trail guides and the like) and are skipped.
var excludedSheetHints = []string{"beaches", "hiking", "cycling"}

// ReadBundle reads every business sheet in the bundle at path. The
// format is chosen by extension: .zip for CSV bundles, .xlsx for
// workbooks, .csv for a single sheet.
func ReadBundle(path string) ([]directory.SourceRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return readZip(path)
	case ".xlsx":
		return readWorkbook(path)
	case ".csv":
		return readCSVFile(path)
	default:
		return nil, errors.NewIngestError(path, "unsupported bundle format (want .zip, .xlsx or .csv)", nil)
	}
}

// excludedSheet reports whether a sheet or member name carries one of
// the excluded hints.
func excludedSheet(name string) bool {
	lower := strings.ToLower(name)
	for _, hint := range excludedSheetHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// columnIndex maps required column names to their position in the
// header row, or returns false when any required column is missing.
func columnIndex(header []string) (map[string]int, bool) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, false
		}
	}
	return index, true
}

// recordFromRow builds a SourceRecord from one data row. rowNumber is
// the spreadsheet row number (header is row 1, first data row is 2).
func recordFromRow(sourceFile string, rowNumber int, index map[string]int, row []string) directory.SourceRecord {
	cell := func(column string) string {
		i := index[column]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	return directory.SourceRecord{
		SourceFile:    sourceFile,
		SourceRow:     rowNumber,
		Name:          cell("Name"),
		CategoryRaw:   cell("Category"),
		Address:       cell("Address"),
		Contact:       cell("Contact"),
		RatingReviews: cell("Rating/Reviews"),
		Website:       cell("Website"),
		Notes:         cell("Notes"),
	}
}
