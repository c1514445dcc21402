// Package report renders the reconciliation plan as tabular output for
// human review before anything is written to the store.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/calviaapp/bizdir/internal/directory"
	"github.com/calviaapp/bizdir/pkg/errors"
)

// columns is the fixed header of every plan report.
var columns = []string{
	"source_file",
	"source_row",
	"name",
	"category_raw",
	"address",
	"website",
	"category_slug",
	"area_slug",
	"action",
	"reason",
	"business_id",
	"business_slug",
}

// WriteCSV writes evaluated records as a CSV report, creating parent
// directories as needed.
func WriteCSV(path string, records []directory.EvaluatedRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.NewConfigError("report", "creating report directory", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.NewConfigError("report", "creating report file", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("writing report header: %w", err)
	}
	for _, record := range records {
		if err := writer.Write(row(record)); err != nil {
			return fmt.Errorf("writing report row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing report: %w", err)
	}
	return file.Close()
}

func row(record directory.EvaluatedRecord) []string {
	categorySlug := ""
	if record.Category != nil {
		categorySlug = record.Category.Slug
	}
	areaSlug := ""
	if record.Area != nil {
		areaSlug = record.Area.Slug
	}
	return []string{
		record.Source.SourceFile,
		fmt.Sprintf("%d", record.Source.SourceRow),
		record.Source.Name,
		record.Source.CategoryRaw,
		record.Source.Address,
		record.Source.Website,
		categorySlug,
		areaSlug,
		record.Action.String(),
		record.Reason,
		record.BusinessID,
		record.BusinessSlug,
	}
}
