package ingest

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/calviaapp/bizdir/internal/directory"
	"github.com/calviaapp/bizdir/pkg/errors"
)

// readWorkbook reads every business worksheet of an XLSX workbook, in
// workbook sheet order. Sheet names are combined with the workbook name
// so report rows stay traceable to their origin.
func readWorkbook(path string) ([]directory.SourceRecord, error) {
	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewIngestError(path, "opening workbook", err)
	}
	defer workbook.Close()

	var records []directory.SourceRecord
	for _, sheet := range workbook.GetSheetList() {
		if excludedSheet(sheet) {
			continue
		}
		rows, err := workbook.GetRows(sheet)
		if err != nil {
			return nil, errors.NewIngestError(path, fmt.Sprintf("reading sheet %q", sheet), err)
		}
		if len(rows) == 0 {
			continue
		}
		index, ok := columnIndex(rows[0])
		if !ok {
			continue
		}
		sourceFile := fmt.Sprintf("%s#%s", filepath.Base(path), sheet)
		for i, row := range rows[1:] {
			records = append(records, recordFromRow(sourceFile, i+2, index, row))
		}
	}
	return records, nil
}
