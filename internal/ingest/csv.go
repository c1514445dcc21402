package ingest

import (
	"archive/zip"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/calviaapp/bizdir/internal/directory"
	"github.com/calviaapp/bizdir/pkg/errors"
)

// readZip reads every CSV member of a ZIP bundle, in sorted member
// order so archive layout never changes the record sequence.
func readZip(path string) ([]directory.SourceRecord, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.NewIngestError(path, "opening zip bundle", err)
	}
	defer archive.Close()

	members := make(map[string]*zip.File, len(archive.File))
	names := make([]string, 0, len(archive.File))
	for _, member := range archive.File {
		if !strings.HasSuffix(strings.ToLower(member.Name), ".csv") {
			continue
		}
		if excludedSheet(member.Name) {
			continue
		}
		members[member.Name] = member
		names = append(names, member.Name)
	}
	sort.Strings(names)

	var records []directory.SourceRecord
	for _, name := range names {
		reader, err := members[name].Open()
		if err != nil {
			return nil, errors.NewIngestError(name, "opening zip member", err)
		}
		sheet, err := readCSV(reader, filepath.Base(name))
		reader.Close()
		if err != nil {
			return nil, err
		}
		records = append(records, sheet...)
	}
	return records, nil
}

// readCSVFile reads a single standalone CSV sheet.
func readCSVFile(path string) ([]directory.SourceRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIngestError(path, "opening csv file", err)
	}
	defer file.Close()
	return readCSV(file, filepath.Base(path))
}

// readCSV decodes one CSV sheet. Sheets without the required header are
// skipped (nil records, no error), matching how mixed exports carry
// non-business sheets alongside business ones.
func readCSV(r io.Reader, sourceFile string) ([]directory.SourceRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewIngestError(sourceFile, "reading csv header", err)
	}
	if len(header) > 0 {
		// Tolerate a UTF-8 BOM on the first cell.
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	index, ok := columnIndex(header)
	if !ok {
		return nil, nil
	}

	var records []directory.SourceRecord
	rowNumber := 1 // header row
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewIngestError(sourceFile, "reading csv row", err)
		}
		rowNumber++
		records = append(records, recordFromRow(sourceFile, rowNumber, index, row))
	}
	return records, nil
}
