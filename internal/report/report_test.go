package report_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calviaapp/bizdir/internal/directory"
	"github.com/calviaapp/bizdir/internal/report"
)

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "import_candidates.csv")

	records := []directory.EvaluatedRecord{
		{
			Source: directory.SourceRecord{
				SourceFile:  "restaurants.csv",
				SourceRow:   2,
				Name:        "Cafe Sol",
				CategoryRaw: "Cafe",
				Address:     "Carrer Major 3, Santa Ponsa",
				Website:     "cafesol.es",
			},
			Action:       directory.ActionInsert,
			Reason:       "Ready for import",
			Category:     &directory.Category{Slug: "cafes-coffee-shops"},
			Area:         &directory.Area{Slug: "santa-ponsa"},
			BusinessID:   "11111111-2222-3333-4444-555555555555",
			BusinessSlug: "cafe-sol",
		},
		{
			Source: directory.SourceRecord{SourceFile: "shops.csv", SourceRow: 5},
			Action: directory.ActionHoldAmbiguous,
			Reason: "Missing business name",
		},
	}

	require.NoError(t, report.WriteCSV(path, records))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "source_file", rows[0][0])
	assert.Equal(t, []string{
		"restaurants.csv", "2", "Cafe Sol", "Cafe",
		"Carrer Major 3, Santa Ponsa", "cafesol.es",
		"cafes-coffee-shops", "santa-ponsa",
		"INSERT", "Ready for import",
		"11111111-2222-3333-4444-555555555555", "cafe-sol",
	}, rows[1])
	assert.Equal(t, "HOLD_AMBIGUOUS", rows[2][8])
	// Unresolved fields stay blank rather than inventing placeholders.
	assert.Equal(t, "", rows[2][6])
}
