package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/calviaapp/bizdir/internal/directory"
)

func TestBuildDescription(t *testing.T) {
	record := directory.EvaluatedRecord{
		Source:   directory.SourceRecord{Notes: "Family run since 1981"},
		Category: &directory.Category{Name: "Pharmacies"},
		Area:     &directory.Area{Name: "Santa Ponsa"},
	}
	assert.Equal(t, "Family run since 1981", buildDescription(record))

	record.Source.Notes = ""
	assert.Equal(t, "Pharmacies in Santa Ponsa, Calvia.", buildDescription(record))
}

func TestBuildNotesKeepsProvenance(t *testing.T) {
	record := directory.EvaluatedRecord{
		Source: directory.SourceRecord{
			SourceFile:    "restaurants.csv",
			SourceRow:     7,
			Notes:         "Terrace",
			RatingReviews: "4.5 (120 reviews)",
		},
	}
	assert.Equal(t,
		"Terrace | Imported from restaurants.csv:7 | Source rating/reviews: 4.5 (120 reviews)",
		buildNotes(record))

	record.Source.Notes = ""
	record.Source.RatingReviews = ""
	assert.Equal(t, "Imported from restaurants.csv:7", buildNotes(record))
}

func TestTitleizeSlug(t *testing.T) {
	assert.Equal(t, "Water Sports", titleizeSlug("water-sports"))
	assert.Equal(t, "Daily Life", titleizeSlug("daily_life"))
}

func TestMaterializedName(t *testing.T) {
	assert.Equal(t, "Beach Clubs", materializedName("  Beach Clubs ", "beach-clubs"))
	assert.Equal(t, "Beach Clubs", materializedName("", "beach-clubs"))
	assert.Equal(t, "Beach Clubs", materializedName("   ", "beach-clubs"))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, isNoRows(pgx.ErrNoRows))
	assert.False(t, isNoRows(assert.AnError))
}
