package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/calviaapp/bizdir/internal/directory"
	"github.com/calviaapp/bizdir/internal/normalize"
	"github.com/calviaapp/bizdir/pkg/errors"
)

// ApplyResult counts the outcome of an apply pass.
type ApplyResult struct {
	Inserted  int
	Conflicts int
}

// ApplyInserts persists the INSERT rows of a plan. The insert is keyed
// on the derived slug with ON CONFLICT DO NOTHING: a slug conflict means
// the business is already present (for example from a concurrent run)
// and counts as a conflict, not an error. The whole pass is one
// transaction so a partial import never lands.
func (s *Store) ApplyInserts(ctx context.Context, inserts []directory.EvaluatedRecord) (ApplyResult, error) {
	var result ApplyResult

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return result, errors.NewStoreError("begin apply", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	for _, record := range inserts {
		if record.Action != directory.ActionInsert || record.Category == nil || record.Area == nil {
			return result, errors.NewStoreError("apply",
				fmt.Errorf("plan row %s:%d is not an insert", record.Source.SourceFile, record.Source.SourceRow))
		}

		var rating interface{}
		if value, ok := normalize.Rating(record.Source.RatingReviews); ok {
			rating = value
		}

		row := tx.QueryRow(ctx, `
			INSERT INTO businesses (
			  id,
			  name,
			  slug,
			  description,
			  category_id,
			  area_id,
			  phone,
			  email,
			  website,
			  address,
			  latitude,
			  longitude,
			  is_placeholder,
			  rating,
			  notes,
			  social_links,
			  location_confidence,
			  needs_geocoding
			)
			VALUES (
			  $1, $2, $3, $4, $5::uuid, $6::uuid, $7, $8, $9, $10,
			  $11, $12, false, $13, $14, '{}'::jsonb, 'area', true
			)
			ON CONFLICT (slug) DO NOTHING
			RETURNING id`,
			record.BusinessID,
			record.Source.Name,
			record.BusinessSlug,
			buildDescription(record),
			record.Category.ID,
			record.Area.ID,
			normalize.Phone(record.Source.Contact),
			normalize.Email(record.Source.Contact),
			normalize.WebsiteURL(record.Source.Website),
			record.Source.Address,
			record.Area.Latitude,
			record.Area.Longitude,
			rating,
			buildNotes(record),
		)

		var insertedID string
		switch err := row.Scan(&insertedID); {
		case err == nil:
			result.Inserted++
		case isNoRows(err):
			result.Conflicts++
		default:
			return result, errors.NewStoreError("insert business", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return result, errors.NewStoreError("commit apply", err)
	}
	return result, nil
}

// isNoRows reports whether a RETURNING scan came back empty, which is
// how ON CONFLICT DO NOTHING signals a skipped insert.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// buildDescription prefers the sheet's notes, falling back to a short
// generated description.
func buildDescription(record directory.EvaluatedRecord) string {
	if record.Source.Notes != "" {
		return record.Source.Notes
	}
	return fmt.Sprintf("%s in %s, Calvia.", record.Category.Name, record.Area.Name)
}

// buildNotes keeps the sheet notes plus provenance so a reviewer can
// trace any stored row back to its source file and row.
func buildNotes(record directory.EvaluatedRecord) string {
	parts := []string{
		strings.TrimSpace(record.Source.Notes),
		fmt.Sprintf("Imported from %s:%d", record.Source.SourceFile, record.Source.SourceRow),
	}
	if raw := strings.TrimSpace(record.Source.RatingReviews); raw != "" {
		parts = append(parts, "Source rating/reviews: "+raw)
	}
	nonEmpty := parts[:0]
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, " | ")
}
