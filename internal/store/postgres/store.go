// Package postgres is the pgx-backed persistence layer: read-only
// snapshot loads before a run, the conflict-tolerant apply pass after
// it, and the businesses-to-listings cross-catalog sync.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calviaapp/bizdir/internal/directory"
	"github.com/calviaapp/bizdir/pkg/errors"
)

// Store wraps a pgx connection pool against the canonical store.
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens a connection pool against the given database URL.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	if databaseURL == "" {
		return nil, errors.NewConfigError("store", "database URL is required", nil)
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, errors.NewStoreError("connect", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.NewStoreError("ping", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// LoadSnapshot reads the read-only view the engine works from: taxonomy
// entries keyed by slug and every existing business. The engine never
// re-queries the store mid-run; import runs are single-writer.
func (s *Store) LoadSnapshot(ctx context.Context) (directory.Snapshot, error) {
	snapshot := directory.Snapshot{
		CategoriesBySlug: make(map[string][]directory.Category),
		AreasBySlug:      make(map[string]directory.Area),
	}

	rows, err := s.pool.Query(ctx, `
		SELECT
		  id::text,
		  slug,
		  name,
		  COALESCE(parent_id::text, ''),
		  COALESCE(display_order, 0)
		FROM categories
		ORDER BY slug, parent_id NULLS FIRST, COALESCE(display_order, 0), name`)
	if err != nil {
		return snapshot, errors.NewStoreError("load categories", err)
	}
	for rows.Next() {
		var category directory.Category
		if err := rows.Scan(&category.ID, &category.Slug, &category.Name, &category.ParentID, &category.DisplayOrder); err != nil {
			rows.Close()
			return snapshot, errors.NewStoreError("scan category", err)
		}
		snapshot.CategoriesBySlug[category.Slug] = append(snapshot.CategoriesBySlug[category.Slug], category)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return snapshot, errors.NewStoreError("load categories", err)
	}

	rows, err = s.pool.Query(ctx, `
		SELECT
		  id::text,
		  slug,
		  name,
		  COALESCE(latitude, 0),
		  COALESCE(longitude, 0)
		FROM areas
		ORDER BY name`)
	if err != nil {
		return snapshot, errors.NewStoreError("load areas", err)
	}
	for rows.Next() {
		var area directory.Area
		if err := rows.Scan(&area.ID, &area.Slug, &area.Name, &area.Latitude, &area.Longitude); err != nil {
			rows.Close()
			return snapshot, errors.NewStoreError("scan area", err)
		}
		snapshot.AreasBySlug[area.Slug] = area
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return snapshot, errors.NewStoreError("load areas", err)
	}

	rows, err = s.pool.Query(ctx, `
		SELECT
		  id::text,
		  COALESCE(slug, ''),
		  name,
		  COALESCE(address, ''),
		  COALESCE(website, ''),
		  COALESCE(area_id::text, '')
		FROM businesses`)
	if err != nil {
		return snapshot, errors.NewStoreError("load businesses", err)
	}
	for rows.Next() {
		var business directory.Business
		if err := rows.Scan(&business.ID, &business.Slug, &business.Name, &business.Address, &business.Website, &business.AreaID); err != nil {
			rows.Close()
			return snapshot, errors.NewStoreError("scan business", err)
		}
		snapshot.Businesses = append(snapshot.Businesses, business)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return snapshot, errors.NewStoreError("load businesses", err)
	}

	return snapshot, nil
}
