package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/calviaapp/bizdir/internal/directory"
	"github.com/calviaapp/bizdir/internal/identity"
	"github.com/calviaapp/bizdir/internal/normalize"
	"github.com/calviaapp/bizdir/internal/taxonomy"
	"github.com/calviaapp/bizdir/pkg/errors"
)

// SyncResult counts the outcome of a cross-catalog sync pass.
type SyncResult struct {
	Upserted     int
	Materialized int
}

// syncedBusiness is one stored business joined with its source category
// and area, as projected into the listings catalog.
type syncedBusiness struct {
	ID           string
	Name         string
	Slug         string
	Description  string
	Phone        string
	Email        string
	Website      string
	Address      string
	ImageURL     string
	SocialLinks  []byte
	Notes        string
	CategorySlug string
	CategoryName string
	AreaName     string
}

// SyncListings projects every stored business into the listings catalog
// (additive upsert). Source categories resolve onto the listings
// taxonomy through the static slug map; a missing target category is
// materialized on demand with a stable id, so a second run finds it and
// inserts nothing new.
func (s *Store) SyncListings(ctx context.Context, tables *taxonomy.Tables) (SyncResult, error) {
	var result SyncResult

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return result, errors.NewStoreError("begin sync", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	categories, err := loadSyncCategories(ctx, tx)
	if err != nil {
		return result, err
	}

	businesses, err := loadSyncBusinesses(ctx, tx)
	if err != nil {
		return result, err
	}

	for _, business := range businesses {
		sourceSlug := business.CategorySlug
		if sourceSlug == "" {
			sourceSlug = "imported"
		}

		targetCategoryID, materialized, err := resolveOrCreateCategory(ctx, tx, tables, categories, sourceSlug, business.CategoryName)
		if err != nil {
			return result, err
		}
		if materialized {
			result.Materialized++
		}

		listingID := identity.ListingID(business.ID)
		tags := []string{sourceSlug}
		if business.Slug != "" {
			tags = append(tags, normalize.Slugify(business.Slug))
		}

		neighborhood := business.AreaName
		if neighborhood == "" {
			neighborhood = "Calvia"
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO listings (
			  id,
			  category_id,
			  name,
			  description,
			  image_url,
			  contact_phone,
			  contact_email,
			  website_url,
			  address,
			  neighborhood,
			  social_media,
			  tags,
			  is_featured
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, COALESCE($11::jsonb, '{}'::jsonb), $12::text[], false)
			ON CONFLICT (id) DO UPDATE SET
			  category_id = EXCLUDED.category_id,
			  name = EXCLUDED.name,
			  description = EXCLUDED.description,
			  image_url = EXCLUDED.image_url,
			  contact_phone = EXCLUDED.contact_phone,
			  contact_email = EXCLUDED.contact_email,
			  website_url = EXCLUDED.website_url,
			  address = EXCLUDED.address,
			  neighborhood = EXCLUDED.neighborhood,
			  social_media = EXCLUDED.social_media,
			  tags = EXCLUDED.tags`,
			listingID,
			targetCategoryID,
			business.Name,
			business.Description,
			business.ImageURL,
			business.Phone,
			business.Email,
			business.Website,
			business.Address,
			neighborhood,
			business.SocialLinks,
			tags,
		)
		if err != nil {
			return result, errors.NewStoreError("upsert listing", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO business_listing_map (business_id, listing_id)
			VALUES ($1, $2)
			ON CONFLICT (business_id) DO UPDATE SET listing_id = EXCLUDED.listing_id`,
			business.ID, listingID)
		if err != nil {
			return result, errors.NewStoreError("upsert business listing map", err)
		}
		result.Upserted++
	}

	if err := tx.Commit(ctx); err != nil {
		return result, errors.NewStoreError("commit sync", err)
	}
	return result, nil
}

func loadSyncCategories(ctx context.Context, tx pgx.Tx) (map[string][]directory.Category, error) {
	rows, err := tx.Query(ctx, `
		SELECT id::text, slug, name, COALESCE(parent_id::text, '')
		FROM categories`)
	if err != nil {
		return nil, errors.NewStoreError("load sync categories", err)
	}
	defer rows.Close()

	categories := make(map[string][]directory.Category)
	for rows.Next() {
		var category directory.Category
		if err := rows.Scan(&category.ID, &category.Slug, &category.Name, &category.ParentID); err != nil {
			return nil, errors.NewStoreError("scan sync category", err)
		}
		categories[category.Slug] = append(categories[category.Slug], category)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreError("load sync categories", err)
	}
	return categories, nil
}

func loadSyncBusinesses(ctx context.Context, tx pgx.Tx) ([]syncedBusiness, error) {
	rows, err := tx.Query(ctx, `
		SELECT
		  b.id::text,
		  b.name,
		  COALESCE(b.slug, ''),
		  COALESCE(b.description, ''),
		  COALESCE(b.phone, ''),
		  COALESCE(b.email, ''),
		  COALESCE(b.website, ''),
		  COALESCE(b.address, ''),
		  COALESCE(b.image_url, ''),
		  COALESCE(b.social_links, '{}'::jsonb),
		  COALESCE(b.notes, ''),
		  COALESCE(c.slug, ''),
		  COALESCE(c.name, ''),
		  COALESCE(a.name, '')
		FROM businesses b
		JOIN categories c ON c.id = b.category_id
		LEFT JOIN areas a ON a.id = b.area_id
		ORDER BY b.created_at, b.name`)
	if err != nil {
		return nil, errors.NewStoreError("load sync businesses", err)
	}
	defer rows.Close()

	var businesses []syncedBusiness
	for rows.Next() {
		var b syncedBusiness
		if err := rows.Scan(
			&b.ID, &b.Name, &b.Slug, &b.Description, &b.Phone, &b.Email,
			&b.Website, &b.Address, &b.ImageURL, &b.SocialLinks, &b.Notes,
			&b.CategorySlug, &b.CategoryName, &b.AreaName,
		); err != nil {
			return nil, errors.NewStoreError("scan sync business", err)
		}
		businesses = append(businesses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreError("load sync businesses", err)
	}
	return businesses, nil
}

// resolveOrCreateCategory maps a source category slug onto the listings
// taxonomy. Nested subcategories are preferred over top-level pages;
// when the target slug has no entry at all, a category is created under
// the keyword-routed parent bucket with a slug-derived stable id. The
// create is conflict-tolerant, so re-running the sync never inserts the
// category twice.
func resolveOrCreateCategory(
	ctx context.Context,
	tx pgx.Tx,
	tables *taxonomy.Tables,
	categories map[string][]directory.Category,
	sourceSlug, sourceName string,
) (string, bool, error) {
	preferredSlug, ok := tables.Sync.SlugMap[sourceSlug]
	if !ok {
		preferredSlug = sourceSlug
	}

	candidates := categories[preferredSlug]
	for _, candidate := range candidates {
		if !candidate.TopLevel() {
			return candidate.ID, false, nil
		}
	}
	if len(candidates) > 0 {
		return candidates[0].ID, false, nil
	}

	bucket := tables.Bucket(sourceSlug)
	name := materializedName(sourceName, preferredSlug)
	id := identity.SyncCategoryID(preferredSlug, bucket.ID)

	_, err := tx.Exec(ctx, `
		INSERT INTO categories (id, name, slug, description, icon_name, sort_order, display_order, parent_id)
		VALUES ($1, $2, $3, $4, $5, 999, 999, $6)
		ON CONFLICT (slug) DO NOTHING`,
		id, name, preferredSlug, "Auto-created during businesses->listings sync", "folder", bucket.ID)
	if err != nil {
		return "", false, errors.NewStoreError("materialize category", err)
	}

	categories[preferredSlug] = append(categories[preferredSlug], directory.Category{
		ID:       id,
		Slug:     preferredSlug,
		Name:     name,
		ParentID: bucket.ID,
	})
	return id, true, nil
}

// materializedName picks the display name for a materialized category:
// the trimmed source name, or a titleized slug when the source has none.
func materializedName(sourceName, preferredSlug string) string {
	if name := strings.TrimSpace(sourceName); name != "" {
		return name
	}
	return titleizeSlug(preferredSlug)
}

var slugTitler = cases.Title(language.English)

// titleizeSlug turns "water-sports" into "Water Sports" for display
// names of materialized categories.
func titleizeSlug(slug string) string {
	parts := strings.FieldsFunc(strings.ReplaceAll(slug, "_", "-"), func(r rune) bool {
		return r == '-'
	})
	return slugTitler.String(strings.Join(parts, " "))
}
