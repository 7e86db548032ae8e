// internal/store/brands.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/brandlens-ai/brandlens-workflows/internal/models"
)

// BrandRepo reads and writes monitored brands and their competitor sets.
type BrandRepo struct {
	db *sqlx.DB
}

func NewBrandRepo(db *sqlx.DB) *BrandRepo {
	return &BrandRepo{db: db}
}

// GetByID returns the brand with its competitor list, or nil when the brand
// does not exist.
func (r *BrandRepo) GetByID(ctx context.Context, brandID uuid.UUID) (*models.Brand, error) {
	var brand models.Brand
	err := r.db.GetContext(ctx, &brand,
		`SELECT id, name, domain, category, is_active, created_at
		 FROM brands WHERE id = $1`, brandID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get brand %s: %w", brandID, err)
	}

	competitors, err := r.competitorsOf(ctx, brandID)
	if err != nil {
		return nil, err
	}
	brand.Competitors = competitors

	return &brand, nil
}

// ListActive returns all brands with monitoring enabled, competitor lists
// included.
func (r *BrandRepo) ListActive(ctx context.Context) ([]*models.Brand, error) {
	var brands []*models.Brand
	err := r.db.SelectContext(ctx, &brands,
		`SELECT id, name, domain, category, is_active, created_at
		 FROM brands WHERE is_active = true ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active brands: %w", err)
	}

	for _, brand := range brands {
		competitors, err := r.competitorsOf(ctx, brand.ID)
		if err != nil {
			return nil, err
		}
		brand.Competitors = competitors
	}

	return brands, nil
}

// Create inserts a brand and its competitor rows in one transaction.
func (r *BrandRepo) Create(ctx context.Context, brand *models.Brand) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO brands (id, name, domain, category, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		brand.ID, brand.Name, brand.Domain, brand.Category, brand.IsActive, brand.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert brand %s: %w", brand.Name, err)
	}

	for _, competitor := range brand.Competitors {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO brand_competitors (brand_id, competitor_name) VALUES ($1, $2)`,
			brand.ID, competitor)
		if err != nil {
			return fmt.Errorf("failed to insert competitor %s for brand %s: %w", competitor, brand.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateCategory sets the brand's category after classification.
func (r *BrandRepo) UpdateCategory(ctx context.Context, brandID uuid.UUID, category string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE brands SET category = $1 WHERE id = $2`, category, brandID)
	if err != nil {
		return fmt.Errorf("failed to update category for brand %s: %w", brandID, err)
	}
	return nil
}

func (r *BrandRepo) competitorsOf(ctx context.Context, brandID uuid.UUID) ([]string, error) {
	var competitors []string
	err := r.db.SelectContext(ctx, &competitors,
		`SELECT competitor_name FROM brand_competitors WHERE brand_id = $1 ORDER BY competitor_name`,
		brandID)
	if err != nil {
		return nil, fmt.Errorf("failed to get competitors for brand %s: %w", brandID, err)
	}
	return competitors, nil
}
