package inventory

import (
	"context"

	"github.com/atelier-meuble/inventaire-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository handles the collection-level reads behind exports and stats.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to inventory reads.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindAllOrdered streams-friendly full read of the furniture collection.
func (r *Repository) FindAllOrdered(ctx context.Context) ([]models.Furniture, error) {
	var furnitures []models.Furniture
	if err := r.db.WithContext(ctx).Order("id").Find(&furnitures).Error; err != nil {
		return nil, err
	}
	return furnitures, nil
}

// CountAll returns the furniture total.
func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Furniture{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type facetCount struct {
	Value string
	Count int64
}

// CountByFamily groups the collection by family, skipping empty values.
func (r *Repository) CountByFamily(ctx context.Context) (map[string]int64, error) {
	return r.countFacet(ctx, "family")
}

// CountBySite groups the collection by site, skipping empty values.
func (r *Repository) CountBySite(ctx context.Context) (map[string]int64, error) {
	return r.countFacet(ctx, "site")
}

func (r *Repository) countFacet(ctx context.Context, column string) (map[string]int64, error) {
	var rows []facetCount
	if err := r.db.WithContext(ctx).
		Model(&models.Furniture{}).
		Select(column + " AS value, count(*) AS count").
		Where(column + " IS NOT NULL AND " + column + " <> ''").
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Value] = row.Count
	}
	return counts, nil
}
