package furniture

import (
	"context"
	"fmt"
	"strings"

	"github.com/atelier-meuble/inventaire-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository handles furniture persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to furniture operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindPage returns one page of furniture with its one-hop location join, plus
// the total row count.
func (r *Repository) FindPage(ctx context.Context, offset, limit int) ([]models.Furniture, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Furniture{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var furnitures []models.Furniture
	query := r.db.WithContext(ctx).Preload("Location").Order("id")
	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}
	if err := query.Find(&furnitures).Error; err != nil {
		return nil, 0, err
	}
	return furnitures, total, nil
}

// FindByID loads a furniture row and its location by id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Furniture, error) {
	var furniture models.Furniture
	if err := r.db.WithContext(ctx).Preload("Location").First(&furniture, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &furniture, nil
}

// FindByBarcode loads a furniture row by its unique barcode.
func (r *Repository) FindByBarcode(ctx context.Context, barcode string) (*models.Furniture, error) {
	var furniture models.Furniture
	if err := r.db.WithContext(ctx).Preload("Location").First(&furniture, "barcode = ?", barcode).Error; err != nil {
		return nil, err
	}
	return &furniture, nil
}

// Search returns the page of furniture matching every supplied criterion.
// Reference matches as a case-insensitive substring; family and site match as
// case-insensitive facets.
func (r *Repository) Search(ctx context.Context, filter Filter, offset, limit int) ([]models.Furniture, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Furniture{})
	if filter.Reference != nil {
		pattern := "%" + escapeLike(*filter.Reference) + "%"
		base = base.Where("lower(reference) LIKE lower(?) ESCAPE '\\'", pattern)
	}
	if filter.Family != nil {
		base = base.Where("lower(family) = lower(?)", *filter.Family)
	}
	if filter.Site != nil {
		base = base.Where("lower(site) = lower(?)", *filter.Site)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var furnitures []models.Furniture
	query := base.Preload("Location").Order("id")
	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}
	if err := query.Find(&furnitures).Error; err != nil {
		return nil, 0, err
	}
	return furnitures, total, nil
}

// Create persists a new furniture row.
func (r *Repository) Create(ctx context.Context, furniture *models.Furniture) error {
	if furniture == nil {
		return fmt.Errorf("furniture is required")
	}
	return r.db.WithContext(ctx).Create(furniture).Error
}

// Save overwrites the provided furniture row. It runs a plain UPDATE and
// reports gorm.ErrRecordNotFound when the row no longer exists, so a write
// racing a delete cannot re-insert the row.
func (r *Repository) Save(ctx context.Context, furniture *models.Furniture) error {
	if furniture == nil {
		return fmt.Errorf("furniture is required")
	}
	res := r.db.WithContext(ctx).
		Model(furniture).
		Select("*").
		Omit("Location", "id", "created_at").
		Updates(furniture)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the furniture row and reports whether it existed.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Furniture{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// LocationExists reports whether a location row with the id is present.
func (r *Repository) LocationExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Location{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
