package locations

import (
	"context"
	"fmt"

	"github.com/atelier-meuble/inventaire-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository handles location persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to location operations.
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

// FindAll returns every location in store order.
func (r *Repository) FindAll(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	if err := r.db.WithContext(ctx).Order("id").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// FindByID loads a location by its id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Location, error) {
	var location models.Location
	if err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

// FindByBuilding returns every location in the named building. Building names
// are low-cardinality identifiers, so the match is case-insensitive exact.
func (r *Repository) FindByBuilding(ctx context.Context, name string) ([]models.Location, error) {
	var locations []models.Location
	if err := r.db.WithContext(ctx).
		Where("lower(building_name) = lower(?)", name).
		Order("id").
		Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// Create persists a new location row.
func (r *Repository) Create(ctx context.Context, location *models.Location) error {
	if location == nil {
		return fmt.Errorf("location is required")
	}
	return r.db.WithContext(ctx).Create(location).Error
}

// Save overwrites the provided location row. It runs a plain UPDATE and
// reports gorm.ErrRecordNotFound when the row no longer exists, so a write
// racing a delete cannot re-insert the row.
func (r *Repository) Save(ctx context.Context, location *models.Location) error {
	if location == nil {
		return fmt.Errorf("location is required")
	}
	res := r.db.WithContext(ctx).
		Model(location).
		Select("*").
		Omit("id", "created_at").
		Updates(location)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the location row and reports whether it existed.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Location{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CountFurniture returns how many furniture rows currently reference the
// location.
func (r *Repository) CountFurniture(ctx context.Context, locationID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Furniture{}).
		Where("location_id = ?", locationID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindFurniture returns the derived collection of furniture hosted at the
// location. The list is computed from furnitures.location_id, never stored.
func (r *Repository) FindFurniture(ctx context.Context, locationID int64) ([]models.Furniture, error) {
	var furnitures []models.Furniture
	if err := r.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("id").
		Find(&furnitures).Error; err != nil {
		return nil, err
	}
	return furnitures, nil
}
