package furniture

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atelier-meuble/inventaire-backend/internal/rfid"
	"github.com/atelier-meuble/inventaire-backend/pkg/db"
	"github.com/atelier-meuble/inventaire-backend/pkg/db/models"
	pkgerrors "github.com/atelier-meuble/inventaire-backend/pkg/errors"
	"github.com/atelier-meuble/inventaire-backend/pkg/pagination"
	"gorm.io/gorm"
)

type furnitureRepository interface {
	WithTx(tx *gorm.DB) *Repository
	FindPage(ctx context.Context, offset, limit int) ([]models.Furniture, int64, error)
	FindByID(ctx context.Context, id int64) (*models.Furniture, error)
	FindByBarcode(ctx context.Context, barcode string) (*models.Furniture, error)
	Search(ctx context.Context, filter Filter, offset, limit int) ([]models.Furniture, int64, error)
	Create(ctx context.Context, furniture *models.Furniture) error
	Save(ctx context.Context, furniture *models.Furniture) error
	Delete(ctx context.Context, id int64) (bool, error)
	LocationExists(ctx context.Context, id int64) (bool, error)
}

// Service exposes furniture operations.
type Service interface {
	GetAll(ctx context.Context, page pagination.Params) ([]FurnitureDTO, int64, error)
	GetByID(ctx context.Context, id int64) (*FurnitureDTO, error)
	GetByBarcode(ctx context.Context, barcode string) (*FurnitureDTO, error)
	Search(ctx context.Context, filter Filter, page pagination.Params) ([]FurnitureDTO, int64, error)
	Create(ctx context.Context, input CreateFurnitureInput) (*FurnitureDTO, error)
	Update(ctx context.Context, id int64, input UpdateFurnitureInput) (*FurnitureDTO, error)
	Delete(ctx context.Context, id int64) error
	AssignLocation(ctx context.Context, furnitureID, locationID int64) (*FurnitureDTO, error)
	AssignRfidTag(ctx context.Context, furnitureID, rfidTagID int64) (*FurnitureDTO, error)
	GetPosition(ctx context.Context, id int64) (*PositionDTO, error)
}

type service struct {
	repo     furnitureRepository
	dbClient *db.Client
	resolver rfid.Resolver
	cache    BarcodeCache
}

// NewService builds a furniture service. The cache is optional; a nil cache
// means every barcode lookup hits the store.
func NewService(repo furnitureRepository, dbClient *db.Client, resolver rfid.Resolver, cache BarcodeCache) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("furniture repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("rfid resolver required")
	}
	return &service{repo: repo, dbClient: dbClient, resolver: resolver, cache: cache}, nil
}

func (s *service) GetAll(ctx context.Context, page pagination.Params) ([]FurnitureDTO, int64, error) {
	page = page.Normalize()
	rows, total, err := s.repo.FindPage(ctx, page.Offset(), page.PerPage)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list furniture")
	}
	return toDTOs(rows), total, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*FurnitureDTO, error) {
	furniture, err := s.loadFurniture(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := FromModel(furniture)
	return &dto, nil
}

func (s *service) GetByBarcode(ctx context.Context, barcode string) (*FurnitureDTO, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "barcode is required")
	}

	if s.cache != nil {
		if id, ok := s.cache.GetID(ctx, barcode); ok {
			furniture, err := s.repo.FindByID(ctx, id)
			if err == nil && furniture.Barcode != nil && *furniture.Barcode == barcode {
				dto := FromModel(furniture)
				return &dto, nil
			}
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load furniture")
			}
			// Stale entry: the row is gone or no longer carries this
			// barcode. Fall through to the store lookup.
			s.cache.Invalidate(ctx, barcode)
		}
	}

	furniture, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "furniture not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load furniture by barcode")
	}
	if s.cache != nil {
		s.cache.StoreID(ctx, barcode, furniture.ID)
	}

	dto := FromModel(furniture)
	return &dto, nil
}

func (s *service) Search(ctx context.Context, filter Filter, page pagination.Params) ([]FurnitureDTO, int64, error) {
	page = page.Normalize()
	rows, total, err := s.repo.Search(ctx, filter, page.Offset(), page.PerPage)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search furniture")
	}
	return toDTOs(rows), total, nil
}

func (s *service) Create(ctx context.Context, input CreateFurnitureInput) (*FurnitureDTO, error) {
	reference := strings.TrimSpace(input.Reference)
	designation := strings.TrimSpace(input.Designation)
	if reference == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reference is required")
	}
	if designation == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "designation is required")
	}

	furniture := &models.Furniture{
		Reference:    reference,
		Designation:  designation,
		Family:       input.Family,
		Type:         input.Type,
		Supplier:     input.Supplier,
		CurrentUser:  input.CurrentUser,
		Barcode:      normalizeOptional(input.Barcode),
		SerialNumber: input.SerialNumber,
		Notes:        input.Notes,
		Site:         input.Site,
		DeliveryDate: input.DeliveryDate,
		PositionX:    input.PositionX,
		PositionY:    input.PositionY,
		LocationID:   input.LocationID,
	}

	// The location existence check and the insert share one transaction so a
	// concurrent location delete cannot slip a dangling reference in.
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if input.LocationID != nil {
			exists, err := repo.LocationExists(ctx, *input.LocationID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check location")
			}
			if !exists {
				return pkgerrors.New(pkgerrors.CodeLocationNotFound, "location not found").
					WithDetails(map[string]any{"locationId": *input.LocationID})
			}
		}
		if err := repo.Create(ctx, furniture); err != nil {
			return mapWriteError(err, "create furniture")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, furniture.ID)
}

func (s *service) Update(ctx context.Context, id int64, input UpdateFurnitureInput) (*FurnitureDTO, error) {
	if input.ID != id {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payload id does not match path id")
	}
	reference := strings.TrimSpace(input.Reference)
	designation := strings.TrimSpace(input.Designation)
	if reference == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reference is required")
	}
	if designation == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "designation is required")
	}

	var staleBarcode *string
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		furniture, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "furniture not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load furniture")
		}
		staleBarcode = furniture.Barcode

		if input.LocationID != nil {
			exists, err := repo.LocationExists(ctx, *input.LocationID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check location")
			}
			if !exists {
				return pkgerrors.New(pkgerrors.CodeLocationNotFound, "location not found").
					WithDetails(map[string]any{"locationId": *input.LocationID})
			}
		}

		furniture.Reference = reference
		furniture.Designation = designation
		furniture.Family = input.Family
		furniture.Type = input.Type
		furniture.Supplier = input.Supplier
		furniture.CurrentUser = input.CurrentUser
		furniture.Barcode = normalizeOptional(input.Barcode)
		furniture.SerialNumber = input.SerialNumber
		furniture.Notes = input.Notes
		furniture.Site = input.Site
		furniture.DeliveryDate = input.DeliveryDate
		furniture.PositionX = input.PositionX
		furniture.PositionY = input.PositionY
		furniture.LocationID = input.LocationID
		now := time.Now().UTC()
		furniture.UpdatedAt = &now

		if err := repo.Save(ctx, furniture); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "furniture not found")
			}
			return mapWriteError(err, "update furniture")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateBarcodes(ctx, staleBarcode, input.Barcode)
	return s.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	var staleBarcode *string
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		furniture, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "furniture not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load furniture")
		}
		staleBarcode = furniture.Barcode

		deleted, err := repo.Delete(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete furniture")
		}
		if !deleted {
			return pkgerrors.New(pkgerrors.CodeNotFound, "furniture not found")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateBarcodes(ctx, staleBarcode, nil)
	return nil
}

// AssignLocation verifies both sides and commits the move as one transaction.
// The failure is deliberately coarse: callers learn the assignment failed, not
// which entity was missing. Stored position coordinates are left untouched.
func (s *service) AssignLocation(ctx context.Context, furnitureID, locationID int64) (*FurnitureDTO, error) {
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		furniture, err := repo.FindByID(ctx, furnitureID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeOperationFailed, "location assignment failed")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load furniture")
		}

		exists, err := repo.LocationExists(ctx, locationID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check location")
		}
		if !exists {
			return pkgerrors.New(pkgerrors.CodeOperationFailed, "location assignment failed")
		}

		furniture.LocationID = &locationID
		now := time.Now().UTC()
		furniture.UpdatedAt = &now
		if err := repo.Save(ctx, furniture); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeOperationFailed, "location assignment failed")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save assignment")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, furnitureID)
}

// AssignRfidTag mirrors AssignLocation with the same coarse failure. The tag
// registry is an external collaborator, so resolver faults surface as
// dependency errors rather than assignment failures.
func (s *service) AssignRfidTag(ctx context.Context, furnitureID, rfidTagID int64) (*FurnitureDTO, error) {
	var furniture *models.Furniture
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		row, err := repo.FindByID(ctx, furnitureID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeOperationFailed, "rfid assignment failed")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load furniture")
		}

		known, err := s.resolver.Resolve(ctx, rfidTagID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve rfid tag")
		}
		if !known {
			return pkgerrors.New(pkgerrors.CodeOperationFailed, "rfid assignment failed")
		}

		row.RfidTagID = &rfidTagID
		now := time.Now().UTC()
		row.UpdatedAt = &now
		if err := repo.Save(ctx, row); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeOperationFailed, "rfid assignment failed")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save assignment")
		}
		furniture = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	dto := FromModel(furniture)
	return &dto, nil
}

func (s *service) GetPosition(ctx context.Context, id int64) (*PositionDTO, error) {
	furniture, err := s.loadFurniture(ctx, id)
	if err != nil {
		return nil, err
	}
	position := PositionFromModel(furniture)
	return &position, nil
}

func (s *service) loadFurniture(ctx context.Context, id int64) (*models.Furniture, error) {
	furniture, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "furniture not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load furniture")
	}
	return furniture, nil
}

func (s *service) invalidateBarcodes(ctx context.Context, barcodes ...*string) {
	if s.cache == nil {
		return
	}
	for _, barcode := range barcodes {
		if barcode != nil && *barcode != "" {
			s.cache.Invalidate(ctx, *barcode)
		}
	}
}

func mapWriteError(err error, action string) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "reference or barcode already in use")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}

func toDTOs(rows []models.Furniture) []FurnitureDTO {
	dtos := make([]FurnitureDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, FromModel(&rows[i]))
	}
	return dtos
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
