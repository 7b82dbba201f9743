package locations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atelier-meuble/inventaire-backend/pkg/db"
	"github.com/atelier-meuble/inventaire-backend/pkg/db/models"
	pkgerrors "github.com/atelier-meuble/inventaire-backend/pkg/errors"
	"gorm.io/gorm"
)

type locationRepository interface {
	WithTx(tx *gorm.DB) *Repository
	FindAll(ctx context.Context) ([]models.Location, error)
	FindByID(ctx context.Context, id int64) (*models.Location, error)
	FindByBuilding(ctx context.Context, name string) ([]models.Location, error)
	Create(ctx context.Context, location *models.Location) error
	Save(ctx context.Context, location *models.Location) error
	Delete(ctx context.Context, id int64) (bool, error)
	CountFurniture(ctx context.Context, locationID int64) (int64, error)
	FindFurniture(ctx context.Context, locationID int64) ([]models.Furniture, error)
}

// Service exposes location operations.
type Service interface {
	GetAll(ctx context.Context) ([]LocationDTO, error)
	GetByID(ctx context.Context, id int64) (*LocationDTO, error)
	GetByBuilding(ctx context.Context, buildingName string) ([]LocationDTO, error)
	GetFurnitureAtLocation(ctx context.Context, id int64) ([]FurnitureSummaryDTO, error)
	Create(ctx context.Context, input CreateLocationInput) (*LocationDTO, error)
	Update(ctx context.Context, id int64, input UpdateLocationInput) (*LocationDTO, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo     locationRepository
	dbClient *db.Client
}

// NewService builds a location service with the provided repository.
func NewService(repo locationRepository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("location repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) GetAll(ctx context.Context) ([]LocationDTO, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list locations")
	}
	dtos := make([]LocationDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, FromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*LocationDTO, error) {
	location, err := s.loadLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := FromModel(location)
	return &dto, nil
}

func (s *service) GetByBuilding(ctx context.Context, buildingName string) ([]LocationDTO, error) {
	name := strings.TrimSpace(buildingName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "building name is required")
	}
	rows, err := s.repo.FindByBuilding(ctx, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list locations by building")
	}
	dtos := make([]LocationDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, FromModel(&rows[i]))
	}
	return dtos, nil
}

// GetFurnitureAtLocation returns the furniture hosted at the location. An
// existing location with no furniture yields an empty list, never an error.
func (s *service) GetFurnitureAtLocation(ctx context.Context, id int64) ([]FurnitureSummaryDTO, error) {
	if _, err := s.loadLocation(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.repo.FindFurniture(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list furniture at location")
	}
	dtos := make([]FurnitureSummaryDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, FurnitureSummaryFromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) Create(ctx context.Context, input CreateLocationInput) (*LocationDTO, error) {
	buildingName := strings.TrimSpace(input.BuildingName)
	if buildingName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "building name is required")
	}

	location := &models.Location{
		BuildingName: buildingName,
		Floor:        input.Floor,
		Room:         input.Room,
		Zone:         input.Zone,
		Description:  input.Description,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
	}
	if err := s.repo.Create(ctx, location); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create location")
	}

	dto := FromModel(location)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateLocationInput) (*LocationDTO, error) {
	if input.ID != id {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payload id does not match path id")
	}
	buildingName := strings.TrimSpace(input.BuildingName)
	if buildingName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "building name is required")
	}

	location, err := s.loadLocation(ctx, id)
	if err != nil {
		return nil, err
	}

	location.BuildingName = buildingName
	location.Floor = input.Floor
	location.Room = input.Room
	location.Zone = input.Zone
	location.Description = input.Description
	location.Latitude = input.Latitude
	location.Longitude = input.Longitude
	now := time.Now().UTC()
	location.UpdatedAt = &now

	if err := s.repo.Save(ctx, location); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update location")
	}

	dto := FromModel(location)
	return &dto, nil
}

// Delete refuses to remove a location that still hosts furniture. The count
// and the delete run in one transaction so an assignment racing the delete
// cannot leave a dangling reference.
func (s *service) Delete(ctx context.Context, id int64) error {
	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		count, err := repo.CountFurniture(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count furniture at location")
		}
		if count > 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "location still hosts furniture")
		}

		deleted, err := repo.Delete(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete location")
		}
		if !deleted {
			return pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
		}
		return nil
	})
}

func (s *service) loadLocation(ctx context.Context, id int64) (*models.Location, error) {
	location, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load location")
	}
	return location, nil
}
