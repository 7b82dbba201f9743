package locations

import (
	"time"

	"github.com/atelier-meuble/inventaire-backend/pkg/db/models"
)

// LocationDTO is the wire shape of a location.
type LocationDTO struct {
	ID           int64      `json:"id"`
	BuildingName string     `json:"buildingName"`
	Floor        *string    `json:"floor,omitempty"`
	Room         *string    `json:"room,omitempty"`
	Zone         *string    `json:"zone,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Latitude     *float64   `json:"latitude,omitempty"`
	Longitude    *float64   `json:"longitude,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// FurnitureSummaryDTO is the trimmed furniture shape returned when listing
// what a location hosts.
type FurnitureSummaryDTO struct {
	ID          int64      `json:"id"`
	Reference   string     `json:"reference"`
	Designation string     `json:"designation"`
	Family      *string    `json:"family,omitempty"`
	Barcode     *string    `json:"barcode,omitempty"`
	CurrentUser *string    `json:"currentUser,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// CreateLocationInput carries the caller-supplied fields for a new location.
type CreateLocationInput struct {
	BuildingName string   `json:"buildingName" validate:"required,min=1,max=255"`
	Floor        *string  `json:"floor" validate:"omitempty,max=100"`
	Room         *string  `json:"room" validate:"omitempty,max=100"`
	Zone         *string  `json:"zone" validate:"omitempty,max=100"`
	Description  *string  `json:"description" validate:"omitempty,max=2000"`
	Latitude     *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

// UpdateLocationInput carries a full replacement of a location's mutable
// fields.
type UpdateLocationInput struct {
	ID           int64    `json:"id" validate:"required,gt=0"`
	BuildingName string   `json:"buildingName" validate:"required,min=1,max=255"`
	Floor        *string  `json:"floor" validate:"omitempty,max=100"`
	Room         *string  `json:"room" validate:"omitempty,max=100"`
	Zone         *string  `json:"zone" validate:"omitempty,max=100"`
	Description  *string  `json:"description" validate:"omitempty,max=2000"`
	Latitude     *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

// FromModel maps a stored location to its DTO.
func FromModel(m *models.Location) LocationDTO {
	return LocationDTO{
		ID:           m.ID,
		BuildingName: m.BuildingName,
		Floor:        m.Floor,
		Room:         m.Room,
		Zone:         m.Zone,
		Description:  m.Description,
		Latitude:     m.Latitude,
		Longitude:    m.Longitude,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FurnitureSummaryFromModel maps a stored furniture row to its summary shape.
func FurnitureSummaryFromModel(m *models.Furniture) FurnitureSummaryDTO {
	return FurnitureSummaryDTO{
		ID:          m.ID,
		Reference:   m.Reference,
		Designation: m.Designation,
		Family:      m.Family,
		Barcode:     m.Barcode,
		CurrentUser: m.CurrentUser,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
