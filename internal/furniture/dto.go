package furniture

import (
	"time"

	"github.com/atelier-meuble/inventaire-backend/internal/locations"
	"github.com/atelier-meuble/inventaire-backend/pkg/db/models"
)

// FurnitureDTO is the wire shape of a furniture item, enriched with its
// one-hop location join when the item is placed.
type FurnitureDTO struct {
	ID           int64                  `json:"id"`
	Reference    string                 `json:"reference"`
	Designation  string                 `json:"designation"`
	Family       *string                `json:"family,omitempty"`
	Type         *string                `json:"type,omitempty"`
	Supplier     *string                `json:"supplier,omitempty"`
	CurrentUser  *string                `json:"currentUser,omitempty"`
	Barcode      *string                `json:"barcode,omitempty"`
	SerialNumber *string                `json:"serialNumber,omitempty"`
	Notes        *string                `json:"notes,omitempty"`
	Site         *string                `json:"site,omitempty"`
	DeliveryDate *time.Time             `json:"deliveryDate,omitempty"`
	PositionX    *float64               `json:"positionX,omitempty"`
	PositionY    *float64               `json:"positionY,omitempty"`
	LocationID   *int64                 `json:"locationId,omitempty"`
	RfidTagID    *int64                 `json:"rfidTagId,omitempty"`
	Location     *locations.LocationDTO `json:"location,omitempty"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    *time.Time             `json:"updatedAt,omitempty"`
}

// PositionDTO reports a furniture item's map coordinates. Set is false when
// the item has never been positioned; that is not an error.
type PositionDTO struct {
	Set bool     `json:"set"`
	X   *float64 `json:"x,omitempty"`
	Y   *float64 `json:"y,omitempty"`
}

// Filter narrows a furniture search. Nil criteria are wildcards; supplied
// criteria must all match.
type Filter struct {
	Reference *string
	Family    *string
	Site      *string
}

// IsEmpty reports whether no criterion was supplied.
func (f Filter) IsEmpty() bool {
	return f.Reference == nil && f.Family == nil && f.Site == nil
}

// CreateFurnitureInput carries the caller-supplied fields for a new item.
type CreateFurnitureInput struct {
	Reference    string     `json:"reference" validate:"required,min=1,max=255"`
	Designation  string     `json:"designation" validate:"required,min=1,max=255"`
	Family       *string    `json:"family" validate:"omitempty,max=100"`
	Type         *string    `json:"type" validate:"omitempty,max=100"`
	Supplier     *string    `json:"supplier" validate:"omitempty,max=255"`
	CurrentUser  *string    `json:"currentUser" validate:"omitempty,max=255"`
	Barcode      *string    `json:"barcode" validate:"omitempty,max=100"`
	SerialNumber *string    `json:"serialNumber" validate:"omitempty,max=100"`
	Notes        *string    `json:"notes" validate:"omitempty,max=2000"`
	Site         *string    `json:"site" validate:"omitempty,max=255"`
	DeliveryDate *time.Time `json:"deliveryDate"`
	PositionX    *float64   `json:"positionX"`
	PositionY    *float64   `json:"positionY"`
	LocationID   *int64     `json:"locationId" validate:"omitempty,gt=0"`
}

// UpdateFurnitureInput carries a full replacement of an item's mutable fields.
type UpdateFurnitureInput struct {
	ID           int64      `json:"id" validate:"required,gt=0"`
	Reference    string     `json:"reference" validate:"required,min=1,max=255"`
	Designation  string     `json:"designation" validate:"required,min=1,max=255"`
	Family       *string    `json:"family" validate:"omitempty,max=100"`
	Type         *string    `json:"type" validate:"omitempty,max=100"`
	Supplier     *string    `json:"supplier" validate:"omitempty,max=255"`
	CurrentUser  *string    `json:"currentUser" validate:"omitempty,max=255"`
	Barcode      *string    `json:"barcode" validate:"omitempty,max=100"`
	SerialNumber *string    `json:"serialNumber" validate:"omitempty,max=100"`
	Notes        *string    `json:"notes" validate:"omitempty,max=2000"`
	Site         *string    `json:"site" validate:"omitempty,max=255"`
	DeliveryDate *time.Time `json:"deliveryDate"`
	PositionX    *float64   `json:"positionX"`
	PositionY    *float64   `json:"positionY"`
	LocationID   *int64     `json:"locationId" validate:"omitempty,gt=0"`
}

// FromModel maps a stored furniture row, including its preloaded location, to
// its DTO.
func FromModel(m *models.Furniture) FurnitureDTO {
	dto := FurnitureDTO{
		ID:           m.ID,
		Reference:    m.Reference,
		Designation:  m.Designation,
		Family:       m.Family,
		Type:         m.Type,
		Supplier:     m.Supplier,
		CurrentUser:  m.CurrentUser,
		Barcode:      m.Barcode,
		SerialNumber: m.SerialNumber,
		Notes:        m.Notes,
		Site:         m.Site,
		DeliveryDate: m.DeliveryDate,
		PositionX:    m.PositionX,
		PositionY:    m.PositionY,
		LocationID:   m.LocationID,
		RfidTagID:    m.RfidTagID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Location != nil {
		location := locations.FromModel(m.Location)
		dto.Location = &location
	}
	return dto
}

// PositionFromModel maps the stored coordinate pair to its DTO.
func PositionFromModel(m *models.Furniture) PositionDTO {
	if m.PositionX == nil || m.PositionY == nil {
		return PositionDTO{}
	}
	return PositionDTO{Set: true, X: m.PositionX, Y: m.PositionY}
}
