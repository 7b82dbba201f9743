package models

import "time"

// Furniture is a physical inventory item. Reference is the business key and
// is unique across the whole inventory; Barcode is unique whenever set.
//
// LocationID and RfidTagID are nullable cross-entity references: nil means
// unlocated / untagged. PositionX/PositionY are floor-plan coordinates that
// only carry meaning together with a location, but are stored independently
// of it.
//
// UpdatedAt is service-managed: nil until the first successful mutation.
type Furniture struct {
	ID           int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Reference    string     `gorm:"column:reference;not null;uniqueIndex"`
	Designation  string     `gorm:"column:designation;not null"`
	Family       *string    `gorm:"column:family"`
	Type         *string    `gorm:"column:ftype"`
	Supplier     *string    `gorm:"column:supplier"`
	CurrentUser  *string    `gorm:"column:assigned_user"`
	Barcode      *string    `gorm:"column:barcode;uniqueIndex"`
	SerialNumber *string    `gorm:"column:serial_number"`
	Notes        *string    `gorm:"column:notes"`
	Site         *string    `gorm:"column:site"`
	DeliveryDate *time.Time `gorm:"column:delivery_date"`
	PositionX    *float64   `gorm:"column:position_x"`
	PositionY    *float64   `gorm:"column:position_y"`
	LocationID   *int64     `gorm:"column:location_id;index"`
	RfidTagID    *int64     `gorm:"column:rfid_tag_id"`
	Location     *Location  `gorm:"foreignKey:LocationID"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (Furniture) TableName() string {
	return "furnitures"
}
