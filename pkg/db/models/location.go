package models

import "time"

// Location is a place inside a site that can host furniture: a building,
// optionally narrowed down to a floor, room and zone.
//
// The furniture hosted at a location is never stored on the row; it is
// derived by querying furnitures.location_id.
type Location struct {
	ID           int64      `gorm:"column:id;primaryKey;autoIncrement"`
	BuildingName string     `gorm:"column:building_name;not null"`
	Floor        *string    `gorm:"column:floor"`
	Room         *string    `gorm:"column:room"`
	Zone         *string    `gorm:"column:zone"`
	Description  *string    `gorm:"column:description"`
	Latitude     *float64   `gorm:"column:latitude"`
	Longitude    *float64   `gorm:"column:longitude"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    *time.Time `gorm:"column:updated_at"`
}

func (Location) TableName() string {
	return "locations"
}
