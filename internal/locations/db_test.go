package locations

import (
	"fmt"
	"testing"

	"github.com/atelier-meuble/inventaire-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Location{}, &models.Furniture{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return conn
}

func mustCreateTestLocation(t *testing.T, conn *gorm.DB, buildingName string) *models.Location {
	t.Helper()
	floor := "1"
	location := &models.Location{
		BuildingName: buildingName,
		Floor:        &floor,
	}
	if err := conn.Create(location).Error; err != nil {
		t.Fatalf("create location: %v", err)
	}
	return location
}

func mustCreateTestFurniture(t *testing.T, conn *gorm.DB, reference string, locationID *int64) *models.Furniture {
	t.Helper()
	furniture := &models.Furniture{
		Reference:   reference,
		Designation: "Test furniture",
		LocationID:  locationID,
	}
	if err := conn.Create(furniture).Error; err != nil {
		t.Fatalf("create furniture: %v", err)
	}
	return furniture
}
