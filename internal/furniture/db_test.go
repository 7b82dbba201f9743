package furniture

import (
	"context"
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
	location := &models.Location{BuildingName: buildingName}
	if err := conn.Create(location).Error; err != nil {
		t.Fatalf("create location: %v", err)
	}
	return location
}

type fakeResolver struct {
	known map[int64]bool
	err   error
}

func (f *fakeResolver) Resolve(_ context.Context, tagID int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.known[tagID], nil
}

type memoryBarcodeCache struct {
	ids    map[string]int64
	hits   int
	misses int
}

func newMemoryBarcodeCache() *memoryBarcodeCache {
	return &memoryBarcodeCache{ids: map[string]int64{}}
}

func (c *memoryBarcodeCache) GetID(_ context.Context, barcode string) (int64, bool) {
	id, ok := c.ids[barcode]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return id, ok
}

func (c *memoryBarcodeCache) StoreID(_ context.Context, barcode string, id int64) {
	c.ids[barcode] = id
}

func (c *memoryBarcodeCache) Invalidate(_ context.Context, barcode string) {
	delete(c.ids, barcode)
}

// lossyBarcodeCache keeps entries forever, like a redis node that stopped
// accepting DEL commands.
type lossyBarcodeCache struct {
	*memoryBarcodeCache
}

func (c *lossyBarcodeCache) Invalidate(context.Context, string) {}
