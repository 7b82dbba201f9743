package locations

import (
	"context"
	"testing"

	"github.com/atelier-meuble/inventaire-backend/pkg/db"
	pkgerrors "github.com/atelier-meuble/inventaire-backend/pkg/errors"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := openTestDB(t)
	svc, err := NewService(NewRepository(conn), db.NewFromConn(conn))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, conn
}

func assertCode(t *testing.T, err error, want pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", want)
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected *errors.Error, got %T: %v", err, err)
	}
	if typed.Code() != want {
		t.Fatalf("expected code %s, got %s (%v)", want, typed.Code(), err)
	}
}

func TestCreateAndGetByID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateLocationInput{BuildingName: "  Batiment A  "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected a store-assigned id")
	}
	if created.BuildingName != "Batiment A" {
		t.Fatalf("expected trimmed building name, got %q", created.BuildingName)
	}
	if created.UpdatedAt != nil {
		t.Fatalf("expected nil updatedAt on a fresh location, got %v", created.UpdatedAt)
	}

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.BuildingName != created.BuildingName {
		t.Fatalf("expected %q, got %q", created.BuildingName, got.BuildingName)
	}
}

func TestCreateRejectsBlankBuildingName(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(context.Background(), CreateLocationInput{BuildingName: "   "})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestGetByIDNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.GetByID(context.Background(), 999)
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestGetByBuildingMatchesCaseInsensitive(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	mustCreateTestLocation(t, conn, "Entrepot Nord")
	mustCreateTestLocation(t, conn, "ENTREPOT NORD")
	mustCreateTestLocation(t, conn, "Entrepot Sud")

	got, err := svc.GetByBuilding(ctx, "entrepot nord")
	if err != nil {
		t.Fatalf("get by building: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(got))
	}

	// Unknown building yields an empty list, not an error.
	empty, err := svc.GetByBuilding(ctx, "Entrepot Ouest")
	if err != nil {
		t.Fatalf("get by unknown building: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty list, got %d", len(empty))
	}
}

func TestGetFurnitureAtLocation(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	occupied := mustCreateTestLocation(t, conn, "Batiment A")
	empty := mustCreateTestLocation(t, conn, "Batiment B")
	mustCreateTestFurniture(t, conn, "CHAISE-01", &occupied.ID)
	mustCreateTestFurniture(t, conn, "TABLE-01", &occupied.ID)
	mustCreateTestFurniture(t, conn, "BUREAU-01", nil)

	t.Run("lists hosted furniture", func(t *testing.T) {
		got, err := svc.GetFurnitureAtLocation(ctx, occupied.ID)
		if err != nil {
			t.Fatalf("get furniture: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 furnitures, got %d", len(got))
		}
		if got[0].Reference != "CHAISE-01" || got[1].Reference != "TABLE-01" {
			t.Fatalf("unexpected references: %q, %q", got[0].Reference, got[1].Reference)
		}
	})

	t.Run("empty location yields empty list", func(t *testing.T) {
		got, err := svc.GetFurnitureAtLocation(ctx, empty.ID)
		if err != nil {
			t.Fatalf("get furniture: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected empty list, got %d", len(got))
		}
	})

	t.Run("missing location is an error", func(t *testing.T) {
		_, err := svc.GetFurnitureAtLocation(ctx, 999)
		assertCode(t, err, pkgerrors.CodeNotFound)
	})
}

func TestUpdate(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	location := mustCreateTestLocation(t, conn, "Batiment A")

	t.Run("id mismatch is rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, location.ID, UpdateLocationInput{ID: location.ID + 1, BuildingName: "Batiment A"})
		assertCode(t, err, pkgerrors.CodeValidation)
	})

	t.Run("replaces fields and stamps updatedAt", func(t *testing.T) {
		room := "R102"
		got, err := svc.Update(ctx, location.ID, UpdateLocationInput{
			ID:           location.ID,
			BuildingName: "Batiment A bis",
			Room:         &room,
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if got.BuildingName != "Batiment A bis" {
			t.Fatalf("expected new building name, got %q", got.BuildingName)
		}
		if got.Room == nil || *got.Room != "R102" {
			t.Fatal("expected room to be set")
		}
		// Floor was set at creation but omitted here, so replacement clears it.
		if got.Floor != nil {
			t.Fatalf("expected floor cleared, got %q", *got.Floor)
		}
		if got.UpdatedAt == nil {
			t.Fatal("expected updatedAt to be stamped")
		}
	})

	t.Run("missing location", func(t *testing.T) {
		_, err := svc.Update(ctx, 999, UpdateLocationInput{ID: 999, BuildingName: "Nulle part"})
		assertCode(t, err, pkgerrors.CodeNotFound)
	})
}

func TestDelete(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	t.Run("removes an empty location", func(t *testing.T) {
		location := mustCreateTestLocation(t, conn, "Batiment A")
		if err := svc.Delete(ctx, location.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		_, err := svc.GetByID(ctx, location.ID)
		assertCode(t, err, pkgerrors.CodeNotFound)
	})

	t.Run("second delete reports not found", func(t *testing.T) {
		location := mustCreateTestLocation(t, conn, "Batiment B")
		if err := svc.Delete(ctx, location.ID); err != nil {
			t.Fatalf("first delete: %v", err)
		}
		assertCode(t, svc.Delete(ctx, location.ID), pkgerrors.CodeNotFound)
	})

	t.Run("refuses while furniture remains", func(t *testing.T) {
		location := mustCreateTestLocation(t, conn, "Batiment C")
		mustCreateTestFurniture(t, conn, "ARMOIRE-01", &location.ID)

		assertCode(t, svc.Delete(ctx, location.ID), pkgerrors.CodeConflict)

		// The location must survive the refused delete.
		if _, err := svc.GetByID(ctx, location.ID); err != nil {
			t.Fatalf("location should still exist: %v", err)
		}
	})
}
