package inventory

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"

	"github.com/atelier-meuble/inventaire-backend/internal/furniture"
	"github.com/atelier-meuble/inventaire-backend/internal/rfid"
	"github.com/atelier-meuble/inventaire-backend/pkg/db"
	"github.com/atelier-meuble/inventaire-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type staticResolver struct{}

func (staticResolver) Resolve(context.Context, int64) (bool, error) { return true, nil }

var _ rfid.Resolver = staticResolver{}

func newTestService(t *testing.T) (Service, *gorm.DB) {
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

	furnitureSvc, err := furniture.NewService(furniture.NewRepository(conn), db.NewFromConn(conn), staticResolver{}, nil)
	if err != nil {
		t.Fatalf("new furniture service: %v", err)
	}
	svc, err := NewService(NewRepository(conn), furnitureSvc)
	if err != nil {
		t.Fatalf("new inventory service: %v", err)
	}
	return svc, conn
}

func seedFurniture(t *testing.T, conn *gorm.DB, reference string, family, site *string) {
	t.Helper()
	row := &models.Furniture{
		Reference:   reference,
		Designation: "Seed " + reference,
		Family:      family,
		Site:        site,
	}
	if err := conn.Create(row).Error; err != nil {
		t.Fatalf("seed %s: %v", reference, err)
	}
}

func strPtr(v string) *string { return &v }

func TestImportCSV(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	input := strings.Join([]string{
		"Référence,Désignation,Famille,Type,Fournisseur,Utilisateur,Code barre,N° série,Informations,Site,Date de livraison",
		"CHAISE-01,Chaise de bureau,Assise,Pivotante,Ikea,Durand,BC-0001,SN-1,RAS,Lyon,2024-03-15",
		",Sans reference,,,,,,,,Lyon,",
		"TABLE-02,Table,Plan,,,,,,,Paris,pas-une-date",
		"BUREAU-03,Bureau,Plan,,,,,,,Paris,",
	}, "\n")

	report, err := svc.ImportCSV(ctx, strings.NewReader(input))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.BatchID == "" {
		t.Fatal("expected a batch id")
	}
	if report.Imported != 2 {
		t.Fatalf("expected 2 imported rows, got %d (errors: %v)", report.Imported, report.Errors)
	}
	if len(report.Errors) != 2 {
		t.Fatalf("expected 2 line errors, got %v", report.Errors)
	}
	// The first data row of the file is line 2.
	if !strings.HasPrefix(report.Errors[0], "Ligne 3:") {
		t.Fatalf("expected first error on line 3, got %q", report.Errors[0])
	}
	if !strings.HasPrefix(report.Errors[1], "Ligne 4:") {
		t.Fatalf("expected second error on line 4, got %q", report.Errors[1])
	}

	var imported models.Furniture
	if err := conn.First(&imported, "reference = ?", "CHAISE-01").Error; err != nil {
		t.Fatalf("load imported row: %v", err)
	}
	if imported.Family == nil || *imported.Family != "Assise" {
		t.Fatal("expected family mapped from the Famille column")
	}
	if imported.DeliveryDate == nil || imported.DeliveryDate.Format("2006-01-02") != "2024-03-15" {
		t.Fatal("expected delivery date parsed from the legacy format")
	}
}

func TestImportCSVRejectsMissingReferenceColumn(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ImportCSV(context.Background(), strings.NewReader("Nom,Valeur\na,b\n"))
	if err == nil {
		t.Fatal("expected an error for a file without the Référence column")
	}
}

func TestExportCSVUsesLegacyHeaders(t *testing.T) {
	svc, conn := newTestService(t)

	seedFurniture(t, conn, "CHAISE-01", strPtr("Assise"), strPtr("Lyon"))
	seedFurniture(t, conn, "TABLE-02", nil, strPtr("Paris"))

	var buf bytes.Buffer
	if err := svc.ExportCSV(context.Background(), &buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse export: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	if records[0][0] != "Référence" || records[0][10] != "Date de livraison" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][0] != "CHAISE-01" || records[1][2] != "Assise" {
		t.Fatalf("unexpected first row: %v", records[1])
	}
	// Absent optional values export as empty cells.
	if records[2][2] != "" {
		t.Fatalf("expected empty family cell, got %q", records[2][2])
	}
}

func TestStatsExcludesEmptyFacets(t *testing.T) {
	svc, conn := newTestService(t)

	seedFurniture(t, conn, "CHAISE-01", strPtr("Assise"), strPtr("Lyon"))
	seedFurniture(t, conn, "CHAISE-02", strPtr("Assise"), strPtr("Paris"))
	seedFurniture(t, conn, "TABLE-01", strPtr("Plan"), nil)
	seedFurniture(t, conn, "DIVERS-01", strPtr(""), strPtr(""))

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 4 {
		t.Fatalf("expected total 4, got %d", stats.Total)
	}
	if stats.ByFamily["Assise"] != 2 || stats.ByFamily["Plan"] != 1 {
		t.Fatalf("unexpected family counts: %v", stats.ByFamily)
	}
	if _, ok := stats.ByFamily[""]; ok {
		t.Fatal("expected empty family to be excluded")
	}
	if stats.BySite["Lyon"] != 1 || stats.BySite["Paris"] != 1 {
		t.Fatalf("unexpected site counts: %v", stats.BySite)
	}
}
