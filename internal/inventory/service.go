package inventory

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/atelier-meuble/inventaire-backend/internal/furniture"
	"github.com/atelier-meuble/inventaire-backend/pkg/db/models"
	pkgerrors "github.com/atelier-meuble/inventaire-backend/pkg/errors"
	"github.com/google/uuid"
)

// csvHeaders are the legacy export columns; imports match on the same names.
var csvHeaders = []string{
	"Référence", "Désignation", "Famille", "Type", "Fournisseur",
	"Utilisateur", "Code barre", "N° série", "Informations",
	"Site", "Date de livraison",
}

const deliveryDateLayout = "2006-01-02"

type inventoryRepository interface {
	FindAllOrdered(ctx context.Context) ([]models.Furniture, error)
	CountAll(ctx context.Context) (int64, error)
	CountByFamily(ctx context.Context) (map[string]int64, error)
	CountBySite(ctx context.Context) (map[string]int64, error)
}

type furnitureCreator interface {
	Create(ctx context.Context, input furniture.CreateFurnitureInput) (*furniture.FurnitureDTO, error)
}

// ImportReport summarizes one CSV import run. Line numbers in Errors refer to
// the source file, where line 1 is the header.
type ImportReport struct {
	BatchID  string   `json:"batchId"`
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

// StatsDTO aggregates the collection for dashboards.
type StatsDTO struct {
	Total    int64            `json:"total"`
	ByFamily map[string]int64 `json:"byFamily"`
	BySite   map[string]int64 `json:"bySite"`
}

// Service exposes collection-level import, export and stats.
type Service interface {
	ExportCSV(ctx context.Context, w io.Writer) error
	ImportCSV(ctx context.Context, r io.Reader) (*ImportReport, error)
	Stats(ctx context.Context) (*StatsDTO, error)
}

type service struct {
	repo       inventoryRepository
	furnitures furnitureCreator
}

// NewService builds an inventory service over the furniture collection.
func NewService(repo inventoryRepository, furnitures furnitureCreator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if furnitures == nil {
		return nil, fmt.Errorf("furniture service required")
	}
	return &service{repo: repo, furnitures: furnitures}, nil
}

// ExportCSV streams the full collection with the legacy column headers, so
// exports stay loadable by the spreadsheets built against the old system.
func (s *service) ExportCSV(ctx context.Context, w io.Writer) error {
	furnitures, err := s.repo.FindAllOrdered(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load furniture collection")
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeaders); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv header")
	}
	for i := range furnitures {
		if err := writer.Write(exportRow(&furnitures[i])); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv row")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flush csv")
	}
	return nil
}

// ImportCSV inserts rows one by one through the furniture service so every row
// gets the same validation as the API. A bad row is reported, not fatal.
func (s *service) ImportCSV(ctx context.Context, r io.Reader) (*ImportReport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "csv file is empty")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read csv header")
	}
	columns := indexHeader(header)
	if _, ok := columns["Référence"]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing Référence column")
	}

	report := &ImportReport{BatchID: uuid.NewString(), Errors: []string{}}
	// Data starts at line 2; line 1 is the header.
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Ligne %d: %v", line, err))
			continue
		}

		input, err := rowToInput(columns, record)
		if err == nil {
			_, err = s.furnitures.Create(ctx, input)
		}
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Ligne %d: %v", line, err))
			continue
		}
		report.Imported++
	}
	return report, nil
}

func (s *service) Stats(ctx context.Context) (*StatsDTO, error) {
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count furniture")
	}
	byFamily, err := s.repo.CountByFamily(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count by family")
	}
	bySite, err := s.repo.CountBySite(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count by site")
	}
	return &StatsDTO{Total: total, ByFamily: byFamily, BySite: bySite}, nil
}

func exportRow(m *models.Furniture) []string {
	return []string{
		m.Reference,
		m.Designation,
		deref(m.Family),
		deref(m.Type),
		deref(m.Supplier),
		deref(m.CurrentUser),
		deref(m.Barcode),
		deref(m.SerialNumber),
		deref(m.Notes),
		deref(m.Site),
		formatDate(m.DeliveryDate),
	}
}

func rowToInput(columns map[string]int, record []string) (furniture.CreateFurnitureInput, error) {
	get := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	input := furniture.CreateFurnitureInput{
		Reference:    get("Référence"),
		Designation:  get("Désignation"),
		Family:       optional(get("Famille")),
		Type:         optional(get("Type")),
		Supplier:     optional(get("Fournisseur")),
		CurrentUser:  optional(get("Utilisateur")),
		Barcode:      optional(get("Code barre")),
		SerialNumber: optional(get("N° série")),
		Notes:        optional(get("Informations")),
		Site:         optional(get("Site")),
	}
	if raw := get("Date de livraison"); raw != "" {
		parsed, err := time.Parse(deliveryDateLayout, raw)
		if err != nil {
			return input, fmt.Errorf("invalid delivery date %q", raw)
		}
		input.DeliveryDate = &parsed
	}
	return input, nil
}

func indexHeader(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF"))] = i
	}
	return columns
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func formatDate(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format(deliveryDateLayout)
}
