package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/atelier-meuble/inventaire-backend/api/controllers"
	"github.com/atelier-meuble/inventaire-backend/api/middleware"
	"github.com/atelier-meuble/inventaire-backend/internal/furniture"
	"github.com/atelier-meuble/inventaire-backend/internal/inventory"
	"github.com/atelier-meuble/inventaire-backend/internal/locations"
	"github.com/atelier-meuble/inventaire-backend/pkg/config"
	"github.com/atelier-meuble/inventaire-backend/pkg/logger"
	"github.com/atelier-meuble/inventaire-backend/pkg/metrics"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP pinger,
	redisP pinger,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	furnitureService furniture.Service,
	locationService locations.Service,
	inventoryService inventory.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/furniture", func(r chi.Router) {
		r.Get("/", controllers.FurnitureList(furnitureService, logg))
		r.Get("/search", controllers.FurnitureSearch(furnitureService, logg))
		r.Get("/barcode/{barcode}", controllers.FurnitureGetByBarcode(furnitureService, logg))
		r.Post("/", controllers.FurnitureCreate(furnitureService, logg))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", controllers.FurnitureGet(furnitureService, logg))
			r.Put("/", controllers.FurnitureUpdate(furnitureService, logg))
			r.Delete("/", controllers.FurnitureDelete(furnitureService, logg))
			r.Post("/location/{locationId}", controllers.FurnitureAssignLocation(furnitureService, logg))
			r.Post("/rfid/{rfidTagId}", controllers.FurnitureAssignRfidTag(furnitureService, logg))
			r.Get("/position", controllers.FurnitureGetPosition(furnitureService, logg))
		})
	})

	r.Route("/api/v1/locations", func(r chi.Router) {
		r.Get("/", controllers.LocationList(locationService, logg))
		r.Get("/building/{name}", controllers.LocationsByBuilding(locationService, logg))
		r.Post("/", controllers.LocationCreate(locationService, logg))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", controllers.LocationGet(locationService, logg))
			r.Get("/furniture", controllers.LocationFurniture(locationService, logg))
			r.Put("/", controllers.LocationUpdate(locationService, logg))
			r.Delete("/", controllers.LocationDelete(locationService, logg))
		})
	})

	r.Route("/api/v1/inventory", func(r chi.Router) {
		r.Post("/import-csv", controllers.InventoryImportCSV(inventoryService, logg))
		r.Get("/export-csv", controllers.InventoryExportCSV(inventoryService, logg))
		r.Get("/stats", controllers.InventoryStats(inventoryService, logg))
	})

	return r
}
