package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/atelier-meuble/inventaire-backend/api/routes"
	"github.com/atelier-meuble/inventaire-backend/internal/furniture"
	"github.com/atelier-meuble/inventaire-backend/internal/inventory"
	"github.com/atelier-meuble/inventaire-backend/internal/locations"
	"github.com/atelier-meuble/inventaire-backend/internal/rfid"
	"github.com/atelier-meuble/inventaire-backend/pkg/config"
	"github.com/atelier-meuble/inventaire-backend/pkg/db"
	"github.com/atelier-meuble/inventaire-backend/pkg/instance"
	"github.com/atelier-meuble/inventaire-backend/pkg/logger"
	"github.com/atelier-meuble/inventaire-backend/pkg/metrics"
	"github.com/atelier-meuble/inventaire-backend/pkg/migrate"
	"github.com/atelier-meuble/inventaire-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	tagResolver, err := rfid.NewRedisResolver(redisClient, cfg.RFID)
	if err != nil {
		logg.Error(context.Background(), "failed to create rfid resolver", err)
		os.Exit(1)
	}

	barcodeCache := furniture.NewBarcodeCache(redisClient, cfg.Cache.BarcodeTTL, logg)

	furnitureService, err := furniture.NewService(
		furniture.NewRepository(dbClient.DB()), dbClient, tagResolver, barcodeCache)
	if err != nil {
		logg.Error(context.Background(), "failed to create furniture service", err)
		os.Exit(1)
	}

	locationService, err := locations.NewService(locations.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create location service", err)
		os.Exit(1)
	}

	inventoryService, err := inventory.NewService(inventory.NewRepository(dbClient.DB()), furnitureService)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg, logg, dbClient, redisClient, registry, httpMetrics,
			furnitureService, locationService, inventoryService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
