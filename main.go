package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"api_vehicles/api"
	"api_vehicles/internal/config"
	"api_vehicles/internal/logger"
	"api_vehicles/internal/sales"
	"api_vehicles/internal/shared"
	"api_vehicles/internal/storage/memory"
	"api_vehicles/internal/storage/sqlstore"
	"api_vehicles/internal/vehicles"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// backend is what the services and the health check need from a storage
// implementation.
type backend struct {
	vehicles vehicles.Storage
	sales    sales.Storage
	tx       shared.TxManager
	pinger   api.Pinger
	close    func() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("error opening storage", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer func() {
		if err := store.close(); err != nil {
			log.Warn("error closing storage", zap.Error(err))
		}
	}()

	salesService := sales.NewService(store.sales, log.Named("sales"))
	vehicleService := vehicles.NewService(store.vehicles, store.sales, store.tx, log.Named("vehicles"))

	router, err := api.NewRouter(api.Dependencies{
		AppName:  cfg.App.Name,
		Vehicles: vehicleService,
		Sales:    salesService,
		Storage:  store.pinger,
		Logger:   log,
		Swagger:  cfg.HTTP.SwaggerEnabled,
	}, cfg.HTTP.TrustedProxies)
	if err != nil {
		log.Fatal("error building router", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening",
			zap.String("addr", httpServer.Addr),
			zap.String("env", cfg.App.Env),
			zap.String("storage", cfg.Database.Driver),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("error trying to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
}

func openStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (*backend, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite, config.DriverPostgres:
		db, err := sqlstore.Open(ctx, cfg.Database, logger.NewGormLogger(log, cfg.Database.LogLevel))
		if err != nil {
			return nil, err
		}
		return &backend{
			vehicles: db.Vehicles(),
			sales:    db.Sales(),
			tx:       db,
			pinger:   db,
			close:    db.Close,
		}, nil
	default:
		store := memory.NewStore()
		return &backend{
			vehicles: store.Vehicles(),
			sales:    store.Sales(),
			tx:       store,
			pinger:   store,
			close:    func() error { return nil },
		}, nil
	}
}
