package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stwalsh4118/portfolio/internal/config"
	"github.com/stwalsh4118/portfolio/internal/database"
	"github.com/stwalsh4118/portfolio/internal/handlers"
	"github.com/stwalsh4118/portfolio/internal/logger"
	"github.com/stwalsh4118/portfolio/internal/models"
	"github.com/stwalsh4118/portfolio/internal/places"
	"github.com/stwalsh4118/portfolio/internal/repository"
	"github.com/stwalsh4118/portfolio/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
	startupTimeout  = 30 * time.Second
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithLevel(cfg.Server.Env, cfg.Server.LogLevel)
	log.Info("Starting Portfolio API", map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
		"store":       cfg.Store.Driver,
	})

	repo, closeStore := openStore(cfg, log)
	defer closeStore()

	placesClient, err := places.NewClient(cfg.Places)
	if err != nil {
		log.Fatal("Failed to create places client", err, nil)
	}
	if !placesClient.Configured() {
		log.Warn("GOOGLE_MAPS_API_KEY not set, address lookup disabled", nil)
	}

	// Initialize service layer
	lookupService := services.NewLookupService(placesClient, cfg.Places.FallbackImageURL, log)
	propertyService := services.NewPropertyService(repo, lookupService, cfg.Table.DefaultPageSize, log)
	formService := services.NewFormService(log)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(handlers.RouterConfig{
		Logger:      log,
		CORSOrigins: cfg.CORS.Origins,
		Health:      handlers.NewHealthHandler(repo, cfg.Server.Env, cfg.Store.Driver),
		Properties:  handlers.NewPropertyHandler(propertyService),
		Forms:       handlers.NewFormHandler(formService),
		Places:      handlers.NewPlacesHandler(lookupService),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}

// openStore returns the configured property repository and a function that releases it.
// The postgres store is migrated and, when enabled, seeded with the demo portfolio.
func openStore(cfg *config.Config, log *logger.Logger) (repository.PropertyRepository, func()) {
	if cfg.Store.Driver != config.StorePostgres {
		var seed []*models.Property
		if cfg.Store.Seed {
			seed = repository.SeedProperties()
		}
		log.Info("Using in-memory property store", map[string]interface{}{"seeded": len(seed)})
		return repository.NewMemoryRepository(seed), func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", err, map[string]interface{}{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
			"name": cfg.Database.Name,
		})
	}

	log.Info("Database connection established", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Name,
		"pool_min": cfg.Database.PoolMin,
		"pool_max": cfg.Database.PoolMax,
	})

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		log.Fatal("Failed to apply database schema", err, nil)
	}

	if cfg.Store.Seed {
		inserted, err := repository.Seed(ctx, db, repository.SeedProperties())
		if err != nil {
			db.Close()
			log.Fatal("Failed to seed properties", err, nil)
		}
		log.Info("Seed data checked", map[string]interface{}{"inserted": inserted})
	}

	closeDB := func() {
		if stats := db.Stats(); stats != nil {
			log.Info("Closing database pool", map[string]interface{}{
				"total_conns":    stats.TotalConns(),
				"acquired_conns": stats.AcquiredConns(),
				"acquire_count":  stats.AcquireCount(),
			})
		}
		db.Close()
	}
	return repository.NewPostgresRepository(db), closeDB
}
