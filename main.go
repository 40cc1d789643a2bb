package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/GarageLog/garage-log-backend/config"
	"github.com/GarageLog/garage-log-backend/db"
	"github.com/GarageLog/garage-log-backend/handlers"
	"github.com/GarageLog/garage-log-backend/internal/store/postgres"
	"github.com/GarageLog/garage-log-backend/logger"
	"github.com/GarageLog/garage-log-backend/middleware"
	"github.com/GarageLog/garage-log-backend/models"
	"github.com/GarageLog/garage-log-backend/pkg/openai"
	"github.com/GarageLog/garage-log-backend/router"
	"github.com/GarageLog/garage-log-backend/services"
)

func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer func() {
		if err := logger.Close(); err != nil {
			log.Errorw("Failed to close logger", "error", err)
		}
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Apply schema migrations before opening the pool
	if err := db.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to parse database config: %v", err)
	}
	if cfg.Server.Environment == config.EnvProduction {
		poolConfig.ConnConfig.TLSConfig = &tls.Config{
			ServerName: cfg.Database.Host,
			MinVersion: tls.VersionTLS12,
		}
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	redisOptions := &redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if cfg.Redis.UseTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOptions)

	// Stores and models
	vehicleStore := postgres.NewVehicleStore(pool)
	timelineStore := postgres.NewTimelineStore(pool)
	eventPublisher := services.NewRedisEventPublisher(redisClient)
	vehicleModel := models.NewVehicleModel(vehicleStore, eventPublisher)
	timelineModel := models.NewTimelineModel(timelineStore, vehicleModel, eventPublisher)

	// Extraction pipeline
	rateLimitService := services.NewRateLimitService(redisClient)
	visionClient := openai.NewClient(
		cfg.ExternalServices.OpenAIAPIKey,
		cfg.ExternalServices.OpenAIModel,
		time.Duration(cfg.Extraction.TimeoutSeconds)*time.Second,
	)
	extractionService := services.NewExtractionService(visionClient, rateLimitService, cfg.Extraction)

	// Photo storage is optional; without credentials the API simply omits
	// photo URLs.
	var photoStorage services.PhotoStorage
	if cfg.Storage.Enabled() {
		photoStorage, err = services.NewR2PhotoStorage(cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize photo storage: %v", err)
		}
	} else {
		log.Warn("Photo storage not configured, photo uploads disabled")
	}

	jwtValidator, err := middleware.NewJWTValidator(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize JWT validator: %v", err)
	}

	healthService := services.NewHealthService(pool, redisClient, cfg.Server.Version)

	r := router.SetupRouter(router.Dependencies{
		Config:            cfg,
		JWTValidator:      jwtValidator,
		VehicleHandler:    handlers.NewVehicleHandler(vehicleModel),
		TimelineHandler:   handlers.NewTimelineHandler(timelineModel, photoStorage),
		ExtractionHandler: handlers.NewExtractionHandler(extractionService, photoStorage),
		HealthHandler:     handlers.NewHealthHandler(healthService),
		Logger:            log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("Server forced to shutdown", "error", err)
	}
	if err := redisClient.Close(); err != nil {
		log.Errorw("Failed to close redis client", "error", err)
	}
}
