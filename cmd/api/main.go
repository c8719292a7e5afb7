package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/annapurna-ai/backend/config"
	"github.com/annapurna-ai/backend/internal/api"
	"github.com/annapurna-ai/backend/internal/database"
	"github.com/annapurna-ai/backend/internal/server"
	"github.com/annapurna-ai/backend/internal/service"
)

func main() {
	// Local development reads a .env file; in containers the variables (or
	// Docker secrets) are already present and the file is absent.
	if err := godotenv.Load(); err == nil {
		log.Println("[Main] loaded environment from .env")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("[Main] failed to load config: %v", err)
	}
	if err := config.ValidateConfig(cfg); err != nil {
		log.Fatalf("[Main] invalid config: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("[Main] failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("[Main] failed to run migrations: %v", err)
	}

	// Redis backs the AI rate limiter and the model catalog cache. Both
	// degrade gracefully, so a missing Redis is a warning, not a failure.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("[Main] redis unavailable, AI rate limiting disabled: %v", err)
		redisClient = nil
	}

	var catalog api.ModelCatalog
	client := service.NewDisabledClient()
	if gemini, err := service.NewGeminiClient(cfg, redisClient); err != nil {
		log.Printf("[Main] AI client disabled: %v", err)
	} else {
		client = gemini
		catalog = gemini
	}

	var photos service.IPhotoService
	if s3cfg, err := config.NewS3Config(context.Background()); err != nil {
		log.Printf("[Main] photo storage disabled: %v", err)
		photos = service.NewPhotoService(nil)
	} else {
		photos = service.NewPhotoService(s3cfg)
	}

	estimation := service.NewEstimationService(client)

	srv := server.New(cfg, db, redisClient, server.Services{
		Auth:       service.NewAuthService(db, cfg.JWTSecret),
		Estimation: estimation,
		Meals:      service.NewMealService(db),
		Recipes:    service.NewRecipeService(db),
		Profile:    service.NewProfileService(db),
		Photos:     photos,
		Catalog:    catalog,
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("[Main] server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("[Main] received signal: %v", sig)
	}

	log.Println("[Main] shutting down")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("[Main] shutdown error: %v", err)
	}
	log.Println("[Main] server stopped")
}
