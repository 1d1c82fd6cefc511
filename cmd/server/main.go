package main

import (
	"context"
	"log"

	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/router"
	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/storage"
	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/token"
	"github.com/Akshatagarwal19/InstagramCloneBackend/pkg/config"
	"github.com/Akshatagarwal19/InstagramCloneBackend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Token service
	tokens, err := token.NewService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialize token service: %v", err)
	}

	// Image storage
	images, err := storage.NewS3Store(context.Background(), storage.S3Config{
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Endpoint:  cfg.S3Endpoint,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize image storage: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Validator
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e, cfg.AllowedOrigins)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo.Database(cfg.MongoDB), tokens, images)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
