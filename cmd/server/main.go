package main

import (
	"log"
	"net/http"
	"os"

	_ "nestcloud/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"nestcloud/internal/auth"
	"nestcloud/internal/cache"
	"nestcloud/internal/config"
	"nestcloud/internal/db"
	"nestcloud/internal/handler"
	"nestcloud/internal/model"
	"nestcloud/internal/repository"
	"nestcloud/internal/router"
	"nestcloud/internal/service"
	"nestcloud/internal/storage"
)

// @title NestCloud API
// @version 1.0
// @description Personal cloud file storage with uploads, previews and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.New(cfg)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.File{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.File{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	diskStore, err := storage.NewDiskStore(cfg.UploadRoot)
	if err != nil {
		log.Fatalf("storage init: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	fileRepo := repository.NewFileRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	ingestionService := service.NewIngestionService(fileRepo, diskStore)
	fileService := service.NewFileService(fileRepo, diskStore, cfg.IconDir)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	fileHandler := handler.NewFileHandler(ingestionService, fileService)

	// Register routes
	router.Register(e, cfg, authHandler, fileHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
