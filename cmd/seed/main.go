package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"nestcloud/internal/auth"
	"nestcloud/internal/cache"
	"nestcloud/internal/config"
	"nestcloud/internal/db"
	"nestcloud/internal/model"
	"nestcloud/internal/repository"
	"nestcloud/internal/service"
	"nestcloud/internal/storage"
)

func main() {
	username := flag.String("username", "demo", "username for the seeded account")
	password := flag.String("password", "demo-password", "password for the seeded account")
	sampleDir := flag.String("samples", "", "directory of sample files to ingest for the seeded account")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.File{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	diskStore, err := storage.NewDiskStore(cfg.UploadRoot)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	userRepo := repository.NewUserRepository(gormDB)
	fileRepo := repository.NewFileRepository(gormDB)
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB))

	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	ingestionService := service.NewIngestionService(fileRepo, diskStore)

	ctx := context.Background()

	user, err := authService.Register(ctx, *username, *password)
	if err == service.ErrUserAlreadyExists {
		user, err = userRepo.FindByUsername(ctx, *username)
		if err != nil {
			log.Fatalf("Failed to load existing user: %v", err)
		}
		log.Printf("User %q already exists, reusing it", *username)
	} else if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	} else {
		log.Printf("Created user %q (id=%d)", user.Username, user.ID)
	}

	if *sampleDir == "" {
		log.Println("No sample directory given, done")
		return
	}

	entries, err := os.ReadDir(*sampleDir)
	if err != nil {
		log.Fatalf("Failed to read sample directory: %v", err)
	}

	ingested := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		f, err := os.Open(filepath.Join(*sampleDir, entry.Name()))
		if err != nil {
			log.Printf("Skipping %s: %v", entry.Name(), err)
			continue
		}

		record, err := ingestionService.Ingest(ctx, f, entry.Name(), user.ID)
		f.Close()
		if err != nil {
			log.Printf("Skipping %s: %v", entry.Name(), err)
			continue
		}

		log.Printf("Ingested %s (%s)", record.DisplayName, record.Size)
		ingested++
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Files ingested: %d", ingested)
}
