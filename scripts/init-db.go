package main

import (
	"context"
	"fmt"
	"log"

	"tailorbook/internal/config"
	"tailorbook/internal/database"
	"tailorbook/internal/migrations"
	"tailorbook/internal/redis"
	"tailorbook/internal/repository"
	"tailorbook/internal/storage"
)

// Prepares a store with settings, default albums and the demo customer.
func main() {
	fmt.Println("Initializing storage...")

	// Load configuration
	cfg := config.Load()

	opts := repository.Options{
		KeyPrefix: cfg.KeyPrefix,
		IDs:       repository.NewIDGenerator(cfg.IDStrategy),
	}

	var repos *repository.Repositories
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		db, err := database.Initialize(cfg.DatabaseURL, cfg.DBLogLevel, cfg.KeyPrefix)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer database.Close(db)
		if err := migrations.AutoMigrate(db); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		repos = repository.NewGorm(db, opts)
	default:
		var (
			backend storage.Backend
			err     error
		)
		if cfg.StorageDriver == config.DriverRedis {
			backend, err = redis.Initialize(cfg.RedisURL)
		} else {
			backend, err = storage.OpenSQLite(cfg.SQLitePath)
		}
		if err != nil {
			log.Fatal("Failed to open storage:", err)
		}
		defer backend.Close()
		repos = repository.New(backend, opts)
	}

	if err := migrations.Bootstrap(context.Background(), repos, migrations.Options{SeedDemoData: true}); err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}

	fmt.Println("Storage initialization completed successfully!")
}
