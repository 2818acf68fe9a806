package main

import (
	"fmt"
	"log"

	"tailorbook/internal/config"
	"tailorbook/internal/database"
	"tailorbook/internal/migrations"
	"tailorbook/internal/redis"
	"tailorbook/internal/repository"
	"tailorbook/internal/storage"
)

// openRepositories picks the storage driver. Postgres gets one table per
// entity; the other drivers keep each collection as a single document.
func openRepositories(cfg *config.Config) (*repository.Repositories, func() error, error) {
	opts := repository.Options{
		KeyPrefix: cfg.KeyPrefix,
		IDs:       repository.NewIDGenerator(cfg.IDStrategy),
	}

	if cfg.StorageDriver == config.DriverPostgres {
		db, err := database.Initialize(cfg.DatabaseURL, cfg.DBLogLevel, cfg.KeyPrefix)
		if err != nil {
			return nil, nil, err
		}
		if err := migrations.AutoMigrate(db); err != nil {
			database.Close(db)
			return nil, nil, err
		}
		return repository.NewGorm(db, opts), func() error { return database.Close(db) }, nil
	}

	backend, err := openBackend(cfg)
	if err != nil {
		return nil, nil, err
	}
	return repository.New(backend, opts), backend.Close, nil
}

func openBackend(cfg *config.Config) (storage.Backend, error) {
	switch cfg.StorageDriver {
	case config.DriverSQLite:
		return storage.OpenSQLite(cfg.SQLitePath)
	case config.DriverRedis:
		return redis.Initialize(cfg.RedisURL)
	case config.DriverMemory:
		log.Println("Warning: using in-memory storage, data is lost on exit")
		return storage.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
