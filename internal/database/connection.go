package database

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func Initialize(databaseURL, logLevel, tablePrefix string) (*gorm.DB, error) {
	// Connect to database
	db, err := gorm.Open(postgres.Open(databaseURL), NewConfig(logLevel, tablePrefix))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connected successfully")
	return db, nil
}

// NewConfig configures GORM logging and prefixes every table name, so several
// installations can share one database the way key prefixes do elsewhere.
func NewConfig(logLevel, tablePrefix string) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(ParseLogLevel(logLevel)),
		NamingStrategy: schema.NamingStrategy{TablePrefix: tablePrefix},
	}
}

func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
