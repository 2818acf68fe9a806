package migrations

import (
	"context"
	"fmt"
	"log"
	"time"

	"tailorbook/internal/models"
	"tailorbook/internal/repository"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the per-entity tables used by repository.NewGorm.
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")
	err := db.AutoMigrate(
		&models.Customer{},
		&models.Order{},
		&models.GalleryAlbum{},
		&models.GalleryItem{},
		&models.Settings{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Println("Database migrations completed")
	return nil
}

type Options struct {
	// SeedDemoData adds a sample customer and order when there are no customers yet.
	SeedDemoData bool
	Now          func() time.Time
}

// Bootstrap prepares a store for use: it makes sure the settings singleton
// exists, seeds the default albums when there are none and optionally adds demo
// data. It is run once at startup and is safe to run again.
func Bootstrap(ctx context.Context, repos *repository.Repositories, opts Options) error {
	log.Println("Running storage bootstrap...")

	settings, err := repos.Settings.Get(ctx)
	if err != nil {
		return err
	}
	log.Printf("Settings ready (setup complete: %v)", settings.SetupComplete)

	seeded, err := repos.Albums.SeedDefaults(ctx)
	if err != nil {
		return err
	}
	if seeded {
		log.Println("Default gallery albums created")
	}

	if opts.SeedDemoData {
		if err := seedDemoData(ctx, repos, opts, settings.DefaultMeasurements); err != nil {
			log.Printf("Warning: Failed to create demo data: %v", err)
		}
	}

	log.Println("Storage bootstrap completed successfully!")
	return nil
}

func seedDemoData(ctx context.Context, repos *repository.Repositories, opts Options, template []models.Measurement) error {
	customers, err := repos.Customers.List(ctx)
	if err != nil {
		return err
	}
	if len(customers) > 0 {
		log.Println("Customers already exist, skipping demo data")
		return nil
	}

	log.Println("Seeding demo data...")
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	customer, err := repos.Customers.Create(ctx, models.CustomerInput{
		Name:         "Amara Okeke",
		Phone:        "08012345678",
		Description:  "Likes Ankara styles, very particular about fit.",
		Measurements: models.CloneMeasurements(template),
		Photo:        "https://images.unsplash.com/photo-1531123897727-8f129e1688ce?w=400&auto=format&fit=crop&q=60",
	})
	if err != nil {
		return err
	}

	_, err = repos.Orders.Create(ctx, models.OrderInput{
		CustomerID:         customer.ID,
		Description:        "ORD-001: Wedding Aso Ebi",
		CustomMeasurements: []models.Measurement{},
		Materials:          []string{},
		Styles:             []string{},
		Deadline:           now().UTC().AddDate(0, 0, 7),
		Cost:               "45000",
	})
	return err
}
