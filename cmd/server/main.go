package main

import (
	"context"
	"log"

	"tailorbook/internal/config"
	"tailorbook/internal/handlers"
	"tailorbook/internal/migrations"
	"tailorbook/internal/repository"
	"tailorbook/internal/services"
	"tailorbook/pkg/whatsapp"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Open storage and repositories
	repos, closeStore, err := openRepositories(cfg)
	if err != nil {
		log.Fatal("Failed to open storage:", err)
	}
	defer closeStore()

	repos.Notifier.Subscribe("", func(ev repository.ChangeEvent) {
		log.Printf("Collection %s changed", ev.Collection)
	})

	// Ensure settings and default data exist
	if err := migrations.Bootstrap(context.Background(), repos, migrations.Options{SeedDemoData: cfg.SeedDemoData}); err != nil {
		log.Fatal("Failed to bootstrap storage:", err)
	}

	// Initialize services
	phones := whatsapp.NewFormatter(cfg.DefaultCountryCode)
	customerService := services.NewCustomerService(repos.Customers, repos.Orders, repos.Settings, phones)
	orderService := services.NewOrderService(repos.Orders)
	galleryService := services.NewGalleryService(repos.Albums, repos.GalleryItems)
	setupService := services.NewSetupService(repos.Settings)

	// Initialize handlers
	apiHandler := handlers.NewAPIHandler(customerService, orderService, galleryService, setupService, cfg.CurrencySymbol)

	// Setup routes
	router := gin.Default()
	apiHandler.RegisterRoutes(router)

	// Start server
	log.Printf("Server starting on port %s (storage: %s)", cfg.ServerPort, cfg.StorageDriver)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
