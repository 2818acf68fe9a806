package database

import (
	"sync"
	"testing"

	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"tailorbook/internal/models"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]logger.LogLevel{
		"silent": logger.Silent,
		"ERROR":  logger.Error,
		" info ": logger.Info,
		"warn":   logger.Warn,
		"":       logger.Warn,
	}
	for in, want := range tests {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTableNamesCarryPrefix(t *testing.T) {
	cfg := NewConfig("silent", "sewnaija_")
	tests := []struct {
		model any
		want  string
	}{
		{&models.Customer{}, "sewnaija_customers"},
		{&models.Order{}, "sewnaija_orders"},
		{&models.GalleryAlbum{}, "sewnaija_gallery_albums"},
		{&models.GalleryItem{}, "sewnaija_gallery_items"},
		{&models.Settings{}, "sewnaija_settings"},
	}
	cache := &sync.Map{}
	for _, tt := range tests {
		s, err := schema.Parse(tt.model, cache, cfg.NamingStrategy)
		if err != nil {
			t.Fatalf("parse %T: %v", tt.model, err)
		}
		if s.Table != tt.want {
			t.Errorf("table for %T = %q, want %q", tt.model, s.Table, tt.want)
		}
	}
}

func TestModelSchemas(t *testing.T) {
	cfg := NewConfig("silent", "")
	cache := &sync.Map{}

	order, err := schema.Parse(&models.Order{}, cache, cfg.NamingStrategy)
	if err != nil {
		t.Fatalf("parse order: %v", err)
	}
	if order.PrioritizedPrimaryField == nil || order.PrioritizedPrimaryField.DBName != "id" {
		t.Fatalf("order primary key = %+v", order.PrioritizedPrimaryField)
	}
	for _, name := range []string{"CustomMeasurements", "Materials", "Styles"} {
		f := order.LookUpField(name)
		if f == nil || f.Serializer == nil {
			t.Errorf("order field %s must be stored as JSON", name)
		}
	}
	if f := order.LookUpField("customer_id"); f == nil {
		t.Error("order must have a customer_id column")
	}

	settings, err := schema.Parse(&models.Settings{}, cache, cfg.NamingStrategy)
	if err != nil {
		t.Fatalf("parse settings: %v", err)
	}
	id := settings.PrioritizedPrimaryField
	if id == nil || id.AutoIncrement {
		t.Fatalf("settings id must be a fixed primary key, got %+v", id)
	}
	if f := settings.LookUpField("DefaultMeasurements"); f == nil || f.Serializer == nil {
		t.Error("settings template must be stored as JSON")
	}
}
