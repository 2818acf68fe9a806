package migrations

import (
	"context"
	"testing"
	"time"

	"tailorbook/internal/models"
	"tailorbook/internal/repository"
	"tailorbook/internal/storage"
)

func TestBootstrapIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repos := repository.New(storage.NewMemory(), repository.Options{})
	for i := 0; i < 3; i++ {
		if err := Bootstrap(ctx, repos, Options{}); err != nil {
			t.Fatalf("bootstrap %d: %v", i, err)
		}
	}
	albums, err := repos.Albums.List(ctx)
	if err != nil {
		t.Fatalf("albums: %v", err)
	}
	if len(albums) != 3 {
		t.Fatalf("expected 3 default albums, got %d", len(albums))
	}
	settings, err := repos.Settings.Get(ctx)
	if err != nil || settings.SetupComplete {
		t.Fatalf("settings = %+v %v", settings, err)
	}
	customers, _ := repos.Customers.List(ctx)
	if len(customers) != 0 {
		t.Fatalf("demo data seeded without being asked: %+v", customers)
	}
}

func TestBootstrapKeepsUserAlbums(t *testing.T) {
	ctx := context.Background()
	repos := repository.New(storage.NewMemory(), repository.Options{})
	if _, err := repos.Albums.Create(ctx, "Mine"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := Bootstrap(ctx, repos, Options{}); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	albums, _ := repos.Albums.List(ctx)
	if len(albums) != 1 || albums[0].Name != "Mine" {
		t.Fatalf("albums = %+v", albums)
	}
}

func TestBootstrapSeedsDemoDataOnce(t *testing.T) {
	ctx := context.Background()
	repos := repository.New(storage.NewMemory(), repository.Options{})
	now := func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	opts := Options{SeedDemoData: true, Now: now}
	if err := Bootstrap(ctx, repos, opts); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if err := Bootstrap(ctx, repos, opts); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}

	customers, _ := repos.Customers.List(ctx)
	orders, _ := repos.Orders.List(ctx)
	if len(customers) != 1 || len(orders) != 1 {
		t.Fatalf("customers=%d orders=%d", len(customers), len(orders))
	}
	if orders[0].CustomerID != customers[0].ID || orders[0].Status != models.OrderPending {
		t.Fatalf("demo order = %+v", orders[0])
	}
	if !orders[0].Deadline.Equal(now().AddDate(0, 0, 7)) {
		t.Fatalf("deadline = %v", orders[0].Deadline)
	}
	if len(customers[0].Measurements) != len(models.DefaultMeasurements) {
		t.Fatalf("demo customer measurements = %+v", customers[0].Measurements)
	}
}
