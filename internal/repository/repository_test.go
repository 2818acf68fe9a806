package repository

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"tailorbook/internal/models"
	"tailorbook/internal/storage"
)

type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestRepos(t *testing.T) (*Repositories, storage.Backend) {
	t.Helper()
	backend := storage.NewMemory()
	clock := &fixedClock{t: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	return New(backend, Options{Now: clock.Now}), backend
}

func TestCustomerCreateAssignsGeneratedFields(t *testing.T) {
	ctx := context.Background()
	repos, _ := newTestRepos(t)

	input := models.CustomerInput{
		Name:         "Amara Okeke",
		Phone:        "08012345678",
		Photo:        "data:image/png;base64,AAAA",
		Measurements: []models.Measurement{{Name: "Bust", Value: "36"}},
		Description:  "Likes Ankara styles",
	}
	created, err := repos.Customers.Create(ctx, input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("expected created_at")
	}
	if created.Name != input.Name || created.Phone != input.Phone || created.Photo != input.Photo ||
		created.Description != input.Description || len(created.Measurements) != 1 ||
		created.Measurements[0] != input.Measurements[0] {
		t.Fatalf("submitted fields changed: %+v", created)
	}

	stored, err := repos.Customers.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Name != input.Name || !stored.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("stored customer mismatch: %+v", stored)
	}
}

func TestCustomerListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repos, _ := newTestRepos(t)
	for _, name := range []string{"first", "second", "third"} {
		if _, err := repos.Customers.Create(ctx, models.CustomerInput{Name: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	list, err := repos.Customers.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := []string{list[0].Name, list[1].Name, list[2].Name}
	want := []string{"third", "second", "first"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestCustomerEmptyPatchLeavesEntityUnchanged(t *testing.T) {
	ctx := context.Background()
	repos, _ := newTestRepos(t)
	created, err := repos.Customers.Create(ctx, models.CustomerInput{
		Name:         "Ngozi",
		Phone:        "0803",
		Measurements: []models.Measurement{{Name: "Waist", Value: "30"}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	updated, err := repos.Customers.Update(ctx, created.ID, models.CustomerPatch{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID || !updated.CreatedAt.Equal(created.CreatedAt) ||
		updated.Name != created.Name || updated.Phone != created.Phone ||
		len(updated.Measurements) != 1 || updated.Measurements[0] != created.Measurements[0] {
		t.Fatalf("empty patch changed entity:\n before %+v\n after  %+v", created, updated)
	}
}

func TestCustomerPatchMergesFields(t *testing.T) {
	ctx := context.Background()
	repos, _ := newTestRepos(t)
	created, err := repos.Customers.Create(ctx, models.CustomerInput{Name: "Old", Phone: "0801"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	name := "New"
	updated, err := repos.Customers.Update(ctx, created.ID, models.CustomerPatch{
		Name:         &name,
		Measurements: []models.Measurement{},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "New" || updated.Phone != "0801" {
		t.Fatalf("unexpected merge result: %+v", updated)
	}
	if updated.Measurements == nil || len(updated.Measurements) != 0 {
		t.Fatalf("expected cleared measurements, got %#v", updated.Measurements)
	}
}

func TestUpdateMissingIsNotFound(t *testing.T) {
	ctx := context.Background()
	repos, _ := newTestRepos(t)
	_, err := repos.Customers.Update(ctx, "nope", models.CustomerPatch{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Entity != "customer" || nf.ID != "nope" {
		t.Fatalf("unexpected error: %#v", err)
	}
	if _, err := repos.Orders.Update(ctx, "nope", models.OrderPatch{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected order ErrNotFound, got %v", err)
	}
	if _, err := repos.Albums.Update(ctx, "nope", models.AlbumPatch{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected album ErrNotFound, got %v", err)
	}
	if _, err := repos.GalleryItems.Update(ctx, "nope", models.GalleryItemPatch{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected item ErrNotFound, got %v", err)
	}
}

func TestDeleteThenGetIsNotFoundAndDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repos, _ := newTestRepos(t)
	created, err := repos.Customers.Create(ctx, models.CustomerInput{Name: "Gone"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repos.Customers.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repos.Customers.GetByID(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repos.Customers.Delete(ctx, created.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestCustomerDeleteKeepsOrders(t *testing.T) {
	ctx := context.Background()
	repos, _ := newTestRepos(t)
	customer, err := repos.Customers.Create(ctx, models.CustomerInput{Name: "Amara"})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if _, err := repos.Orders.Create(ctx, models.OrderInput{CustomerID: customer.ID, Description: "ORD-001"}); err != nil {
		t.Fatalf("create order: %v", err)
	}
	if err := repos.Customers.Delete(ctx, customer.ID); err != nil {
		t.Fatalf("delete customer: %v", err)
	}
	orders, err := repos.Orders.List(ctx)
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(orders) != 1 || orders[0].CustomerID != customer.ID {
		t.Fatalf("expected dangling order to remain, got %+v", orders)
	}
}

func TestConcurrentCreatesAreAllKept(t *testing.T) {
	ctx := context.Background()
	repos, _ := newTestRepos(t)
	const n = 40
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repos.Orders.Create(ctx, models.OrderInput{Description: "rush"}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("create: %v", err)
	}
	orders, err := repos.Orders.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != n {
		t.Fatalf("expected %d orders, got %d", n, len(orders))
	}
	seen := make(map[string]bool, n)
	for _, o := range orders {
		if seen[o.ID] {
			t.Fatalf("duplicate id %s", o.ID)
		}
		seen[o.ID] = true
	}
}

type failingBackend struct {
	storage.Backend
	failPut func(key string) bool
}

func (b failingBackend) Put(ctx context.Context, key string, value []byte) error {
	if b.failPut(key) {
		return errors.New("quota exceeded")
	}
	return b.Backend.Put(ctx, key, value)
}

func TestWriteFailureSurfacesStorageUnavailable(t *testing.T) {
	ctx := context.Background()
	backend := failingBackend{Backend: storage.NewMemory(), failPut: func(string) bool { return true }}
	repos := New(backend, Options{})

	_, err := repos.Customers.Create(ctx, models.CustomerInput{Name: "x"})
	if !errors.Is(err, storage.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("storage failure must not look like not found")
	}
}

func TestCustomerReadBackEqualsCreated(t *testing.T) {
	ctx := context.Background()
	clock := &fixedClock{t: time.Date(2024, 1, 1, 9, 0, 0, 0, time.FixedZone("WAT", 3600))}
	repos := New(storage.NewMemory(), Options{Now: clock.Now})

	for _, in := range []models.CustomerInput{
		{Name: "Amara", Phone: "0801", Measurements: []models.Measurement{{Name: "Bust", Value: "36"}}},
		{Name: "Bisi", Measurements: []models.Measurement{}},
		{Name: "Chidi"},
	} {
		created, err := repos.Customers.Create(ctx, in)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		stored, err := repos.Customers.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if !reflect.DeepEqual(created, stored) {
			t.Fatalf("read back differs:\ncreated: %+v\n stored: %+v", created, stored)
		}
	}
}
