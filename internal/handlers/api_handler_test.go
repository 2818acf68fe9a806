package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tailorbook/internal/migrations"
	"tailorbook/internal/models"
	"tailorbook/internal/repository"
	"tailorbook/internal/services"
	"tailorbook/internal/storage"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T, backend storage.Backend) (*gin.Engine, *repository.Repositories) {
	t.Helper()
	router, repos := newTestRouterNoBootstrap(t, backend)
	if err := migrations.Bootstrap(context.Background(), repos, migrations.Options{}); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	return router, repos
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func completeSetup(t *testing.T, router http.Handler) {
	t.Helper()
	w := do(t, router, http.MethodPut, "/api/setup", gin.H{
		"default_measurements": []models.Measurement{{Name: "Chest"}, {Name: "Trouser Length"}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("complete setup: %d %s", w.Code, w.Body.String())
	}
}

func TestSetupGuardRedirectsUntilConfigured(t *testing.T) {
	router, _ := newTestRouter(t, storage.NewMemory())

	w := do(t, router, http.MethodGet, "/api/customers", nil)
	if w.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want redirect", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/api/setup" {
		t.Fatalf("location = %q", loc)
	}

	w = do(t, router, http.MethodGet, "/api/setup", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("setup route blocked: %d", w.Code)
	}
	var state services.SetupState
	if err := json.Unmarshal(w.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.Configured || len(state.DefaultMeasurements) != len(models.DefaultMeasurements) {
		t.Fatalf("state = %+v", state)
	}

	if w := do(t, router, http.MethodGet, "/healthz", nil); w.Code != http.StatusOK {
		t.Fatalf("healthz = %d", w.Code)
	}

	for _, path := range []string{"/api/setupx", "/api/setup-customers", "/api/settings"} {
		if w := do(t, router, http.MethodGet, path, nil); w.Code != http.StatusTemporaryRedirect {
			t.Fatalf("%s = %d, want redirect", path, w.Code)
		}
	}

	completeSetup(t, router)
	if w := do(t, router, http.MethodGet, "/api/customers", nil); w.Code != http.StatusOK {
		t.Fatalf("customers after setup = %d", w.Code)
	}
}

func TestCompleteSetupWithoutTemplateKeepsDefaults(t *testing.T) {
	router, _ := newTestRouter(t, storage.NewMemory())

	w := do(t, router, http.MethodPut, "/api/setup", gin.H{})
	if w.Code != http.StatusOK {
		t.Fatalf("complete setup: %d %s", w.Code, w.Body.String())
	}
	var state services.SetupState
	if err := json.Unmarshal(w.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !state.Configured || len(state.DefaultMeasurements) != len(models.DefaultMeasurements) {
		t.Fatalf("state = %+v", state)
	}
}

func TestCustomerAndOrderFlow(t *testing.T) {
	router, _ := newTestRouter(t, storage.NewMemory())
	completeSetup(t, router)

	w := do(t, router, http.MethodPost, "/api/customers", gin.H{"name": "Amara", "phone": "08012345678"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create customer: %d %s", w.Code, w.Body.String())
	}
	var customer models.Customer
	if err := json.Unmarshal(w.Body.Bytes(), &customer); err != nil {
		t.Fatalf("decode customer: %v", err)
	}
	if len(customer.Measurements) != 2 || customer.Measurements[0].Name != "Chest" {
		t.Fatalf("customer not prefilled from template: %+v", customer.Measurements)
	}

	w = do(t, router, http.MethodPost, "/api/orders", gin.H{
		"customer_id": customer.ID,
		"description": "ORD-001",
		"deadline":    "2024-03-01T00:00:00Z",
		"cost":        "45000",
		"status":      "completed",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create order: %d %s", w.Code, w.Body.String())
	}
	var order OrderView
	if err := json.Unmarshal(w.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if order.Status != models.OrderPending {
		t.Fatalf("status = %q", order.Status)
	}
	if order.CostDisplay != "₦45,000" {
		t.Fatalf("cost display = %q", order.CostDisplay)
	}

	w = do(t, router, http.MethodPost, "/api/orders/"+order.ID+"/toggle", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("toggle: %d", w.Code)
	}
	w = do(t, router, http.MethodGet, "/api/orders?status=completed", nil)
	var completed []OrderView
	if err := json.Unmarshal(w.Body.Bytes(), &completed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != order.ID {
		t.Fatalf("completed = %+v", completed)
	}

	if w := do(t, router, http.MethodGet, "/api/orders?status=lost", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid status filter = %d", w.Code)
	}

	if w := do(t, router, http.MethodDelete, "/api/customers/"+customer.ID, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete customer = %d", w.Code)
	}
	if w := do(t, router, http.MethodGet, "/api/customers/"+customer.ID, nil); w.Code != http.StatusNotFound {
		t.Fatalf("get deleted customer = %d", w.Code)
	}
	if w := do(t, router, http.MethodGet, "/api/orders/"+order.ID, nil); w.Code != http.StatusOK {
		t.Fatalf("order should survive customer delete, got %d", w.Code)
	}
}

func TestUpdateMissingReturnsNotFound(t *testing.T) {
	router, _ := newTestRouter(t, storage.NewMemory())
	completeSetup(t, router)
	if w := do(t, router, http.MethodPut, "/api/orders/nope", gin.H{"cost": "1"}); w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	if w := do(t, router, http.MethodDelete, "/api/orders/nope", nil); w.Code != http.StatusNoContent {
		t.Fatalf("idempotent delete status = %d", w.Code)
	}
}

func TestAlbumRoutes(t *testing.T) {
	router, repos := newTestRouter(t, storage.NewMemory())
	completeSetup(t, router)

	w := do(t, router, http.MethodGet, "/api/albums", nil)
	var albums []services.AlbumSummary
	if err := json.Unmarshal(w.Body.Bytes(), &albums); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(albums) != 3 {
		t.Fatalf("expected default albums, got %+v", albums)
	}

	w = do(t, router, http.MethodPost, "/api/albums/album-1/items", gin.H{"url": "data:image/png;base64,AA"})
	if w.Code != http.StatusCreated {
		t.Fatalf("add item = %d", w.Code)
	}
	if w := do(t, router, http.MethodDelete, "/api/albums/album-1", nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete album = %d", w.Code)
	}
	items, err := repos.GalleryItems.List(context.Background())
	if err != nil || len(items) != 0 {
		t.Fatalf("items after cascade = %+v %v", items, err)
	}
}

type brokenWrites struct{ storage.Backend }

func (brokenWrites) Put(context.Context, string, []byte) error { return errors.New("disk full") }

func TestStorageFailureIsServiceUnavailable(t *testing.T) {
	mem := storage.NewMemory()
	router, _ := newTestRouter(t, mem)
	completeSetup(t, router)

	// Same data, but every write now fails.
	broken, _ := newTestRouterNoBootstrap(t, brokenWrites{Backend: mem})
	w := do(t, broken, http.MethodPost, "/api/customers", gin.H{"name": "x"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d %s", w.Code, w.Body.String())
	}
}

func newTestRouterNoBootstrap(t *testing.T, backend storage.Backend) (*gin.Engine, *repository.Repositories) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repos := repository.New(backend, repository.Options{})
	h := NewAPIHandler(
		services.NewCustomerService(repos.Customers, repos.Orders, repos.Settings, nil),
		services.NewOrderService(repos.Orders),
		services.NewGalleryService(repos.Albums, repos.GalleryItems),
		services.NewSetupService(repos.Settings),
		"₦",
	)
	router := gin.New()
	h.RegisterRoutes(router)
	return router, repos
}
