package handlers

import (
	"errors"
	"log"
	"net/http"

	"tailorbook/internal/models"
	"tailorbook/internal/repository"
	"tailorbook/internal/services"
	"tailorbook/internal/storage"

	"github.com/gin-gonic/gin"
)

type APIHandler struct {
	customerService services.CustomerService
	orderService    services.OrderService
	galleryService  services.GalleryService
	setupService    services.SetupService
	currencySymbol  string
}

func NewAPIHandler(
	customerService services.CustomerService,
	orderService services.OrderService,
	galleryService services.GalleryService,
	setupService services.SetupService,
	currencySymbol string,
) *APIHandler {
	return &APIHandler{
		customerService: customerService,
		orderService:    orderService,
		galleryService:  galleryService,
		setupService:    setupService,
		currencySymbol:  currencySymbol,
	}
}

// OrderView is an order plus its cost formatted for display.
type OrderView struct {
	models.Order
	CostDisplay string `json:"cost_display"`
}

func (h *APIHandler) orderView(o models.Order) OrderView {
	return OrderView{Order: o, CostDisplay: models.FormatCost(o.Cost, h.currencySymbol)}
}

func (h *APIHandler) orderViews(orders []models.Order) []OrderView {
	out := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, h.orderView(o))
	}
	return out
}

// respondError maps core errors to status codes. Storage failures are reported
// as a generic failure; the cause only goes to the log.
func respondError(c *gin.Context, err error) {
	var invalidStatus *services.InvalidStatusError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &invalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrUnavailable):
		log.Printf("Storage error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Operation failed"})
	default:
		log.Printf("Unexpected error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed"})
	}
}

func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
}

func (h *APIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Setup endpoints

func (h *APIHandler) GetSetup(c *gin.Context) {
	state, err := h.setupService.State(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *APIHandler) CompleteSetup(c *gin.Context) {
	var req struct {
		DefaultMeasurements []models.Measurement `json:"default_measurements"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	state, err := h.setupService.Complete(c.Request.Context(), req.DefaultMeasurements)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Settings endpoints

func (h *APIHandler) GetSettings(c *gin.Context) {
	settings, err := h.setupService.Settings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *APIHandler) SetTheme(c *gin.Context) {
	var req struct {
		Theme models.Theme `json:"theme"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	settings, err := h.setupService.SetTheme(c.Request.Context(), req.Theme)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *APIHandler) UpdateMeasurementTemplate(c *gin.Context) {
	var req struct {
		DefaultMeasurements []models.Measurement `json:"default_measurements"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	state, err := h.setupService.UpdateTemplate(c.Request.Context(), req.DefaultMeasurements)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Customer endpoints

func (h *APIHandler) ListCustomers(c *gin.Context) {
	customers, err := h.customerService.GetAllCustomers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *APIHandler) NewCustomerDraft(c *gin.Context) {
	draft, err := h.customerService.NewCustomerDraft(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *APIHandler) CreateCustomer(c *gin.Context) {
	var input models.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c)
		return
	}
	customer, err := h.customerService.CreateCustomer(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *APIHandler) GetCustomer(c *gin.Context) {
	details, err := h.customerService.GetCustomerDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"customer": details.Customer,
		"orders":   h.orderViews(details.Orders),
		"counts":   details.Counts,
		"links":    details.Links,
	})
}

func (h *APIHandler) UpdateCustomer(c *gin.Context) {
	var patch models.CustomerPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c)
		return
	}
	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *APIHandler) DeleteCustomer(c *gin.Context) {
	if err := h.customerService.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *APIHandler) GetCustomerOrders(c *gin.Context) {
	orders, err := h.orderService.GetOrdersByCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.orderViews(orders))
}

func (h *APIHandler) GetCustomerLinks(c *gin.Context) {
	links, err := h.customerService.ContactLinks(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, links)
}

// Order endpoints

func (h *APIHandler) ListOrders(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		orders []models.Order
		err    error
	)
	switch status := models.OrderStatus(c.Query("status")); {
	case status == "":
		orders, err = h.orderService.GetAllOrders(ctx)
	case status.Valid():
		orders, err = h.orderService.GetOrdersByStatus(ctx, status)
	default:
		respondError(c, &services.InvalidStatusError{Status: status})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.orderViews(orders))
}

func (h *APIHandler) CreateOrder(c *gin.Context) {
	var input models.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c)
		return
	}
	order, err := h.orderService.CreateOrder(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.orderView(*order))
}

func (h *APIHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.orderView(*order))
}

func (h *APIHandler) UpdateOrder(c *gin.Context) {
	var patch models.OrderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c)
		return
	}
	if patch.Status != nil && !patch.Status.Valid() {
		respondError(c, &services.InvalidStatusError{Status: *patch.Status})
		return
	}
	order, err := h.orderService.UpdateOrder(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.orderView(*order))
}

func (h *APIHandler) ToggleOrderStatus(c *gin.Context) {
	order, err := h.orderService.ToggleStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.orderView(*order))
}

func (h *APIHandler) SetOrderStatus(c *gin.Context) {
	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	order, err := h.orderService.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.orderView(*order))
}

func (h *APIHandler) DeleteOrder(c *gin.Context) {
	if err := h.orderService.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *APIHandler) GetStats(c *gin.Context) {
	orders, err := h.orderService.GetAllOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	customers, err := h.customerService.GetAllCustomers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"customers":   len(customers),
		"orders":      services.CountByStatus(orders),
		"by_customer": services.CountByCustomer(orders),
	})
}

// Gallery endpoints

func (h *APIHandler) ListAlbums(c *gin.Context) {
	albums, err := h.galleryService.GetAlbums(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, albums)
}

func (h *APIHandler) CreateAlbum(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	album, err := h.galleryService.CreateAlbum(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, album)
}

func (h *APIHandler) RenameAlbum(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	album, err := h.galleryService.RenameAlbum(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, album)
}

func (h *APIHandler) DeleteAlbum(c *gin.Context) {
	if err := h.galleryService.DeleteAlbum(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *APIHandler) ListAlbumItems(c *gin.Context) {
	items, err := h.galleryService.GetItemsByAlbum(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *APIHandler) AddAlbumItem(c *gin.Context) {
	var req struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	item, err := h.galleryService.AddToGallery(c.Request.Context(), req.URL, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *APIHandler) ListGallery(c *gin.Context) {
	items, err := h.galleryService.GetItems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *APIHandler) MoveGalleryItem(c *gin.Context) {
	var req struct {
		AlbumID string `json:"album_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	item, err := h.galleryService.MoveItem(c.Request.Context(), c.Param("id"), req.AlbumID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *APIHandler) DeleteGalleryItem(c *gin.Context) {
	if err := h.galleryService.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
