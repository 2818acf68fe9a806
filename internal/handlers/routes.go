package handlers

import (
	"net/http"
	"strings"

	"tailorbook/internal/services"

	"github.com/gin-gonic/gin"
)

const setupPath = "/api/setup"

// SetupGuard sends every request to the setup route until setup is complete.
// The flag is read from storage on each request.
func SetupGuard(setup services.SetupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == setupPath || strings.HasPrefix(path, setupPath+"/") || path == "/healthz" {
			c.Next()
			return
		}
		configured, err := setup.IsConfigured(c.Request.Context())
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		if !configured {
			c.Redirect(http.StatusTemporaryRedirect, setupPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (h *APIHandler) RegisterRoutes(router *gin.Engine) {
	router.Use(SetupGuard(h.setupService))

	router.GET("/healthz", h.Health)

	api := router.Group("/api")
	{
		api.GET("/setup", h.GetSetup)
		api.PUT("/setup", h.CompleteSetup)

		api.GET("/settings", h.GetSettings)
		api.PUT("/settings/theme", h.SetTheme)
		api.PUT("/settings/measurements", h.UpdateMeasurementTemplate)

		api.GET("/customers", h.ListCustomers)
		api.GET("/customers/new", h.NewCustomerDraft)
		api.POST("/customers", h.CreateCustomer)
		api.GET("/customers/:id", h.GetCustomer)
		api.PUT("/customers/:id", h.UpdateCustomer)
		api.DELETE("/customers/:id", h.DeleteCustomer)
		api.GET("/customers/:id/orders", h.GetCustomerOrders)
		api.GET("/customers/:id/links", h.GetCustomerLinks)

		api.GET("/orders", h.ListOrders)
		api.POST("/orders", h.CreateOrder)
		api.GET("/orders/:id", h.GetOrder)
		api.PUT("/orders/:id", h.UpdateOrder)
		api.PUT("/orders/:id/status", h.SetOrderStatus)
		api.POST("/orders/:id/toggle", h.ToggleOrderStatus)
		api.DELETE("/orders/:id", h.DeleteOrder)

		api.GET("/albums", h.ListAlbums)
		api.POST("/albums", h.CreateAlbum)
		api.PUT("/albums/:id", h.RenameAlbum)
		api.DELETE("/albums/:id", h.DeleteAlbum)
		api.GET("/albums/:id/items", h.ListAlbumItems)
		api.POST("/albums/:id/items", h.AddAlbumItem)

		api.GET("/gallery", h.ListGallery)
		api.PUT("/gallery/:id/album", h.MoveGalleryItem)
		api.DELETE("/gallery/:id", h.DeleteGalleryItem)

		api.GET("/stats", h.GetStats)
	}
}
