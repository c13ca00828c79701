package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/petflu/service-storefront/internal/application"
	"github.com/petflu/service-storefront/internal/response"
)

// CatalogHandler serves the read-only product and service datasets.
type CatalogHandler struct {
	service *application.StorefrontService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *application.StorefrontService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes registers the catalog routes on the given router group.
func (h *CatalogHandler) RegisterRoutes(r *gin.RouterGroup) {
	v1 := r.Group("/api/v1")
	{
		v1.GET("/catalog", h.GetCatalog)
		v1.GET("/services", h.ListServices)
		v1.GET("/service-options", h.ListServiceOptions)
	}
}

// GetCatalog handles GET /api/v1/catalog.
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	response.Success(c, gin.H{
		"categories": h.service.Catalog().Categories(),
		"view":       h.service.CatalogView(),
	})
}

// ListServices handles GET /api/v1/services.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	response.Success(c, h.service.Catalog().Services())
}

// ListServiceOptions handles GET /api/v1/service-options.
func (h *CatalogHandler) ListServiceOptions(c *gin.Context) {
	response.Success(c, h.service.ServiceOptions())
}
