package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/petflu/service-storefront/internal/application"
	"github.com/petflu/service-storefront/internal/response"
	"github.com/petflu/service-storefront/internal/view"
	"go.uber.org/zap"
)

// FragmentHandler serves server-rendered HTML fragments of the storefront page.
type FragmentHandler struct {
	service  *application.StorefrontService
	renderer *view.Renderer
	logger   *zap.Logger
}

// NewFragmentHandler creates a new FragmentHandler.
func NewFragmentHandler(service *application.StorefrontService, renderer *view.Renderer, logger *zap.Logger) *FragmentHandler {
	return &FragmentHandler{service: service, renderer: renderer, logger: logger}
}

// RegisterRoutes registers the fragment routes on the given router group.
func (h *FragmentHandler) RegisterRoutes(r *gin.RouterGroup) {
	fragments := r.Group("/fragments")
	{
		fragments.GET("/catalog", h.Catalog)
		fragments.GET("/services", h.Services)
		fragments.GET("/cart", h.Cart)
		fragments.GET("/cart-count", h.CartCount)
	}
}

// Catalog handles GET /fragments/catalog.
func (h *FragmentHandler) Catalog(c *gin.Context) {
	h.render(c, view.FragmentCatalog, h.service.CatalogView())
}

// Services handles GET /fragments/services.
func (h *FragmentHandler) Services(c *gin.Context) {
	h.render(c, view.FragmentServices, h.service.ServiceOptions())
}

// Cart handles GET /fragments/cart.
func (h *FragmentHandler) Cart(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}
	cv, err := h.service.CartView(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.render(c, view.FragmentCart, cv)
}

// CartCount handles GET /fragments/cart-count.
func (h *FragmentHandler) CartCount(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}
	cv, err := h.service.CartView(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.render(c, view.FragmentCartCount, cv.Count)
}

// render buffers the fragment so a template error never leaves a half-written body.
func (h *FragmentHandler) render(c *gin.Context, fragment string, data interface{}) {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, fragment, data); err != nil {
		h.logger.Error("failed to render fragment", zap.String("fragment", fragment), zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
