package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/petflu/service-storefront/internal/application"
	"github.com/petflu/service-storefront/internal/response"
)

// CartHandler handles HTTP requests for the session's cart.
type CartHandler struct {
	service *application.StorefrontService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *application.StorefrontService) *CartHandler {
	return &CartHandler{service: service}
}

// RegisterRoutes registers all cart routes on the given router group.
func (h *CartHandler) RegisterRoutes(r *gin.RouterGroup) {
	cart := r.Group("/api/v1/cart")
	{
		cart.GET("", h.GetCart)
		cart.POST("/items", h.AddItem)
		cart.DELETE("/items/:id", h.RemoveItem)
		cart.POST("/checkout", h.Checkout)
	}
}

// GetCart handles GET /api/v1/cart.
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	result, err := h.service.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// AddItem handles POST /api/v1/cart/items.
func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	var req application.AddToCartRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddToCart(c.Request.Context(), sessionID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RemoveItem handles DELETE /api/v1/cart/items/:id.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	result, err := h.service.RemoveFromCart(c.Request.Context(), sessionID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Checkout handles POST /api/v1/cart/checkout.
func (h *CartHandler) Checkout(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	result, err := h.service.Checkout(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
