package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/petflu/service-storefront/internal/application"
	"github.com/petflu/service-storefront/internal/response"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.StorefrontService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.StorefrontService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/api/v1/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
	}
}

// CreateBooking handles POST /api/v1/bookings. It accepts JSON or the booking form encoding.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), sessionID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListBookings handles GET /api/v1/bookings.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	result, err := h.service.ListBookings(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
