package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/petflu/service-storefront/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler reports liveness and exposes Prometheus metrics.
type HealthHandler struct {
	store    storage.Store
	gatherer prometheus.Gatherer
	service  string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store storage.Store, gatherer prometheus.Gatherer, service string) *HealthHandler {
	return &HealthHandler{store: store, gatherer: gatherer, service: service}
}

// RegisterRoutes registers /health and /metrics on the router.
func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
}

// Health handles GET /health. It is unhealthy when storage cannot be reached.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": h.service,
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": h.service})
}
