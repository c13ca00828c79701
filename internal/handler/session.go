package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/petflu/service-storefront/internal/middleware"
	"github.com/petflu/service-storefront/internal/response"
)

func requireSession(c *gin.Context) (string, bool) {
	id, ok := middleware.GetSessionID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Envelope{Error: "missing session"})
		return "", false
	}
	return id, true
}
