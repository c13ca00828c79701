package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/petflu/service-storefront/internal/domain"
)

// Envelope is the JSON body of every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success writes a 200 response with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 response with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// BadRequest writes a 400 response with a message.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{Error: message})
}

// Error maps err to a status code. Internal errors never expose their cause.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)

	status := StatusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
		var de *domain.DomainError
		if errors.As(err, &de) && de.Kind == domain.KindInternal {
			message = de.Message
		}
	}
	c.AbortWithStatusJSON(status, Envelope{Error: message})
}

// StatusOf returns the HTTP status for err.
func StatusOf(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
