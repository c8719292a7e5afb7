package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/annapurna-ai/backend/internal/service"
)

// Every AI-backed endpoint answers with this envelope so the frontend only
// ever sees {success, data} or {success, error}.
type result struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func ok(c *gin.Context, status int, data interface{}) {
	c.JSON(status, result{Success: true, Data: data})
}

// fail converts an estimation failure into the uniform user-facing outcome.
// The failure kind (transport vs endpoint vs schema) only reaches the log.
func fail(c *gin.Context, err error, userMessage string) {
	switch {
	case errors.Is(err, service.ErrSchemaValidation):
		log.Printf("[api] schema validation failure: %v", err)
	case errors.Is(err, service.ErrEndpoint):
		log.Printf("[api] endpoint failure: %v", err)
	case errors.Is(err, service.ErrTransport):
		log.Printf("[api] transport failure: %v", err)
	default:
		log.Printf("[api] estimation failure: %v", err)
	}
	c.JSON(http.StatusBadGateway, result{Success: false, Error: userMessage})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, result{Success: false, Error: message})
}

// currentUserID extracts the authenticated user set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	userID, ok := val.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	return userID, true
}
