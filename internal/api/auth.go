package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/annapurna-ai/backend/internal/models"
	"github.com/annapurna-ai/backend/internal/service"
	"github.com/annapurna-ai/backend/internal/types"
)

// AuthHandler handles signup and login
type AuthHandler struct {
	auth service.IAuthService
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(auth service.IAuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	preference := models.DietaryPreference(req.DietaryPreference)
	if err := preference.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ProteinGoal < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "protein goal must not be negative"})
		return
	}

	token, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password, preference, req.ProteinGoal)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
