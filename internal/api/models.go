package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/annapurna-ai/backend/internal/service"
)

// ModelCatalog lists the AI models a user may pick from.
type ModelCatalog interface {
	ListModels(ctx context.Context) []service.ModelInfo
}

// ModelHandler serves the AI model catalog
type ModelHandler struct {
	catalog ModelCatalog
}

// NewModelHandler creates a new ModelHandler instance. A nil catalog serves
// the built-in model list, which keeps the picker working when no API key is
// configured.
func NewModelHandler(catalog ModelCatalog) *ModelHandler {
	return &ModelHandler{catalog: catalog}
}

// List handles GET /ai/models
func (h *ModelHandler) List(c *gin.Context) {
	if h.catalog == nil {
		ok(c, http.StatusOK, service.DefaultModels())
		return
	}
	ok(c, http.StatusOK, h.catalog.ListModels(c.Request.Context()))
}
