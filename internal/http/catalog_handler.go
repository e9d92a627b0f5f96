package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vaidya/internal/catalog"
)

// CatalogHandler expone el catalogo de plantillas de terapia (solo lectura).
type CatalogHandler struct {
	logger  *zap.Logger
	catalog *catalog.Catalog
}

func NewCatalogHandler(logger *zap.Logger, c *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{logger: logger, catalog: c}
}

// ListTherapies maneja GET /therapies.
func (h *CatalogHandler) ListTherapies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"therapies": h.catalog.Summaries()})
}

// GetTherapy maneja GET /therapies/:id.
func (h *CatalogHandler) GetTherapy(c *gin.Context) {
	tpl, ok := h.catalog.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "therapy not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"therapy": tpl})
}
