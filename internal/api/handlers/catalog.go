package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kazkn/vinted-scout/internal/vinted"
)

// CatalogHandler serves the static marketplace reference data.
type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// GetCountries handles GET /api/catalog/countries.
func (h *CatalogHandler) GetCountries(c *gin.Context) {
	c.JSON(http.StatusOK, vinted.Countries())
}

// GetCategories handles GET /api/catalog/categories.
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, vinted.Categories())
}
