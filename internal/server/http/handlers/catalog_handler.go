package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkruglov/marketbot/internal/server/http/dto"
)

// CatalogHandler serves catalog browsing endpoints.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Categories handles GET /api/catalog.
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.facade.Categories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CategoriesResponse{Categories: categories})
}

// Products handles GET /api/catalog/:category.
func (h *CatalogHandler) Products(c *gin.Context) {
	products, err := h.facade.ProductsByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, dto.NewProductResponse(p))
	}
	c.JSON(http.StatusOK, response)
}
