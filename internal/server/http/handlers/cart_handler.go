package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkruglov/marketbot/internal/server/http/dto"
)

// CartHandler manages cart and wishlist endpoints.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Add handles POST /api/cart. Adding the same product twice yields two
// cart lines.
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.AddCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	line, err := h.facade.AddToCart(c.Request.Context(), CurrentAccountID(c), req.ProductID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CartLineResponse{ProductID: line.ProductID, Name: line.Name, Price: line.Price})
}

// View handles GET /api/cart.
func (h *CartHandler) View(c *gin.Context) {
	lines, subtotal, err := h.facade.Cart(c.Request.Context(), CurrentAccountID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCartResponse(lines, subtotal))
}

// Wish handles POST /api/wishlist. Duplicate wishes are ignored.
func (h *CartHandler) Wish(c *gin.Context) {
	var req dto.WishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	added, err := h.facade.AddToWishlist(c.Request.Context(), CurrentAccountID(c), req.ProductID)
	if err != nil {
		writeError(c, err)
		return
	}
	if !added {
		c.Status(http.StatusOK)
		return
	}
	c.Status(http.StatusCreated)
}

// Wishlist handles GET /api/wishlist.
func (h *CartHandler) Wishlist(c *gin.Context) {
	lines, err := h.facade.Wishlist(c.Request.Context(), CurrentAccountID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewWishlistResponse(lines))
}
