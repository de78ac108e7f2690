package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkruglov/marketbot/internal/server/http/dto"
)

// ExtrasHandler serves coupons, ratings and the address encryption key.
type ExtrasHandler struct {
	facade ExtrasFacade
}

// NewExtrasHandler constructs ExtrasHandler.
func NewExtrasHandler(facade ExtrasFacade) *ExtrasHandler {
	return &ExtrasHandler{facade: facade}
}

// ApplyCoupon handles POST /api/coupon. There is a single promo code;
// applying it loads the account's coupon slot until the next checkout.
func (h *ExtrasHandler) ApplyCoupon(c *gin.Context) {
	code, err := h.facade.ApplyCoupon(c.Request.Context(), CurrentAccountID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CouponResponse{Coupon: code})
}

// SubmitRating handles POST /api/ratings.
func (h *ExtrasHandler) SubmitRating(c *gin.Context) {
	var req dto.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if _, err := h.facade.SubmitRating(c.Request.Context(), CurrentAccountID(c), req.Value); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// RatingSummary handles GET /api/ratings.
func (h *ExtrasHandler) RatingSummary(c *gin.Context) {
	summary, err := h.facade.RatingSummary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRatingSummaryResponse(*summary))
}

// PublicKey handles GET /api/pgp/key.
func (h *ExtrasHandler) PublicKey(c *gin.Context) {
	pem, err := h.facade.PublicKey(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PublicKeyResponse{PublicKey: pem})
}
