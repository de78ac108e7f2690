package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mkruglov/marketbot/internal/server/http/dto"
	"github.com/mkruglov/marketbot/internal/server/http/middleware"
)

// AuthHandler processes registration and account settings.
type AuthHandler struct {
	facade IdentityFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade IdentityFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/user/register. A known secret phrase logs
// the caller back in on this transport; an unknown one creates a fresh
// account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.SecretPhrase) == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	_, token, greeted, err := h.facade.Register(c.Request.Context(), req.SecretPhrase, req.ChatID, req.Username)
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.RegisterResponse{Greeted: greeted})
}

// Me handles GET /api/user.
func (h *AuthHandler) Me(c *gin.Context) {
	accountID := CurrentAccountID(c)
	acc, err := h.facade.Account(c.Request.Context(), accountID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AccountResponse{
		DisplayName: acc.DisplayName,
		Country:     acc.Country,
		Coupon:      acc.Coupon,
	})
}

// SetCountry handles POST /api/user/country.
func (h *AuthHandler) SetCountry(c *gin.Context) {
	var req dto.CountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.SetCountry(c.Request.Context(), CurrentAccountID(c), req.Country); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
