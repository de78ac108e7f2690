package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/mkruglov/marketbot/internal/domain/errors"
	"github.com/mkruglov/marketbot/internal/server/http/dto"
	"github.com/mkruglov/marketbot/internal/server/http/middleware"
)

// CurrentAccountID extracts the authenticated account identifier from context.
func CurrentAccountID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.AccountIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// writeError maps a domain error to an HTTP status with user-facing text.
func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), dto.ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrNotRegistered):
		return http.StatusUnauthorized
	case errors.Is(err, domainErrors.ErrInvalidSecretPhrase):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrProductNotFound),
		errors.Is(err, domainErrors.ErrOrderNotFound),
		errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrEmptyCart),
		errors.Is(err, domainErrors.ErrSessionExpired):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrInvalidCountry),
		errors.Is(err, domainErrors.ErrInvalidPaymentChoice),
		errors.Is(err, domainErrors.ErrInvalidRating):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainErrors.ErrEncryptionUnavailable):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
