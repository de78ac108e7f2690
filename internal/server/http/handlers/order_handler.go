package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkruglov/marketbot/internal/server/http/dto"
)

// OrderHandler manages order ledger endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentAccountID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderListResponse(orders))
}

// Track handles GET /api/orders/:id. Any registered caller may look up
// any order id; lookups never reveal the address.
func (h *OrderHandler) Track(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(*order))
}

// Address handles GET /api/orders/:id/address. Only the order's owner
// receives the encrypted blob, served as a download.
func (h *OrderHandler) Address(c *gin.Context) {
	orderID := c.Param("id")
	blob, err := h.facade.OrderAddress(c.Request.Context(), CurrentAccountID(c), orderID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "address_"+orderID+".bin"))
	c.Data(http.StatusOK, "application/octet-stream", blob)
}
