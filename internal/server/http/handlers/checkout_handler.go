package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkruglov/marketbot/internal/server/http/dto"
)

// CheckoutHandler drives the staged checkout conversation over HTTP.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Start handles POST /api/checkout. It opens a draft for the caller;
// starting again simply resets the conversation to the address stage.
func (h *CheckoutHandler) Start(c *gin.Context) {
	draft, err := h.facade.CheckoutStart(c.Request.Context(), CurrentAccountID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCheckoutStartResponse(draft.Stage))
}

// Message handles POST /api/checkout/message: one free-text answer for
// whatever stage the draft is in.
func (h *CheckoutHandler) Message(c *gin.Context) {
	var req dto.CheckoutMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	res, err := h.facade.CheckoutSubmit(c.Request.Context(), CurrentAccountID(c), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCheckoutStepResponse(*res))
}

// Cancel handles DELETE /api/checkout. The cart survives cancellation.
func (h *CheckoutHandler) Cancel(c *gin.Context) {
	h.facade.CheckoutCancel(CurrentAccountID(c))
	c.Status(http.StatusOK)
}
