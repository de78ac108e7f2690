package dto

import (
	"github.com/mkruglov/marketbot/internal/session"
	"github.com/mkruglov/marketbot/internal/usecase"
)

// CheckoutMessageRequest carries one free-text checkout answer.
type CheckoutMessageRequest struct {
	Text string `json:"text"`
}

// CheckoutStepResponse reports where the checkout conversation stands
// after a message. Order is set only once the flow completes.
type CheckoutStepResponse struct {
	Stage string         `json:"stage,omitempty"`
	Done  bool           `json:"done"`
	Order *OrderResponse `json:"order,omitempty"`
	PayTo string         `json:"pay_to,omitempty"`
}

// NewCheckoutStepResponse maps a checkout step outcome to wire form.
func NewCheckoutStepResponse(res usecase.StepResult) CheckoutStepResponse {
	out := CheckoutStepResponse{Stage: string(res.Stage), Done: res.Done, PayTo: res.PayTo}
	if res.Order != nil {
		o := NewOrderResponse(*res.Order)
		out.Order = &o
	}
	return out
}

// CheckoutStartResponse reports the opening stage of a new checkout.
type CheckoutStartResponse struct {
	Stage string `json:"stage"`
}

// NewCheckoutStartResponse maps the opening stage to wire form.
func NewCheckoutStartResponse(stage session.Stage) CheckoutStartResponse {
	return CheckoutStartResponse{Stage: string(stage)}
}
