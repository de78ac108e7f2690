package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkruglov/marketbot/internal/domain/model"
)

// OrderResponse is the wire form of a finalized order. The delivery
// address never appears here; it is only served as an encrypted blob by
// the address endpoint.
type OrderResponse struct {
	ID        string             `json:"id"`
	Status    string             `json:"status"`
	Items     []CartLineResponse `json:"items"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	Discount  decimal.Decimal    `json:"discount"`
	Total     decimal.Decimal    `json:"total"`
	Coupon    string             `json:"coupon,omitempty"`
	Payment   string             `json:"payment"`
	Notes     string             `json:"notes,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// NewOrderResponse maps a domain order to wire form.
func NewOrderResponse(o model.Order) OrderResponse {
	out := OrderResponse{
		ID:        o.ID,
		Status:    string(o.Status),
		Items:     make([]CartLineResponse, 0, len(o.Items)),
		Subtotal:  o.Subtotal,
		Discount:  o.Discount,
		Total:     o.Total,
		Coupon:    o.Coupon,
		Payment:   string(o.Payment),
		Notes:     o.Notes,
		CreatedAt: o.CreatedAt,
	}
	for _, l := range o.Items {
		out.Items = append(out.Items, CartLineResponse{ProductID: l.ProductID, Name: l.Name, Price: l.Price})
	}
	return out
}

// NewOrderListResponse maps a slice of orders to wire form.
func NewOrderListResponse(orders []model.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}
