package dto

import (
	"github.com/shopspring/decimal"

	"github.com/mkruglov/marketbot/internal/domain/model"
)

// AddCartRequest adds one product to the cart.
type AddCartRequest struct {
	ProductID string `json:"product_id"`
}

// CartLineResponse is one snapshotted cart line.
type CartLineResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

// CartResponse is the full cart with its subtotal.
type CartResponse struct {
	Items    []CartLineResponse `json:"items"`
	Subtotal decimal.Decimal    `json:"subtotal"`
}

// NewCartResponse maps cart lines and their subtotal to wire form.
func NewCartResponse(lines []model.CartLine, subtotal decimal.Decimal) CartResponse {
	out := CartResponse{Items: make([]CartLineResponse, 0, len(lines)), Subtotal: subtotal}
	for _, l := range lines {
		out.Items = append(out.Items, CartLineResponse{ProductID: l.ProductID, Name: l.Name, Price: l.Price})
	}
	return out
}

// WishRequest adds one product to the wishlist.
type WishRequest struct {
	ProductID string `json:"product_id"`
}

// WishlistResponse lists wishlist entries.
type WishlistResponse struct {
	Items []CartLineResponse `json:"items"`
}

// NewWishlistResponse maps wishlist lines to wire form.
func NewWishlistResponse(lines []model.CartLine) WishlistResponse {
	out := WishlistResponse{Items: make([]CartLineResponse, 0, len(lines))}
	for _, l := range lines {
		out.Items = append(out.Items, CartLineResponse{ProductID: l.ProductID, Name: l.Name, Price: l.Price})
	}
	return out
}
