package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mkruglov/marketbot/internal/domain/model"
	"github.com/mkruglov/marketbot/internal/session"
	"github.com/mkruglov/marketbot/internal/usecase"
)

// IdentityFacade describes account capabilities required by handlers.
type IdentityFacade interface {
	Register(ctx context.Context, phrase string, transportID int64, displayName string) (*model.Account, string, bool, error)
	ParseToken(token string) (int64, error)
	Account(ctx context.Context, id int64) (*model.Account, error)
	SetCountry(ctx context.Context, accountID int64, country string) error
}

// CatalogFacade exposes catalog browsing.
type CatalogFacade interface {
	Categories(ctx context.Context) ([]string, error)
	ProductsByCategory(ctx context.Context, category string) ([]model.Product, error)
}

// CartFacade exposes cart and wishlist operations.
type CartFacade interface {
	AddToCart(ctx context.Context, accountID int64, productID string) (model.CartLine, error)
	Cart(ctx context.Context, accountID int64) ([]model.CartLine, decimal.Decimal, error)
	AddToWishlist(ctx context.Context, accountID int64, productID string) (bool, error)
	Wishlist(ctx context.Context, accountID int64) ([]model.CartLine, error)
}

// CheckoutFacade drives the staged checkout conversation.
type CheckoutFacade interface {
	CheckoutStart(ctx context.Context, accountID int64) (session.Draft, error)
	CheckoutSubmit(ctx context.Context, accountID int64, text string) (*usecase.StepResult, error)
	CheckoutCancel(accountID int64)
}

// OrderFacade exposes the order ledger.
type OrderFacade interface {
	Orders(ctx context.Context, accountID int64) ([]model.Order, error)
	Order(ctx context.Context, orderID string) (*model.Order, error)
	OrderAddress(ctx context.Context, accountID int64, orderID string) ([]byte, error)
}

// ExtrasFacade covers coupons, ratings and the encryption key endpoint.
type ExtrasFacade interface {
	ApplyCoupon(ctx context.Context, accountID int64) (string, error)
	SubmitRating(ctx context.Context, accountID int64, value int) (*model.Rating, error)
	RatingSummary(ctx context.Context) (*model.RatingSummary, error)
	PublicKey(ctx context.Context) (string, error)
}

// MarketFacade aggregates the full set of operations used across handlers.
type MarketFacade interface {
	IdentityFacade
	CatalogFacade
	CartFacade
	CheckoutFacade
	OrderFacade
	ExtrasFacade
}
