package test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mkruglov/marketbot/internal/domain/model"
	"github.com/mkruglov/marketbot/internal/session"
	"github.com/mkruglov/marketbot/internal/usecase"
)

// IdentityFacadeStub simulates account facade interactions.
type IdentityFacadeStub struct {
	RegisterFn   func(context.Context, string, int64, string) (*model.Account, string, bool, error)
	ParseFn      func(string) (int64, error)
	AccountFn    func(context.Context, int64) (*model.Account, error)
	SetCountryFn func(context.Context, int64, string) error
}

// Register returns an account and token for successful registration scenarios.
func (s IdentityFacadeStub) Register(ctx context.Context, phrase string, transportID int64, displayName string) (*model.Account, string, bool, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, phrase, transportID, displayName)
	}
	tid := transportID
	return &model.Account{ID: 1, SecretPhrase: phrase, TransportID: &tid, DisplayName: displayName}, "token", false, nil
}

// ParseToken returns the stored identifier for the authenticated account.
func (s IdentityFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// Account returns a configured account.
func (s IdentityFacadeStub) Account(ctx context.Context, id int64) (*model.Account, error) {
	if s.AccountFn != nil {
		return s.AccountFn(ctx, id)
	}
	return &model.Account{ID: id, DisplayName: "tester"}, nil
}

// SetCountry delegates to the override when provided.
func (s IdentityFacadeStub) SetCountry(ctx context.Context, accountID int64, country string) error {
	if s.SetCountryFn != nil {
		return s.SetCountryFn(ctx, accountID, country)
	}
	return nil
}

// CatalogFacadeStub simulates catalog browsing.
type CatalogFacadeStub struct {
	CategoriesFn func(context.Context) ([]string, error)
	ProductsFn   func(context.Context, string) ([]model.Product, error)
}

// Categories returns the configured category list.
func (s CatalogFacadeStub) Categories(ctx context.Context) ([]string, error) {
	if s.CategoriesFn != nil {
		return s.CategoriesFn(ctx)
	}
	return nil, nil
}

// ProductsByCategory returns the configured products.
func (s CatalogFacadeStub) ProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, category)
	}
	return nil, nil
}

// CartFacadeStub simulates cart and wishlist operations.
type CartFacadeStub struct {
	AddToCartFn     func(context.Context, int64, string) (model.CartLine, error)
	CartFn          func(context.Context, int64) ([]model.CartLine, decimal.Decimal, error)
	AddToWishlistFn func(context.Context, int64, string) (bool, error)
	WishlistFn      func(context.Context, int64) ([]model.CartLine, error)
}

// AddToCart delegates to the override when provided.
func (s CartFacadeStub) AddToCart(ctx context.Context, accountID int64, productID string) (model.CartLine, error) {
	if s.AddToCartFn != nil {
		return s.AddToCartFn(ctx, accountID, productID)
	}
	return model.CartLine{ProductID: productID}, nil
}

// Cart returns the configured cart contents.
func (s CartFacadeStub) Cart(ctx context.Context, accountID int64) ([]model.CartLine, decimal.Decimal, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, accountID)
	}
	return nil, decimal.Zero, nil
}

// AddToWishlist delegates to the override when provided.
func (s CartFacadeStub) AddToWishlist(ctx context.Context, accountID int64, productID string) (bool, error) {
	if s.AddToWishlistFn != nil {
		return s.AddToWishlistFn(ctx, accountID, productID)
	}
	return true, nil
}

// Wishlist returns the configured wishlist.
func (s CartFacadeStub) Wishlist(ctx context.Context, accountID int64) ([]model.CartLine, error) {
	if s.WishlistFn != nil {
		return s.WishlistFn(ctx, accountID)
	}
	return nil, nil
}

// CheckoutFacadeStub simulates the staged checkout conversation.
type CheckoutFacadeStub struct {
	StartFn  func(context.Context, int64) (session.Draft, error)
	SubmitFn func(context.Context, int64, string) (*usecase.StepResult, error)
	CancelFn func(int64)

	Cancelled []int64
}

// CheckoutStart opens a draft or delegates to the override.
func (s *CheckoutFacadeStub) CheckoutStart(ctx context.Context, accountID int64) (session.Draft, error) {
	if s.StartFn != nil {
		return s.StartFn(ctx, accountID)
	}
	return session.Draft{AccountID: accountID, Stage: session.StageAwaitingAddress}, nil
}

// CheckoutSubmit processes one answer or delegates to the override.
func (s *CheckoutFacadeStub) CheckoutSubmit(ctx context.Context, accountID int64, text string) (*usecase.StepResult, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, accountID, text)
	}
	return &usecase.StepResult{Stage: session.StageAwaitingNotes}, nil
}

// CheckoutCancel records the cancellation.
func (s *CheckoutFacadeStub) CheckoutCancel(accountID int64) {
	if s.CancelFn != nil {
		s.CancelFn(accountID)
		return
	}
	s.Cancelled = append(s.Cancelled, accountID)
}

// OrderFacadeStub simulates the order ledger.
type OrderFacadeStub struct {
	OrdersFn       func(context.Context, int64) ([]model.Order, error)
	OrderFn        func(context.Context, string) (*model.Order, error)
	OrderAddressFn func(context.Context, int64, string) ([]byte, error)
}

// Orders returns the configured order history.
func (s OrderFacadeStub) Orders(ctx context.Context, accountID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, accountID)
	}
	return nil, nil
}

// Order returns the configured order.
func (s OrderFacadeStub) Order(ctx context.Context, orderID string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusPending}, nil
}

// OrderAddress returns the configured encrypted blob.
func (s OrderFacadeStub) OrderAddress(ctx context.Context, accountID int64, orderID string) ([]byte, error) {
	if s.OrderAddressFn != nil {
		return s.OrderAddressFn(ctx, accountID, orderID)
	}
	return []byte("blob"), nil
}

// ExtrasFacadeStub simulates coupon, rating and key endpoints.
type ExtrasFacadeStub struct {
	ApplyCouponFn   func(context.Context, int64) (string, error)
	SubmitRatingFn  func(context.Context, int64, int) (*model.Rating, error)
	RatingSummaryFn func(context.Context) (*model.RatingSummary, error)
	PublicKeyFn     func(context.Context) (string, error)
}

// ApplyCoupon returns the configured coupon code.
func (s ExtrasFacadeStub) ApplyCoupon(ctx context.Context, accountID int64) (string, error) {
	if s.ApplyCouponFn != nil {
		return s.ApplyCouponFn(ctx, accountID)
	}
	return "SAVE10", nil
}

// SubmitRating delegates to the override when provided.
func (s ExtrasFacadeStub) SubmitRating(ctx context.Context, accountID int64, value int) (*model.Rating, error) {
	if s.SubmitRatingFn != nil {
		return s.SubmitRatingFn(ctx, accountID, value)
	}
	return &model.Rating{ID: 1, AccountID: accountID, Value: value}, nil
}

// RatingSummary returns the configured summary.
func (s ExtrasFacadeStub) RatingSummary(ctx context.Context) (*model.RatingSummary, error) {
	if s.RatingSummaryFn != nil {
		return s.RatingSummaryFn(ctx)
	}
	return &model.RatingSummary{}, nil
}

// PublicKey returns the configured PEM.
func (s ExtrasFacadeStub) PublicKey(ctx context.Context) (string, error) {
	if s.PublicKeyFn != nil {
		return s.PublicKeyFn(ctx)
	}
	return "pem", nil
}

// MarketFacadeStub aggregates facade dependencies for HTTP layer tests.
type MarketFacadeStub struct {
	IdentityFacadeStub
	CatalogFacadeStub
	CartFacadeStub
	CheckoutFacadeStub
	OrderFacadeStub
	ExtrasFacadeStub
}
