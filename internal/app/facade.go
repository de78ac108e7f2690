package app

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/mkruglov/marketbot/internal/adapter/addresscrypt"
	"github.com/mkruglov/marketbot/internal/domain/model"
	"github.com/mkruglov/marketbot/internal/pkg/auth"
	"github.com/mkruglov/marketbot/internal/session"
	"github.com/mkruglov/marketbot/internal/usecase"
)

// ShopFacade aggregates the use cases behind one surface the transport
// adapter talks to.
type ShopFacade struct {
	identity *usecase.IdentityUseCase
	catalog  *usecase.CatalogUseCase
	cart     *usecase.CartUseCase
	checkout *usecase.CheckoutUseCase
	orders   *usecase.OrderUseCase
	coupons  *usecase.CouponUseCase
	ratings  *usecase.RatingUseCase
	crypt    addresscrypt.Encryptor
	tokens   auth.Strategy
}

// NewShopFacade constructs ShopFacade.
func NewShopFacade(
	identity *usecase.IdentityUseCase,
	catalog *usecase.CatalogUseCase,
	cart *usecase.CartUseCase,
	checkout *usecase.CheckoutUseCase,
	orders *usecase.OrderUseCase,
	coupons *usecase.CouponUseCase,
	ratings *usecase.RatingUseCase,
	crypt addresscrypt.Encryptor,
	tokens auth.Strategy,
) *ShopFacade {
	return &ShopFacade{
		identity: identity,
		catalog:  catalog,
		cart:     cart,
		checkout: checkout,
		orders:   orders,
		coupons:  coupons,
		ratings:  ratings,
		crypt:    crypt,
		tokens:   tokens,
	}
}

// sessionKey scopes checkout drafts to one account's conversation.
func sessionKey(accountID int64) string {
	return "acct:" + strconv.FormatInt(accountID, 10)
}

// Register performs register-or-greet by secret phrase and issues a session
// token for the transport.
func (f *ShopFacade) Register(ctx context.Context, phrase string, transportID int64, displayName string) (*model.Account, string, bool, error) {
	acc, greeted, err := f.identity.RegisterOrGreet(ctx, phrase, transportID, displayName)
	if err != nil {
		return nil, "", false, err
	}
	token, err := f.tokens.IssueToken(acc.ID)
	if err != nil {
		return nil, "", false, err
	}
	return acc, token, greeted, nil
}

// ParseToken extracts the account ID from a session token.
func (f *ShopFacade) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, auth.ErrInvalidToken
	}
	return f.tokens.ParseToken(token)
}

// Resolve finds the account bound to a transport identity.
func (f *ShopFacade) Resolve(ctx context.Context, transportID int64) (*model.Account, error) {
	return f.identity.Resolve(ctx, transportID)
}

// Account fetches an account by id.
func (f *ShopFacade) Account(ctx context.Context, id int64) (*model.Account, error) {
	return f.identity.GetByID(ctx, id)
}

// SetCountry stores the account's country.
func (f *ShopFacade) SetCountry(ctx context.Context, accountID int64, country string) error {
	return f.identity.SetCountry(ctx, accountID, country)
}

// Categories lists catalog categories.
func (f *ShopFacade) Categories(ctx context.Context) ([]string, error) {
	return f.catalog.Categories(ctx)
}

// ProductsByCategory lists one category's products.
func (f *ShopFacade) ProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	return f.catalog.ListByCategory(ctx, category)
}

// AddToCart appends a product snapshot to the account's cart.
func (f *ShopFacade) AddToCart(ctx context.Context, accountID int64, productID string) (model.CartLine, error) {
	return f.cart.AddItem(ctx, accountID, productID)
}

// Cart returns cart lines and subtotal.
func (f *ShopFacade) Cart(ctx context.Context, accountID int64) ([]model.CartLine, decimal.Decimal, error) {
	return f.cart.ViewCart(ctx, accountID)
}

// CheckoutStart opens the checkout conversation.
func (f *ShopFacade) CheckoutStart(ctx context.Context, accountID int64) (session.Draft, error) {
	return f.checkout.Start(ctx, sessionKey(accountID), accountID)
}

// CheckoutSubmit feeds one message into the checkout conversation.
func (f *ShopFacade) CheckoutSubmit(ctx context.Context, accountID int64, text string) (*usecase.StepResult, error) {
	return f.checkout.Submit(ctx, sessionKey(accountID), accountID, text)
}

// CheckoutCancel discards the draft.
func (f *ShopFacade) CheckoutCancel(accountID int64) {
	f.checkout.Cancel(sessionKey(accountID))
}

// Orders lists the account's order history.
func (f *ShopFacade) Orders(ctx context.Context, accountID int64) ([]model.Order, error) {
	return f.orders.History(ctx, accountID)
}

// Order tracks one order by id.
func (f *ShopFacade) Order(ctx context.Context, orderID string) (*model.Order, error) {
	return f.orders.FindByID(ctx, orderID)
}

// OrderAddress returns the encrypted delivery address of an owned order.
func (f *ShopFacade) OrderAddress(ctx context.Context, accountID int64, orderID string) ([]byte, error) {
	return f.orders.EncryptedAddress(ctx, accountID, orderID)
}

// ApplyCoupon attaches the discount code to the account.
func (f *ShopFacade) ApplyCoupon(ctx context.Context, accountID int64) (string, error) {
	return f.coupons.Apply(ctx, accountID)
}

// AddToWishlist records interest in a product.
func (f *ShopFacade) AddToWishlist(ctx context.Context, accountID int64, productID string) (bool, error) {
	return f.cart.AddToWishlist(ctx, accountID, productID)
}

// Wishlist lists the account's wishlist.
func (f *ShopFacade) Wishlist(ctx context.Context, accountID int64) ([]model.CartLine, error) {
	return f.cart.Wishlist(ctx, accountID)
}

// SubmitRating appends a 1-5 vote.
func (f *ShopFacade) SubmitRating(ctx context.Context, accountID int64, value int) (*model.Rating, error) {
	return f.ratings.Submit(ctx, accountID, value)
}

// RatingSummary aggregates all votes.
func (f *ShopFacade) RatingSummary(ctx context.Context) (*model.RatingSummary, error) {
	return f.ratings.Summary(ctx)
}

// PublicKey exports the address encryption public key.
func (f *ShopFacade) PublicKey(ctx context.Context) (string, error) {
	return f.crypt.PublicKey(ctx)
}
