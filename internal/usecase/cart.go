package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mkruglov/marketbot/internal/domain/model"
	"github.com/mkruglov/marketbot/internal/domain/repository"
)

// CartUseCase mutates an account's in-progress cart and wishlist.
type CartUseCase struct {
	products repository.ProductRepository
	carts    repository.CartRepository
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(products repository.ProductRepository, carts repository.CartRepository) *CartUseCase {
	return &CartUseCase{products: products, carts: carts}
}

// AddItem snapshots the product and appends it to the cart. The cart is a
// multiset: adding the same product twice yields two lines.
func (u *CartUseCase) AddItem(ctx context.Context, accountID int64, productID string) (model.CartLine, error) {
	product, err := u.products.Find(ctx, productID)
	if err != nil {
		return model.CartLine{}, err
	}
	line := product.Snapshot()
	if err := u.carts.Append(ctx, accountID, line); err != nil {
		return model.CartLine{}, err
	}
	return line, nil
}

// ViewCart returns the cart lines and their subtotal. Pure read.
func (u *CartUseCase) ViewCart(ctx context.Context, accountID int64) ([]model.CartLine, decimal.Decimal, error) {
	lines, err := u.carts.Lines(ctx, accountID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return lines, model.Subtotal(lines), nil
}

// ClearCart empties the cart. Only checkout finalization calls this.
func (u *CartUseCase) ClearCart(ctx context.Context, accountID int64) error {
	return u.carts.Clear(ctx, accountID)
}

// AddToWishlist records interest in a product. Duplicates are ignored.
func (u *CartUseCase) AddToWishlist(ctx context.Context, accountID int64, productID string) (bool, error) {
	product, err := u.products.Find(ctx, productID)
	if err != nil {
		return false, err
	}
	return u.carts.AddWish(ctx, accountID, product.Snapshot())
}

// Wishlist returns the account's wishlist entries.
func (u *CartUseCase) Wishlist(ctx context.Context, accountID int64) ([]model.CartLine, error) {
	return u.carts.Wishlist(ctx, accountID)
}
