package repository

import (
	"context"

	"github.com/mkruglov/marketbot/internal/domain/model"
)

// CartRepository describes the account's in-progress cart and wishlist.
// Mutations serialize on the owning account row.
type CartRepository interface {
	Append(ctx context.Context, accountID int64, line model.CartLine) error
	Lines(ctx context.Context, accountID int64) ([]model.CartLine, error)
	Clear(ctx context.Context, accountID int64) error
	// AddWish inserts a wishlist entry; duplicates by product id are ignored
	// and reported through the boolean.
	AddWish(ctx context.Context, accountID int64, line model.CartLine) (bool, error)
	Wishlist(ctx context.Context, accountID int64) ([]model.CartLine, error)
}
