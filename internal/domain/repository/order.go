package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mkruglov/marketbot/internal/domain/model"
)

// CheckoutDraft carries the collected checkout answers into finalization.
type CheckoutDraft struct {
	AddressEncrypted []byte
	Notes            string
	Payment          model.PaymentMethod
}

// OrderRepository is the append-only order ledger.
type OrderRepository interface {
	// Finalize atomically re-reads the cart under the account row lock,
	// prices it, records the order, clears the cart and consumes the coupon.
	// Returns ErrEmptyCart without side effects when the cart emptied
	// concurrently.
	Finalize(ctx context.Context, accountID int64, draft CheckoutDraft, couponCode string, couponRate decimal.Decimal) (*model.Order, error)
	GetByID(ctx context.Context, orderID string) (*model.Order, error)
	ListByAccount(ctx context.Context, accountID int64) ([]model.Order, error)
}
