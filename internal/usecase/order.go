package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mkruglov/marketbot/internal/config"
	domainErrors "github.com/mkruglov/marketbot/internal/domain/errors"
	"github.com/mkruglov/marketbot/internal/domain/model"
	"github.com/mkruglov/marketbot/internal/domain/repository"
)

// OrderUseCase is the append-only order ledger: it finalizes checkouts into
// immutable order records and answers lookups.
type OrderUseCase struct {
	orders     repository.OrderRepository
	payments   repository.PaymentRepository
	couponCode string
	couponRate decimal.Decimal
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, payments repository.PaymentRepository, cfg *config.Config) *OrderUseCase {
	return &OrderUseCase{
		orders:     orders,
		payments:   payments,
		couponCode: cfg.CouponCode,
		couponRate: cfg.CouponRate,
	}
}

// Finalize turns the account's current cart into an order, clearing the
// cart and consuming the coupon in the same transaction. Returns the order
// and the payment destination address for the chosen method.
func (u *OrderUseCase) Finalize(ctx context.Context, accountID int64, draft repository.CheckoutDraft) (*model.Order, string, error) {
	order, err := u.orders.Finalize(ctx, accountID, draft, u.couponCode, u.couponRate)
	if err != nil {
		return nil, "", err
	}

	cfg, err := u.payments.Config(ctx)
	if err != nil {
		// The order is already committed; missing payment config only
		// degrades the instructions.
		return order, "", nil
	}
	return order, cfg.DestinationFor(order.Payment), nil
}

// FindByID looks up one order.
func (u *OrderUseCase) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	return u.orders.GetByID(ctx, orderID)
}

// History lists the account's orders in creation order.
func (u *OrderUseCase) History(ctx context.Context, accountID int64) ([]model.Order, error) {
	return u.orders.ListByAccount(ctx, accountID)
}

// EncryptedAddress returns the stored address ciphertext of one of the
// account's own orders. Foreign orders look like missing ones.
func (u *OrderUseCase) EncryptedAddress(ctx context.Context, accountID int64, orderID string) ([]byte, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.AccountID != accountID {
		return nil, domainErrors.ErrOrderNotFound
	}
	return order.AddressEncrypted, nil
}
