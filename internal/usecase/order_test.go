package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mkruglov/marketbot/internal/config"
	domainErrors "github.com/mkruglov/marketbot/internal/domain/errors"
	"github.com/mkruglov/marketbot/internal/domain/model"
	"github.com/mkruglov/marketbot/internal/domain/repository"
	testhelpers "github.com/mkruglov/marketbot/internal/test"
	"github.com/mkruglov/marketbot/internal/usecase"
)

func orderConfig() *config.Config {
	return &config.Config{CouponCode: "SAVE10", CouponRate: decimal.RequireFromString("0.10")}
}

func TestOrderFinalizePassesCouponConfig(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{}
	payments := &testhelpers.PaymentRepositoryStub{Cfg: &model.PaymentConfig{BTCAddress: "bc1q", USDTAddress: "TR7"}}
	uc := usecase.NewOrderUseCase(orders, payments, orderConfig())

	draft := repository.CheckoutDraft{AddressEncrypted: []byte("blob"), Notes: "leave at door", Payment: model.PaymentBTC}
	order, payTo, err := uc.Finalize(context.Background(), 5, draft)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if order == nil || order.AccountID != 5 {
		t.Fatalf("unexpected order %+v", order)
	}
	if payTo != "bc1q" {
		t.Fatalf("payTo = %q, want bc1q", payTo)
	}

	if len(orders.FinalizeCalls) != 1 {
		t.Fatalf("expected 1 finalize call, got %d", len(orders.FinalizeCalls))
	}
	call := orders.FinalizeCalls[0]
	if call.CouponCode != "SAVE10" || !call.CouponRate.Equal(decimal.RequireFromString("0.10")) {
		t.Fatalf("coupon config not forwarded: %+v", call)
	}
	if string(call.Draft.AddressEncrypted) != "blob" || call.Draft.Notes != "leave at door" {
		t.Fatalf("draft not forwarded: %+v", call.Draft)
	}
}

func TestOrderFinalizeUSDTDestination(t *testing.T) {
	payments := &testhelpers.PaymentRepositoryStub{Cfg: &model.PaymentConfig{BTCAddress: "bc1q", USDTAddress: "TR7"}}
	uc := usecase.NewOrderUseCase(&testhelpers.OrderRepositoryStub{}, payments, orderConfig())

	_, payTo, err := uc.Finalize(context.Background(), 1, repository.CheckoutDraft{Payment: model.PaymentUSDT})
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if payTo != "TR7" {
		t.Fatalf("payTo = %q, want TR7", payTo)
	}
}

func TestOrderFinalizeMissingPaymentConfig(t *testing.T) {
	payments := &testhelpers.PaymentRepositoryStub{Err: fmt.Errorf("no config")}
	uc := usecase.NewOrderUseCase(&testhelpers.OrderRepositoryStub{}, payments, orderConfig())

	order, payTo, err := uc.Finalize(context.Background(), 1, repository.CheckoutDraft{Payment: model.PaymentBTC})
	if err != nil {
		t.Fatalf("missing payment config must not fail the order: %v", err)
	}
	if order == nil {
		t.Fatal("order must still be returned")
	}
	if payTo != "" {
		t.Fatalf("payTo = %q, want empty", payTo)
	}
}

func TestOrderFinalizeEmptyCart(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{
		FinalizeFn: func(context.Context, int64, repository.CheckoutDraft, string, decimal.Decimal) (*model.Order, error) {
			return nil, domainErrors.ErrEmptyCart
		},
	}
	uc := usecase.NewOrderUseCase(orders, &testhelpers.PaymentRepositoryStub{}, orderConfig())

	if _, _, err := uc.Finalize(context.Background(), 1, repository.CheckoutDraft{Payment: model.PaymentBTC}); err != domainErrors.ErrEmptyCart {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestOrderEncryptedAddressOwnership(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{Orders: []model.Order{
		{ID: "1-abc", AccountID: 5, AddressEncrypted: []byte("sealed")},
	}}
	uc := usecase.NewOrderUseCase(orders, &testhelpers.PaymentRepositoryStub{}, orderConfig())
	ctx := context.Background()

	blob, err := uc.EncryptedAddress(ctx, 5, "1-abc")
	if err != nil {
		t.Fatalf("own order: %v", err)
	}
	if string(blob) != "sealed" {
		t.Fatalf("blob = %q", blob)
	}

	if _, err := uc.EncryptedAddress(ctx, 6, "1-abc"); err != domainErrors.ErrOrderNotFound {
		t.Fatalf("foreign order must look missing, got %v", err)
	}
	if _, err := uc.EncryptedAddress(ctx, 5, "nope"); err != domainErrors.ErrOrderNotFound {
		t.Fatalf("missing order: got %v", err)
	}
}

func TestOrderHistoryAndLookup(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{Orders: []model.Order{
		{ID: "1-a", AccountID: 5},
		{ID: "1-b", AccountID: 5},
		{ID: "1-c", AccountID: 6},
	}}
	uc := usecase.NewOrderUseCase(orders, &testhelpers.PaymentRepositoryStub{}, orderConfig())
	ctx := context.Background()

	history, err := uc.History(ctx, 5)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(history))
	}

	// Tracking by id is open to any registered caller.
	got, err := uc.FindByID(ctx, "1-c")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.AccountID != 6 {
		t.Fatalf("unexpected order %+v", got)
	}
}
