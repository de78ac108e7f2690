package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"github.com/mkruglov/marketbot/internal/adapter/addresscrypt"
	"github.com/mkruglov/marketbot/internal/app"
	"github.com/mkruglov/marketbot/internal/config"
	"github.com/mkruglov/marketbot/internal/domain/repository"
	"github.com/mkruglov/marketbot/internal/storage/postgres"
	"github.com/mkruglov/marketbot/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:       ":0",
		DatabaseURI:      "postgres://stub",
		TokenSecret:      "secret",
		CouponCode:       "SAVE10",
		CouponRate:       decimal.RequireFromString("0.10"),
		DraftIdleTimeout: time.Minute,
		SweepInterval:    time.Millisecond,
		ShutdownTimeout:  time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	accountRepo := test.NewAccountRepositoryStub()
	cartRepo := test.NewCartRepositoryStub()
	productRepo := &test.ProductRepositoryStub{}
	orderRepo := &test.OrderRepositoryStub{}
	paymentRepo := &test.PaymentRepositoryStub{}
	keyRepo := &test.KeyRepositoryStub{}
	ratingRepo := &test.RatingRepositoryStub{}

	var facade *app.ShopFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.AccountRepository(accountRepo)),
			fx.Replace(repository.CartRepository(cartRepo)),
			fx.Replace(repository.ProductRepository(productRepo)),
			fx.Replace(repository.OrderRepository(orderRepo)),
			fx.Replace(repository.PaymentRepository(paymentRepo)),
			fx.Replace(repository.KeyRepository(keyRepo)),
			fx.Replace(repository.RatingRepository(ratingRepo)),
			fx.Replace(addresscrypt.Encryptor(test.EncryptorStub{})),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected shop facade instance")
	}
}
