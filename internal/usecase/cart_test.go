package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/mkruglov/marketbot/internal/domain/errors"
	"github.com/mkruglov/marketbot/internal/domain/model"
	testhelpers "github.com/mkruglov/marketbot/internal/test"
	"github.com/mkruglov/marketbot/internal/usecase"
)

func fixedCatalog() *testhelpers.ProductRepositoryStub {
	return &testhelpers.ProductRepositoryStub{Products: []model.Product{
		{ID: "hoodie-1", Category: "clothes", Name: "Hoodie", Price: decimal.RequireFromString("39.90"), Variants: map[string]int{"black": 2}},
		{ID: "cap-1", Category: "clothes", Name: "Cap", Price: decimal.RequireFromString("10.00"), Sizes: []string{"S", "M"}},
		{ID: "mug-1", Category: "kitchen", Name: "Mug", Price: decimal.RequireFromString("7.50")},
	}}
}

func TestCartAddItemSnapshots(t *testing.T) {
	products := fixedCatalog()
	carts := testhelpers.NewCartRepositoryStub()
	uc := usecase.NewCartUseCase(products, carts)
	ctx := context.Background()

	line, err := uc.AddItem(ctx, 1, "hoodie-1")
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if line.Name != "Hoodie" || !line.Price.Equal(decimal.RequireFromString("39.90")) {
		t.Fatalf("unexpected snapshot %+v", line)
	}

	// The cart is a multiset.
	if _, err := uc.AddItem(ctx, 1, "hoodie-1"); err != nil {
		t.Fatalf("second add: %v", err)
	}
	lines, subtotal, err := uc.ViewCart(ctx, 1)
	if err != nil {
		t.Fatalf("view cart: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !subtotal.Equal(decimal.RequireFromString("79.80")) {
		t.Fatalf("subtotal = %s, want 79.80", subtotal)
	}
}

func TestCartAddUnknownProductLeavesCartUntouched(t *testing.T) {
	carts := testhelpers.NewCartRepositoryStub()
	uc := usecase.NewCartUseCase(fixedCatalog(), carts)
	ctx := context.Background()

	if _, err := uc.AddItem(ctx, 1, "ghost-1"); err != domainErrors.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	lines, _, err := uc.ViewCart(ctx, 1)
	if err != nil {
		t.Fatalf("view cart: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("cart must stay empty, got %d lines", len(lines))
	}
}

func TestCartsAreIsolatedPerAccount(t *testing.T) {
	uc := usecase.NewCartUseCase(fixedCatalog(), testhelpers.NewCartRepositoryStub())
	ctx := context.Background()

	if _, err := uc.AddItem(ctx, 1, "hoodie-1"); err != nil {
		t.Fatalf("add for account 1: %v", err)
	}
	if _, err := uc.AddItem(ctx, 2, "mug-1"); err != nil {
		t.Fatalf("add for account 2: %v", err)
	}

	lines1, _, _ := uc.ViewCart(ctx, 1)
	lines2, _, _ := uc.ViewCart(ctx, 2)
	if len(lines1) != 1 || lines1[0].ProductID != "hoodie-1" {
		t.Fatalf("account 1 cart wrong: %+v", lines1)
	}
	if len(lines2) != 1 || lines2[0].ProductID != "mug-1" {
		t.Fatalf("account 2 cart wrong: %+v", lines2)
	}
}

func TestCartConcurrentAddsStayIsolated(t *testing.T) {
	uc := usecase.NewCartUseCase(fixedCatalog(), testhelpers.NewCartRepositoryStub())
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = uc.AddItem(ctx, 1, "hoodie-1")
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = uc.AddItem(ctx, 2, "mug-1")
	}()
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("add for account %d: %v", i+1, err)
		}
	}
	lines1, _, _ := uc.ViewCart(ctx, 1)
	lines2, _, _ := uc.ViewCart(ctx, 2)
	if len(lines1) != 1 || lines1[0].ProductID != "hoodie-1" {
		t.Fatalf("account 1 cart wrong: %+v", lines1)
	}
	if len(lines2) != 1 || lines2[0].ProductID != "mug-1" {
		t.Fatalf("account 2 cart wrong: %+v", lines2)
	}
}

func TestCartClear(t *testing.T) {
	uc := usecase.NewCartUseCase(fixedCatalog(), testhelpers.NewCartRepositoryStub())
	ctx := context.Background()

	if _, err := uc.AddItem(ctx, 1, "cap-1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := uc.ClearCart(ctx, 1); err != nil {
		t.Fatalf("clear: %v", err)
	}
	lines, subtotal, _ := uc.ViewCart(ctx, 1)
	if len(lines) != 0 || !subtotal.IsZero() {
		t.Fatalf("cart not cleared: %d lines, subtotal %s", len(lines), subtotal)
	}
}

func TestWishlistIgnoresDuplicates(t *testing.T) {
	uc := usecase.NewCartUseCase(fixedCatalog(), testhelpers.NewCartRepositoryStub())
	ctx := context.Background()

	added, err := uc.AddToWishlist(ctx, 1, "mug-1")
	if err != nil {
		t.Fatalf("wish: %v", err)
	}
	if !added {
		t.Fatal("first wish must report added")
	}

	added, err = uc.AddToWishlist(ctx, 1, "mug-1")
	if err != nil {
		t.Fatalf("duplicate wish: %v", err)
	}
	if added {
		t.Fatal("duplicate wish must be ignored")
	}

	wishes, err := uc.Wishlist(ctx, 1)
	if err != nil {
		t.Fatalf("wishlist: %v", err)
	}
	if len(wishes) != 1 {
		t.Fatalf("expected 1 wish, got %d", len(wishes))
	}
}

func TestWishlistUnknownProduct(t *testing.T) {
	uc := usecase.NewCartUseCase(fixedCatalog(), testhelpers.NewCartRepositoryStub())
	if _, err := uc.AddToWishlist(context.Background(), 1, "ghost-1"); err != domainErrors.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCartRepositoryError(t *testing.T) {
	carts := testhelpers.NewCartRepositoryStub()
	carts.Err = fmt.Errorf("db down")
	uc := usecase.NewCartUseCase(fixedCatalog(), carts)

	if _, err := uc.AddItem(context.Background(), 1, "cap-1"); err == nil {
		t.Fatal("expected repository error")
	}
	if _, _, err := uc.ViewCart(context.Background(), 1); err == nil {
		t.Fatal("expected repository error")
	}
}
