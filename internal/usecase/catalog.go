package usecase

import (
	"context"

	"github.com/mkruglov/marketbot/internal/domain/model"
	"github.com/mkruglov/marketbot/internal/domain/repository"
)

// CatalogUseCase exposes read-only catalog browsing.
type CatalogUseCase struct {
	products repository.ProductRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products}
}

// Categories lists catalog category names.
func (u *CatalogUseCase) Categories(ctx context.Context) ([]string, error) {
	return u.products.Categories(ctx)
}

// ListByCategory returns the products of one category.
func (u *CatalogUseCase) ListByCategory(ctx context.Context, category string) ([]model.Product, error) {
	return u.products.ListByCategory(ctx, category)
}
