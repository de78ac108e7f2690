package repository

import (
	"context"

	"github.com/mkruglov/marketbot/internal/domain/model"
)

// ProductRepository reads the catalog. Content management happens outside
// this service.
type ProductRepository interface {
	Find(ctx context.Context, productID string) (*model.Product, error)
	Categories(ctx context.Context) ([]string, error)
	ListByCategory(ctx context.Context, category string) ([]model.Product, error)
}
