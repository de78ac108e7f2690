package dto

import (
	"github.com/shopspring/decimal"

	"github.com/mkruglov/marketbot/internal/domain/model"
)

// ProductResponse describes a catalog entry.
type ProductResponse struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Variants    map[string]int  `json:"variants,omitempty"`
	Sizes       []string        `json:"sizes,omitempty"`
}

// NewProductResponse maps a domain product to its wire form.
func NewProductResponse(p model.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Category:    p.Category,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Variants:    p.Variants,
		Sizes:       p.Sizes,
	}
}

// CategoriesResponse lists catalog categories.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}
