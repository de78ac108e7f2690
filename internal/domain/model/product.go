package model

import "github.com/shopspring/decimal"

// Product is a catalog entry. Quantity information is a tagged variant:
// either Variants (variant name -> available count) or Sizes (flat list of
// SKU labels) may be set, never both.
type Product struct {
	ID          string
	Category    string
	Name        string
	Price       decimal.Decimal
	Description string
	Variants    map[string]int
	Sizes       []string
}

// CartLine is a snapshot of a product taken at add-to-cart time. Later
// catalog edits never change a pending cart.
type CartLine struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
}

// Snapshot copies the purchasable fields of the product into a cart line.
func (p Product) Snapshot() CartLine {
	return CartLine{ProductID: p.ID, Name: p.Name, Price: p.Price}
}

// Subtotal sums line prices without rounding.
func Subtotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Price)
	}
	return total
}
