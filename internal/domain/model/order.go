package model

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod enumerates accepted payment rails.
type PaymentMethod string

const (
	PaymentBTC  PaymentMethod = "BTC"
	PaymentUSDT PaymentMethod = "USDT"
)

// ParsePaymentMethod normalizes free-text payment input. The boolean is
// false for anything except BTC/USDT (trimmed, case-insensitive).
func ParsePaymentMethod(text string) (PaymentMethod, bool) {
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case string(PaymentBTC):
		return PaymentBTC, true
	case string(PaymentUSDT):
		return PaymentUSDT, true
	}
	return "", false
}

// OrderStatus describes fulfillment state. Orders are created pending and
// nothing in this service transitions them further.
type OrderStatus string

const OrderStatusPending OrderStatus = "pending"

// Order is an immutable record of a completed checkout.
type Order struct {
	ID               string
	AccountID        int64
	Items            []CartLine
	AddressEncrypted []byte
	Notes            string
	Payment          PaymentMethod
	Status           OrderStatus
	Subtotal         decimal.Decimal
	Discount         decimal.Decimal
	Total            decimal.Decimal
	Coupon           string
	CreatedAt        time.Time
}

// NewOrderID mints an order identifier: creation time plus a random hex
// suffix, so ids sort roughly by time and never collide in practice.
func NewOrderID(now time.Time) string {
	u := uuid.New()
	return fmt.Sprintf("%d-%s", now.Unix(), hex.EncodeToString(u[:6]))
}

// Pricing is the money outcome of a finalized cart.
type Pricing struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
	Coupon   string
}

// PriceCart computes subtotal, discount and total for a cart. The discount
// applies only when the account's coupon slot matches the configured code:
// discount = round(subtotal*rate, 2), total = round(subtotal-discount, 2).
func PriceCart(lines []CartLine, accountCoupon *string, code string, rate decimal.Decimal) Pricing {
	p := Pricing{Subtotal: Subtotal(lines), Discount: decimal.Zero}
	if accountCoupon != nil && *accountCoupon == code && code != "" {
		p.Discount = p.Subtotal.Mul(rate).Round(2)
		p.Coupon = code
	}
	p.Total = p.Subtotal.Sub(p.Discount).Round(2)
	return p
}
