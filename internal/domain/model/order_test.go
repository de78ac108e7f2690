package model

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParsePaymentMethod(t *testing.T) {
	cases := []struct {
		in     string
		want   PaymentMethod
		wantOK bool
	}{
		{"BTC", PaymentBTC, true},
		{"btc", PaymentBTC, true},
		{"  Usdt  ", PaymentUSDT, true},
		{"USDT", PaymentUSDT, true},
		{"card", "", false},
		{"", "", false},
		{"bitcoin", "", false},
	}
	for _, tc := range cases {
		got, ok := ParsePaymentMethod(tc.in)
		if ok != tc.wantOK || got != tc.want {
			t.Fatalf("ParsePaymentMethod(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestNewOrderIDFormat(t *testing.T) {
	now := time.Unix(1756500000, 0)
	id := NewOrderID(now)

	parts := strings.SplitN(id, "-", 2)
	if len(parts) != 2 {
		t.Fatalf("unexpected order id %q", id)
	}
	if parts[0] != "1756500000" {
		t.Fatalf("expected unix prefix 1756500000, got %q", parts[0])
	}
	if len(parts[1]) != 12 {
		t.Fatalf("expected 12 hex chars of suffix, got %q", parts[1])
	}
}

func TestNewOrderIDUniqueness(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		id := NewOrderID(now)
		if seen[id] {
			t.Fatalf("duplicate order id %q after %d ids", id, i)
		}
		seen[id] = true
	}
}

func TestPriceCartWithCoupon(t *testing.T) {
	lines := []CartLine{
		{ProductID: "p1", Name: "Hoodie", Price: decimal.RequireFromString("15.00")},
		{ProductID: "p2", Name: "Cap", Price: decimal.RequireFromString("10.00")},
	}
	coupon := "SAVE10"

	p := PriceCart(lines, &coupon, "SAVE10", decimal.RequireFromString("0.10"))
	if !p.Subtotal.Equal(decimal.RequireFromString("25.00")) {
		t.Fatalf("subtotal = %s, want 25.00", p.Subtotal)
	}
	if !p.Discount.Equal(decimal.RequireFromString("2.50")) {
		t.Fatalf("discount = %s, want 2.50", p.Discount)
	}
	if !p.Total.Equal(decimal.RequireFromString("22.50")) {
		t.Fatalf("total = %s, want 22.50", p.Total)
	}
	if p.Coupon != "SAVE10" {
		t.Fatalf("coupon = %q, want SAVE10", p.Coupon)
	}
}

func TestPriceCartWithoutCoupon(t *testing.T) {
	lines := []CartLine{{ProductID: "p1", Name: "Hoodie", Price: decimal.RequireFromString("19.99")}}

	p := PriceCart(lines, nil, "SAVE10", decimal.RequireFromString("0.10"))
	if !p.Discount.IsZero() {
		t.Fatalf("discount = %s, want 0", p.Discount)
	}
	if !p.Total.Equal(decimal.RequireFromString("19.99")) {
		t.Fatalf("total = %s, want 19.99", p.Total)
	}
	if p.Coupon != "" {
		t.Fatalf("coupon = %q, want empty", p.Coupon)
	}
}

func TestPriceCartMismatchedCoupon(t *testing.T) {
	lines := []CartLine{{ProductID: "p1", Name: "Hoodie", Price: decimal.RequireFromString("10.00")}}
	stale := "OLDCODE"

	p := PriceCart(lines, &stale, "SAVE10", decimal.RequireFromString("0.10"))
	if !p.Discount.IsZero() {
		t.Fatalf("stale coupon must not discount, got %s", p.Discount)
	}
}

func TestPriceCartEmptyConfiguredCode(t *testing.T) {
	lines := []CartLine{{ProductID: "p1", Name: "Hoodie", Price: decimal.RequireFromString("10.00")}}
	empty := ""

	p := PriceCart(lines, &empty, "", decimal.RequireFromString("0.10"))
	if !p.Discount.IsZero() {
		t.Fatalf("empty code must never discount, got %s", p.Discount)
	}
}

func TestPriceCartRounding(t *testing.T) {
	lines := []CartLine{
		{ProductID: "p1", Name: "Sticker", Price: decimal.RequireFromString("0.33")},
		{ProductID: "p2", Name: "Sticker", Price: decimal.RequireFromString("0.33")},
		{ProductID: "p3", Name: "Sticker", Price: decimal.RequireFromString("0.33")},
	}
	coupon := "SAVE10"

	p := PriceCart(lines, &coupon, "SAVE10", decimal.RequireFromString("0.10"))
	// 0.99 * 0.10 = 0.099 -> 0.10 after rounding.
	if !p.Discount.Equal(decimal.RequireFromString("0.10")) {
		t.Fatalf("discount = %s, want 0.10", p.Discount)
	}
	if !p.Total.Equal(decimal.RequireFromString("0.89")) {
		t.Fatalf("total = %s, want 0.89", p.Total)
	}
}
