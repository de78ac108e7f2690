package test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/mkruglov/marketbot/internal/domain/errors"
	"github.com/mkruglov/marketbot/internal/domain/model"
	"github.com/mkruglov/marketbot/internal/domain/repository"
)

// AccountRepositoryStub stores accounts in-memory for tests.
type AccountRepositoryStub struct {
	ByPhrase    map[string]*model.Account
	ByID        map[int64]*model.Account
	ByTransport map[int64]*model.Account
	Next        int64
	Err         error

	CreateFn func(context.Context, string, int64, string) (*model.Account, error)
}

// NewAccountRepositoryStub constructs stub repository with initialized maps.
func NewAccountRepositoryStub() *AccountRepositoryStub {
	return &AccountRepositoryStub{
		ByPhrase:    make(map[string]*model.Account),
		ByID:        make(map[int64]*model.Account),
		ByTransport: make(map[int64]*model.Account),
		Next:        1,
	}
}

// Create registers a fresh account bound to the transport identity.
func (s *AccountRepositoryStub) Create(ctx context.Context, phrase string, transportID int64, displayName string) (*model.Account, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, phrase, transportID, displayName)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if prev, ok := s.ByTransport[transportID]; ok {
		prev.TransportID = nil
	}
	tid := transportID
	acc := &model.Account{
		ID:           s.Next,
		SecretPhrase: phrase,
		TransportID:  &tid,
		DisplayName:  displayName,
		CreatedAt:    time.Now(),
	}
	s.Next++
	s.ByPhrase[phrase] = acc
	s.ByID[acc.ID] = acc
	s.ByTransport[transportID] = acc
	return acc, nil
}

// GetByPhrase fetches an account by secret phrase or returns not found.
func (s *AccountRepositoryStub) GetByPhrase(ctx context.Context, phrase string) (*model.Account, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if acc, ok := s.ByPhrase[phrase]; ok {
		return acc, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByTransportID fetches an account by transport identity.
func (s *AccountRepositoryStub) GetByTransportID(ctx context.Context, transportID int64) (*model.Account, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if acc, ok := s.ByTransport[transportID]; ok {
		return acc, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches an account by identifier.
func (s *AccountRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if acc, ok := s.ByID[id]; ok {
		return acc, nil
	}
	return nil, domainErrors.ErrNotFound
}

// BindTransport re-points the transport identity at the account,
// detaching it from any other account first.
func (s *AccountRepositoryStub) BindTransport(ctx context.Context, accountID, transportID int64, displayName string) error {
	if s.Err != nil {
		return s.Err
	}
	if prev, ok := s.ByTransport[transportID]; ok && prev.ID != accountID {
		prev.TransportID = nil
	}
	acc, ok := s.ByID[accountID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	tid := transportID
	acc.TransportID = &tid
	acc.DisplayName = displayName
	s.ByTransport[transportID] = acc
	return nil
}

// SetCountry stores the country on the account.
func (s *AccountRepositoryStub) SetCountry(ctx context.Context, accountID int64, country string) error {
	if s.Err != nil {
		return s.Err
	}
	acc, ok := s.ByID[accountID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	acc.Country = &country
	return nil
}

// SetCoupon stores the coupon code on the account.
func (s *AccountRepositoryStub) SetCoupon(ctx context.Context, accountID int64, code string) error {
	if s.Err != nil {
		return s.Err
	}
	acc, ok := s.ByID[accountID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	acc.Coupon = &code
	return nil
}

// CartRepositoryStub keeps per-account carts and wishlists in-memory.
// Safe for concurrent use, like the real repository.
type CartRepositoryStub struct {
	mu     sync.Mutex
	Carts  map[int64][]model.CartLine
	Wishes map[int64][]model.CartLine
	Err    error
}

// NewCartRepositoryStub constructs stub repository with initialized maps.
func NewCartRepositoryStub() *CartRepositoryStub {
	return &CartRepositoryStub{
		Carts:  make(map[int64][]model.CartLine),
		Wishes: make(map[int64][]model.CartLine),
	}
}

// Append adds one snapshotted line to the account's cart.
func (s *CartRepositoryStub) Append(ctx context.Context, accountID int64, line model.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Carts[accountID] = append(s.Carts[accountID], line)
	return nil
}

// Lines returns the account's cart lines in insertion order.
func (s *CartRepositoryStub) Lines(ctx context.Context, accountID int64) ([]model.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Carts[accountID], nil
}

// Clear empties the account's cart.
func (s *CartRepositoryStub) Clear(ctx context.Context, accountID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	delete(s.Carts, accountID)
	return nil
}

// AddWish inserts a wishlist entry unless the product is already wished.
func (s *CartRepositoryStub) AddWish(ctx context.Context, accountID int64, line model.CartLine) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	for _, l := range s.Wishes[accountID] {
		if l.ProductID == line.ProductID {
			return false, nil
		}
	}
	s.Wishes[accountID] = append(s.Wishes[accountID], line)
	return true, nil
}

// Wishlist returns the account's wishlist entries.
func (s *CartRepositoryStub) Wishlist(ctx context.Context, accountID int64) ([]model.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Wishes[accountID], nil
}

// ProductRepositoryStub serves a fixed catalog for tests.
type ProductRepositoryStub struct {
	Products []model.Product
	Err      error
}

// Find returns the product with the given id or not found.
func (s *ProductRepositoryStub) Find(ctx context.Context, productID string) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, p := range s.Products {
		if p.ID == productID {
			product := p
			return &product, nil
		}
	}
	return nil, domainErrors.ErrProductNotFound
}

// Categories lists distinct categories in catalog order.
func (s *ProductRepositoryStub) Categories(ctx context.Context) ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []string
	seen := make(map[string]bool)
	for _, p := range s.Products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out, nil
}

// ListByCategory returns products within one category.
func (s *ProductRepositoryStub) ListByCategory(ctx context.Context, category string) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Product
	for _, p := range s.Products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

// FinalizeCall records one Finalize invocation.
type FinalizeCall struct {
	AccountID  int64
	Draft      repository.CheckoutDraft
	CouponCode string
	CouponRate decimal.Decimal
}

// OrderRepositoryStub allows tests to customize order ledger behaviour.
type OrderRepositoryStub struct {
	FinalizeFn      func(context.Context, int64, repository.CheckoutDraft, string, decimal.Decimal) (*model.Order, error)
	GetByIDFn       func(context.Context, string) (*model.Order, error)
	ListByAccountFn func(context.Context, int64) ([]model.Order, error)

	FinalizeCalls []FinalizeCall
	Orders        []model.Order
}

// Finalize tracks invocations and returns configured responses.
func (s *OrderRepositoryStub) Finalize(ctx context.Context, accountID int64, draft repository.CheckoutDraft, couponCode string, couponRate decimal.Decimal) (*model.Order, error) {
	s.FinalizeCalls = append(s.FinalizeCalls, FinalizeCall{AccountID: accountID, Draft: draft, CouponCode: couponCode, CouponRate: couponRate})
	if s.FinalizeFn != nil {
		return s.FinalizeFn(ctx, accountID, draft, couponCode, couponRate)
	}
	order := &model.Order{
		ID:        model.NewOrderID(time.Now()),
		AccountID: accountID,
		Payment:   draft.Payment,
		Status:    model.OrderStatusPending,
		CreatedAt: time.Now(),
	}
	s.Orders = append(s.Orders, *order)
	return order, nil
}

// GetByID returns a matching order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, orderID)
	}
	for _, o := range s.Orders {
		if o.ID == orderID {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrOrderNotFound
}

// ListByAccount returns the account's orders from the configured slice.
func (s *OrderRepositoryStub) ListByAccount(ctx context.Context, accountID int64) ([]model.Order, error) {
	if s.ListByAccountFn != nil {
		return s.ListByAccountFn(ctx, accountID)
	}
	var out []model.Order
	for _, o := range s.Orders {
		if o.AccountID == accountID {
			out = append(out, o)
		}
	}
	return out, nil
}

// PaymentRepositoryStub serves a fixed payment destination config.
type PaymentRepositoryStub struct {
	Cfg *model.PaymentConfig
	Err error
}

// Config returns the configured payment destinations.
func (s *PaymentRepositoryStub) Config(ctx context.Context) (*model.PaymentConfig, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Cfg == nil {
		return nil, domainErrors.ErrNotFound
	}
	return s.Cfg, nil
}

// KeyRepositoryStub keeps key material in-memory.
type KeyRepositoryStub struct {
	Keys    *model.KeyPair
	LoadErr error
	SaveErr error
}

// LoadKeys returns stored key material or not found.
func (s *KeyRepositoryStub) LoadKeys(ctx context.Context) (*model.KeyPair, error) {
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	if s.Keys == nil {
		return nil, domainErrors.ErrNotFound
	}
	return s.Keys, nil
}

// SaveKeys stores key material unless one is already present.
func (s *KeyRepositoryStub) SaveKeys(ctx context.Context, keys *model.KeyPair) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	if s.Keys == nil {
		s.Keys = keys
	}
	return nil
}

// RatingRepositoryStub appends ratings in-memory.
type RatingRepositoryStub struct {
	Ratings []model.Rating
	Err     error
}

// Add appends one rating.
func (s *RatingRepositoryStub) Add(ctx context.Context, accountID int64, value int) (*model.Rating, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	r := model.Rating{ID: int64(len(s.Ratings) + 1), AccountID: accountID, Value: value, CreatedAt: time.Now()}
	s.Ratings = append(s.Ratings, r)
	return &r, nil
}

// Summary aggregates stored ratings.
func (s *RatingRepositoryStub) Summary(ctx context.Context) (*model.RatingSummary, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	sum := 0
	for _, r := range s.Ratings {
		sum += r.Value
	}
	out := &model.RatingSummary{Count: int64(len(s.Ratings))}
	if out.Count > 0 {
		out.Average = float64(sum) / float64(out.Count)
	}
	return out, nil
}
