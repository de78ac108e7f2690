package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "github.com/mkruglov/marketbot/internal/domain/errors"
	"github.com/mkruglov/marketbot/internal/domain/model"
	"github.com/mkruglov/marketbot/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage relies on. Tests swap
// it for a pgxmock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type accountRepository struct {
	storage *Storage
}

type cartRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type paymentRepository struct {
	storage *Storage
}

type keyRepository struct {
	storage *Storage
}

type ratingRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Accounts() repository.AccountRepository {
	return &accountRepository{storage: s}
}

func (s *Storage) Carts() repository.CartRepository {
	return &cartRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Payments() repository.PaymentRepository {
	return &paymentRepository{storage: s}
}

func (s *Storage) Keys() repository.KeyRepository {
	return &keyRepository{storage: s}
}

func (s *Storage) Ratings() repository.RatingRepository {
	return &ratingRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
            id SERIAL PRIMARY KEY,
            secret_phrase TEXT UNIQUE NOT NULL,
            transport_id BIGINT,
            display_name TEXT NOT NULL DEFAULT '',
            country TEXT,
            coupon TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS cart_items (
            id SERIAL PRIMARY KEY,
            account_id BIGINT NOT NULL REFERENCES accounts(id),
            product_id TEXT NOT NULL,
            name TEXT NOT NULL,
            price NUMERIC(12,2) NOT NULL,
            added_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS wishlist_items (
            account_id BIGINT NOT NULL REFERENCES accounts(id),
            product_id TEXT NOT NULL,
            name TEXT NOT NULL,
            price NUMERIC(12,2) NOT NULL,
            PRIMARY KEY (account_id, product_id)
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id TEXT PRIMARY KEY,
            category TEXT NOT NULL,
            name TEXT NOT NULL,
            price NUMERIC(12,2) NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            variants JSONB,
            sizes JSONB
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            seq BIGSERIAL,
            account_id BIGINT NOT NULL REFERENCES accounts(id),
            address_encrypted BYTEA NOT NULL,
            notes TEXT NOT NULL DEFAULT '',
            payment TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            subtotal NUMERIC(12,2) NOT NULL,
            discount NUMERIC(12,2) NOT NULL,
            total NUMERIC(12,2) NOT NULL,
            coupon TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            order_id TEXT NOT NULL REFERENCES orders(id),
            pos INT NOT NULL,
            product_id TEXT NOT NULL,
            name TEXT NOT NULL,
            price NUMERIC(12,2) NOT NULL,
            PRIMARY KEY (order_id, pos)
        )`,
		`CREATE TABLE IF NOT EXISTS payment_config (
            id SMALLINT PRIMARY KEY CHECK (id = 1),
            btc_address TEXT NOT NULL DEFAULT '',
            usdt_address TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS crypto_keys (
            id SMALLINT PRIMARY KEY CHECK (id = 1),
            public_key BYTEA NOT NULL,
            private_key BYTEA NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS ratings (
            id SERIAL PRIMARY KEY,
            account_id BIGINT NOT NULL REFERENCES accounts(id),
            value INT NOT NULL CHECK (value BETWEEN 1 AND 5),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_transport ON accounts(transport_id)`,
		`CREATE INDEX IF NOT EXISTS idx_cart_items_account ON cart_items(account_id, id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_account ON orders(account_id, seq)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category, id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

const accountColumns = `id, secret_phrase, transport_id, display_name, country, coupon, created_at`

func scanAccount(row pgx.Row) (*model.Account, error) {
	var a model.Account
	err := row.Scan(&a.ID, &a.SecretPhrase, &a.TransportID, &a.DisplayName, &a.Country, &a.Coupon, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// --- AccountRepository implementation ---

func (r *accountRepository) Create(ctx context.Context, phrase string, transportID int64, displayName string) (*model.Account, error) {
	var a model.Account
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		// The transport identity may still be bound to an older account.
		if _, err := tx.Exec(ctx, `UPDATE accounts SET transport_id=NULL WHERE transport_id=$1`, transportID); err != nil {
			return err
		}
		const query = `INSERT INTO accounts (secret_phrase, transport_id, display_name)
                       VALUES ($1, $2, $3) RETURNING id, created_at`
		err := tx.QueryRow(ctx, query, phrase, transportID, displayName).Scan(&a.ID, &a.CreatedAt)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainErrors.ErrAlreadyExists
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	a.SecretPhrase = phrase
	a.TransportID = &transportID
	a.DisplayName = displayName
	return &a, nil
}

func (r *accountRepository) GetByPhrase(ctx context.Context, phrase string) (*model.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE secret_phrase=$1`
	return scanAccount(r.storage.pool.QueryRow(ctx, query, phrase))
}

func (r *accountRepository) GetByTransportID(ctx context.Context, transportID int64) (*model.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE transport_id=$1`
	return scanAccount(r.storage.pool.QueryRow(ctx, query, transportID))
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE id=$1`
	return scanAccount(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *accountRepository) BindTransport(ctx context.Context, accountID, transportID int64, displayName string) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE accounts SET transport_id=NULL WHERE transport_id=$1 AND id<>$2`, transportID, accountID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `UPDATE accounts SET transport_id=$1, display_name=$2 WHERE id=$3`, transportID, displayName, accountID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		return nil
	})
}

func (r *accountRepository) SetCountry(ctx context.Context, accountID int64, country string) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE accounts SET country=$1 WHERE id=$2`, country, accountID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *accountRepository) SetCoupon(ctx context.Context, accountID int64, code string) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE accounts SET coupon=$1 WHERE id=$2`, code, accountID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// lockAccount serializes mutations touching one account's state.
func lockAccount(ctx context.Context, tx pgx.Tx, accountID int64) error {
	var id int64
	err := tx.QueryRow(ctx, `SELECT id FROM accounts WHERE id=$1 FOR UPDATE`, accountID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domainErrors.ErrNotFound
	}
	return err
}

// --- CartRepository implementation ---

func (r *cartRepository) Append(ctx context.Context, accountID int64, line model.CartLine) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if err := lockAccount(ctx, tx, accountID); err != nil {
			return err
		}
		const query = `INSERT INTO cart_items (account_id, product_id, name, price) VALUES ($1, $2, $3, $4)`
		_, err := tx.Exec(ctx, query, accountID, line.ProductID, line.Name, line.Price)
		return err
	})
}

func (r *cartRepository) Lines(ctx context.Context, accountID int64) ([]model.CartLine, error) {
	const query = `SELECT product_id, name, price FROM cart_items WHERE account_id=$1 ORDER BY id`
	return r.storage.queryLines(ctx, query, accountID)
}

func (r *cartRepository) Clear(ctx context.Context, accountID int64) error {
	_, err := r.storage.pool.Exec(ctx, `DELETE FROM cart_items WHERE account_id=$1`, accountID)
	return err
}

func (r *cartRepository) AddWish(ctx context.Context, accountID int64, line model.CartLine) (bool, error) {
	const query = `INSERT INTO wishlist_items (account_id, product_id, name, price)
                   VALUES ($1, $2, $3, $4)
                   ON CONFLICT (account_id, product_id) DO NOTHING`
	tag, err := r.storage.pool.Exec(ctx, query, accountID, line.ProductID, line.Name, line.Price)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *cartRepository) Wishlist(ctx context.Context, accountID int64) ([]model.CartLine, error) {
	const query = `SELECT product_id, name, price FROM wishlist_items WHERE account_id=$1 ORDER BY product_id`
	return r.storage.queryLines(ctx, query, accountID)
}

func (s *Storage) queryLines(ctx context.Context, query string, args ...any) ([]model.CartLine, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLines(rows)
}

func collectLines(rows pgx.Rows) ([]model.CartLine, error) {
	var result []model.CartLine
	for rows.Next() {
		var l model.CartLine
		if err := rows.Scan(&l.ProductID, &l.Name, &l.Price); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- ProductRepository implementation ---

const productColumns = `id, category, name, price, description, variants, sizes`

func (r *productRepository) Find(ctx context.Context, productID string) (*model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	p, err := scanProduct(r.storage.pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *productRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *productRepository) ListByCategory(ctx context.Context, category string) ([]model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE category=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var (
		p        model.Product
		variants []byte
		sizes    []byte
	)
	err := row.Scan(&p.ID, &p.Category, &p.Name, &p.Price, &p.Description, &variants, &sizes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if len(variants) > 0 {
		if err := json.Unmarshal(variants, &p.Variants); err != nil {
			return nil, fmt.Errorf("decode variants: %w", err)
		}
	}
	if len(sizes) > 0 {
		if err := json.Unmarshal(sizes, &p.Sizes); err != nil {
			return nil, fmt.Errorf("decode sizes: %w", err)
		}
	}
	return &p, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Finalize(ctx context.Context, accountID int64, draft repository.CheckoutDraft, couponCode string, couponRate decimal.Decimal) (*model.Order, error) {
	var order *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var coupon *string
		err := tx.QueryRow(ctx, `SELECT coupon FROM accounts WHERE id=$1 FOR UPDATE`, accountID).Scan(&coupon)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		rows, err := tx.Query(ctx, `SELECT product_id, name, price FROM cart_items WHERE account_id=$1 ORDER BY id`, accountID)
		if err != nil {
			return err
		}
		lines, err := collectLines(rows)
		rows.Close()
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domainErrors.ErrEmptyCart
		}

		pricing := model.PriceCart(lines, coupon, couponCode, couponRate)
		o := &model.Order{
			ID:               model.NewOrderID(time.Now().UTC()),
			AccountID:        accountID,
			Items:            lines,
			AddressEncrypted: draft.AddressEncrypted,
			Notes:            draft.Notes,
			Payment:          draft.Payment,
			Status:           model.OrderStatusPending,
			Subtotal:         pricing.Subtotal,
			Discount:         pricing.Discount,
			Total:            pricing.Total,
			Coupon:           pricing.Coupon,
		}

		const insertOrder = `INSERT INTO orders (id, account_id, address_encrypted, notes, payment, status, subtotal, discount, total, coupon)
                             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
                             RETURNING created_at`
		if err := tx.QueryRow(ctx, insertOrder, o.ID, o.AccountID, o.AddressEncrypted, o.Notes, string(o.Payment), string(o.Status), o.Subtotal, o.Discount, o.Total, o.Coupon).Scan(&o.CreatedAt); err != nil {
			return err
		}

		const insertItem = `INSERT INTO order_items (order_id, pos, product_id, name, price) VALUES ($1, $2, $3, $4, $5)`
		for i, line := range lines {
			if _, err := tx.Exec(ctx, insertItem, o.ID, i, line.ProductID, line.Name, line.Price); err != nil {
				return err
			}
		}

		if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE account_id=$1`, accountID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE accounts SET coupon=NULL WHERE id=$1`, accountID); err != nil {
			return err
		}

		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

const orderJoinColumns = `o.id, o.account_id, o.address_encrypted, o.notes, o.payment, o.status, o.subtotal, o.discount, o.total, o.coupon, o.created_at, i.product_id, i.name, i.price`

func (r *orderRepository) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	const query = `SELECT ` + orderJoinColumns + `
                   FROM orders o JOIN order_items i ON i.order_id = o.id
                   WHERE o.id=$1 ORDER BY i.pos`
	orders, err := r.storage.queryOrders(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, domainErrors.ErrOrderNotFound
	}
	return &orders[0], nil
}

func (r *orderRepository) ListByAccount(ctx context.Context, accountID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderJoinColumns + `
                   FROM orders o JOIN order_items i ON i.order_id = o.id
                   WHERE o.account_id=$1 ORDER BY o.seq, i.pos`
	return r.storage.queryOrders(ctx, query, accountID)
}

func (s *Storage) queryOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var (
			o       model.Order
			payment string
			status  string
			line    model.CartLine
		)
		err := rows.Scan(&o.ID, &o.AccountID, &o.AddressEncrypted, &o.Notes, &payment, &status,
			&o.Subtotal, &o.Discount, &o.Total, &o.Coupon, &o.CreatedAt,
			&line.ProductID, &line.Name, &line.Price)
		if err != nil {
			return nil, err
		}
		o.Payment = model.PaymentMethod(payment)
		o.Status = model.OrderStatus(status)

		if n := len(result); n > 0 && result[n-1].ID == o.ID {
			result[n-1].Items = append(result[n-1].Items, line)
			continue
		}
		o.Items = []model.CartLine{line}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- PaymentRepository implementation ---

func (r *paymentRepository) Config(ctx context.Context) (*model.PaymentConfig, error) {
	const query = `SELECT btc_address, usdt_address FROM payment_config WHERE id=1`
	var cfg model.PaymentConfig
	err := r.storage.pool.QueryRow(ctx, query).Scan(&cfg.BTCAddress, &cfg.USDTAddress)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &model.PaymentConfig{}, nil
		}
		return nil, err
	}
	return &cfg, nil
}

// --- KeyRepository implementation ---

func (r *keyRepository) LoadKeys(ctx context.Context) (*model.KeyPair, error) {
	const query = `SELECT public_key, private_key FROM crypto_keys WHERE id=1`
	var keys model.KeyPair
	err := r.storage.pool.QueryRow(ctx, query).Scan(&keys.PublicKey, &keys.PrivateKey)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &keys, nil
}

func (r *keyRepository) SaveKeys(ctx context.Context, keys *model.KeyPair) error {
	// First writer wins; a concurrent generator's keys stay authoritative.
	const query = `INSERT INTO crypto_keys (id, public_key, private_key)
                   VALUES (1, $1, $2)
                   ON CONFLICT (id) DO NOTHING`
	_, err := r.storage.pool.Exec(ctx, query, keys.PublicKey, keys.PrivateKey)
	return err
}

// --- RatingRepository implementation ---

func (r *ratingRepository) Add(ctx context.Context, accountID int64, value int) (*model.Rating, error) {
	const query = `INSERT INTO ratings (account_id, value) VALUES ($1, $2) RETURNING id, created_at`
	rating := model.Rating{AccountID: accountID, Value: value}
	if err := r.storage.pool.QueryRow(ctx, query, accountID, value).Scan(&rating.ID, &rating.CreatedAt); err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) Summary(ctx context.Context) (*model.RatingSummary, error) {
	const query = `SELECT COUNT(*), COALESCE(AVG(value), 0) FROM ratings`
	var summary model.RatingSummary
	if err := r.storage.pool.QueryRow(ctx, query).Scan(&summary.Count, &summary.Average); err != nil {
		return nil, err
	}
	return &summary, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
