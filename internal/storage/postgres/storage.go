package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/darkahs/storefront/internal/domain/errors"
	"github.com/darkahs/storefront/internal/domain/model"
	"github.com/darkahs/storefront/internal/domain/repository"
)

// pool abstracts pgxpool.Pool so repositories can run against pgxmock.
type pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pool
	logger *slog.Logger
}

var _ repository.Factory = (*Storage)(nil)

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pgPool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pgPool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pgPool.Close()
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
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            cart_data JSONB NOT NULL DEFAULT '{}',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            reference TEXT UNIQUE NOT NULL,
            buyer_id TEXT NOT NULL,
            line_items JSONB NOT NULL,
            shipping_address JSONB NOT NULL,
            total_amount DOUBLE PRECISION NOT NULL,
            status TEXT NOT NULL,
            payment_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
            payment_method TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id TEXT PRIMARY KEY,
            name TEXT UNIQUE NOT NULL,
            description TEXT NOT NULL,
            price DOUBLE PRECISION NOT NULL,
            images JSONB NOT NULL DEFAULT '[]',
            category TEXT NOT NULL,
            sub_category TEXT NOT NULL,
            sizes JSONB NOT NULL DEFAULT '[]',
            bestseller BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_buyer ON orders(buyer_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_products_created ON products(created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (id, name, email, password_hash, cart_data) VALUES ($1, $2, $3, $4, $5) RETURNING created_at`
	u := model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Cart:         model.NewCart(),
	}
	cartJSON, err := json.Marshal(u.Cart)
	if err != nil {
		return nil, err
	}
	err = r.storage.pool.QueryRow(ctx, query, u.ID, name, email, passwordHash, cartJSON).Scan(&u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, name, email, password_hash, cart_data, created_at FROM users WHERE email=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	const query = `SELECT id, name, email, password_hash, cart_data, created_at FROM users WHERE id=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) scanUser(row pgx.Row) (*model.User, error) {
	var (
		u        model.User
		cartJSON []byte
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &cartJSON, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	u.Cart = model.NewCart()
	if len(cartJSON) > 0 {
		if err := json.Unmarshal(cartJSON, &u.Cart); err != nil {
			return nil, fmt.Errorf("decode cart data: %w", err)
		}
	}
	return &u, nil
}

func (r *userRepository) UpdateCart(ctx context.Context, userID string, cart model.Cart) error {
	const query = `UPDATE users SET cart_data=$1 WHERE id=$2`
	if cart == nil {
		cart = model.NewCart()
	}
	cartJSON, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	tag, err := r.storage.pool.Exec(ctx, query, cartJSON, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, reference, buyer_id, line_items, shipping_address, total_amount, status, payment_confirmed, payment_method, created_at`

func (r *orderRepository) CreateFromPayment(ctx context.Context, order *model.Order) (*model.Order, bool, error) {
	const query = `INSERT INTO orders (id, reference, buyer_id, line_items, shipping_address, total_amount, status, payment_confirmed, payment_method)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                   ON CONFLICT (reference) DO NOTHING
                   RETURNING created_at`
	itemsJSON, err := json.Marshal(order.LineItems)
	if err != nil {
		return nil, false, err
	}
	addressJSON, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return nil, false, err
	}

	stored := *order
	err = r.storage.pool.QueryRow(ctx, query,
		order.ID, order.Reference, order.BuyerID, itemsJSON, addressJSON,
		order.TotalAmount, order.Status, order.PaymentConfirmed, order.PaymentMethod,
	).Scan(&stored.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The reference was already materialized; the database arbitrated
			// the race. Return the existing order as a duplicate outcome.
			existing, err := r.GetByReference(ctx, order.Reference)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return &stored, true, nil
}

func (r *orderRepository) GetByReference(ctx context.Context, reference string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE reference=$1`
	return scanOrderRow(r.storage.pool.QueryRow(ctx, query, reference))
}

func (r *orderRepository) ListByBuyer(ctx context.Context, buyerID string) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE buyer_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, buyerID)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	const query = `UPDATE orders SET status=$1 WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func scanOrderRow(row pgx.Row) (*model.Order, error) {
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanOrder(row scannable) (*model.Order, error) {
	var (
		o           model.Order
		itemsJSON   []byte
		addressJSON []byte
	)
	err := row.Scan(&o.ID, &o.Reference, &o.BuyerID, &itemsJSON, &addressJSON,
		&o.TotalAmount, &o.Status, &o.PaymentConfirmed, &o.PaymentMethod, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &o.LineItems); err != nil {
		return nil, fmt.Errorf("decode line items: %w", err)
	}
	if err := json.Unmarshal(addressJSON, &o.ShippingAddress); err != nil {
		return nil, fmt.Errorf("decode shipping address: %w", err)
	}
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- ProductRepository implementation ---

const productColumns = `id, name, description, price, images, category, sub_category, sizes, bestseller, created_at, updated_at`

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	const query = `INSERT INTO products (id, name, description, price, images, category, sub_category, sizes, bestseller)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                   RETURNING created_at, updated_at`
	imagesJSON, sizesJSON, err := marshalProductFields(product)
	if err != nil {
		return err
	}
	err = r.storage.pool.QueryRow(ctx, query,
		product.ID, product.Name, product.Description, product.Price,
		imagesJSON, product.Category, product.SubCategory, sizesJSON, product.Bestseller,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	const query = `UPDATE products
                   SET name=$1, description=$2, price=$3, images=$4, category=$5, sub_category=$6, sizes=$7, bestseller=$8, updated_at=NOW()
                   WHERE id=$9`
	imagesJSON, sizesJSON, err := marshalProductFields(product)
	if err != nil {
		return err
	}
	tag, err := r.storage.pool.Exec(ctx, query,
		product.Name, product.Description, product.Price, imagesJSON,
		product.Category, product.SubCategory, sizesJSON, product.Bestseller, product.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) (*model.Product, error) {
	product, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	const query = `DELETE FROM products WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return product, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	product, err := scanProduct(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (r *productRepository) List(ctx context.Context, offset, limit int) ([]model.Product, int64, error) {
	const countQuery = `SELECT COUNT(*) FROM products`
	var total int64
	if err := r.storage.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC OFFSET $1 LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func marshalProductFields(product *model.Product) (imagesJSON, sizesJSON []byte, err error) {
	images := product.Images
	if images == nil {
		images = []string{}
	}
	sizes := product.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	if imagesJSON, err = json.Marshal(images); err != nil {
		return nil, nil, err
	}
	if sizesJSON, err = json.Marshal(sizes); err != nil {
		return nil, nil, err
	}
	return imagesJSON, sizesJSON, nil
}

func scanProduct(row scannable) (*model.Product, error) {
	var (
		p          model.Product
		imagesJSON []byte
		sizesJSON  []byte
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &imagesJSON,
		&p.Category, &p.SubCategory, &sizesJSON, &p.Bestseller, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(imagesJSON, &p.Images); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}
	if err := json.Unmarshal(sizesJSON, &p.Sizes); err != nil {
		return nil, fmt.Errorf("decode sizes: %w", err)
	}
	return &p, nil
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
