package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/winshop/winshop/internal/models"
)

var ErrProductNotFound = errors.New("product not found")

// ProductStorage defines persistence operations for catalog entries.
type ProductStorage interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostgresProductStorage implements ProductStorage on PostgreSQL.
type PostgresProductStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresProductStorage creates a new PostgresProductStorage.
func NewPostgresProductStorage(pool *pgxpool.Pool) *PostgresProductStorage {
	return &PostgresProductStorage{pool: pool}
}

// Create inserts a catalog entry and fills in the generated id and
// timestamp.
func (s *PostgresProductStorage) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, description, price, currency, category,
			image, images, stock, vendor_name, vendor_phone, vendor_email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		RETURNING id, created_at
	`

	err := s.pool.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.Price.String(),
		product.Currency,
		product.Category,
		product.Image,
		product.Images,
		product.Stock,
		product.VendorName,
		product.VendorPhone,
		product.VendorEmail,
	).Scan(&product.ID, &product.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// GetByID returns one catalog entry.
func (s *PostgresProductStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := `
		SELECT id, name, description, price, currency, category,
			image, images, stock, vendor_name, vendor_phone, vendor_email, created_at
		FROM products
		WHERE id = $1
	`

	return scanProduct(s.pool.QueryRow(ctx, query, id))
}

// GetAll returns the catalog, newest first.
func (s *PostgresProductStorage) GetAll(ctx context.Context) ([]models.Product, error) {
	query := `
		SELECT id, name, description, price, currency, category,
			image, images, stock, vendor_name, vendor_phone, vendor_email, created_at
		FROM products
		ORDER BY created_at DESC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return products, nil
}

// Update replaces the updatable fields of a catalog entry.
func (s *PostgresProductStorage) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, currency = $4, category = $5,
			image = $6, images = $7, stock = $8,
			vendor_name = $9, vendor_phone = $10, vendor_email = $11
		WHERE id = $12
	`

	result, err := s.pool.Exec(ctx, query,
		product.Name,
		product.Description,
		product.Price.String(),
		product.Currency,
		product.Category,
		product.Image,
		product.Images,
		product.Stock,
		product.VendorName,
		product.VendorPhone,
		product.VendorEmail,
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a catalog entry.
func (s *PostgresProductStorage) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// scanProduct reads a catalog entry from a result row.
func scanProduct(row pgx.Row) (*models.Product, error) {
	var (
		product  models.Product
		priceStr sql.NullString
		vName    sql.NullString
		vPhone   sql.NullString
		vEmail   sql.NullString
	)

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&priceStr,
		&product.Currency,
		&product.Category,
		&product.Image,
		&product.Images,
		&product.Stock,
		&vName,
		&vPhone,
		&vEmail,
		&product.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	product.Price = decimal.Zero
	if priceStr.Valid {
		if dec, derr := decimal.NewFromString(priceStr.String); derr == nil {
			product.Price = dec
		}
	}
	product.VendorName = vName.String
	product.VendorPhone = vPhone.String
	product.VendorEmail = vEmail.String

	return &product, nil
}
