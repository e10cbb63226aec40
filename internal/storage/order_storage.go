package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/winshop/winshop/internal/models"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderAlreadyExists = errors.New("order already exists")
)

// OrderStorage defines persistence operations for orders.
type OrderStorage interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostgresOrderStorage implements OrderStorage on PostgreSQL.
type PostgresOrderStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresOrderStorage creates a new PostgresOrderStorage.
func NewPostgresOrderStorage(pool *pgxpool.Pool) *PostgresOrderStorage {
	return &PostgresOrderStorage{pool: pool}
}

// Create inserts a new order and fills in the generated id and timestamp.
func (s *PostgresOrderStorage) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (order_number, customer_name, customer_phone, customer_city,
			items, total_amount, currency, payment_method, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING id, created_at
	`

	err := s.pool.QueryRow(ctx, query,
		order.OrderNumber,
		order.Customer.Name,
		order.Customer.Phone,
		order.Customer.City,
		order.Items,
		order.TotalAmount.String(),
		order.Currency,
		order.PaymentMethod,
		order.Status,
		order.Notes,
	).Scan(&order.ID, &order.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return ErrOrderAlreadyExists
		}
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// GetByID returns one order.
func (s *PostgresOrderStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	query := `
		SELECT id, order_number, customer_name, customer_phone, customer_city,
			items, total_amount, currency, payment_method, status, notes, created_at
		FROM orders
		WHERE id = $1
	`

	return scanOrder(s.pool.QueryRow(ctx, query, id))
}

// GetAll returns every order, newest first. There is no pagination: the
// admin dashboard works on the full snapshot.
func (s *PostgresOrderStorage) GetAll(ctx context.Context) ([]models.Order, error) {
	query := `
		SELECT id, order_number, customer_name, customer_phone, customer_city,
			items, total_amount, currency, payment_method, status, notes, created_at
		FROM orders
		ORDER BY created_at DESC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return orders, nil
}

// UpdateStatus moves an order to a new status. Any status may follow any
// other; concurrent updates are last-write-wins.
func (s *PostgresOrderStorage) UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) error {
	result, err := s.pool.Exec(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// Delete removes an order.
func (s *PostgresOrderStorage) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// scanOrder reads an order from a result row.
func scanOrder(row pgx.Row) (*models.Order, error) {
	var (
		order    models.Order
		totalStr sql.NullString
		notes    sql.NullString
	)

	err := row.Scan(
		&order.ID,
		&order.OrderNumber,
		&order.Customer.Name,
		&order.Customer.Phone,
		&order.Customer.City,
		&order.Items,
		&totalStr,
		&order.Currency,
		&order.PaymentMethod,
		&order.Status,
		&notes,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	order.TotalAmount = decimal.Zero
	if totalStr.Valid {
		if dec, derr := decimal.NewFromString(totalStr.String); derr == nil {
			order.TotalAmount = dec
		}
	}
	order.Notes = notes.String

	// Old records may still carry the legacy pending spelling; fold it so
	// everything past the store only sees the canonical set.
	if status, ok := models.ParseStatus(string(order.Status)); ok {
		order.Status = status
	}

	return &order, nil
}
