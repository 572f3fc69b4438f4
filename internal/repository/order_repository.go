package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts an order and its product snapshots atomically
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, buyer_id, status, payment_success, transaction_id, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		order.ID,
		order.BuyerID,
		order.Status,
		order.Payment.Success,
		order.Payment.TransactionID,
		order.Total,
		order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	for i, p := range order.Products {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_products (order_id, product_id, name, price, position)
			VALUES ($1, $2, $3, $4, $5)
		`, order.ID, p.ProductID, p.Name, p.Price, i)
		if err != nil {
			return fmt.Errorf("failed to create order product: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

// FindByID retrieves an order with its product snapshots
func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `
		SELECT id, buyer_id, status, payment_success, transaction_id, total, created_at
		FROM orders
		WHERE id = $1
	`

	order := &domain.Order{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.BuyerID,
		&order.Status,
		&order.Payment.Success,
		&order.Payment.TransactionID,
		&order.Total,
		&order.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}

	if err := r.attachProducts(ctx, []*domain.Order{order}); err != nil {
		return nil, err
	}

	return order, nil
}

// UpdateStatus overwrites the status of an existing order
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// ListByBuyer retrieves a buyer's orders, newest first
func (r *orderRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*domain.Order, error) {
	return r.list(ctx, "WHERE buyer_id = $1", buyerID)
}

// ListAll retrieves all orders, newest first
func (r *orderRepository) ListAll(ctx context.Context) ([]*domain.Order, error) {
	return r.list(ctx, "")
}

func (r *orderRepository) list(ctx context.Context, where string, args ...interface{}) ([]*domain.Order, error) {
	query := fmt.Sprintf(`
		SELECT id, buyer_id, status, payment_success, transaction_id, total, created_at
		FROM orders
		%s
		ORDER BY created_at DESC
	`, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		order := &domain.Order{}
		err := rows.Scan(
			&order.ID,
			&order.BuyerID,
			&order.Status,
			&order.Payment.Success,
			&order.Payment.TransactionID,
			&order.Total,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if err := r.attachProducts(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// attachProducts loads the product snapshots for the given orders in a
// single query, preserving cart insertion order.
func (r *orderRepository) attachProducts(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*domain.Order, len(orders))
	placeholders := make([]string, len(orders))
	args := make([]interface{}, len(orders))
	for i, o := range orders {
		byID[o.ID] = o
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = o.ID
	}

	query := fmt.Sprintf(`
		SELECT order_id, product_id, name, price, position
		FROM order_products
		WHERE order_id IN (%s)
		ORDER BY order_id, position
	`, strings.Join(placeholders, ", "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load order products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID uuid.UUID
		p := domain.OrderProduct{}
		if err := rows.Scan(&orderID, &p.ProductID, &p.Name, &p.Price, &p.Position); err != nil {
			return fmt.Errorf("failed to scan order product: %w", err)
		}
		if order, ok := byID[orderID]; ok {
			order.Products = append(order.Products, p)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating order products: %w", err)
	}

	return nil
}
