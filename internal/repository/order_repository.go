package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"attire-rental/internal/domain"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	// CreateFromCart inserts the order and one order_items row per cart
	// entry whose product still exists, all in one transaction. Duplicate
	// cart entries of the same product produce duplicate rows at quantity
	// 1, not an aggregated quantity. Sets order.ID and order.CreatedAt.
	CreateFromCart(ctx context.Context, order *domain.Order, cartProductIDs []int64) error
	FindDetail(ctx context.Context, orderID int64) ([]*domain.OrderDetail, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateFromCart(ctx context.Context, order *domain.Order, cartProductIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	orderQuery := `
		INSERT INTO orders (user_id, fullname, address, phone, payment_method, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING order_id, created_at
	`

	err = tx.QueryRowContext(
		ctx,
		orderQuery,
		order.UserID,
		order.FullName,
		order.Address,
		order.Phone,
		order.PaymentMethod,
		order.Status,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	// Re-resolve the cart against the live products table; ids whose
	// product no longer exists are dropped.
	resolved, err := r.resolveProductIDs(ctx, tx, cartProductIDs)
	if err != nil {
		return err
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, quantity)
		VALUES ($1, $2, $3)
	`

	for _, id := range cartProductIDs {
		if !resolved[id] {
			continue
		}
		if _, err := tx.ExecContext(ctx, itemQuery, order.ID, id, 1); err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

func (r *orderRepository) resolveProductIDs(ctx context.Context, tx *sql.Tx, ids []int64) (map[int64]bool, error) {
	resolved := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return resolved, nil
	}

	rows, err := tx.QueryContext(ctx, `SELECT products_id FROM products WHERE products_id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cart products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan product id: %w", err)
		}
		resolved[id] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product ids: %w", err)
	}

	return resolved, nil
}

// FindDetail retrieves the full joined order detail, one row per order item.
// An empty result means the order id no longer resolves.
func (r *orderRepository) FindDetail(ctx context.Context, orderID int64) ([]*domain.OrderDetail, error) {
	query := `
		SELECT o.order_id, o.fullname, o.address, o.phone, o.created_at,
		       oi.quantity, p.product_name, p.products_image, p.price
		FROM orders o
		JOIN order_items oi ON o.order_id = oi.order_id
		JOIN products p ON oi.product_id = p.products_id
		WHERE o.order_id = $1
		ORDER BY oi.item_id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order detail: %w", err)
	}
	defer rows.Close()

	details := []*domain.OrderDetail{}
	for rows.Next() {
		detail := &domain.OrderDetail{}
		err := rows.Scan(
			&detail.OrderID,
			&detail.FullName,
			&detail.Address,
			&detail.Phone,
			&detail.CreatedAt,
			&detail.Quantity,
			&detail.ProductName,
			&detail.ProductImage,
			&detail.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order detail: %w", err)
		}
		details = append(details, detail)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order details: %w", err)
	}

	return details, nil
}

// ListByUser retrieves a member's orders, newest first
func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	query := `
		SELECT order_id, user_id, fullname, address, phone, payment_method, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders by user: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		order := &domain.Order{}
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.FullName,
			&order.Address,
			&order.Phone,
			&order.PaymentMethod,
			&order.Status,
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

	return orders, nil
}
