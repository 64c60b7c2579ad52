package order

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrAlreadyPaid   = errors.New("order is not awaiting payment")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateOrder(ctx context.Context, customerID int, items []Item) (*Order, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var total int64
	for _, item := range items {
		total += item.Subtotal
	}

	var order Order
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO orders (customer_id, status, total_amount)
		VALUES ($1, 'awaiting_payment', $2)
		RETURNING id, customer_id, status, total_amount, created_at, paid_at
	`, customerID, total).StructScan(&order)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, ticket_id, seller_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, order.ID, item.TicketID, item.SellerID, item.Quantity, item.UnitPrice, item.Subtotal)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Order, error) {
	var order Order
	err := r.db.GetContext(ctx, &order, `
		SELECT id, customer_id, status, total_amount, created_at, paid_at
		FROM orders
		WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	return &order, nil
}

func (r *repository) GetItems(ctx context.Context, orderID int) ([]Item, error) {
	var items []Item
	err := r.db.SelectContext(ctx, &items, `
		SELECT id, order_id, ticket_id, seller_id, quantity, unit_price, subtotal
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *repository) MarkPaid(ctx context.Context, id int) (*Order, error) {
	var order Order
	err := r.db.QueryRowxContext(ctx, `
		UPDATE orders
		SET status = 'paid', paid_at = NOW()
		WHERE id = $1 AND status = 'awaiting_payment'
		RETURNING id, customer_id, status, total_amount, created_at, paid_at
	`, id).StructScan(&order)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			exists, existsErr := r.orderExists(ctx, id)
			if existsErr != nil {
				return nil, existsErr
			}
			if !exists {
				return nil, ErrOrderNotFound
			}
			return nil, ErrAlreadyPaid
		}
		return nil, err
	}

	return &order, nil
}

func (r *repository) orderExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`, id)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *repository) ListByCustomer(ctx context.Context, customerID int) ([]Order, error) {
	var orders []Order
	err := r.db.SelectContext(ctx, &orders, `
		SELECT id, customer_id, status, total_amount, created_at, paid_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`, customerID)
	if err != nil {
		return nil, err
	}

	return orders, nil
}
