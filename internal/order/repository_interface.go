package order

import "context"

type Repository interface {
	CreateOrder(ctx context.Context, customerID int, items []Item) (*Order, error)
	GetByID(ctx context.Context, id int) (*Order, error)
	GetItems(ctx context.Context, orderID int) ([]Item, error)
	MarkPaid(ctx context.Context, id int) (*Order, error)
	ListByCustomer(ctx context.Context, customerID int) ([]Order, error)
}
