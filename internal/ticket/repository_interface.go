package ticket

import "context"

type Repository interface {
	Create(ctx context.Context, sellerID int, req CreateTicketRequest) (*Ticket, error)
	GetByID(ctx context.Context, id int) (*Ticket, error)
	ListAll(ctx context.Context, limit int) ([]Ticket, error)
	ListBySeller(ctx context.Context, sellerID int) ([]Ticket, error)
	DecrementQuota(ctx context.Context, id, quantity int) error
}
