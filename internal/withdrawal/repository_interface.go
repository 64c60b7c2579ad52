package withdrawal

import "context"

type Repository interface {
	// Create inserts a new pending request inside a transaction that holds
	// the seller's row lock and re-checks the one-pending-at-a-time rule.
	Create(ctx context.Context, sellerID int, req CreateRequest) (*Request, error)

	GetByID(ctx context.Context, id int) (*Request, error)
	HasPendingForSeller(ctx context.Context, sellerID int) (bool, error)
	SumAmountByStatus(ctx context.Context, sellerID int, statuses ...Status) (int64, error)
	ListBySeller(ctx context.Context, sellerID, limit int) ([]Request, error)
	ListByStatus(ctx context.Context, status Status, limit int) ([]Request, error)

	Approve(ctx context.Context, id, reviewerID int, adminNotes string) (*Request, error)
	Reject(ctx context.Context, id, reviewerID int, adminNotes string) (*Request, error)
	Complete(ctx context.Context, id int) (*Request, error)
}
