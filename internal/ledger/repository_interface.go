package ledger

import "context"

type Repository interface {
	RecordSale(ctx context.Context, orderID, ticketID, sellerID int, grossAmount int64) (*Entry, error)
	MarkAvailable(ctx context.Context, entryID int) error
	GetByID(ctx context.Context, entryID int) (*Entry, error)
	SumBySellerAndStatus(ctx context.Context, sellerID int, status EntryStatus) (int64, error)
	CountBySeller(ctx context.Context, sellerID int) (int, error)
	ListRecent(ctx context.Context, sellerID, limit int) ([]Entry, error)
}
