package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrInvalidAmount  = errors.New("gross amount must be positive")
	ErrDuplicateEntry = errors.New("ledger entry already recorded for this order item")
	ErrNotFound       = errors.New("ledger entry not found")
)

const uniqueViolation = "23505"

type repository struct {
	db         *sqlx.DB
	feePercent int
}

// NewRepository builds the ledger store. feePercent is frozen into each
// entry at creation time; changing it later never touches existing rows.
func NewRepository(db *sqlx.DB, feePercent int) Repository {
	return &repository{db: db, feePercent: feePercent}
}

func (r *repository) RecordSale(ctx context.Context, orderID, ticketID, sellerID int, grossAmount int64) (*Entry, error) {
	if grossAmount <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAmount, grossAmount)
	}

	fee := PlatformFee(grossAmount, r.feePercent)
	sellerAmount := grossAmount - fee

	query := `
		INSERT INTO ledger_entries (seller_id, order_id, ticket_id, gross_amount, platform_fee_amount, seller_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending')
		RETURNING id, seller_id, order_id, ticket_id, gross_amount, platform_fee_amount, seller_amount, status, created_at
	`

	var entry Entry
	err := r.db.GetContext(ctx, &entry, query, sellerID, orderID, ticketID, grossAmount, fee, sellerAmount)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: order %d, ticket %d", ErrDuplicateEntry, orderID, ticketID)
		}
		return nil, err
	}

	return &entry, nil
}

func (r *repository) MarkAvailable(ctx context.Context, entryID int) error {
	// Idempotent: releasing an already-available entry is a no-op.
	query := `
		UPDATE ledger_entries
		SET status = 'available'
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.db.ExecContext(ctx, query, entryID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		exists, err := r.entryExists(ctx, entryID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: id %d", ErrNotFound, entryID)
		}
	}

	return nil
}

func (r *repository) entryExists(ctx context.Context, entryID int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM ledger_entries WHERE id = $1)`, entryID)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *repository) GetByID(ctx context.Context, entryID int) (*Entry, error) {
	query := `
		SELECT id, seller_id, order_id, ticket_id, gross_amount, platform_fee_amount, seller_amount, status, created_at
		FROM ledger_entries
		WHERE id = $1
	`

	var entry Entry
	err := r.db.GetContext(ctx, &entry, query, entryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, entryID)
		}
		return nil, err
	}

	return &entry, nil
}

func (r *repository) SumBySellerAndStatus(ctx context.Context, sellerID int, status EntryStatus) (int64, error) {
	query := `
		SELECT COALESCE(SUM(seller_amount), 0)
		FROM ledger_entries
		WHERE seller_id = $1 AND status = $2
	`

	var sum int64
	err := r.db.GetContext(ctx, &sum, query, sellerID, status)
	if err != nil {
		return 0, err
	}

	return sum, nil
}

func (r *repository) CountBySeller(ctx context.Context, sellerID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM ledger_entries
		WHERE seller_id = $1
	`

	var count int
	err := r.db.GetContext(ctx, &count, query, sellerID)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repository) ListRecent(ctx context.Context, sellerID, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, seller_id, order_id, ticket_id, gross_amount, platform_fee_amount, seller_amount, status, created_at
		FROM ledger_entries
		WHERE seller_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var entries []Entry
	err := r.db.SelectContext(ctx, &entries, query, sellerID, limit)
	if err != nil {
		return nil, err
	}

	return entries, nil
}
