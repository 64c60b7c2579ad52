package withdrawal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrNotFound               = errors.New("withdrawal request not found")
	ErrPendingRequestExists   = errors.New("seller already has a pending withdrawal request")
	ErrInvalidStateTransition = errors.New("invalid withdrawal state transition")
)

const uniqueViolation = "23505"

const requestColumns = `id, seller_id, amount, bank_name, account_number, account_holder, notes, status, admin_notes, requested_at, reviewed_at, processed_at, reviewer_id`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, sellerID int, req CreateRequest) (*Request, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Serialize withdrawal writes per seller. Approve/Reject/Complete take
	// the same lock, so the pending-request check below cannot go stale
	// before the insert commits.
	var lockedID int
	err = tx.GetContext(ctx, &lockedID, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, sellerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: seller %d", ErrNotFound, sellerID)
		}
		return nil, err
	}

	var pendingExists bool
	err = tx.GetContext(ctx, &pendingExists,
		`SELECT EXISTS(SELECT 1 FROM withdrawal_requests WHERE seller_id = $1 AND status = 'pending')`,
		sellerID,
	)
	if err != nil {
		return nil, err
	}
	if pendingExists {
		return nil, ErrPendingRequestExists
	}

	var request Request
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO withdrawal_requests (seller_id, amount, bank_name, account_number, account_holder, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending')
		RETURNING `+requestColumns,
		sellerID, req.Amount, req.BankName, req.AccountNumber, req.AccountHolder, req.Notes,
	).StructScan(&request)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			// Partial unique index on (seller_id) WHERE status = 'pending'
			// backstops the check above.
			return nil, ErrPendingRequestExists
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &request, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Request, error) {
	var request Request
	err := r.db.GetContext(ctx, &request,
		`SELECT `+requestColumns+` FROM withdrawal_requests WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return nil, err
	}

	return &request, nil
}

func (r *repository) HasPendingForSeller(ctx context.Context, sellerID int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM withdrawal_requests WHERE seller_id = $1 AND status = 'pending')`,
		sellerID,
	)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *repository) SumAmountByStatus(ctx context.Context, sellerID int, statuses ...Status) (int64, error) {
	if len(statuses) == 0 {
		return 0, nil
	}

	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	var sum int64
	err := r.db.GetContext(ctx, &sum, `
		SELECT COALESCE(SUM(amount), 0)
		FROM withdrawal_requests
		WHERE seller_id = $1 AND status = ANY($2)
	`, sellerID, pq.Array(statusStrings))
	if err != nil {
		return 0, err
	}

	return sum, nil
}

func (r *repository) ListBySeller(ctx context.Context, sellerID, limit int) ([]Request, error) {
	if limit <= 0 {
		limit = 50
	}

	var requests []Request
	err := r.db.SelectContext(ctx, &requests, `
		SELECT `+requestColumns+`
		FROM withdrawal_requests
		WHERE seller_id = $1
		ORDER BY requested_at DESC
		LIMIT $2
	`, sellerID, limit)
	if err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *repository) ListByStatus(ctx context.Context, status Status, limit int) ([]Request, error) {
	if limit <= 0 {
		limit = 50
	}

	var requests []Request
	err := r.db.SelectContext(ctx, &requests, `
		SELECT `+requestColumns+`
		FROM withdrawal_requests
		WHERE status = $1
		ORDER BY requested_at ASC
		LIMIT $2
	`, status, limit)
	if err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *repository) Approve(ctx context.Context, id, reviewerID int, adminNotes string) (*Request, error) {
	return r.transition(ctx, id, StatusPending, StatusApproved, `
		UPDATE withdrawal_requests
		SET status = 'approved', admin_notes = $2, reviewed_at = NOW(), reviewer_id = $3
		WHERE id = $1
		RETURNING `+requestColumns,
		id, adminNotes, reviewerID,
	)
}

func (r *repository) Reject(ctx context.Context, id, reviewerID int, adminNotes string) (*Request, error) {
	return r.transition(ctx, id, StatusPending, StatusRejected, `
		UPDATE withdrawal_requests
		SET status = 'rejected', admin_notes = $2, reviewed_at = NOW(), reviewer_id = $3
		WHERE id = $1
		RETURNING `+requestColumns,
		id, adminNotes, reviewerID,
	)
}

func (r *repository) Complete(ctx context.Context, id int) (*Request, error) {
	return r.transition(ctx, id, StatusApproved, StatusCompleted, `
		UPDATE withdrawal_requests
		SET status = 'completed', processed_at = NOW()
		WHERE id = $1
		RETURNING `+requestColumns,
		id,
	)
}

// transition moves a request from one state to the next under a row lock,
// plus the seller row lock so reviews serialize with new create attempts.
func (r *repository) transition(ctx context.Context, id int, from, to Status, updateQuery string, args ...interface{}) (*Request, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var current Request
	err = tx.GetContext(ctx, &current,
		`SELECT `+requestColumns+` FROM withdrawal_requests WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return nil, err
	}

	var lockedID int
	err = tx.GetContext(ctx, &lockedID, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, current.SellerID)
	if err != nil {
		return nil, err
	}

	switch current.Status {
	case from:
		// allowed
	case StatusPending, StatusApproved, StatusCompleted, StatusRejected:
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, current.Status, to)
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidStateTransition, current.Status)
	}

	var updated Request
	err = tx.QueryRowxContext(ctx, updateQuery, args...).StructScan(&updated)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &updated, nil
}
