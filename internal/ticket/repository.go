package ticket

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var (
	ErrTicketNotFound = errors.New("ticket not found")
	ErrQuotaExceeded  = errors.New("not enough ticket quota")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, sellerID int, req CreateTicketRequest) (*Ticket, error) {
	query := `
		INSERT INTO tickets (seller_id, name, site_name, location, price, quota)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, seller_id, name, site_name, location, price, quota, created_at
	`

	var ticket Ticket
	err := r.db.GetContext(ctx, &ticket, query, sellerID, req.Name, req.SiteName, req.Location, req.Price, req.Quota)
	if err != nil {
		return nil, err
	}

	return &ticket, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Ticket, error) {
	query := `
		SELECT id, seller_id, name, site_name, location, price, quota, created_at
		FROM tickets
		WHERE id = $1
	`

	var ticket Ticket
	err := r.db.GetContext(ctx, &ticket, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}

	return &ticket, nil
}

func (r *repository) ListAll(ctx context.Context, limit int) ([]Ticket, error) {
	if limit <= 0 {
		limit = 100
	}

	var tickets []Ticket
	err := r.db.SelectContext(ctx, &tickets, `
		SELECT id, seller_id, name, site_name, location, price, quota, created_at
		FROM tickets
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}

	return tickets, nil
}

func (r *repository) ListBySeller(ctx context.Context, sellerID int) ([]Ticket, error) {
	var tickets []Ticket
	err := r.db.SelectContext(ctx, &tickets, `
		SELECT id, seller_id, name, site_name, location, price, quota, created_at
		FROM tickets
		WHERE seller_id = $1
		ORDER BY created_at DESC
	`, sellerID)
	if err != nil {
		return nil, err
	}

	return tickets, nil
}

func (r *repository) DecrementQuota(ctx context.Context, id, quantity int) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE tickets
		SET quota = quota - $2
		WHERE id = $1 AND quota >= $2
	`, id, quantity)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrQuotaExceeded
	}

	return nil
}
