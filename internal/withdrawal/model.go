package withdrawal

import "time"

// Status is the lifecycle state of a withdrawal request.
// pending -> approved -> completed, pending -> rejected.
// rejected and completed are terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusCompleted, StatusRejected:
		return true
	default:
		return false
	}
}

func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusRejected:
		return true
	case StatusPending, StatusApproved:
		return false
	default:
		return false
	}
}

// Request is a seller's cash-out instruction. Amount is whole rupiah.
type Request struct {
	ID            int        `db:"id" json:"id"`
	SellerID      int        `db:"seller_id" json:"seller_id"`
	Amount        int64      `db:"amount" json:"amount"`
	BankName      string     `db:"bank_name" json:"bank_name"`
	AccountNumber string     `db:"account_number" json:"account_number"`
	AccountHolder string     `db:"account_holder" json:"account_holder"`
	Notes         string     `db:"notes" json:"notes,omitempty"`
	Status        Status     `db:"status" json:"status"`
	AdminNotes    string     `db:"admin_notes" json:"admin_notes,omitempty"`
	RequestedAt   time.Time  `db:"requested_at" json:"requested_at"`
	ReviewedAt    *time.Time `db:"reviewed_at" json:"reviewed_at,omitempty"`
	ProcessedAt   *time.Time `db:"processed_at" json:"processed_at,omitempty"`
	ReviewerID    *int       `db:"reviewer_id" json:"reviewer_id,omitempty"`
}

type CreateRequest struct {
	Amount        int64  `json:"amount" binding:"required"`
	BankName      string `json:"bank_name" binding:"required"`
	AccountNumber string `json:"account_number" binding:"required"`
	AccountHolder string `json:"account_holder" binding:"required"`
	Notes         string `json:"notes"`
}

type ReviewRequest struct {
	AdminNotes string `json:"admin_notes"`
}
