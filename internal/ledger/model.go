package ledger

import "time"

// EntryStatus is the settlement state of a ledger entry.
type EntryStatus string

const (
	StatusPending   EntryStatus = "pending"
	StatusAvailable EntryStatus = "available"
)

func (s EntryStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAvailable:
		return true
	default:
		return false
	}
}

// Entry is one seller's earned share of one sold ticket line item.
// Amounts are whole rupiah. Entries are append-only; only Status changes,
// and only via MarkAvailable.
type Entry struct {
	ID                int         `db:"id" json:"id"`
	SellerID          int         `db:"seller_id" json:"seller_id"`
	OrderID           int         `db:"order_id" json:"order_id"`
	TicketID          int         `db:"ticket_id" json:"ticket_id"`
	GrossAmount       int64       `db:"gross_amount" json:"gross_amount"`
	PlatformFeeAmount int64       `db:"platform_fee_amount" json:"platform_fee_amount"`
	SellerAmount      int64       `db:"seller_amount" json:"seller_amount"`
	Status            EntryStatus `db:"status" json:"status"`
	CreatedAt         time.Time   `db:"created_at" json:"created_at"`
}

// PlatformFee returns the marketplace commission for a gross sale amount,
// rounded half-up to the nearest rupiah. The remainder goes to the seller,
// so seller_amount + fee == gross always holds.
func PlatformFee(grossAmount int64, feePercent int) int64 {
	return (grossAmount*int64(feePercent) + 50) / 100
}
