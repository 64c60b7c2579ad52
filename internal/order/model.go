package order

import "time"

type OrderStatus string

const (
	StatusAwaitingPayment OrderStatus = "awaiting_payment"
	StatusPaid            OrderStatus = "paid"
	StatusCancelled       OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusAwaitingPayment, StatusPaid, StatusCancelled:
		return true
	default:
		return false
	}
}

type Order struct {
	ID          int         `db:"id" json:"id"`
	CustomerID  int         `db:"customer_id" json:"customer_id"`
	Status      OrderStatus `db:"status" json:"status"`
	TotalAmount int64       `db:"total_amount" json:"total_amount"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	PaidAt      *time.Time  `db:"paid_at" json:"paid_at,omitempty"`
}

// Item is one ticket line inside an order. Subtotal is the gross amount
// the seller's ledger entry is recorded from.
type Item struct {
	ID        int   `db:"id" json:"id"`
	OrderID   int   `db:"order_id" json:"order_id"`
	TicketID  int   `db:"ticket_id" json:"ticket_id"`
	SellerID  int   `db:"seller_id" json:"seller_id"`
	Quantity  int   `db:"quantity" json:"quantity"`
	UnitPrice int64 `db:"unit_price" json:"unit_price"`
	Subtotal  int64 `db:"subtotal" json:"subtotal"`
}

type OrderWithItems struct {
	Order
	Items []Item `json:"items"`
}

type PlaceOrderRequest struct {
	Items []PlaceOrderItem `json:"items" binding:"required,min=1,dive"`
}

type PlaceOrderItem struct {
	TicketID int `json:"ticket_id" binding:"required"`
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type ConfirmPaymentRequest struct {
	OrderID int `json:"order_id" binding:"required"`
}
