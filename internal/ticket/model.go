package ticket

import "time"

// Ticket is an admission product a seller offers for a cultural site.
// Price is whole rupiah.
type Ticket struct {
	ID        int       `db:"id" json:"id"`
	SellerID  int       `db:"seller_id" json:"seller_id"`
	Name      string    `db:"name" json:"name"`
	SiteName  string    `db:"site_name" json:"site_name"`
	Location  string    `db:"location" json:"location"`
	Price     int64     `db:"price" json:"price"`
	Quota     int       `db:"quota" json:"quota"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateTicketRequest struct {
	Name     string `json:"name" binding:"required"`
	SiteName string `json:"site_name" binding:"required"`
	Location string `json:"location" binding:"required"`
	Price    int64  `json:"price" binding:"required,gt=0"`
	Quota    int    `json:"quota" binding:"required,min=1"`
}
