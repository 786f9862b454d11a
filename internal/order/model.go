package order

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is one of the admin-settable states.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID              string  `json:"id"`
	CustomerName    string  `json:"customer_name"`
	CustomerPhone   string  `json:"customer_phone"`
	CustomerEmail   *string `json:"customer_email"`
	CustomerAddress *string `json:"customer_address"`
	CustomerCity    *string `json:"customer_city"`
	CustomerNotes   *string `json:"customer_notes"`
	// Total is fixed at submission time and never recomputed, even if
	// product prices change afterwards.
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	UserID    *string         `json:"user_id"`
	CreatedAt time.Time       `json:"created_at"`
}

// Item snapshots title and unit price of one cart line at submission
// time; rows are immutable after creation.
type Item struct {
	ID           string          `json:"id"`
	OrderID      string          `json:"order_id"`
	ProductID    string          `json:"product_id"`
	ProductTitle string          `json:"product_title"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

// UpdateStatusRequest payload of the admin status change.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required" example:"confirmed"`
}
