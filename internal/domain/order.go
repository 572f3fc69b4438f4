package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses. These are user-visible strings rendered verbatim by
// the admin UI, not internal codes.
const (
	StatusNotProcess = "Not Process"
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
	StatusCancelled  = "Cancelled"
)

// Payment records the gateway outcome for an order.
type Payment struct {
	Success       bool   `json:"success" db:"payment_success"`
	TransactionID string `json:"transaction_id" db:"transaction_id"`
}

// OrderProduct is a priced product snapshot attached to an order, in
// cart insertion order.
type OrderProduct struct {
	ProductID uuid.UUID       `json:"_id" db:"product_id"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Position  int             `json:"-" db:"position"`
}

// Order is created exactly once per successful checkout and is never
// deleted through normal flow.
type Order struct {
	ID        uuid.UUID       `json:"_id" db:"id"`
	Products  []OrderProduct  `json:"products" db:"-"`
	Payment   Payment         `json:"payment" db:"-"`
	BuyerID   uuid.UUID       `json:"buyer" db:"buyer_id"`
	Buyer     *User           `json:"-" db:"-"`
	Status    string          `json:"status" db:"status"`
	Total     decimal.Decimal `json:"total" db:"total"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// ValidStatus reports whether s is one of the five order statuses. The
// status update endpoint does not enforce transition legality, only
// membership in the known set.
func ValidStatus(s string) bool {
	switch s {
	case StatusNotProcess, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}
