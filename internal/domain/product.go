package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog. Photo bytes are stored
// separately from list views and only loaded by the photo endpoint.
type Product struct {
	ID               uuid.UUID       `json:"_id" db:"id"`
	Name             string          `json:"name" db:"name"`
	Slug             string          `json:"slug" db:"slug"`
	Description      string          `json:"description" db:"description"`
	Price            decimal.Decimal `json:"price" db:"price"`
	CategoryID       uuid.UUID       `json:"category_id" db:"category_id"`
	Category         *Category       `json:"category,omitempty" db:"-"`
	Quantity         int             `json:"quantity" db:"quantity"`
	Shipping         bool            `json:"shipping" db:"shipping"`
	Photo            []byte          `json:"-" db:"photo"`
	PhotoContentType string          `json:"-" db:"photo_content_type"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// Category represents a product category. Slug is the URL-safe form of
// the name and is unique across the store.
type Category struct {
	ID          uuid.UUID `json:"_id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CartItem is a snapshot of a product taken when it was added to the
// cart. Later edits to the product do not propagate to the snapshot.
type CartItem struct {
	ProductID   uuid.UUID       `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}
