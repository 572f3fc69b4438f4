// Package cart models the client-local shopping cart. The cart lives
// on the buyer's device until checkout; the server only ever sees it as
// the snapshot list submitted with a payment.
package cart

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

var ErrIndexOutOfRange = errors.New("cart index out of range")

// Cart is an ordered collection of product snapshots. Duplicates are
// allowed: adding the same product twice yields two entries.
type Cart struct {
	items []domain.CartItem
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add appends a snapshot of the product to the cart. The snapshot is
// taken at add time; later product edits do not propagate.
func (c *Cart) Add(p *domain.Product) {
	c.items = append(c.items, domain.CartItem{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
	})
}

// RemoveAt removes the item at the given one-based position. Removal is
// positional, not identity-based, matching how the client drops an
// entry from its locally held array.
func (c *Cart) RemoveAt(pos int) error {
	if pos < 1 || pos > len(c.items) {
		return ErrIndexOutOfRange
	}
	c.items = append(c.items[:pos-1], c.items[pos:]...)
	return nil
}

// Items returns the snapshots in insertion order.
func (c *Cart) Items() []domain.CartItem {
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of entries in the cart.
func (c *Cart) Len() int {
	return len(c.items)
}

// Total returns the exact sum of the item prices.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Price)
	}
	return total
}

// Save persists the cart as JSON. This stands in for the browser's
// localStorage on the device holding the cart.
func (c *Cart) Save(path string) error {
	data, err := json.Marshal(c.items)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Load reads a previously saved cart. A missing file yields an empty
// cart rather than an error.
func Load(path string) (*Cart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, err
	}

	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return &Cart{items: items}, nil
}
