package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is the mutable pre-order basket. Exactly one cart exists per user
// (enforced by the unique index on UserID). The Version field is bumped on
// every write and checked optimistically so that concurrent edits to the
// same cart from multiple devices cannot corrupt quantities.
type Cart struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string     `json:"user_id" gorm:"uniqueIndex;type:varchar(36)"`
	Version   int        `json:"-"`
	Lines     []CartLine `json:"lines" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartLine is one (product, quantity) entry in a cart. UnitPrice is the
// catalog price captured when the line was first added; it is never
// re-read from the catalog for an existing line.
type CartLine struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CartID    string          `json:"cart_id" gorm:"index;type:varchar(36)"`
	ProductID string          `json:"product_id" gorm:"index;type:varchar(36)"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2)"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Subtotal returns quantity times the snapshotted unit price.
func (l *CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// LineFor returns the line holding the given product, or nil.
func (c *Cart) LineFor(productID string) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}

// TotalItems is the summed quantity across all lines.
func (c *Cart) TotalItems() int {
	total := 0
	for i := range c.Lines {
		total += c.Lines[i].Quantity
	}
	return total
}

// TotalPrice is the summed line subtotals, derived on every call and never
// persisted.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Lines {
		total = total.Add(c.Lines[i].Subtotal())
	}
	return total
}

// CartSummary is the derived view returned by every cart endpoint.
type CartSummary struct {
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Summarize builds the derived summary for the cart.
func (c *Cart) Summarize() CartSummary {
	return CartSummary{TotalItems: c.TotalItems(), TotalPrice: c.TotalPrice()}
}
