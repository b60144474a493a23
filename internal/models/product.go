package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. Stock levels are not stored here; they are
// owned by the inventory ledger (StockRecord) and only the ledger may flip
// IsAvailable as a side effect of hitting zero stock.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string          `json:"name" validate:"required,min=3,max=100"`
	Description string          `json:"description" validate:"omitempty,max=500"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	IsAvailable bool            `json:"is_available"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
