package models

import "time"

// StockRecord holds the on-hand counter for one catalog item. It is
// mutated only through the inventory ledger's debit/credit/adjust
// operations. InitialQuantity is the seed value the record was created
// with; at any point in time QuantityOnHand must equal InitialQuantity
// plus the sum of all StockTransaction deltas for the product.
type StockRecord struct {
	ProductID         string    `json:"product_id" gorm:"primaryKey;type:varchar(36)"`
	QuantityOnHand    int       `json:"quantity_on_hand"`
	InitialQuantity   int       `json:"initial_quantity"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	AutoDisableOnZero bool      `json:"auto_disable_on_zero"`
	AutoDisabled      bool      `json:"auto_disabled"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// IsLowStock reports whether the on-hand quantity is below the threshold.
func (r *StockRecord) IsLowStock() bool {
	return r.QuantityOnHand < r.LowStockThreshold
}

// StockTransactionKind classifies a ledger entry.
type StockTransactionKind string

const (
	StockDebitForOrder         StockTransactionKind = "debit_for_order"
	StockCreditForCancellation StockTransactionKind = "credit_for_cancellation"
	StockManualRestock         StockTransactionKind = "manual_restock"
	StockManualAdjustment      StockTransactionKind = "manual_adjustment"
	StockDamaged               StockTransactionKind = "damaged"
)

// StockTransaction is one append-only audit entry of a stock change. Rows
// are never updated or deleted.
type StockTransaction struct {
	ID            string               `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID     string               `json:"product_id" gorm:"index;type:varchar(36)"`
	Kind          StockTransactionKind `json:"kind" gorm:"type:varchar(30)"`
	Delta         int                  `json:"delta"`
	QuantityAfter int                  `json:"quantity_after"`
	OrderID       *string              `json:"order_id,omitempty" gorm:"type:varchar(36)"`
	Note          string               `json:"note,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}
