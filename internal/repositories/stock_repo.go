package repositories

import "kedai/internal/models"

// StockRepository defines the interface for stock record and audit-trail
// data access. StockTransaction rows are append-only; there is no update
// or delete for them.
type StockRepository interface {
	Create(record *models.StockRecord) error
	Get(productID string) (*models.StockRecord, error)
	// GetForUpdate loads the record with a row-level lock. Only meaningful
	// inside Store.Atomically; it is what serializes two callers racing
	// for the last unit of the same product.
	GetForUpdate(productID string) (*models.StockRecord, error)
	Save(record *models.StockRecord) error
	AppendTransaction(txn *models.StockTransaction) error
	Transactions(productID string) ([]models.StockTransaction, error)
	LowStock() ([]models.StockRecord, error)
}
