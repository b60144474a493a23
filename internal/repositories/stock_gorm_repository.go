package repositories

import (
	"errors"
	"fmt"
	"kedai/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMStockRepository is a GORM implementation of StockRepository.
type GORMStockRepository struct {
	db *gorm.DB
}

// NewGORMStockRepository creates a new instance of GORMStockRepository.
func NewGORMStockRepository(db *gorm.DB) *GORMStockRepository {
	return &GORMStockRepository{db: db}
}

// Create creates a stock record for a catalog item.
func (r *GORMStockRepository) Create(record *models.StockRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create stock record for product %s: %w", record.ProductID, err)
	}
	return nil
}

// Get returns the stock record for a product.
func (r *GORMStockRepository) Get(productID string) (*models.StockRecord, error) {
	var record models.StockRecord
	if err := r.db.First(&record, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get stock record for product %s: %w", productID, err)
	}
	return &record, nil
}

// GetForUpdate returns the stock record holding a row-level lock for the
// remainder of the surrounding transaction. Two orders racing for the
// last unit of a product serialize here.
func (r *GORMStockRepository) GetForUpdate(productID string) (*models.StockRecord, error) {
	var record models.StockRecord
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&record, "product_id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock stock record for product %s: %w", productID, err)
	}
	return &record, nil
}

// Save persists a mutated stock record.
func (r *GORMStockRepository) Save(record *models.StockRecord) error {
	if err := r.db.Save(record).Error; err != nil {
		return fmt.Errorf("failed to save stock record for product %s: %w", record.ProductID, err)
	}
	return nil
}

// AppendTransaction appends one audit entry. Entries are never updated or
// deleted afterwards.
func (r *GORMStockRepository) AppendTransaction(txn *models.StockTransaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if err := r.db.Create(txn).Error; err != nil {
		return fmt.Errorf("failed to append stock transaction: %w", err)
	}
	return nil
}

// Transactions returns the audit trail for a product, oldest first.
func (r *GORMStockRepository) Transactions(productID string) ([]models.StockTransaction, error) {
	var txns []models.StockTransaction
	if err := r.db.Where("product_id = ?", productID).Order("created_at").Find(&txns).Error; err != nil {
		return nil, fmt.Errorf("failed to list stock transactions for product %s: %w", productID, err)
	}
	return txns, nil
}

// LowStock returns every record whose on-hand quantity is below its
// threshold.
func (r *GORMStockRepository) LowStock() ([]models.StockRecord, error) {
	var records []models.StockRecord
	if err := r.db.Where("quantity_on_hand < low_stock_threshold").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list low stock records: %w", err)
	}
	return records, nil
}
