package services

import (
	"kedai/internal/models"
	"kedai/internal/repositories"
)

// CatalogService handles catalog item management. Every item gets a stock
// record at creation so the inventory ledger has a counter to govern from
// day one.
type CatalogService struct {
	store repositories.Store
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(store repositories.Store) *CatalogService {
	return &CatalogService{store: store}
}

// GetAllProducts retrieves all catalog items.
func (s *CatalogService) GetAllProducts() ([]models.Product, error) {
	return s.store.Catalog().GetAll()
}

// GetProductByID retrieves a single catalog item by its ID.
func (s *CatalogService) GetProductByID(id string) (*models.Product, error) {
	return s.store.Catalog().GetByID(id)
}

// CreateProduct creates a catalog item together with its stock record.
func (s *CatalogService) CreateProduct(product *models.Product, initialStock, lowStockThreshold int, autoDisableOnZero bool) error {
	if initialStock < 0 {
		return models.NewValidationError("initial stock must not be negative")
	}
	return s.store.Atomically(func(tx repositories.Store) error {
		if err := tx.Catalog().Create(product); err != nil {
			return err
		}
		return tx.Stock().Create(&models.StockRecord{
			ProductID:         product.ID,
			QuantityOnHand:    initialStock,
			InitialQuantity:   initialStock,
			LowStockThreshold: lowStockThreshold,
			AutoDisableOnZero: autoDisableOnZero,
		})
	})
}

// UpdateProduct updates an existing catalog item.
func (s *CatalogService) UpdateProduct(product *models.Product) error {
	return s.store.Catalog().Update(product)
}
