package repositories

import "kedai/internal/models"

// CatalogRepository defines the interface for catalog item data access.
type CatalogRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	// SetAvailability flips the availability flag; used by the inventory
	// ledger for the auto-disable-on-zero / re-enable side effects.
	SetAvailability(id string, available bool) error
}
