package repositories

import "kedai/internal/models"

// AddressRepository defines the interface for address data access.
type AddressRepository interface {
	Create(address *models.Address) error
	// GetByIDForUser returns models.ErrNotFound when the address does not
	// exist or belongs to a different user.
	GetByIDForUser(id, userID string) (*models.Address, error)
	ListByUser(userID string) ([]models.Address, error)
}
