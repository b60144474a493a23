package services

import (
	"kedai/internal/models"
	"kedai/internal/repositories"
)

// AddressService handles the user's delivery address book.
type AddressService struct {
	store repositories.Store
}

// NewAddressService creates a new AddressService.
func NewAddressService(store repositories.Store) *AddressService {
	return &AddressService{store: store}
}

// CreateAddress stores a new address for the user.
func (s *AddressService) CreateAddress(userID string, address *models.Address) error {
	address.UserID = userID
	return s.store.Addresses().Create(address)
}

// ListAddresses returns all of the user's addresses.
func (s *AddressService) ListAddresses(userID string) ([]models.Address, error) {
	return s.store.Addresses().ListByUser(userID)
}
