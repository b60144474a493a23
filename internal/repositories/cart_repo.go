package repositories

import "kedai/internal/models"

// CartRepository defines the interface for cart data access. All write
// operations verify the cart's optimistic version and return
// models.ErrConcurrencyConflict when another writer got there first.
type CartRepository interface {
	// GetOrCreateByUser returns the user's cart, creating an empty one if
	// none exists yet. Lines are always loaded.
	GetOrCreateByUser(userID string) (*models.Cart, error)
	// GetByUser returns models.ErrNotFound when the user has no cart.
	GetByUser(userID string) (*models.Cart, error)
	// UpsertLine inserts or updates one line and bumps the cart version.
	UpsertLine(cart *models.Cart, line *models.CartLine) error
	// DeleteLine removes one line and bumps the cart version.
	DeleteLine(cart *models.Cart, lineID string) error
	// Clear removes every line of the cart.
	Clear(cartID string) error
}
