package repositories

import (
	"errors"
	"fmt"
	"kedai/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository. Writes go
// through an optimistic version check on the cart row so concurrent edits
// to the same user's cart from multiple devices cannot interleave.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

// GetOrCreateByUser returns the user's cart, creating one if absent.
func (r *GORMCartRepository) GetOrCreateByUser(userID string) (*models.Cart, error) {
	cart, err := r.GetByUser(userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	cart = &models.Cart{ID: uuid.New().String(), UserID: userID}
	if err := r.db.Create(cart).Error; err != nil {
		return nil, fmt.Errorf("failed to create cart for user %s: %w", userID, err)
	}
	return cart, nil
}

// GetByUser returns the user's cart with all lines loaded.
func (r *GORMCartRepository) GetByUser(userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Preload("Lines").First(&cart, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return &cart, nil
}

// UpsertLine saves one line and bumps the cart version. The version bump
// and the line write commit together or not at all.
func (r *GORMCartRepository) UpsertLine(cart *models.Cart, line *models.CartLine) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	line.CartID = cart.ID
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := bumpVersion(tx, cart); err != nil {
			return err
		}
		if err := tx.Save(line).Error; err != nil {
			return fmt.Errorf("failed to save cart line: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cart.Version++
	return nil
}

// DeleteLine removes one line and bumps the cart version, atomically.
func (r *GORMCartRepository) DeleteLine(cart *models.Cart, lineID string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := bumpVersion(tx, cart); err != nil {
			return err
		}
		res := tx.Delete(&models.CartLine{}, "id = ? AND cart_id = ?", lineID, cart.ID)
		if res.Error != nil {
			return fmt.Errorf("failed to delete cart line %s: %w", lineID, res.Error)
		}
		if res.RowsAffected == 0 {
			return models.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	cart.Version++
	return nil
}

// Clear removes every line of the cart.
func (r *GORMCartRepository) Clear(cartID string) error {
	if err := r.db.Delete(&models.CartLine{}, "cart_id = ?", cartID).Error; err != nil {
		return fmt.Errorf("failed to clear cart %s: %w", cartID, err)
	}
	return nil
}

// bumpVersion performs the optimistic concurrency check: the update only
// matches when nobody else has written the cart since it was read. The
// caller bumps cart.Version in memory once its transaction commits.
func bumpVersion(tx *gorm.DB, cart *models.Cart) error {
	res := tx.Model(&models.Cart{}).
		Where("id = ? AND version = ?", cart.ID, cart.Version).
		Update("version", cart.Version+1)
	if res.Error != nil {
		return fmt.Errorf("failed to update cart %s: %w", cart.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrConcurrencyConflict
	}
	return nil
}
