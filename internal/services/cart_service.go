package services

import (
	"errors"

	"kedai/internal/models"
	"kedai/internal/repositories"

	"github.com/google/uuid"
)

// CartService handles the mutable pre-order basket. Prices are snapshotted
// onto the line when it is first added and never re-read from the catalog
// afterwards; all totals are derived on demand.
type CartService struct {
	store      repositories.Store
	maxLineQty int
}

// NewCartService creates a new CartService. maxLineQty is the per-line
// quantity cap.
func NewCartService(store repositories.Store, maxLineQty int) *CartService {
	if maxLineQty <= 0 {
		maxLineQty = 99
	}
	return &CartService{store: store, maxLineQty: maxLineQty}
}

// GetCart returns the user's cart, creating an empty one if needed.
func (s *CartService) GetCart(userID string) (*models.Cart, error) {
	return s.store.Carts().GetOrCreateByUser(userID)
}

// AddItem adds quantity units of a catalog item to the user's cart. If a
// line for the item already exists the quantities are summed, still
// subject to the per-line cap on the new total; the unit price snapshot of
// an existing line is left untouched.
func (s *CartService) AddItem(userID, productID string, quantity int) (*models.Cart, error) {
	if quantity <= 0 || quantity > s.maxLineQty {
		return nil, &models.QuantityOutOfRangeError{Limit: s.maxLineQty}
	}

	product, err := s.store.Catalog().GetByID(productID)
	if err != nil {
		return nil, err
	}
	if !product.IsAvailable {
		return nil, models.ErrItemUnavailable
	}

	record, err := s.store.Stock().Get(productID)
	if err != nil {
		return nil, err
	}
	if record.QuantityOnHand < quantity {
		return nil, &models.InsufficientStockError{
			ProductID: productID,
			Name:      product.Name,
			Requested: quantity,
			Available: record.QuantityOnHand,
		}
	}

	cart, err := s.store.Carts().GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}

	line := cart.LineFor(productID)
	if line == nil {
		line = &models.CartLine{
			ID:        uuid.New().String(),
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: product.Price, // snapshot, fixed from here on
		}
	} else {
		if line.Quantity+quantity > s.maxLineQty {
			return nil, &models.QuantityOutOfRangeError{Limit: s.maxLineQty}
		}
		line.Quantity += quantity
	}

	if err := s.store.Carts().UpsertLine(cart, line); err != nil {
		return nil, err
	}
	return s.store.Carts().GetByUser(userID)
}

// UpdateLineQuantity sets the quantity of an existing line.
func (s *CartService) UpdateLineQuantity(userID, lineID string, quantity int) (*models.Cart, error) {
	if quantity <= 0 || quantity > s.maxLineQty {
		return nil, &models.QuantityOutOfRangeError{Limit: s.maxLineQty}
	}

	cart, err := s.store.Carts().GetByUser(userID)
	if err != nil {
		return nil, err
	}
	line := lineByID(cart, lineID)
	if line == nil {
		return nil, models.ErrNotFound
	}

	record, err := s.store.Stock().Get(line.ProductID)
	if err != nil {
		return nil, err
	}
	if record.QuantityOnHand < quantity {
		product, perr := s.store.Catalog().GetByID(line.ProductID)
		name := line.ProductID
		if perr == nil {
			name = product.Name
		}
		return nil, &models.InsufficientStockError{
			ProductID: line.ProductID,
			Name:      name,
			Requested: quantity,
			Available: record.QuantityOnHand,
		}
	}

	line.Quantity = quantity
	if err := s.store.Carts().UpsertLine(cart, line); err != nil {
		return nil, err
	}
	return s.store.Carts().GetByUser(userID)
}

// RemoveLine removes a line; NotFound when the line is not in the caller's
// cart.
func (s *CartService) RemoveLine(userID, lineID string) (*models.Cart, error) {
	cart, err := s.store.Carts().GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if lineByID(cart, lineID) == nil {
		return nil, models.ErrNotFound
	}
	if err := s.store.Carts().DeleteLine(cart, lineID); err != nil {
		return nil, err
	}
	return s.store.Carts().GetByUser(userID)
}

// Clear empties the user's cart (the explicit user-facing "empty cart"
// action; order creation clears through its own transaction).
func (s *CartService) Clear(userID string) (*models.Cart, error) {
	cart, err := s.store.Carts().GetByUser(userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return s.store.Carts().GetOrCreateByUser(userID)
		}
		return nil, err
	}
	if err := s.store.Carts().Clear(cart.ID); err != nil {
		return nil, err
	}
	return s.store.Carts().GetByUser(userID)
}

func lineByID(cart *models.Cart, lineID string) *models.CartLine {
	for i := range cart.Lines {
		if cart.Lines[i].ID == lineID {
			return &cart.Lines[i]
		}
	}
	return nil
}
