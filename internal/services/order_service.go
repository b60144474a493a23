package services

import (
	"encoding/json"
	"errors"
	"log"

	"kedai/internal/models"
	"kedai/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderService is the order orchestrator: it turns a cart into an
// immutable order inside one transaction, debiting stock, applying the
// coupon, recording its usage and clearing the cart as a single unit, and
// it drives the status lifecycle afterwards.
type OrderService struct {
	store     repositories.Store
	inventory *InventoryService
	coupons   *CouponService
	mqClient  EventPublisher
}

// NewOrderService creates a new OrderService. mqClient may be nil, in
// which case event publication is skipped.
func NewOrderService(store repositories.Store, inventory *InventoryService, coupons *CouponService, mqClient EventPublisher) *OrderService {
	return &OrderService{
		store:     store,
		inventory: inventory,
		coupons:   coupons,
		mqClient:  mqClient,
	}
}

// CreateOrder converts the user's cart into an order. Every step runs
// inside one Atomically block: a failure at any point leaves inventory,
// cart and coupon-usage state exactly as before the call.
func (s *OrderService) CreateOrder(userID, addressID, couponCode string) (*models.Order, error) {
	var order *models.Order
	err := s.store.Atomically(func(tx repositories.Store) error {
		cart, err := tx.Carts().GetByUser(userID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return models.ErrEmptyCart
			}
			return err
		}
		if len(cart.Lines) == 0 {
			return models.ErrEmptyCart
		}

		// Re-verify availability for every line before any debit so a
		// rejected order never holds a partial reservation.
		products := make(map[string]*models.Product, len(cart.Lines))
		for i := range cart.Lines {
			line := &cart.Lines[i]
			product, err := tx.Catalog().GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if !product.IsAvailable {
				return models.ErrItemUnavailable
			}
			record, err := tx.Stock().Get(line.ProductID)
			if err != nil {
				return err
			}
			if record.QuantityOnHand < line.Quantity {
				return &models.InsufficientStockError{
					ProductID: line.ProductID,
					Name:      product.Name,
					Requested: line.Quantity,
					Available: record.QuantityOnHand,
				}
			}
			products[line.ProductID] = product
		}

		address, err := tx.Addresses().GetByIDForUser(addressID, userID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return models.ErrAddressNotFound
			}
			return err
		}

		subtotal := cart.TotalPrice()
		discount := decimal.Zero
		var coupon *models.Coupon
		if couponCode != "" {
			discount, coupon, err = s.coupons.ValidateWith(tx, couponCode, userID, subtotal)
			if err != nil {
				return err
			}
		}

		order = &models.Order{
			ID:             uuid.New().String(),
			UserID:         userID,
			AddressID:      address.ID,
			Subtotal:       subtotal,
			DiscountAmount: discount,
			TotalPrice:     subtotal.Sub(discount),
			Status:         models.StatusPending,
		}
		if coupon != nil {
			order.CouponCode = coupon.Code
		}

		for i := range cart.Lines {
			line := &cart.Lines[i]
			if err := s.inventory.Debit(tx, line.ProductID, line.Quantity, order.ID); err != nil {
				return err
			}
			order.Lines = append(order.Lines, models.OrderLine{
				ID:            uuid.New().String(),
				OrderID:       order.ID,
				ProductID:     line.ProductID,
				NameSnapshot:  products[line.ProductID].Name,
				PriceSnapshot: line.UnitPrice,
				Quantity:      line.Quantity,
			})
		}

		if err := tx.Orders().Create(order); err != nil {
			return err
		}

		if coupon != nil {
			if err := s.coupons.RecordUsage(tx, coupon, userID, order.ID, subtotal, discount); err != nil {
				return err
			}
		}

		if err := tx.Carts().Clear(cart.ID); err != nil {
			return err
		}

		return tx.Orders().AppendStatusHistory(&models.OrderStatusHistory{
			OrderID: order.ID,
			Status:  models.StatusPending,
		})
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent("order.created", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"status":   order.Status,
		"total":    order.TotalPrice,
	})
	return s.GetOrder(order.ID, userID)
}

// UpdateStatus moves an order along the lifecycle. The transition is
// checked against the static table; the cancelled edge additionally
// credits stock back for every line.
func (s *OrderService) UpdateStatus(orderID string, newStatus models.OrderStatus) (*models.Order, error) {
	if !ValidStatus(newStatus) {
		return nil, models.NewValidationError("invalid order status: %s", newStatus)
	}
	var order *models.Order
	err := s.store.Atomically(func(tx repositories.Store) error {
		var err error
		order, err = tx.Orders().GetByID(orderID)
		if err != nil {
			return err
		}
		return s.transition(tx, order, newStatus)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent("order.status_updated", map[string]interface{}{
		"order_id": order.ID,
		"status":   order.Status,
	})
	return s.store.Orders().GetByID(orderID)
}

// CancelOrder cancels the caller's own order; only pending and preparing
// orders can be cancelled, and cancellation restores stock for every line.
func (s *OrderService) CancelOrder(orderID, userID string) (*models.Order, error) {
	var order *models.Order
	err := s.store.Atomically(func(tx repositories.Store) error {
		var err error
		order, err = tx.Orders().GetByIDForUser(orderID, userID)
		if err != nil {
			return err
		}
		return s.transition(tx, order, models.StatusCancelled)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent("order.cancelled", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
	})
	return s.store.Orders().GetByIDForUser(orderID, userID)
}

// transition applies one legal status change, including the compensating
// inventory credit on the cancelled edge, and appends the history entry.
func (s *OrderService) transition(tx repositories.Store, order *models.Order, newStatus models.OrderStatus) error {
	if !CanTransition(order.Status, newStatus) {
		return &models.InvalidTransitionError{From: order.Status, To: newStatus}
	}
	if newStatus == models.StatusCancelled {
		for i := range order.Lines {
			line := &order.Lines[i]
			if err := s.inventory.Credit(tx, line.ProductID, line.Quantity, order.ID); err != nil {
				return err
			}
		}
	}
	order.Status = newStatus
	if err := tx.Orders().Save(order); err != nil {
		return err
	}
	return tx.Orders().AppendStatusHistory(&models.OrderStatusHistory{
		OrderID: order.ID,
		Status:  newStatus,
	})
}

// ListOrders returns the user's orders, newest first.
func (s *OrderService) ListOrders(userID string) ([]models.Order, error) {
	return s.store.Orders().ListByUser(userID)
}

// GetOrder returns one of the user's orders with lines and history.
func (s *OrderService) GetOrder(orderID, userID string) (*models.Order, error) {
	return s.store.Orders().GetByIDForUser(orderID, userID)
}

// GetStatus returns just the current status of one of the user's orders.
func (s *OrderService) GetStatus(orderID, userID string) (models.OrderStatus, error) {
	order, err := s.store.Orders().GetByIDForUser(orderID, userID)
	if err != nil {
		return "", err
	}
	return order.Status, nil
}

// RemoveLine removes one line from a not-yet-dispatched order, credits the
// line's stock back, and recomputes the totals. This is the only path
// that touches an order's totals after creation, and it keeps the applied
// discount instead of recomputing it away, capped at the new subtotal.
func (s *OrderService) RemoveLine(orderID, lineID string) (*models.Order, error) {
	err := s.store.Atomically(func(tx repositories.Store) error {
		order, err := tx.Orders().GetByID(orderID)
		if err != nil {
			return err
		}
		if order.Status != models.StatusPending && order.Status != models.StatusPreparing {
			return &models.InvalidTransitionError{From: order.Status, To: order.Status}
		}
		var removed *models.OrderLine
		for i := range order.Lines {
			if order.Lines[i].ID == lineID {
				removed = &order.Lines[i]
				break
			}
		}
		if removed == nil {
			return models.ErrNotFound
		}
		if len(order.Lines) == 1 {
			return models.NewValidationError("cannot remove the last line of an order; cancel it instead")
		}

		if err := s.inventory.CreditForRemovedLine(tx, removed.ProductID, removed.Quantity, order.ID); err != nil {
			return err
		}

		if err := tx.Orders().DeleteLine(orderID, lineID); err != nil {
			return err
		}

		subtotal := decimal.Zero
		for i := range order.Lines {
			if order.Lines[i].ID == lineID {
				continue
			}
			subtotal = subtotal.Add(order.Lines[i].Subtotal())
		}
		order.Subtotal = subtotal
		// Keep the discount the order was created with; it only shrinks
		// when the new subtotal can no longer carry it.
		if order.DiscountAmount.GreaterThan(subtotal) {
			order.DiscountAmount = subtotal
		}
		order.TotalPrice = subtotal.Sub(order.DiscountAmount)
		return tx.Orders().Save(order)
	})
	if err != nil {
		return nil, err
	}
	return s.store.Orders().GetByID(orderID)
}

func (s *OrderService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.mqClient.Publish("order", routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
