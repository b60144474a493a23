package services

import (
	"errors"
	"fmt"

	"kedai/internal/models"
	"kedai/internal/repositories"
)

// InventoryService is the inventory ledger: it owns every mutation of the
// per-item stock counters and records each one as an append-only audit
// transaction. Debit and Credit are called with the orchestrator's
// transaction-bound store so they commit or roll back with the order.
type InventoryService struct {
	store repositories.Store
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(store repositories.Store) *InventoryService {
	return &InventoryService{store: store}
}

// CheckAvailability reports whether at least quantity units are on hand.
// Read-only; it reserves nothing.
func (s *InventoryService) CheckAvailability(productID string, quantity int) (bool, error) {
	record, err := s.store.Stock().Get(productID)
	if err != nil {
		return false, err
	}
	return record.QuantityOnHand >= quantity, nil
}

// Debit decrements on-hand stock for an order. The caller passes its
// transaction-bound store; the row lock taken by GetForUpdate means the
// check and the decrement act as one unit and the second of two racing
// orders observes the first one's debit.
func (s *InventoryService) Debit(store repositories.Store, productID string, quantity int, orderID string) error {
	if quantity <= 0 {
		return models.NewValidationError("debit quantity must be positive")
	}
	record, err := store.Stock().GetForUpdate(productID)
	if err != nil {
		return err
	}
	if record.QuantityOnHand < quantity {
		product, perr := store.Catalog().GetByID(productID)
		name := productID
		if perr == nil {
			name = product.Name
		}
		return &models.InsufficientStockError{
			ProductID: productID,
			Name:      name,
			Requested: quantity,
			Available: record.QuantityOnHand,
		}
	}
	record.QuantityOnHand -= quantity
	if record.QuantityOnHand == 0 && record.AutoDisableOnZero {
		if err := store.Catalog().SetAvailability(productID, false); err != nil {
			return err
		}
		record.AutoDisabled = true
	}
	if err := store.Stock().Save(record); err != nil {
		return err
	}
	return store.Stock().AppendTransaction(&models.StockTransaction{
		ProductID:     productID,
		Kind:          models.StockDebitForOrder,
		Delta:         -quantity,
		QuantityAfter: record.QuantityOnHand,
		OrderID:       &orderID,
	})
}

// Credit restores stock for a cancelled order and re-enables the catalog
// item if the ledger had auto-disabled it.
func (s *InventoryService) Credit(store repositories.Store, productID string, quantity int, orderID string) error {
	return s.credit(store, productID, quantity, models.StockCreditForCancellation, orderID, "")
}

// CreditForRemovedLine restores stock when a line is removed from a
// not-yet-dispatched order. The entry is a manual_adjustment rather than a
// cancellation credit, but the re-enable rule is the same.
func (s *InventoryService) CreditForRemovedLine(store repositories.Store, productID string, quantity int, orderID string) error {
	return s.credit(store, productID, quantity, models.StockManualAdjustment, orderID, "order line removed")
}

func (s *InventoryService) credit(store repositories.Store, productID string, quantity int, kind models.StockTransactionKind, orderID, note string) error {
	if quantity <= 0 {
		return models.NewValidationError("credit quantity must be positive")
	}
	record, err := store.Stock().GetForUpdate(productID)
	if err != nil {
		return err
	}
	record.QuantityOnHand += quantity
	if record.AutoDisabled && record.QuantityOnHand > 0 {
		if err := store.Catalog().SetAvailability(productID, true); err != nil {
			return err
		}
		record.AutoDisabled = false
	}
	if err := store.Stock().Save(record); err != nil {
		return err
	}
	return store.Stock().AppendTransaction(&models.StockTransaction{
		ProductID:     productID,
		Kind:          kind,
		Delta:         quantity,
		QuantityAfter: record.QuantityOnHand,
		OrderID:       &orderID,
		Note:          note,
	})
}

// Restock adds stock through a manual_restock audit entry.
func (s *InventoryService) Restock(productID string, quantity int, note string) (*models.StockRecord, error) {
	if quantity <= 0 {
		return nil, models.NewValidationError("restock quantity must be positive")
	}
	return s.adjust(productID, quantity, models.StockManualRestock, note)
}

// Adjust applies a manual correction (manual_adjustment) or writes off
// damaged goods (damaged). The delta may be negative but must not drive
// the counter below zero.
func (s *InventoryService) Adjust(productID string, delta int, kind models.StockTransactionKind, note string) (*models.StockRecord, error) {
	if delta == 0 {
		return nil, models.NewValidationError("adjustment delta must not be zero")
	}
	if kind != models.StockManualAdjustment && kind != models.StockDamaged {
		return nil, models.NewValidationError("unsupported adjustment kind %q", kind)
	}
	if kind == models.StockDamaged && delta > 0 {
		return nil, models.NewValidationError("damaged write-off must be negative")
	}
	return s.adjust(productID, delta, kind, note)
}

func (s *InventoryService) adjust(productID string, delta int, kind models.StockTransactionKind, note string) (*models.StockRecord, error) {
	var result *models.StockRecord
	err := s.store.Atomically(func(tx repositories.Store) error {
		record, err := tx.Stock().GetForUpdate(productID)
		if err != nil {
			return err
		}
		if record.QuantityOnHand+delta < 0 {
			product, perr := tx.Catalog().GetByID(productID)
			name := productID
			if perr == nil {
				name = product.Name
			}
			return &models.InsufficientStockError{
				ProductID: productID,
				Name:      name,
				Requested: -delta,
				Available: record.QuantityOnHand,
			}
		}
		record.QuantityOnHand += delta
		if record.AutoDisabled && record.QuantityOnHand > 0 {
			if err := tx.Catalog().SetAvailability(productID, true); err != nil {
				return err
			}
			record.AutoDisabled = false
		}
		if record.QuantityOnHand == 0 && record.AutoDisableOnZero && !record.AutoDisabled {
			if err := tx.Catalog().SetAvailability(productID, false); err != nil {
				return err
			}
			record.AutoDisabled = true
		}
		if err := tx.Stock().Save(record); err != nil {
			return err
		}
		if err := tx.Stock().AppendTransaction(&models.StockTransaction{
			ProductID:     productID,
			Kind:          kind,
			Delta:         delta,
			QuantityAfter: record.QuantityOnHand,
			Note:          note,
		}); err != nil {
			return err
		}
		result = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// IsLowStock reports whether on-hand quantity is below the threshold.
func (s *InventoryService) IsLowStock(productID string) (bool, error) {
	record, err := s.store.Stock().Get(productID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return false, models.ErrNotFound
		}
		return false, fmt.Errorf("failed to check low stock: %w", err)
	}
	return record.IsLowStock(), nil
}

// LowStockItems lists every record below its low-stock threshold.
func (s *InventoryService) LowStockItems() ([]models.StockRecord, error) {
	return s.store.Stock().LowStock()
}

// Transactions returns the append-only audit trail for a product.
func (s *InventoryService) Transactions(productID string) ([]models.StockTransaction, error) {
	if _, err := s.store.Stock().Get(productID); err != nil {
		return nil, err
	}
	return s.store.Stock().Transactions(productID)
}
