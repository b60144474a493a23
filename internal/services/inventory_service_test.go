package services

import (
	"testing"

	"kedai/internal/models"
	"kedai/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInventoryFixture(t *testing.T) (*repositories.MemoryStore, *InventoryService) {
	t.Helper()
	store := repositories.NewMemoryStore()
	return store, NewInventoryService(store)
}

// ledgerBalance replays every audit entry for the product on top of the
// record's initial quantity.
func ledgerBalance(t *testing.T, store repositories.Store, productID string) int {
	t.Helper()
	record, err := store.Stock().Get(productID)
	require.NoError(t, err)
	txns, err := store.Stock().Transactions(productID)
	require.NoError(t, err)
	balance := record.InitialQuantity
	for _, txn := range txns {
		balance += txn.Delta
	}
	return balance
}

func TestInventoryDebitRecordsTransaction(t *testing.T) {
	store, inventory := newInventoryFixture(t)
	seedProduct(t, store, "p1", "Margherita", "9.50", 10)

	require.NoError(t, inventory.Debit(store, "p1", 3, "order-1"))

	record, err := store.Stock().Get("p1")
	require.NoError(t, err)
	assert.Equal(t, 7, record.QuantityOnHand)

	txns, err := inventory.Transactions("p1")
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, models.StockDebitForOrder, txns[0].Kind)
	assert.Equal(t, -3, txns[0].Delta)
	assert.Equal(t, 7, txns[0].QuantityAfter)
	require.NotNil(t, txns[0].OrderID)
	assert.Equal(t, "order-1", *txns[0].OrderID)
}

func TestInventoryDebitInsufficientStock(t *testing.T) {
	store, inventory := newInventoryFixture(t)
	seedProduct(t, store, "p1", "Margherita", "9.50", 2)

	var stockErr *models.InsufficientStockError
	err := inventory.Debit(store, "p1", 5, "order-1")
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Available)

	// A failed debit leaves the counter and the ledger untouched.
	record, err := store.Stock().Get("p1")
	require.NoError(t, err)
	assert.Equal(t, 2, record.QuantityOnHand)
	txns, err := inventory.Transactions("p1")
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestInventoryAutoDisableAndReEnable(t *testing.T) {
	store, inventory := newInventoryFixture(t)
	seedProduct(t, store, "p1", "Margherita", "9.50", 2)

	require.NoError(t, inventory.Debit(store, "p1", 2, "order-1"))

	product, err := store.Catalog().GetByID("p1")
	require.NoError(t, err)
	assert.False(t, product.IsAvailable, "item should auto-disable at zero stock")

	record, err := store.Stock().Get("p1")
	require.NoError(t, err)
	assert.True(t, record.AutoDisabled)

	require.NoError(t, inventory.Credit(store, "p1", 2, "order-1"))

	product, err = store.Catalog().GetByID("p1")
	require.NoError(t, err)
	assert.True(t, product.IsAvailable, "auto-disabled item should re-enable on credit")
	record, err = store.Stock().Get("p1")
	require.NoError(t, err)
	assert.False(t, record.AutoDisabled)
	assert.Equal(t, 2, record.QuantityOnHand)
}

func TestInventoryManualDisableIsNotReEnabled(t *testing.T) {
	store, inventory := newInventoryFixture(t)
	seedProduct(t, store, "p1", "Margherita", "9.50", 5)

	// An operator disabled the item by hand; restocking must not undo that.
	require.NoError(t, store.Catalog().SetAvailability("p1", false))

	_, err := inventory.Restock("p1", 10, "weekly delivery")
	require.NoError(t, err)

	product, err := store.Catalog().GetByID("p1")
	require.NoError(t, err)
	assert.False(t, product.IsAvailable)
}

func TestInventoryRestock(t *testing.T) {
	store, inventory := newInventoryFixture(t)
	seedProduct(t, store, "p1", "Margherita", "9.50", 3)

	record, err := inventory.Restock("p1", 7, "weekly delivery")
	require.NoError(t, err)
	assert.Equal(t, 10, record.QuantityOnHand)

	txns, err := inventory.Transactions("p1")
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, models.StockManualRestock, txns[0].Kind)
	assert.Equal(t, "weekly delivery", txns[0].Note)

	var validationErr *models.ValidationError
	_, err = inventory.Restock("p1", 0, "")
	assert.ErrorAs(t, err, &validationErr)
	_, err = inventory.Restock("p1", -4, "")
	assert.ErrorAs(t, err, &validationErr)
}

func TestInventoryAdjust(t *testing.T) {
	store, inventory := newInventoryFixture(t)
	seedProduct(t, store, "p1", "Margherita", "9.50", 10)

	record, err := inventory.Adjust("p1", -2, models.StockDamaged, "dropped tray")
	require.NoError(t, err)
	assert.Equal(t, 8, record.QuantityOnHand)

	record, err = inventory.Adjust("p1", 3, models.StockManualAdjustment, "recount")
	require.NoError(t, err)
	assert.Equal(t, 11, record.QuantityOnHand)

	var validationErr *models.ValidationError
	_, err = inventory.Adjust("p1", 0, models.StockManualAdjustment, "")
	assert.ErrorAs(t, err, &validationErr)
	_, err = inventory.Adjust("p1", 2, models.StockDamaged, "damaged must be negative")
	assert.ErrorAs(t, err, &validationErr)
	_, err = inventory.Adjust("p1", -1, models.StockDebitForOrder, "reserved kinds rejected")
	assert.ErrorAs(t, err, &validationErr)

	var stockErr *models.InsufficientStockError
	_, err = inventory.Adjust("p1", -50, models.StockManualAdjustment, "")
	assert.ErrorAs(t, err, &stockErr)
}

func TestInventoryLedgerMatchesCounter(t *testing.T) {
	store, inventory := newInventoryFixture(t)
	seedProduct(t, store, "p1", "Margherita", "9.50", 20)

	require.NoError(t, inventory.Debit(store, "p1", 4, "order-1"))
	_, err := inventory.Restock("p1", 10, "")
	require.NoError(t, err)
	_, err = inventory.Adjust("p1", -3, models.StockDamaged, "")
	require.NoError(t, err)
	require.NoError(t, inventory.Credit(store, "p1", 4, "order-1"))

	record, err := store.Stock().Get("p1")
	require.NoError(t, err)
	assert.Equal(t, record.QuantityOnHand, ledgerBalance(t, store, "p1"))
}

func TestInventoryLowStock(t *testing.T) {
	store, inventory := newInventoryFixture(t)
	seedProduct(t, store, "p1", "Margherita", "9.50", 3) // threshold 5
	seedProduct(t, store, "p2", "Calzone", "11.00", 50)

	low, err := inventory.IsLowStock("p1")
	require.NoError(t, err)
	assert.True(t, low)

	low, err = inventory.IsLowStock("p2")
	require.NoError(t, err)
	assert.False(t, low)

	items, err := inventory.LowStockItems()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
}

func TestInventoryUnknownProduct(t *testing.T) {
	store, inventory := newInventoryFixture(t)

	err := inventory.Debit(store, "missing", 1, "order-1")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = inventory.Transactions("missing")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = inventory.IsLowStock("missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestInventoryCheckAvailability(t *testing.T) {
	store, inventory := newInventoryFixture(t)
	seedProduct(t, store, "p1", "Margherita", "9.50", 3)

	ok, err := inventory.CheckAvailability("p1", 3)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = inventory.CheckAvailability("p1", 4)
	require.NoError(t, err)
	assert.False(t, ok)
}
