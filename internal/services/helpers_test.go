package services

import (
	"testing"
	"time"

	"kedai/internal/models"
	"kedai/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// fakePublisher records published events instead of talking to a broker.
type fakePublisher struct {
	events []publishedEvent
}

type publishedEvent struct {
	Exchange   string
	RoutingKey string
	Body       []byte
}

func (p *fakePublisher) Publish(exchange, routingKey string, body []byte) error {
	p.events = append(p.events, publishedEvent{Exchange: exchange, RoutingKey: routingKey, Body: body})
	return nil
}

func seedProduct(t *testing.T, store repositories.Store, id, name string, price string, stock int) {
	t.Helper()
	require.NoError(t, store.Catalog().Create(&models.Product{
		ID:          id,
		Name:        name,
		Price:       decimal.RequireFromString(price),
		IsAvailable: true,
	}))
	require.NoError(t, store.Stock().Create(&models.StockRecord{
		ProductID:         id,
		QuantityOnHand:    stock,
		InitialQuantity:   stock,
		LowStockThreshold: 5,
		AutoDisableOnZero: true,
	}))
}

func seedUserWithAddress(t *testing.T, store repositories.Store, userID string) string {
	t.Helper()
	require.NoError(t, store.Users().Create(&models.User{
		ID:       userID,
		Username: "user-" + userID,
		Email:    userID + "@example.com",
		Password: "hashed",
	}))
	address := &models.Address{UserID: userID, Label: "Home", City: "Springfield", Street: "12 Elm St"}
	require.NoError(t, store.Addresses().Create(address))
	return address.ID
}

func seedCoupon(t *testing.T, store repositories.Store, coupon *models.Coupon) *models.Coupon {
	t.Helper()
	if coupon.ValidFrom.IsZero() {
		coupon.ValidFrom = time.Now().Add(-time.Hour)
	}
	if coupon.ValidUntil.IsZero() {
		coupon.ValidUntil = time.Now().Add(time.Hour)
	}
	coupon.Active = true
	require.NoError(t, store.Coupons().Create(coupon))
	return coupon
}

func fillCart(t *testing.T, carts *CartService, userID string, items map[string]int) {
	t.Helper()
	for productID, qty := range items {
		_, err := carts.AddItem(userID, productID, qty)
		require.NoError(t, err)
	}
}

func newOrderFixture(t *testing.T) (*repositories.MemoryStore, *CartService, *OrderService, *InventoryService, *CouponService, *fakePublisher) {
	t.Helper()
	store := repositories.NewMemoryStore()
	inventory := NewInventoryService(store)
	coupons := NewCouponService(store)
	carts := NewCartService(store, 99)
	publisher := &fakePublisher{}
	orders := NewOrderService(store, inventory, coupons, publisher)
	return store, carts, orders, inventory, coupons, publisher
}
