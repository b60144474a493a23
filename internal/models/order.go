package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusOnTheWay  OrderStatus = "on_the_way"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// Order is created once from a cart and is immutable afterwards except
// for Status and the derived History. Subtotal, DiscountAmount and
// TotalPrice are fixed at creation and never recomputed from current
// catalog prices. Only the explicit line-removal path touches them, and
// that path keeps the applied discount intact.
type Order struct {
	ID             string               `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID         string               `json:"user_id" gorm:"index;type:varchar(36)"`
	AddressID      string               `json:"address_id" gorm:"type:varchar(36)"`
	Subtotal       decimal.Decimal      `json:"subtotal" gorm:"type:decimal(10,2)"`
	DiscountAmount decimal.Decimal      `json:"discount_amount" gorm:"type:decimal(10,2)"`
	CouponCode     string               `json:"coupon_code,omitempty" gorm:"type:varchar(50)"`
	TotalPrice     decimal.Decimal      `json:"total_price" gorm:"type:decimal(10,2)"`
	Status         OrderStatus          `json:"status" gorm:"type:varchar(20)"`
	Lines          []OrderLine          `json:"lines" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History        []OrderStatusHistory `json:"history" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// OrderLine is a historical snapshot of one ordered item. Name and price
// are copied at creation time so later catalog edits or deletions never
// alter past orders.
type OrderLine struct {
	ID            string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID       string          `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID     string          `json:"product_id" gorm:"type:varchar(36)"`
	NameSnapshot  string          `json:"name" gorm:"type:varchar(255)"`
	PriceSnapshot decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Quantity      int             `json:"quantity"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Subtotal returns quantity times the snapshotted price.
func (l *OrderLine) Subtotal() decimal.Decimal {
	return l.PriceSnapshot.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// OrderStatusHistory records one status transition, appended oldest first
// and never rewritten.
type OrderStatusHistory struct {
	ID        string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string      `json:"order_id" gorm:"index;type:varchar(36)"`
	Status    OrderStatus `json:"status" gorm:"type:varchar(20)"`
	CreatedAt time.Time   `json:"created_at"`
}
