package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CouponType distinguishes percentage from fixed-amount discounts.
type CouponType string

const (
	CouponPercentage CouponType = "percentage"
	CouponFixed      CouponType = "fixed"
)

// Coupon is a discount code. UsageLimitTotal of zero means unlimited total
// uses; UsageCount tracks consumed uses. MaximumDiscountCap caps the
// computed discount when valid.
type Coupon struct {
	ID                 string              `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Code               string              `json:"code" gorm:"uniqueIndex;type:varchar(50)" validate:"required,min=2,max=50"`
	Description        string              `json:"description" validate:"omitempty,max=255"`
	DiscountType       CouponType          `json:"discount_type" gorm:"type:varchar(20)"`
	DiscountValue      decimal.Decimal     `json:"discount_value" gorm:"type:decimal(10,2)"`
	MinimumOrderAmount decimal.Decimal     `json:"minimum_order_amount" gorm:"type:decimal(10,2)"`
	MaximumDiscountCap decimal.NullDecimal `json:"maximum_discount_cap" gorm:"type:decimal(10,2)"`
	UsageLimitTotal    int                 `json:"usage_limit_total"`
	UsageLimitPerUser  int                 `json:"usage_limit_per_user"`
	UsageCount         int                 `json:"usage_count"`
	ValidFrom          time.Time           `json:"valid_from"`
	ValidUntil         time.Time           `json:"valid_until"`
	Active             bool                `json:"active"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// CouponUsage records that a user consumed a coupon on an order; it backs
// the per-user and total usage-limit checks.
type CouponUsage struct {
	ID             string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CouponID       string          `json:"coupon_id" gorm:"index;type:varchar(36)"`
	UserID         string          `json:"user_id" gorm:"index;type:varchar(36)"`
	OrderID        string          `json:"order_id" gorm:"type:varchar(36)"`
	OrderAmount    decimal.Decimal `json:"order_amount" gorm:"type:decimal(10,2)"`
	DiscountAmount decimal.Decimal `json:"discount_amount" gorm:"type:decimal(10,2)"`
	CreatedAt      time.Time       `json:"created_at"`
}
