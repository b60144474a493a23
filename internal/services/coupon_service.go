package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"kedai/internal/models"
	"kedai/internal/repositories"

	"github.com/shopspring/decimal"
)

// CouponService evaluates discount codes. Validate performs no writes;
// usage is recorded by the order orchestrator only once order creation is
// certain to succeed, so failed orders never consume a use.
type CouponService struct {
	store repositories.Store
}

// NewCouponService creates a new CouponService.
func NewCouponService(store repositories.Store) *CouponService {
	return &CouponService{store: store}
}

// Validate checks a code against a hypothetical order amount for the user
// and returns the discount that would apply. Used both for the preview
// endpoint and, via ValidateWith, inside order creation.
func (s *CouponService) Validate(code, userID string, orderAmount decimal.Decimal) (decimal.Decimal, error) {
	discount, _, err := s.ValidateWith(s.store, code, userID, orderAmount)
	return discount, err
}

// ValidateWith runs the validation against the given store so the order
// orchestrator can evaluate the coupon inside its own transaction. The
// coupon row is read under a row lock so the total-usage check holds until
// the transaction commits. The checks run in a fixed order and the first
// failure wins.
func (s *CouponService) ValidateWith(store repositories.Store, code, userID string, orderAmount decimal.Decimal) (decimal.Decimal, *models.Coupon, error) {
	code = NormalizeCouponCode(code)

	coupon, err := store.Coupons().GetByCodeForUpdate(code)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return decimal.Zero, nil, rejection(code, models.CouponNotFound, "invalid coupon code")
		}
		return decimal.Zero, nil, err
	}
	if !coupon.Active {
		return decimal.Zero, nil, rejection(code, models.CouponNotFound, "invalid coupon code")
	}

	now := time.Now()
	if now.Before(coupon.ValidFrom) || now.After(coupon.ValidUntil) {
		return decimal.Zero, nil, rejection(code, models.CouponExpired, "coupon %s is not valid at this time", code)
	}

	if orderAmount.LessThan(coupon.MinimumOrderAmount) {
		return decimal.Zero, nil, rejection(code, models.CouponBelowMinimum,
			"minimum order amount of %s required for coupon %s", coupon.MinimumOrderAmount.StringFixed(2), code)
	}

	if coupon.UsageLimitTotal > 0 && coupon.UsageCount >= coupon.UsageLimitTotal {
		return decimal.Zero, nil, rejection(code, models.CouponTotalLimitReached, "coupon %s is no longer available", code)
	}

	userCount, err := store.Coupons().CountUsageByUser(coupon.ID, userID)
	if err != nil {
		return decimal.Zero, nil, err
	}
	if coupon.UsageLimitPerUser > 0 && userCount >= int64(coupon.UsageLimitPerUser) {
		return decimal.Zero, nil, rejection(code, models.CouponPerUserLimitReached,
			"you have already used coupon %s %d time(s)", code, coupon.UsageLimitPerUser)
	}

	discount := computeDiscount(coupon, orderAmount)
	return discount, coupon, nil
}

// RecordUsage persists a consumed use inside the orchestrator's
// transaction and bumps the coupon's total counter.
func (s *CouponService) RecordUsage(store repositories.Store, coupon *models.Coupon, userID, orderID string, orderAmount, discountAmount decimal.Decimal) error {
	if err := store.Coupons().RecordUsage(&models.CouponUsage{
		CouponID:       coupon.ID,
		UserID:         userID,
		OrderID:        orderID,
		OrderAmount:    orderAmount,
		DiscountAmount: discountAmount,
	}); err != nil {
		return err
	}
	return store.Coupons().IncrementUsage(coupon.ID)
}

// CreateCoupon creates a new coupon after sanity-checking its rules.
func (s *CouponService) CreateCoupon(coupon *models.Coupon) error {
	coupon.Code = NormalizeCouponCode(coupon.Code)
	if coupon.Code == "" {
		return models.NewValidationError("coupon code is required")
	}
	if coupon.DiscountType != models.CouponPercentage && coupon.DiscountType != models.CouponFixed {
		return models.NewValidationError("discount type must be percentage or fixed")
	}
	if !coupon.DiscountValue.IsPositive() {
		return models.NewValidationError("discount value must be positive")
	}
	if coupon.DiscountType == models.CouponPercentage && coupon.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
		return models.NewValidationError("percentage discount cannot exceed 100")
	}
	if !coupon.ValidUntil.After(coupon.ValidFrom) {
		return models.NewValidationError("validity window is empty")
	}
	return s.store.Coupons().Create(coupon)
}

// ListAvailableForUser returns the coupons the user could apply right now.
func (s *CouponService) ListAvailableForUser(userID string) ([]models.Coupon, error) {
	coupons, err := s.store.Coupons().GetAll()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	available := make([]models.Coupon, 0)
	for _, c := range coupons {
		if !c.Active || now.Before(c.ValidFrom) || now.After(c.ValidUntil) {
			continue
		}
		if c.UsageLimitTotal > 0 && c.UsageCount >= c.UsageLimitTotal {
			continue
		}
		userCount, err := s.store.Coupons().CountUsageByUser(c.ID, userID)
		if err != nil {
			return nil, err
		}
		if c.UsageLimitPerUser > 0 && userCount >= int64(c.UsageLimitPerUser) {
			continue
		}
		available = append(available, c)
	}
	return available, nil
}

// NormalizeCouponCode uppercases and trims a user-supplied code.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// computeDiscount applies the coupon's discount rule to the order amount:
// percentage of the amount or a fixed cut, then the optional cap, and the
// result never exceeds the amount itself.
func computeDiscount(coupon *models.Coupon, orderAmount decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	if coupon.DiscountType == models.CouponPercentage {
		discount = orderAmount.Mul(coupon.DiscountValue).Div(decimal.NewFromInt(100)).Round(2)
	} else {
		discount = coupon.DiscountValue
	}
	if coupon.MaximumDiscountCap.Valid && discount.GreaterThan(coupon.MaximumDiscountCap.Decimal) {
		discount = coupon.MaximumDiscountCap.Decimal
	}
	if discount.GreaterThan(orderAmount) {
		discount = orderAmount
	}
	return discount
}

func rejection(code string, reason models.CouponRejectionReason, format string, args ...interface{}) error {
	return &models.CouponRejectedError{
		Code:    code,
		Reason:  reason,
		Message: fmt.Sprintf(format, args...),
	}
}
