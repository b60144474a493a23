package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the recoverable business failures. Handlers map these
// to HTTP statuses with errors.Is / errors.As; services wrap anything below
// the application layer with fmt.Errorf("%w") so infrastructure failures
// stay distinguishable from business rejections.
var (
	ErrNotFound            = errors.New("not found")
	ErrAddressNotFound     = errors.New("address not found")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrItemUnavailable     = errors.New("this item is currently unavailable")
	ErrConcurrencyConflict = errors.New("concurrent modification detected, please retry")
)

// ValidationError reports malformed or out-of-range input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// QuantityOutOfRangeError reports a cart line quantity that would exceed
// the per-line cap or be non-positive.
type QuantityOutOfRangeError struct {
	Limit int
}

func (e *QuantityOutOfRangeError) Error() string {
	return fmt.Sprintf("quantity must be between 1 and %d", e.Limit)
}

// InsufficientStockError names the item that lacks stock so callers can
// display a precise message.
type InsufficientStockError struct {
	ProductID string
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (requested %d, available %d)",
		e.Name, e.Requested, e.Available)
}

// CouponRejectionReason is the specific sub-reason a coupon was refused.
type CouponRejectionReason string

const (
	CouponNotFound            CouponRejectionReason = "not_found"
	CouponExpired             CouponRejectionReason = "expired"
	CouponBelowMinimum        CouponRejectionReason = "below_minimum"
	CouponTotalLimitReached   CouponRejectionReason = "total_limit_reached"
	CouponPerUserLimitReached CouponRejectionReason = "per_user_limit_reached"
)

// CouponRejectedError carries the rejection sub-reason alongside a
// user-displayable message.
type CouponRejectedError struct {
	Code    string
	Reason  CouponRejectionReason
	Message string
}

func (e *CouponRejectedError) Error() string { return e.Message }

// InvalidTransitionError reports an illegal order-status change.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %q to %q", e.From, e.To)
}
