package repositories

import "kedai/internal/models"

// CouponRepository defines the interface for coupon and coupon-usage data
// access.
type CouponRepository interface {
	Create(coupon *models.Coupon) error
	GetByCode(code string) (*models.Coupon, error)
	// GetByCodeForUpdate locks the coupon row for the duration of the
	// surrounding transaction so usage-limit checks cannot be raced past.
	GetByCodeForUpdate(code string) (*models.Coupon, error)
	GetAll() ([]models.Coupon, error)
	// IncrementUsage bumps the coupon's total usage counter.
	IncrementUsage(couponID string) error
	CountUsageByUser(couponID, userID string) (int64, error)
	RecordUsage(usage *models.CouponUsage) error
}
