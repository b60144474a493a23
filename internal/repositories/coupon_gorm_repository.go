package repositories

import (
	"errors"
	"fmt"
	"kedai/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCouponRepository is a GORM implementation of CouponRepository.
type GORMCouponRepository struct {
	db *gorm.DB
}

// NewGORMCouponRepository creates a new instance of GORMCouponRepository.
func NewGORMCouponRepository(db *gorm.DB) *GORMCouponRepository {
	return &GORMCouponRepository{db: db}
}

// Create creates a new coupon in the database.
func (r *GORMCouponRepository) Create(coupon *models.Coupon) error {
	if coupon.ID == "" {
		coupon.ID = uuid.New().String()
	}
	if err := r.db.Create(coupon).Error; err != nil {
		return fmt.Errorf("failed to create coupon: %w", err)
	}
	return nil
}

// GetByCode retrieves a coupon by its unique code.
func (r *GORMCouponRepository) GetByCode(code string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.First(&coupon, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get coupon %s: %w", code, err)
	}
	return &coupon, nil
}

// GetByCodeForUpdate retrieves a coupon by code with a row lock held until
// the surrounding transaction ends.
func (r *GORMCouponRepository) GetByCodeForUpdate(code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&coupon, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get coupon %s: %w", code, err)
	}
	return &coupon, nil
}

// GetAll retrieves all coupons.
func (r *GORMCouponRepository) GetAll() ([]models.Coupon, error) {
	var coupons []models.Coupon
	if err := r.db.Order("created_at DESC").Find(&coupons).Error; err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	return coupons, nil
}

// IncrementUsage bumps the coupon's total usage counter in place.
func (r *GORMCouponRepository) IncrementUsage(couponID string) error {
	res := r.db.Model(&models.Coupon{}).Where("id = ?", couponID).
		Update("usage_count", gorm.Expr("usage_count + 1"))
	if res.Error != nil {
		return fmt.Errorf("failed to increment usage for coupon %s: %w", couponID, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// CountUsageByUser counts how often a user has consumed the coupon.
func (r *GORMCouponRepository) CountUsageByUser(couponID, userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.CouponUsage{}).
		Where("coupon_id = ? AND user_id = ?", couponID, userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count coupon usage: %w", err)
	}
	return count, nil
}

// RecordUsage records a consumed coupon use.
func (r *GORMCouponRepository) RecordUsage(usage *models.CouponUsage) error {
	if usage.ID == "" {
		usage.ID = uuid.New().String()
	}
	if err := r.db.Create(usage).Error; err != nil {
		return fmt.Errorf("failed to record coupon usage: %w", err)
	}
	return nil
}
