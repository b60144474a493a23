package services

import (
	"testing"
	"time"

	"kedai/internal/models"
	"kedai/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCouponFixture(t *testing.T) (*repositories.MemoryStore, *CouponService) {
	t.Helper()
	store := repositories.NewMemoryStore()
	return store, NewCouponService(store)
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCouponPercentageWithCap(t *testing.T) {
	store, coupons := newCouponFixture(t)
	seedCoupon(t, store, &models.Coupon{
		Code:               "SAVE10",
		DiscountType:       models.CouponPercentage,
		DiscountValue:      d("10"),
		MinimumOrderAmount: d("20"),
		MaximumDiscountCap: decimal.NewNullDecimal(d("5.00")),
	})

	// 10% of 40.00 is under the cap.
	discount, err := coupons.Validate("SAVE10", "u1", d("40.00"))
	require.NoError(t, err)
	assert.True(t, discount.Equal(d("4.00")), "got %s", discount)

	// 10% of 60.00 would be 6.00; the cap holds it at 5.00.
	discount, err = coupons.Validate("SAVE10", "u1", d("60.00"))
	require.NoError(t, err)
	assert.True(t, discount.Equal(d("5.00")), "got %s", discount)
}

func TestCouponPercentageRounding(t *testing.T) {
	store, coupons := newCouponFixture(t)
	seedCoupon(t, store, &models.Coupon{
		Code:          "SAVE15",
		DiscountType:  models.CouponPercentage,
		DiscountValue: d("15"),
	})

	// 15% of 9.99 is 1.4985, rounded to cents.
	discount, err := coupons.Validate("SAVE15", "u1", d("9.99"))
	require.NoError(t, err)
	assert.True(t, discount.Equal(d("1.50")), "got %s", discount)
}

func TestCouponFixedAmount(t *testing.T) {
	store, coupons := newCouponFixture(t)
	seedCoupon(t, store, &models.Coupon{
		Code:          "FLAT2",
		DiscountType:  models.CouponFixed,
		DiscountValue: d("2.00"),
	})

	discount, err := coupons.Validate("FLAT2", "u1", d("25.00"))
	require.NoError(t, err)
	assert.True(t, discount.Equal(d("2.00")))

	// A fixed discount never exceeds the order amount.
	discount, err = coupons.Validate("FLAT2", "u1", d("1.50"))
	require.NoError(t, err)
	assert.True(t, discount.Equal(d("1.50")))
}

func TestCouponCodeNormalization(t *testing.T) {
	store, coupons := newCouponFixture(t)
	seedCoupon(t, store, &models.Coupon{
		Code:          "SAVE10",
		DiscountType:  models.CouponPercentage,
		DiscountValue: d("10"),
	})

	discount, err := coupons.Validate("  save10 ", "u1", d("30.00"))
	require.NoError(t, err)
	assert.True(t, discount.Equal(d("3.00")))
}

func TestCouponRejections(t *testing.T) {
	store, coupons := newCouponFixture(t)

	expired := seedCoupon(t, store, &models.Coupon{
		Code:          "EXPIRED",
		DiscountType:  models.CouponFixed,
		DiscountValue: d("2.00"),
		ValidFrom:     time.Now().Add(-48 * time.Hour),
		ValidUntil:    time.Now().Add(-24 * time.Hour),
	})
	_ = expired

	inactive := seedCoupon(t, store, &models.Coupon{
		Code:          "DISABLED",
		DiscountType:  models.CouponFixed,
		DiscountValue: d("2.00"),
	})
	inactive.Active = false
	require.NoError(t, store.Coupons().Create(inactive))

	seedCoupon(t, store, &models.Coupon{
		Code:               "MIN50",
		DiscountType:       models.CouponFixed,
		DiscountValue:      d("5.00"),
		MinimumOrderAmount: d("50.00"),
	})

	exhausted := seedCoupon(t, store, &models.Coupon{
		Code:            "GONE",
		DiscountType:    models.CouponFixed,
		DiscountValue:   d("2.00"),
		UsageLimitTotal: 3,
	})
	exhausted.UsageCount = 3
	require.NoError(t, store.Coupons().Create(exhausted))

	tests := []struct {
		name   string
		code   string
		amount string
		reason models.CouponRejectionReason
	}{
		{"unknown code", "NOPE", "30.00", models.CouponNotFound},
		{"inactive reads as unknown", "DISABLED", "30.00", models.CouponNotFound},
		{"outside validity window", "EXPIRED", "30.00", models.CouponExpired},
		{"below minimum order amount", "MIN50", "30.00", models.CouponBelowMinimum},
		{"total usage limit reached", "GONE", "30.00", models.CouponTotalLimitReached},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := coupons.Validate(tt.code, "u1", d(tt.amount))
			var rejected *models.CouponRejectedError
			require.ErrorAs(t, err, &rejected)
			assert.Equal(t, tt.reason, rejected.Reason)
		})
	}
}

func TestCouponPerUserLimit(t *testing.T) {
	store, coupons := newCouponFixture(t)
	coupon := seedCoupon(t, store, &models.Coupon{
		Code:              "ONCE",
		DiscountType:      models.CouponFixed,
		DiscountValue:     d("2.00"),
		UsageLimitPerUser: 1,
	})

	_, err := coupons.Validate("ONCE", "u1", d("30.00"))
	require.NoError(t, err)

	require.NoError(t, coupons.RecordUsage(store, coupon, "u1", "order-1", d("30.00"), d("2.00")))

	var rejected *models.CouponRejectedError
	_, err = coupons.Validate("ONCE", "u1", d("30.00"))
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, models.CouponPerUserLimitReached, rejected.Reason)

	// Another user is unaffected.
	_, err = coupons.Validate("ONCE", "u2", d("30.00"))
	assert.NoError(t, err)
}

func TestCouponZeroTotalLimitMeansUnlimited(t *testing.T) {
	store, coupons := newCouponFixture(t)
	unlimited := seedCoupon(t, store, &models.Coupon{
		Code:          "FOREVER",
		DiscountType:  models.CouponFixed,
		DiscountValue: d("1.00"),
	})
	unlimited.UsageCount = 10000
	require.NoError(t, store.Coupons().Create(unlimited))

	_, err := coupons.Validate("FOREVER", "u1", d("30.00"))
	assert.NoError(t, err)
}

func TestCreateCouponValidation(t *testing.T) {
	_, coupons := newCouponFixture(t)
	now := time.Now()

	var validationErr *models.ValidationError

	err := coupons.CreateCoupon(&models.Coupon{
		DiscountType: models.CouponFixed, DiscountValue: d("1.00"),
		ValidFrom: now, ValidUntil: now.Add(time.Hour),
	})
	assert.ErrorAs(t, err, &validationErr)

	err = coupons.CreateCoupon(&models.Coupon{
		Code: "BAD", DiscountType: "bogus", DiscountValue: d("1.00"),
		ValidFrom: now, ValidUntil: now.Add(time.Hour),
	})
	assert.ErrorAs(t, err, &validationErr)

	err = coupons.CreateCoupon(&models.Coupon{
		Code: "BAD", DiscountType: models.CouponPercentage, DiscountValue: d("150"),
		ValidFrom: now, ValidUntil: now.Add(time.Hour),
	})
	assert.ErrorAs(t, err, &validationErr)

	err = coupons.CreateCoupon(&models.Coupon{
		Code: "BAD", DiscountType: models.CouponFixed, DiscountValue: d("1.00"),
		ValidFrom: now.Add(time.Hour), ValidUntil: now,
	})
	assert.ErrorAs(t, err, &validationErr)

	err = coupons.CreateCoupon(&models.Coupon{
		Code: "good1", DiscountType: models.CouponFixed, DiscountValue: d("1.00"),
		ValidFrom: now, ValidUntil: now.Add(time.Hour),
	})
	assert.NoError(t, err)
}

func TestListAvailableForUser(t *testing.T) {
	store, coupons := newCouponFixture(t)
	seedCoupon(t, store, &models.Coupon{
		Code: "OPEN", DiscountType: models.CouponFixed, DiscountValue: d("1.00"),
	})
	seedCoupon(t, store, &models.Coupon{
		Code: "EXPIRED", DiscountType: models.CouponFixed, DiscountValue: d("1.00"),
		ValidFrom: time.Now().Add(-48 * time.Hour), ValidUntil: time.Now().Add(-24 * time.Hour),
	})
	used := seedCoupon(t, store, &models.Coupon{
		Code: "USEDUP", DiscountType: models.CouponFixed, DiscountValue: d("1.00"),
		UsageLimitPerUser: 1,
	})
	require.NoError(t, coupons.RecordUsage(store, used, "u1", "order-1", d("10.00"), d("1.00")))

	available, err := coupons.ListAvailableForUser("u1")
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "OPEN", available[0].Code)

	available, err = coupons.ListAvailableForUser("u2")
	require.NoError(t, err)
	assert.Len(t, available, 2)
}
