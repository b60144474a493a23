package handlers

import (
	"log"

	"kedai/internal/models"
	"kedai/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// CouponHandler handles HTTP requests for coupons.
type CouponHandler struct {
	service *services.CouponService
}

// NewCouponHandler creates a new CouponHandler.
func NewCouponHandler(service *services.CouponService) *CouponHandler {
	return &CouponHandler{
		service: service,
	}
}

// RegisterRoutes registers the customer-facing coupon routes.
func (h *CouponHandler) RegisterRoutes(router fiber.Router) {
	couponRoutes := router.Group("/coupons")
	couponRoutes.Post("/preview", h.HandlePreview)
	couponRoutes.Get("/available", h.HandleListAvailable)
}

// RegisterAdminRoutes registers the privileged coupon routes.
func (h *CouponHandler) RegisterAdminRoutes(router fiber.Router) {
	couponRoutes := router.Group("/coupons")
	couponRoutes.Post("/", h.HandleCreateCoupon)
}

// HandlePreview validates a code against a hypothetical order amount and
// returns the discount that would apply, without consuming usage.
func (h *CouponHandler) HandlePreview(c *fiber.Ctx) error {
	var req struct {
		Code        string          `json:"code" validate:"required"`
		OrderAmount decimal.Decimal `json:"order_amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "code is required",
		})
	}

	discount, err := h.service.Validate(req.Code, currentUserID(c), req.OrderAmount)
	if err != nil {
		log.Printf("Coupon preview rejected: %v", err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"code":            services.NormalizeCouponCode(req.Code),
		"order_amount":    req.OrderAmount,
		"discount_amount": discount,
		"final_amount":    req.OrderAmount.Sub(discount),
	})
}

// HandleListAvailable lists the coupons the caller could apply right now.
func (h *CouponHandler) HandleListAvailable(c *fiber.Ctx) error {
	coupons, err := h.service.ListAvailableForUser(currentUserID(c))
	if err != nil {
		log.Printf("Error listing available coupons: %v", err)
		return respondError(c, err)
	}
	return c.JSON(coupons)
}

// HandleCreateCoupon creates a coupon (privileged).
func (h *CouponHandler) HandleCreateCoupon(c *fiber.Ctx) error {
	var coupon models.Coupon
	if err := c.BodyParser(&coupon); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := validate.Struct(&coupon); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	if err := h.service.CreateCoupon(&coupon); err != nil {
		log.Printf("Error creating coupon: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(coupon)
}
