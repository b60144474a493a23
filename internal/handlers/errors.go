package handlers

import (
	"errors"
	"log"

	"kedai/internal/models"

	"github.com/gofiber/fiber/v2"
)

// respondError maps the service error taxonomy onto HTTP statuses:
// missing things are 404, business and validation rejections are 400,
// illegal transitions and lost races are 409 (the latter retryable), and
// anything else is an infrastructure failure surfaced as a generic 500
// with no internal detail leaked.
func respondError(c *fiber.Ctx, err error) error {
	var (
		validationErr *models.ValidationError
		quantityErr   *models.QuantityOutOfRangeError
		stockErr      *models.InsufficientStockError
		couponErr     *models.CouponRejectedError
		transitionErr *models.InvalidTransitionError
	)

	switch {
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrAddressNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.As(err, &transitionErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, models.ErrConcurrencyConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message":   err.Error(),
			"retryable": true,
		})
	case errors.As(err, &stockErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
			"item":    stockErr.Name,
		})
	case errors.As(err, &couponErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
			"reason":  couponErr.Reason,
		})
	case errors.Is(err, models.ErrEmptyCart),
		errors.Is(err, models.ErrItemUnavailable),
		errors.As(err, &validationErr),
		errors.As(err, &quantityErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	default:
		log.Printf("Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}
}
