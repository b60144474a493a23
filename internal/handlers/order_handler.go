package handlers

import (
	"log"

	"kedai/internal/models"
	"kedai/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the customer-facing order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/", h.HandleListOrders)
	orderRoutes.Get("/:id", h.HandleGetOrder)
	orderRoutes.Get("/:id/status", h.HandleGetStatus)
	orderRoutes.Post("/:id/cancel", h.HandleCancelOrder)
}

// RegisterAdminRoutes registers the privileged order routes.
func (h *OrderHandler) RegisterAdminRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Patch("/:id/status", h.HandleUpdateStatus)
	orderRoutes.Delete("/:id/lines/:lineId", h.HandleRemoveLine)
}

// HandleCreateOrder creates an order from the caller's current cart.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req struct {
		AddressID  string `json:"address_id" validate:"required"`
		CouponCode string `json:"coupon_code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "address_id is required",
		})
	}

	order, err := h.service.CreateOrder(currentUserID(c), req.AddressID, req.CouponCode)
	if err != nil {
		log.Printf("Error creating order: %v", err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order_id":        order.ID,
		"subtotal":        order.Subtotal,
		"discount_amount": order.DiscountAmount,
		"total_price":     order.TotalPrice,
		"status":          order.Status,
	})
}

// HandleListOrders lists the caller's orders.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListOrders(currentUserID(c))
	if err != nil {
		log.Printf("Error listing orders: %v", err)
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrder returns one order with lines and status history.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(c.Params("id"), currentUserID(c))
	if err != nil {
		log.Printf("Error getting order %s: %v", c.Params("id"), err)
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleGetStatus returns just the current status of an order.
func (h *OrderHandler) HandleGetStatus(c *fiber.Ctx) error {
	status, err := h.service.GetStatus(c.Params("id"), currentUserID(c))
	if err != nil {
		log.Printf("Error getting order status %s: %v", c.Params("id"), err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": status})
}

// HandleCancelOrder cancels the caller's own order.
func (h *OrderHandler) HandleCancelOrder(c *fiber.Ctx) error {
	order, err := h.service.CancelOrder(c.Params("id"), currentUserID(c))
	if err != nil {
		log.Printf("Error cancelling order %s: %v", c.Params("id"), err)
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleUpdateStatus moves an order along the lifecycle (privileged).
func (h *OrderHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "status is required",
		})
	}

	order, err := h.service.UpdateStatus(c.Params("id"), models.OrderStatus(req.Status))
	if err != nil {
		log.Printf("Error updating order status %s: %v", c.Params("id"), err)
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleRemoveLine removes a line from a not-yet-dispatched order
// (privileged).
func (h *OrderHandler) HandleRemoveLine(c *fiber.Ctx) error {
	order, err := h.service.RemoveLine(c.Params("id"), c.Params("lineId"))
	if err != nil {
		log.Printf("Error removing line from order %s: %v", c.Params("id"), err)
		return respondError(c, err)
	}
	return c.JSON(order)
}
