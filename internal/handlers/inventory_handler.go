package handlers

import (
	"log"

	"kedai/internal/models"
	"kedai/internal/services"

	"github.com/gofiber/fiber/v2"
)

// InventoryHandler handles the privileged inventory-management endpoints.
type InventoryHandler struct {
	service *services.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(service *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		service: service,
	}
}

// RegisterAdminRoutes registers the inventory routes with the Fiber app.
func (h *InventoryHandler) RegisterAdminRoutes(router fiber.Router) {
	invRoutes := router.Group("/inventory")
	invRoutes.Get("/low-stock", h.HandleLowStock)
	invRoutes.Post("/:productId/restock", h.HandleRestock)
	invRoutes.Post("/:productId/adjust", h.HandleAdjust)
	invRoutes.Get("/:productId/transactions", h.HandleTransactions)
}

// HandleRestock adds stock through a manual restock entry.
func (h *InventoryHandler) HandleRestock(c *fiber.Ctx) error {
	var req struct {
		Quantity int    `json:"quantity" validate:"required,gt=0"`
		Note     string `json:"note"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "a positive quantity is required",
		})
	}

	record, err := h.service.Restock(c.Params("productId"), req.Quantity, req.Note)
	if err != nil {
		log.Printf("Error restocking product %s: %v", c.Params("productId"), err)
		return respondError(c, err)
	}
	return c.JSON(record)
}

// HandleAdjust applies a manual correction or damaged write-off.
func (h *InventoryHandler) HandleAdjust(c *fiber.Ctx) error {
	var req struct {
		Delta int    `json:"delta" validate:"required"`
		Kind  string `json:"kind" validate:"required,oneof=manual_adjustment damaged"`
		Note  string `json:"note"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "delta and a kind of manual_adjustment or damaged are required",
		})
	}

	record, err := h.service.Adjust(c.Params("productId"), req.Delta, models.StockTransactionKind(req.Kind), req.Note)
	if err != nil {
		log.Printf("Error adjusting stock for product %s: %v", c.Params("productId"), err)
		return respondError(c, err)
	}
	return c.JSON(record)
}

// HandleTransactions returns the audit trail for a product.
func (h *InventoryHandler) HandleTransactions(c *fiber.Ctx) error {
	txns, err := h.service.Transactions(c.Params("productId"))
	if err != nil {
		log.Printf("Error listing stock transactions for product %s: %v", c.Params("productId"), err)
		return respondError(c, err)
	}
	return c.JSON(txns)
}

// HandleLowStock lists every product below its low-stock threshold.
func (h *InventoryHandler) HandleLowStock(c *fiber.Ctx) error {
	records, err := h.service.LowStockItems()
	if err != nil {
		log.Printf("Error listing low stock items: %v", err)
		return respondError(c, err)
	}
	return c.JSON(records)
}
