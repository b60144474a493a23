package handlers

import (
	"log"

	"kedai/internal/models"
	"kedai/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the shopping cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:id", h.HandleUpdateLine)
	cartRoutes.Delete("/items/:id", h.HandleRemoveLine)
	cartRoutes.Delete("/", h.HandleClearCart)
}

func cartResponse(cart *models.Cart) fiber.Map {
	return fiber.Map{
		"cart":    cart,
		"summary": cart.Summarize(),
	}
}

// HandleGetCart returns the caller's cart with its derived summary.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(currentUserID(c))
	if err != nil {
		log.Printf("Error getting cart: %v", err)
		return respondError(c, err)
	}
	return c.JSON(cartResponse(cart))
}

// HandleAddItem adds a catalog item to the caller's cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req struct {
		ProductID string `json:"product_id" validate:"required"`
		Quantity  int    `json:"quantity" validate:"required,gt=0"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "product_id and a positive quantity are required",
		})
	}

	cart, err := h.service.AddItem(currentUserID(c), req.ProductID, req.Quantity)
	if err != nil {
		log.Printf("Error adding item to cart: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cartResponse(cart))
}

// HandleUpdateLine sets the quantity of an existing cart line.
func (h *CartHandler) HandleUpdateLine(c *fiber.Ctx) error {
	var req struct {
		Quantity int `json:"quantity" validate:"required,gt=0"`
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

	cart, err := h.service.UpdateLineQuantity(currentUserID(c), c.Params("id"), req.Quantity)
	if err != nil {
		log.Printf("Error updating cart line: %v", err)
		return respondError(c, err)
	}
	return c.JSON(cartResponse(cart))
}

// HandleRemoveLine removes one line from the caller's cart.
func (h *CartHandler) HandleRemoveLine(c *fiber.Ctx) error {
	cart, err := h.service.RemoveLine(currentUserID(c), c.Params("id"))
	if err != nil {
		log.Printf("Error removing cart line: %v", err)
		return respondError(c, err)
	}
	return c.JSON(cartResponse(cart))
}

// HandleClearCart empties the caller's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	cart, err := h.service.Clear(currentUserID(c))
	if err != nil {
		log.Printf("Error clearing cart: %v", err)
		return respondError(c, err)
	}
	return c.JSON(cartResponse(cart))
}
