package handlers

import (
	"log"

	"kedai/internal/models"
	"kedai/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AddressHandler handles HTTP requests for the delivery address book.
type AddressHandler struct {
	service *services.AddressService
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(service *services.AddressService) *AddressHandler {
	return &AddressHandler{
		service: service,
	}
}

// RegisterRoutes registers the address routes with the Fiber app.
func (h *AddressHandler) RegisterRoutes(router fiber.Router) {
	addressRoutes := router.Group("/addresses")
	addressRoutes.Post("/", h.HandleCreateAddress)
	addressRoutes.Get("/", h.HandleListAddresses)
}

// HandleCreateAddress stores a new delivery address for the caller.
func (h *AddressHandler) HandleCreateAddress(c *fiber.Ctx) error {
	var address models.Address
	if err := c.BodyParser(&address); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := validate.Struct(&address); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	if err := h.service.CreateAddress(currentUserID(c), &address); err != nil {
		log.Printf("Error creating address: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(address)
}

// HandleListAddresses lists the caller's addresses.
func (h *AddressHandler) HandleListAddresses(c *fiber.Ctx) error {
	addresses, err := h.service.ListAddresses(currentUserID(c))
	if err != nil {
		log.Printf("Error listing addresses: %v", err)
		return respondError(c, err)
	}
	return c.JSON(addresses)
}
