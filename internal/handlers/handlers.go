package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// validate is the shared validator for request bodies.
var validate = validator.New()

// currentUserID returns the authenticated user id placed in the context
// by the auth middleware. The core services only ever see this explicit
// id; there is no ambient "current user" state below the HTTP layer.
func currentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}
