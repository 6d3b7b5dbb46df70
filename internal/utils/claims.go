package utils

import (
	"tutorlink/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ClaimsFromContext returns the authenticated user's claims stored by the
// auth middleware.
func ClaimsFromContext(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}
