package middleware

import (
	"github.com/electrobid/electrobid-api/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// RoleRequired gates a route to the given roles, read from the verified
// JWT's role claim. Must run after JWTProtected.
func RoleRequired(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if _, ok := allowed[role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Insufficient role for this action",
			})
		}
		return c.Next()
	}
}
