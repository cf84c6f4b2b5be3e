package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/appdotbuilder/crm-manager/pkg/apperror"
	"github.com/appdotbuilder/crm-manager/pkg/utils/jwt"
)

// AuthMiddleware validates the bearer token and stores the claims for the
// controllers under c.Locals("user").
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return apperror.Unauthorized("Missing or invalid authorization header")
		}

		claims, err := jwt.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return apperror.Unauthorized("Invalid or expired token")
		}

		c.Locals("user", claims)
		return c.Next()
	}
}
