package serverutils

import (
	"github.com/gofiber/fiber/v2"
)

// SweepAuthMiddleware guards the reminder sweep endpoint with a shared
// secret. An empty secret leaves the endpoint open (development).
func SweepAuthMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if secret == "" {
			return ctx.Next()
		}

		authHeader := ctx.Get("Authorization")
		if authHeader != "Bearer "+secret {
			return ctx.Status(fiber.StatusUnauthorized).
				JSON(ErrorResponse(fiber.StatusUnauthorized, "Unauthorized"))
		}
		return ctx.Next()
	}
}
