package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devtales-app/backend/pkg/internal/auth"
	"github.com/devtales-app/backend/pkg/internal/services"
)

// authMiddleware resolves the bearer token, if any, into a local account
// stored in locals. Requests without a token pass through unauthenticated;
// requests with a bad token are rejected here.
func authMiddleware(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if len(header) == 0 {
		return c.Next()
	}

	if IReader == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication is not configured")
	}

	token, err := auth.ParseBearer(header)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	claims, err := IReader.ReadToken(token)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	user, err := services.SyncAccount(claims)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	c.Locals("user", user)
	return c.Next()
}
