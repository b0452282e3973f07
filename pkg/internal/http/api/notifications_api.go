package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devtales-app/backend/pkg/internal/http/exts"
	"github.com/devtales-app/backend/pkg/internal/models"
	"github.com/devtales-app/backend/pkg/internal/services"
)

func listNotification(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	take := c.QueryInt("take", 20)
	offset := c.QueryInt("offset", 0)

	items, count, err := services.ListNotification(user.ID, take, offset)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}

func readAllNotification(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	if err := services.ReadAllNotification(user.ID); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}
