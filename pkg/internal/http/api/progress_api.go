package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devtales-app/backend/pkg/internal/database"
	"github.com/devtales-app/backend/pkg/internal/http/exts"
	"github.com/devtales-app/backend/pkg/internal/models"
	"github.com/devtales-app/backend/pkg/internal/services"
)

func getStoryProgress(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("storyId", 0)

	var item models.Story
	if err := database.C.Where("id = ?", id).First(&item).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	progress, err := services.GetProgress(user, item)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(progress)
}

func setStoryProgress(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("storyId", 0)

	var data struct {
		Percentage int `json:"percentage" validate:"min=0,max=100"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	var item models.Story
	if err := database.C.Where("id = ?", id).First(&item).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	progress, err := services.SetProgress(user, item, data.Percentage)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(progress)
}
