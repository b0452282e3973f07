package admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devtales-app/backend/pkg/internal/database"
	"github.com/devtales-app/backend/pkg/internal/models"
)

func getDashboardStats(c *fiber.Ctx) error {
	var storyCount, accountCount, commentCount int64

	if err := database.C.Model(&models.Story{}).Count(&storyCount).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if err := database.C.Model(&models.Account{}).Count(&accountCount).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if err := database.C.Model(&models.Comment{}).Count(&commentCount).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"story_count":   storyCount,
		"account_count": accountCount,
		"comment_count": commentCount,
	})
}
