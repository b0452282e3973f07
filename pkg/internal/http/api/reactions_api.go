package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devtales-app/backend/pkg/internal/database"
	"github.com/devtales-app/backend/pkg/internal/http/exts"
	"github.com/devtales-app/backend/pkg/internal/models"
	"github.com/devtales-app/backend/pkg/internal/services"
)

func toggleStoryReaction(c *fiber.Ctx, kind models.ReactionKind) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("storyId", 0)

	var item models.Story
	if err := database.C.Where("id = ?", id).First(&item).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	_, updated, err := services.ToggleReaction(user, item, kind)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(updated)
}

func likeStory(c *fiber.Ctx) error {
	return toggleStoryReaction(c, models.ReactionLike)
}

func bookmarkStory(c *fiber.Ctx) error {
	return toggleStoryReaction(c, models.ReactionBookmark)
}
