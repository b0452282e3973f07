package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devtales-app/backend/pkg/internal/database"
	"github.com/devtales-app/backend/pkg/internal/http/exts"
	"github.com/devtales-app/backend/pkg/internal/models"
	"github.com/devtales-app/backend/pkg/internal/services"
)

func createComment(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("storyId", 0)

	var data struct {
		Content string `json:"content" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	var item models.Story
	if err := database.C.Where("id = ?", id).First(&item).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	comment, err := services.NewComment(user, item, data.Content)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

func deleteComment(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	storyId, _ := c.ParamsInt("storyId", 0)
	commentId, _ := c.ParamsInt("commentId", 0)

	comment, err := services.GetComment(uint(storyId), uint(commentId))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if comment.AccountID != user.ID {
		return fiber.NewError(fiber.StatusForbidden, "only the author can delete a comment")
	}

	if err := services.DeleteComment(comment); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	updated, err := services.GetStory(database.C, uint(storyId))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(updated)
}
