package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/devtales-app/backend/pkg/internal/database"
	"github.com/devtales-app/backend/pkg/internal/http/exts"
	"github.com/devtales-app/backend/pkg/internal/models"
	"github.com/devtales-app/backend/pkg/internal/services"
)

func renderProfile(c *fiber.Ctx, account models.Account) error {
	take := c.QueryInt("take", 20)
	offset := c.QueryInt("offset", 0)

	tx := services.FilterStoryWithAuthor(database.C, account.ID)

	count, err := services.CountStory(tx)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	items, err := services.ListStory(tx, take, offset, "created_at DESC")
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	account.Stories = lo.Map(items, func(item *models.Story, index int) models.Story {
		return *item
	})

	return c.JSON(fiber.Map{
		"account":     account,
		"story_count": count,
	})
}

func getMyProfile(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	return renderProfile(c, user)
}

func getUserProfile(c *fiber.Ctx) error {
	raw := c.Params("account")

	var account models.Account
	var err error
	if numericId, paramErr := strconv.Atoi(raw); paramErr == nil {
		account, err = services.GetAccountWithID(uint(numericId))
	} else {
		account, err = services.GetAccountWithName(raw)
	}
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return renderProfile(c, account)
}

func editMyProfile(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var edits services.AccountEdits

	if form, err := c.MultipartForm(); err == nil && form != nil {
		if vals := form.Value["username"]; len(vals) > 0 {
			edits.Name = &vals[0]
		}
		if vals := form.Value["bio"]; len(vals) > 0 {
			edits.Bio = &vals[0]
		}
		if headers := form.File["avatar"]; len(headers) > 0 {
			url, err := uploadFormFile(c, headers[0])
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			edits.Avatar = &url
		}
	} else {
		var data struct {
			Username *string `json:"username"`
			Bio      *string `json:"bio"`
		}
		if err := exts.BindAndValidate(c, &data); err != nil {
			return err
		}
		edits.Name = data.Username
		edits.Bio = data.Bio
	}

	account, err := services.EditAccount(user, edits)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(account)
}

func deleteMyProfile(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	// Authored stories are orphaned, not removed
	if err := services.DeleteAccount(user); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"message": "account deleted successfully",
	})
}
