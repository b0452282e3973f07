package api

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/devtales-app/backend/pkg/internal/database"
	"github.com/devtales-app/backend/pkg/internal/http/exts"
	"github.com/devtales-app/backend/pkg/internal/models"
	"github.com/devtales-app/backend/pkg/internal/services"
)

func universalStoryFilter(c *fiber.Ctx, tx *gorm.DB) (*gorm.DB, error) {
	if len(c.Query("category")) > 0 {
		tx = services.FilterStoryWithCategory(tx, c.Query("category"))
	}
	if len(c.Query("probe")) > 0 {
		tx = services.FilterStoryWithProbe(tx, c.Query("probe"))
	}

	if len(c.Query("author")) > 0 {
		author, err := services.GetAccountWithName(c.Query("author"))
		if err != nil {
			return tx, fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		tx = services.FilterStoryWithAuthor(tx, author.ID)
	}

	return tx, nil
}

func listStory(c *fiber.Ctx) error {
	take := c.QueryInt("take", 20)
	offset := c.QueryInt("offset", 0)

	tx := database.C

	var err error
	if tx, err = universalStoryFilter(c, tx); err != nil {
		return err
	}

	count, err := services.CountStory(tx)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	items, err := services.ListStory(tx, take, offset, "created_at DESC")
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}

func listReactedStory(c *fiber.Ctx, kind models.ReactionKind) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	take := c.QueryInt("take", 20)
	offset := c.QueryInt("offset", 0)

	tx := services.FilterStoryReactedBy(database.C, user.ID, kind)

	count, err := services.CountStory(tx)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	items, err := services.ListStory(tx, take, offset, "created_at DESC")
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}

func listBookmarkedStory(c *fiber.Ctx) error {
	return listReactedStory(c, models.ReactionBookmark)
}

func listLikedStory(c *fiber.Ctx) error {
	return listReactedStory(c, models.ReactionLike)
}

func getStory(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("storyId", 0)

	item, err := services.GetStory(database.C, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(item)
}

func createStory(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	item := models.Story{
		Title:    c.FormValue("title"),
		Content:  c.FormValue("content"),
		Category: c.FormValue("category"),
	}

	if len(item.Title) == 0 || len(item.Content) == 0 || len(item.Category) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "title, content and category are required")
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, header := range form.File["images"] {
			url, err := uploadFormFile(c, header)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			item.ImageURLs = append(item.ImageURLs, url)
		}
		if headers := form.File["audio"]; len(headers) > 0 {
			url, err := uploadFormFile(c, headers[0])
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			item.AudioURL = &url
		}
		if headers := form.File["video"]; len(headers) > 0 {
			url, err := uploadFormFile(c, headers[0])
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			item.VideoURL = &url
		}
	}

	item, err := services.NewStory(user, item)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func editStory(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("storyId", 0)
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var item models.Story
	if err := database.C.Where("id = ?", id).First(&item).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if item.AuthorID != user.ID {
		return fiber.NewError(fiber.StatusForbidden, "only the author can edit a story")
	}

	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return fiber.NewError(fiber.StatusBadRequest, "expected a multipart form")
	}

	// Absent fields stay untouched
	if vals := form.Value["title"]; len(vals) > 0 {
		item.Title = vals[0]
	}
	if vals := form.Value["content"]; len(vals) > 0 {
		item.Content = vals[0]
	}
	if vals := form.Value["category"]; len(vals) > 0 {
		item.Category = vals[0]
	}

	// Reject bad fields before pushing anything to the media host
	if len(item.Title) == 0 || len(item.Content) == 0 || len(item.Category) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "title, content and category cannot be blanked")
	}

	if headers := form.File["images"]; len(headers) > 0 {
		item.ImageURLs = nil
		for _, header := range headers {
			url, err := uploadFormFile(c, header)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			item.ImageURLs = append(item.ImageURLs, url)
		}
	}
	if headers := form.File["audio"]; len(headers) > 0 {
		url, err := uploadFormFile(c, headers[0])
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		item.AudioURL = &url
	}
	if headers := form.File["video"]; len(headers) > 0 {
		url, err := uploadFormFile(c, headers[0])
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		item.VideoURL = &url
	}

	item, err = services.EditStory(item)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(item)
}

func deleteStory(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("storyId", 0)
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var item models.Story
	if err := database.C.Where("id = ?", id).First(&item).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if item.AuthorID != user.ID {
		return fiber.NewError(fiber.StatusForbidden, "only the author can delete a story")
	}

	if err := services.DeleteStory(item); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"message": "story deleted successfully",
	})
}
