package api

import (
	"github.com/gofiber/fiber/v2"
)

func MapAPIs(app *fiber.App, baseURL string) {
	api := app.Group(baseURL).Name("API")
	{
		stories := api.Group("/stories").Name("Stories API")
		{
			stories.Get("/", listStory)
			stories.Get("/bookmarked", listBookmarkedStory)
			stories.Get("/liked", listLikedStory)
			stories.Post("/", createStory)
			stories.Get("/:storyId", getStory)
			stories.Put("/:storyId", editStory)
			stories.Delete("/:storyId", deleteStory)

			stories.Post("/:storyId/like", likeStory)
			stories.Post("/:storyId/bookmark", bookmarkStory)

			stories.Post("/:storyId/comments", createComment)
			stories.Delete("/:storyId/comments/:commentId", deleteComment)

			stories.Get("/:storyId/progress", getStoryProgress)
			stories.Put("/:storyId/progress", setStoryProgress)
		}

		users := api.Group("/users").Name("Users API")
		{
			users.Get("/me", getMyProfile)
			users.Put("/me", editMyProfile)
			users.Delete("/me", deleteMyProfile)
			users.Get("/:account", getUserProfile)
		}

		notifications := api.Group("/notifications").Name("Notifications API")
		{
			notifications.Get("/", listNotification)
			notifications.Put("/read", readAllNotification)
		}
	}
}
