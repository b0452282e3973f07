package services

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/devtales-app/backend/pkg/internal/database"
	"github.com/devtales-app/backend/pkg/internal/models"
)

// NewComment appends a comment to a story. The author name is snapshotted
// from the account at this moment and stays as-is after renames.
func NewComment(user models.Account, story models.Story, body string) (models.Comment, error) {
	if len(body) == 0 {
		return models.Comment{}, fmt.Errorf("comment body cannot be empty")
	}

	comment := models.Comment{
		Body:       body,
		AuthorName: user.Name,
		StoryID:    story.ID,
		AccountID:  user.ID,
	}

	if err := database.C.Create(&comment).Error; err != nil {
		return comment, err
	}

	if story.AuthorID != user.ID {
		if err := NewNotification(models.Notification{
			Type:      models.NotificationTypeComment,
			AccountID: story.AuthorID,
			ActorID:   user.ID,
			StoryID:   &story.ID,
		}); err != nil {
			log.Warn().Err(err).Uint("story", story.ID).Msg("An error occurred when notifying the story author...")
		}
	}

	return comment, nil
}

func GetComment(storyID, commentID uint) (models.Comment, error) {
	var comment models.Comment
	if err := database.C.
		Where("id = ? AND story_id = ?", commentID, storyID).
		First(&comment).Error; err != nil {
		return comment, err
	}
	return comment, nil
}

func DeleteComment(comment models.Comment) error {
	return database.C.Delete(&comment).Error
}
