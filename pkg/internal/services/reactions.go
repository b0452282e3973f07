package services

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm/clause"

	"github.com/devtales-app/backend/pkg/internal/database"
	"github.com/devtales-app/backend/pkg/internal/models"
)

// ToggleReaction flips the caller's presence in a story's like or bookmark
// set. There is no target-state parameter: present removes, absent adds.
// Both directions are single statements, so two racing toggles can never
// clobber each other's entry; the composite key swallows a duplicate add.
func ToggleReaction(user models.Account, story models.Story, kind models.ReactionKind) (bool, models.Story, error) {
	res := database.C.
		Where("story_id = ? AND account_id = ? AND kind = ?", story.ID, user.ID, kind).
		Delete(&models.Reaction{})
	if res.Error != nil {
		return false, story, res.Error
	}

	positive := res.RowsAffected == 0
	if positive {
		reaction := models.Reaction{
			Kind:      kind,
			StoryID:   story.ID,
			AccountID: user.ID,
		}
		if err := database.C.
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&reaction).Error; err != nil {
			return positive, story, err
		}

		if kind == models.ReactionLike && story.AuthorID != user.ID {
			if err := NewNotification(models.Notification{
				Type:      models.NotificationTypeLike,
				AccountID: story.AuthorID,
				ActorID:   user.ID,
				StoryID:   &story.ID,
			}); err != nil {
				log.Warn().Err(err).Uint("story", story.ID).Msg("An error occurred when notifying the story author...")
			}
		}
	}

	updated, err := GetStory(database.C, story.ID)
	return positive, updated, err
}
