package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/devtales-app/backend/pkg/internal/database"
	"github.com/devtales-app/backend/pkg/internal/models"
)

// SetProgress upserts the caller's reading position on a story.
func SetProgress(user models.Account, story models.Story, percentage int) (models.Progress, error) {
	if percentage < 0 || percentage > 100 {
		return models.Progress{}, fmt.Errorf("percentage must be between 0 and 100")
	}

	item := models.Progress{
		AccountID:  user.ID,
		StoryID:    story.ID,
		Percentage: percentage,
	}

	err := database.C.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}, {Name: "story_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"percentage", "updated_at"}),
		}).
		Create(&item).Error

	return item, err
}

// GetProgress returns the caller's position, or the zero value when they
// have not started the story.
func GetProgress(user models.Account, story models.Story) (models.Progress, error) {
	var item models.Progress
	if err := database.C.
		Where("account_id = ? AND story_id = ?", user.ID, story.ID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Progress{AccountID: user.ID, StoryID: story.ID}, nil
		}
		return item, err
	}
	return item, nil
}
