package services

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/devtales-app/backend/pkg/internal/database"
	"github.com/devtales-app/backend/pkg/internal/models"
)

func FilterStoryWithCategory(tx *gorm.DB, category string) *gorm.DB {
	return tx.Where("category = ?", category)
}

func FilterStoryWithAuthor(tx *gorm.DB, authorID uint) *gorm.DB {
	return tx.Where("author_id = ?", authorID)
}

func FilterStoryWithProbe(tx *gorm.DB, probe string) *gorm.DB {
	if len(probe) == 0 {
		return tx
	}

	probe = "%" + probe + "%"
	return tx.Where("title ILIKE ? OR content ILIKE ?", probe, probe)
}

func FilterStoryReactedBy(tx *gorm.DB, accountID uint, kind models.ReactionKind) *gorm.DB {
	return tx.Where("id IN (?)", database.C.
		Model(&models.Reaction{}).
		Select("story_id").
		Where("account_id = ? AND kind = ?", accountID, kind),
	)
}

func PreloadStoryGeneral(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Author").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC")
		})
}

func GetStory(tx *gorm.DB, id uint) (models.Story, error) {
	var item models.Story
	if err := PreloadStoryGeneral(tx).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return item, err
	}

	if err := completeStoryMeta(&item); err != nil {
		return item, err
	}

	return item, nil
}

func CountStory(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Story{}).Count(&count).Error; err != nil {
		return count, err
	}

	return count, nil
}

func ListStory(tx *gorm.DB, take int, offset int, order any) ([]*models.Story, error) {
	if take > 100 {
		take = 100
	}
	if take <= 0 {
		take = 20
	}

	var items []*models.Story
	if err := PreloadStoryGeneral(tx).
		Limit(take).Offset(offset).
		Order(order).
		Find(&items).Error; err != nil {
		return items, err
	}

	if err := completeStoryMeta(items...); err != nil {
		return items, err
	}

	return items, nil
}

// completeStoryMeta batch loads like and bookmark sets for the given
// stories and fills the computed fields.
func completeStoryMeta(items ...*models.Story) error {
	if len(items) == 0 {
		return nil
	}

	idx := lo.Map(items, func(item *models.Story, index int) uint {
		return item.ID
	})
	itemMap := lo.SliceToMap(items, func(item *models.Story) (uint, *models.Story) {
		return item.ID, item
	})

	var reactions []models.Reaction
	if err := database.C.
		Where("story_id IN ?", idx).
		Order("created_at ASC").
		Find(&reactions).Error; err != nil {
		return err
	}

	for _, item := range items {
		item.Likes = []uint{}
		item.Bookmarks = []uint{}
	}

	for _, reaction := range reactions {
		item, ok := itemMap[reaction.StoryID]
		if !ok {
			continue
		}
		switch reaction.Kind {
		case models.ReactionLike:
			item.Likes = append(item.Likes, reaction.AccountID)
		case models.ReactionBookmark:
			item.Bookmarks = append(item.Bookmarks, reaction.AccountID)
		}
	}

	for _, item := range items {
		item.Metric = models.StoryMetric{
			LikeCount:     int64(len(item.Likes)),
			BookmarkCount: int64(len(item.Bookmarks)),
			CommentCount:  int64(len(item.Comments)),
		}
	}

	return nil
}

func validateStoryFields(item models.Story) error {
	if len(item.Title) == 0 {
		return fmt.Errorf("story title cannot be empty")
	}
	if len(item.Content) == 0 {
		return fmt.Errorf("story content cannot be empty")
	}
	if len(item.Category) == 0 {
		return fmt.Errorf("story category cannot be empty")
	}
	return nil
}

func NewStory(author models.Account, item models.Story) (models.Story, error) {
	if err := validateStoryFields(item); err != nil {
		return item, err
	}

	item.AuthorID = author.ID
	item.Language = DetectLanguage(item.Content)

	if err := database.C.Create(&item).Error; err != nil {
		return item, err
	}

	item.Author = &author
	log.Debug().Uint("id", item.ID).Str("category", item.Category).Msg("A new story is posted.")

	return GetStory(database.C, item.ID)
}

func EditStory(item models.Story) (models.Story, error) {
	if err := validateStoryFields(item); err != nil {
		return item, err
	}

	item.Language = DetectLanguage(item.Content)

	if err := database.C.Omit("Comments", "Author", "Reactions").Save(&item).Error; err != nil {
		return item, err
	}

	return GetStory(database.C, item.ID)
}

// DeleteStory removes the story together with everything embedded in it.
func DeleteStory(item models.Story) error {
	return database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("story_id = ?", item.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("story_id = ?", item.ID).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("story_id = ?", item.ID).Delete(&models.Progress{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}
