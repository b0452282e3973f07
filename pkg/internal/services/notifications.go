package services

import (
	"time"

	"github.com/devtales-app/backend/pkg/internal/database"
	"github.com/devtales-app/backend/pkg/internal/models"
)

func NewNotification(item models.Notification) error {
	return database.C.Create(&item).Error
}

func ListNotification(accountID uint, take int, offset int) ([]models.Notification, int64, error) {
	if take > 100 {
		take = 100
	}
	if take <= 0 {
		take = 20
	}

	tx := database.C.Where("account_id = ?", accountID)

	var count int64
	if err := tx.Model(&models.Notification{}).Count(&count).Error; err != nil {
		return nil, count, err
	}

	var items []models.Notification
	if err := tx.
		Limit(take).Offset(offset).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return items, count, err
	}

	return items, count, nil
}

func ReadAllNotification(accountID uint) error {
	return database.C.Model(&models.Notification{}).
		Where("account_id = ? AND read_at IS NULL", accountID).
		Update("read_at", time.Now()).Error
}
