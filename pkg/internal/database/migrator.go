package database

import (
	"github.com/devtales-app/backend/pkg/internal/models"
	"gorm.io/gorm"
)

var AutoMaintainRange = []any{
	&models.Account{},
	&models.Story{},
	&models.Comment{},
	&models.Notification{},
}

func RunMigration(source *gorm.DB) error {
	if err := source.AutoMigrate(
		append(
			AutoMaintainRange,
			&models.Reaction{},
			&models.Progress{},
		)...,
	); err != nil {
		return err
	}

	return nil
}
