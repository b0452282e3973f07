package services

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/devtales-app/backend/pkg/internal/database"
	"github.com/devtales-app/backend/pkg/internal/models"
)

// DoAutoDatabaseCleanup hard-deletes rows that were soft-deleted more than
// a month ago, and drops read notifications of the same age.
func DoAutoDatabaseCleanup() {
	deadline := time.Now().Add(-30 * 24 * time.Hour)
	log.Debug().Time("before", deadline).Msg("Now cleaning up entire database...")

	var count int64
	for _, model := range database.AutoMaintainRange {
		tx := database.C.Unscoped().
			Where("deleted_at IS NOT NULL AND deleted_at <= ?", deadline).
			Delete(model)
		if tx.Error != nil {
			log.Error().Err(tx.Error).Msg("An error occurred when running auto maintain...")
			continue
		}
		count += tx.RowsAffected
	}

	tx := database.C.
		Where("read_at IS NOT NULL AND read_at <= ?", deadline).
		Delete(&models.Notification{})
	if tx.Error != nil {
		log.Error().Err(tx.Error).Msg("An error occurred when sweeping read notifications...")
	}
	count += tx.RowsAffected

	log.Debug().Int64("affected", count).Msg("Clean up entire database accomplished.")
}
