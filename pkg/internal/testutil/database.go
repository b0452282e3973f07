package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/devtales-app/backend/pkg/internal/cache"
	"github.com/devtales-app/backend/pkg/internal/database"
)

// NewTestDatabase opens a fresh in-memory database, migrates it, and wires
// it up as the process-wide connection.
func NewTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("unable to open test database: %v", err)
	}

	if err := database.RunMigration(db); err != nil {
		t.Fatalf("unable to migrate test database: %v", err)
	}

	database.C = db
	return db
}

// NewTestCache wires up the in-process cache store.
func NewTestCache(t *testing.T) {
	t.Helper()

	if err := cache.NewStore(); err != nil {
		t.Fatalf("unable to set up test cache: %v", err)
	}
}
