package testutil

import (
	"testing"

	"github.com/google/uuid"

	"github.com/devtales-app/backend/pkg/internal/database"
	"github.com/devtales-app/backend/pkg/internal/models"
)

func NewTestAccount(t *testing.T, name string) models.Account {
	t.Helper()

	account := models.Account{
		IdentityID: uuid.NewString(),
		Name:       name,
	}
	if err := database.C.Create(&account).Error; err != nil {
		t.Fatalf("unable to create test account: %v", err)
	}

	return account
}

func NewTestStory(t *testing.T, author models.Account, title string) models.Story {
	t.Helper()

	story := models.Story{
		Title:    title,
		Content:  "Once upon a time a deploy went fine.",
		Category: "Epic",
		AuthorID: author.ID,
	}
	if err := database.C.Create(&story).Error; err != nil {
		t.Fatalf("unable to create test story: %v", err)
	}

	return story
}
