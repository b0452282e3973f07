package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	"gorm.io/gorm"

	"github.com/devtales-app/backend/pkg/internal/auth"
	localCache "github.com/devtales-app/backend/pkg/internal/cache"
	"github.com/devtales-app/backend/pkg/internal/database"
	"github.com/devtales-app/backend/pkg/internal/models"
)

func accountCacheKey(identityID string) string {
	return fmt.Sprintf("account-identity#%s", identityID)
}

// SyncAccount resolves a verified identity to the local account row,
// creating it on first sight. Results are cached for a few minutes; the
// cache is invalidated whenever the profile is mutated.
func SyncAccount(claims auth.Claims) (models.Account, error) {
	marshal := marshaler.New(cache.New[any](localCache.S))
	ctx := context.Background()

	if hit, err := marshal.Get(ctx, accountCacheKey(claims.Subject), new(models.Account)); err == nil {
		return *hit.(*models.Account), nil
	}

	// The lookup is unscoped on purpose: a previously deleted row still
	// owns the identity in the unique index, so it gets restored instead
	// of colliding with a fresh insert.
	var account models.Account
	if err := database.C.Unscoped().Where("identity_id = ?", claims.Subject).First(&account).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return account, err
		}

		account = models.Account{
			IdentityID: claims.Subject,
			Name:       claims.Name,
			Avatar:     claims.Avatar,
		}
		if len(account.Name) == 0 {
			account.Name = fmt.Sprintf("user_%s", claims.Subject)
		}
		if err := database.C.Create(&account).Error; err != nil {
			return account, fmt.Errorf("unable to create account on demand: %v", err)
		}
	} else if account.DeletedAt.Valid {
		account.DeletedAt = gorm.DeletedAt{}
		account.Name = claims.Name
		account.Avatar = claims.Avatar
		if len(account.Name) == 0 {
			account.Name = fmt.Sprintf("user_%s", claims.Subject)
		}
		if err := database.C.Unscoped().Save(&account).Error; err != nil {
			return account, fmt.Errorf("unable to restore deleted account: %v", err)
		}
	}

	_ = marshal.Set(
		ctx,
		accountCacheKey(claims.Subject),
		account,
		store.WithExpiration(5*time.Minute),
		store.WithTags([]string{"account", fmt.Sprintf("account#%d", account.ID)}),
	)

	return account, nil
}

func InvalidateAccountCache(identityID string) {
	marshal := marshaler.New(cache.New[any](localCache.S))
	_ = marshal.Delete(context.Background(), accountCacheKey(identityID))
}

func GetAccountWithID(id uint) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("id = ?", id).First(&account).Error; err != nil {
		return account, fmt.Errorf("unable to get account by id: %v", err)
	}
	return account, nil
}

func GetAccountWithName(name string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("name = ?", name).First(&account).Error; err != nil {
		return account, fmt.Errorf("unable to get account by name: %v", err)
	}
	return account, nil
}

type AccountEdits struct {
	Name   *string
	Bio    *string
	Avatar *string
}

// EditAccount applies partial profile edits; nil fields stay untouched.
func EditAccount(account models.Account, edits AccountEdits) (models.Account, error) {
	if edits.Name != nil {
		if len(*edits.Name) == 0 {
			return account, fmt.Errorf("username cannot be empty")
		}
		account.Name = *edits.Name
	}
	if edits.Bio != nil {
		account.Bio = *edits.Bio
	}
	if edits.Avatar != nil {
		account.Avatar = *edits.Avatar
	}

	if err := database.C.Save(&account).Error; err != nil {
		return account, err
	}

	InvalidateAccountCache(account.IdentityID)
	return account, nil
}

// DeleteAccount removes the account row. Authored stories are orphaned on
// purpose, never cascaded.
func DeleteAccount(account models.Account) error {
	if err := database.C.Delete(&account).Error; err != nil {
		return err
	}
	InvalidateAccountCache(account.IdentityID)
	return nil
}
