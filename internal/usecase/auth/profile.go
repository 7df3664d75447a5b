package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/campus-scheduler/internal/audit"
	"github.com/BruksfildServices01/campus-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/campus-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/campus-scheduler/internal/httperr"
	"github.com/BruksfildServices01/campus-scheduler/internal/media"
	"github.com/BruksfildServices01/campus-scheduler/internal/models"
)

var timeNow = time.Now

// ======================================================
// ME
// ======================================================

type GetMe struct {
	repo account.Repository
}

func NewGetMe(repo account.Repository) *GetMe {
	return &GetMe{repo: repo}
}

func (uc *GetMe) Execute(ctx context.Context, caller identity.Caller) (*models.User, error) {
	u, err := uc.repo.GetUserByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.Unauthenticated("user_not_found", "Account no longer exists.")
		}
		return nil, err
	}
	return u, nil
}

// ======================================================
// AVATAR
// ======================================================

type UploadAvatar struct {
	repo  account.Repository
	store media.Store
	audit *audit.Dispatcher
}

func NewUploadAvatar(repo account.Repository, store media.Store, audit *audit.Dispatcher) *UploadAvatar {
	return &UploadAvatar{repo: repo, store: store, audit: audit}
}

// Execute re-encodes the upload as a square WebP and stores it under a
// new versioned key.
func (uc *UploadAvatar) Execute(ctx context.Context, caller identity.Caller, data []byte) (string, error) {
	out, err := media.ProcessAvatar(data)
	switch {
	case errors.Is(err, media.ErrTooLarge):
		return "", httperr.Validation("avatar_too_large", "Avatar images must be under 5 MB.")
	case errors.Is(err, media.ErrUnsupported):
		return "", httperr.Validation("avatar_unsupported", "Upload a JPEG, PNG or WebP image.")
	case err != nil:
		return "", err
	}

	key := media.AvatarKey(caller.UserID, strconv.FormatInt(timeNow().UnixNano(), 36))

	if err := uc.store.Put(ctx, key, out, media.AvatarMediaType); err != nil {
		if errors.Is(err, media.ErrStorageOff) {
			return "", httperr.Conflict("avatar_storage_disabled", "Avatar uploads are not enabled on this server.")
		}
		return "", err
	}

	if err := uc.repo.SetAvatarKey(ctx, caller.UserID, key); err != nil {
		return "", err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &caller.UserID,
		Action:   "avatar_updated",
		Entity:   "user",
		EntityID: &caller.UserID,
	})

	return uc.store.URL(key), nil
}

// ======================================================
// SPECIALISTS
// ======================================================

type ListSpecialists struct {
	repo account.Repository
}

func NewListSpecialists(repo account.Repository) *ListSpecialists {
	return &ListSpecialists{repo: repo}
}

func (uc *ListSpecialists) Execute(ctx context.Context) ([]models.User, error) {
	return uc.repo.ListByRole(ctx, string(identity.RoleSpecialist))
}
