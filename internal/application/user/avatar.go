package user

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/juliezimmer/task-manager-api/internal/application/ports"
	"github.com/juliezimmer/task-manager-api/internal/domain"
	domerrors "github.com/juliezimmer/task-manager-api/internal/domain/errors"
)

// allowedAvatarExts gates uploads before they reach the image
// normalizer.
var allowedAvatarExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// SetAvatar validates an upload, normalizes it to the canonical PNG
// and stores the result on the user.
type SetAvatar struct {
	users      ports.UserRepository
	normalizer ports.AvatarNormalizer
}

func NewSetAvatar(users ports.UserRepository, normalizer ports.AvatarNormalizer) *SetAvatar {
	return &SetAvatar{users: users, normalizer: normalizer}
}

func (uc *SetAvatar) Execute(ctx context.Context, id domain.UserID, filename string, data []byte) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedAvatarExts[ext] {
		return domerrors.NewValidation("please upload an image (jpg, jpeg or png)")
	}
	normalized, err := uc.normalizer.Normalize(data)
	if err != nil {
		return domerrors.NewValidation("please upload an image (jpg, jpeg or png)")
	}
	return uc.users.SetAvatar(ctx, id, normalized)
}

// ClearAvatar unsets the user's avatar.
type ClearAvatar struct {
	users ports.UserRepository
}

func NewClearAvatar(users ports.UserRepository) *ClearAvatar {
	return &ClearAvatar{users: users}
}

func (uc *ClearAvatar) Execute(ctx context.Context, id domain.UserID) error {
	return uc.users.ClearAvatar(ctx, id)
}

// GetAvatar is the public avatar read: a missing user and an unset
// avatar are the same not-found outcome.
type GetAvatar struct {
	users ports.UserRepository
}

func NewGetAvatar(users ports.UserRepository) *GetAvatar {
	return &GetAvatar{users: users}
}

func (uc *GetAvatar) Execute(ctx context.Context, id domain.UserID) ([]byte, error) {
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil || len(u.Avatar) == 0 {
		return nil, domerrors.ErrNotFound
	}
	return u.Avatar, nil
}
