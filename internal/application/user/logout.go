package user

import (
	"context"

	"github.com/juliezimmer/task-manager-api/internal/application/ports"
	"github.com/juliezimmer/task-manager-api/internal/domain"
)

// Logout closes a single session: exactly the presented token is
// removed, other sessions stay valid.
type Logout struct {
	users ports.UserRepository
}

func NewLogout(users ports.UserRepository) *Logout {
	return &Logout{users: users}
}

func (uc *Logout) Execute(ctx context.Context, id domain.UserID, token string) error {
	return uc.users.RemoveSessionToken(ctx, id, token)
}

// LogoutAll closes every session of the user.
type LogoutAll struct {
	users ports.UserRepository
}

func NewLogoutAll(users ports.UserRepository) *LogoutAll {
	return &LogoutAll{users: users}
}

func (uc *LogoutAll) Execute(ctx context.Context, id domain.UserID) error {
	return uc.users.ClearSessionTokens(ctx, id)
}
