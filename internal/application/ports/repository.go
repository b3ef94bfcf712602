package ports

import (
	"context"

	"github.com/juliezimmer/task-manager-api/internal/domain"
)

// UserUpdate is the set of persisted fields a profile update may touch.
// Nil pointers leave the stored value unchanged.
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Age          *int
}

// UserRepository persists users in the document store. Every mutation
// of the session-token list must use the store's atomic single-document
// update operators, never read-modify-write, so concurrent logins by
// the same user cannot lose tokens.
type UserRepository interface {
	// Create persists a new user. Returns errors.ErrEmailTaken when the
	// email unique index rejects the insert.
	Create(ctx context.Context, user *domain.User) error
	// GetByEmail looks up by lowercased email. Returns (nil, nil) when
	// no such user exists.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByID returns (nil, nil) when no such user exists.
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	// GetByIDWithToken returns the user only when both the id matches
	// and token is present in the session list; (nil, nil) otherwise.
	// This is the lookup the authentication gate relies on to treat
	// revoked tokens as unauthorized.
	GetByIDWithToken(ctx context.Context, id domain.UserID, token string) (*domain.User, error)
	// AppendSessionToken atomically appends token, evicting the oldest
	// entries beyond maxSessions (0 = unbounded).
	AppendSessionToken(ctx context.Context, id domain.UserID, token string, maxSessions int) error
	// RemoveSessionToken atomically removes exactly the matching token.
	RemoveSessionToken(ctx context.Context, id domain.UserID, token string) error
	// ClearSessionTokens atomically removes every session.
	ClearSessionTokens(ctx context.Context, id domain.UserID) error
	// UpdateProfile applies upd and returns the updated user. Returns
	// errors.ErrEmailTaken on a duplicate email.
	UpdateProfile(ctx context.Context, id domain.UserID, upd UserUpdate) (*domain.User, error)
	// Delete removes the user document.
	Delete(ctx context.Context, id domain.UserID) error
	// SetAvatar stores normalized avatar bytes.
	SetAvatar(ctx context.Context, id domain.UserID, avatar []byte) error
	// ClearAvatar unsets the avatar.
	ClearAvatar(ctx context.Context, id domain.UserID) error
}

// TaskUpdate is the set of persisted fields a task update may touch.
type TaskUpdate struct {
	Description *string
	Completed   *bool
}

// TaskFilter narrows and orders a task listing.
type TaskFilter struct {
	Completed     *bool
	Limit         int64
	Skip          int64
	SortCreatedAt int // 1 ascending, -1 descending, 0 unsorted
}

// TaskRepository persists tasks, each owned by exactly one user.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	// GetByOwner returns (nil, nil) when the task does not exist or
	// belongs to another user.
	GetByOwner(ctx context.Context, id domain.TaskID, owner domain.UserID) (*domain.Task, error)
	ListByOwner(ctx context.Context, owner domain.UserID, filter TaskFilter) ([]*domain.Task, error)
	// UpdateByOwner applies upd and returns the updated task, or
	// (nil, nil) when no owned task matches.
	UpdateByOwner(ctx context.Context, id domain.TaskID, owner domain.UserID, upd TaskUpdate) (*domain.Task, error)
	// DeleteByOwner returns errors.ErrNotFound when no owned task matches.
	DeleteByOwner(ctx context.Context, id domain.TaskID, owner domain.UserID) error
	// PurgeOwner removes every task owned by owner. Used by the account
	// deletion cascade.
	PurgeOwner(ctx context.Context, owner domain.UserID) error
}
