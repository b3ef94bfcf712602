package memory

import (
	"context"
	"sync"
	"time"

	"github.com/juliezimmer/task-manager-api/internal/application/ports"
	"github.com/juliezimmer/task-manager-api/internal/domain"
	domerrors "github.com/juliezimmer/task-manager-api/internal/domain/errors"
)

// UserRepository is an in-memory ports.UserRepository with the same
// observable semantics as the document store, including email
// uniqueness and atomic token-list mutation. Used in tests and for
// running without a database.
type UserRepository struct {
	mu    sync.RWMutex
	users map[domain.UserID]*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[domain.UserID]*domain.User)}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domerrors.ErrEmailTaken
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, nil
}

func (r *UserRepository) GetByIDWithToken(ctx context.Context, id domain.UserID, token string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok || !u.HasSessionToken(token) {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *UserRepository) AppendSessionToken(ctx context.Context, id domain.UserID, token string, maxSessions int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domerrors.ErrNotFound
	}
	u.SessionTokens = append(u.SessionTokens, token)
	if maxSessions > 0 && len(u.SessionTokens) > maxSessions {
		u.SessionTokens = u.SessionTokens[len(u.SessionTokens)-maxSessions:]
	}
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *UserRepository) RemoveSessionToken(ctx context.Context, id domain.UserID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domerrors.ErrNotFound
	}
	kept := u.SessionTokens[:0]
	for _, t := range u.SessionTokens {
		if t != token {
			kept = append(kept, t)
		}
	}
	u.SessionTokens = kept
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *UserRepository) ClearSessionTokens(ctx context.Context, id domain.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domerrors.ErrNotFound
	}
	u.SessionTokens = nil
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id domain.UserID, upd ports.UserUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domerrors.ErrNotFound
	}
	if upd.Email != nil {
		for otherID, other := range r.users {
			if otherID != id && other.Email == *upd.Email {
				return nil, domerrors.ErrEmailTaken
			}
		}
		u.Email = *upd.Email
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.Age != nil {
		u.Age = *upd.Age
	}
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (r *UserRepository) Delete(ctx context.Context, id domain.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domerrors.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *UserRepository) SetAvatar(ctx context.Context, id domain.UserID, avatar []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domerrors.ErrNotFound
	}
	u.Avatar = append([]byte(nil), avatar...)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *UserRepository) ClearAvatar(ctx context.Context, id domain.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domerrors.ErrNotFound
	}
	u.Avatar = nil
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	c.SessionTokens = append([]string(nil), u.SessionTokens...)
	c.Avatar = append([]byte(nil), u.Avatar...)
	return &c
}

var _ ports.UserRepository = (*UserRepository)(nil)
