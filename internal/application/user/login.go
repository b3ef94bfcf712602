package user

import (
	"context"

	"github.com/juliezimmer/task-manager-api/internal/application/ports"
	"github.com/juliezimmer/task-manager-api/internal/domain"
	domerrors "github.com/juliezimmer/task-manager-api/internal/domain/errors"
)

// DefaultMaxSessions caps a user's session list; logging in past the
// cap evicts the oldest session.
const DefaultMaxSessions = 10

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	User  *domain.User
	Token string
}

// Login verifies credentials and opens a new session. It reports the
// same failure for an unknown email and a wrong password.
type Login struct {
	users       ports.UserRepository
	hasher      ports.PasswordHasher
	issuer      ports.TokenIssuer
	lockout     ports.LoginLockoutStore
	maxSessions int
}

func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, lockout ports.LoginLockoutStore, maxSessions int) *Login {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	return &Login{users: users, hasher: hasher, issuer: issuer, lockout: lockout, maxSessions: maxSessions}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := domain.UserFields{Email: input.Email}.Normalize().Email

	if uc.lockout != nil {
		if locked, retryAfter := uc.lockout.IsLocked(ctx, email); locked {
			return nil, &domerrors.LockedError{RetryAfterSeconds: retryAfter}
		}
	}

	u, err := uc.findByCredentials(ctx, email, input.Password)
	if err != nil {
		if uc.lockout != nil && err == domerrors.ErrAuthenticationFailed {
			uc.lockout.RecordFailure(ctx, email)
		}
		return nil, err
	}
	if uc.lockout != nil {
		uc.lockout.RecordSuccess(ctx, email)
	}

	token, err := uc.issuer.Issue(u.ID.String())
	if err != nil {
		return nil, err
	}
	if err := uc.users.AppendSessionToken(ctx, u.ID, token, uc.maxSessions); err != nil {
		return nil, err
	}
	u.SessionTokens = append(u.SessionTokens, token)
	return &LoginResult{User: u, Token: token}, nil
}

// findByCredentials yields an identical error whether the email is
// unknown or the password is wrong, to prevent user enumeration.
func (uc *Login) findByCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !uc.hasher.Verify(password, u.PasswordHash) {
		return nil, domerrors.ErrAuthenticationFailed
	}
	return u, nil
}
