package user

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/juliezimmer/task-manager-api/internal/application/ports"
	"github.com/juliezimmer/task-manager-api/internal/domain"
	domerrors "github.com/juliezimmer/task-manager-api/internal/domain/errors"
)

// SignUpInput carries the candidate account fields. Password is
// plaintext and is hashed before anything is persisted.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
	Age      int
}

// SignUpResult is the created user plus its first session token.
type SignUpResult struct {
	User  *domain.User
	Token string
}

// SignUp creates an account, opens its first session and schedules the
// welcome email.
type SignUp struct {
	users       ports.UserRepository
	hasher      ports.PasswordHasher
	issuer      ports.TokenIssuer
	notify      ports.NotificationEnqueuer
	maxSessions int
}

func NewSignUp(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, notify ports.NotificationEnqueuer, maxSessions int) *SignUp {
	return &SignUp{users: users, hasher: hasher, issuer: issuer, notify: notify, maxSessions: maxSessions}
}

func (uc *SignUp) Execute(ctx context.Context, input SignUpInput) (*SignUpResult, error) {
	fields := domain.UserFields{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Age:      input.Age,
	}.Normalize()

	problems := fields.Problems()
	if len(problems) == 0 {
		existing, err := uc.users.GetByEmail(ctx, fields.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			problems = append(problems, domerrors.ErrEmailTaken.Error())
		}
	}
	if len(problems) > 0 {
		return nil, domerrors.NewValidation(problems...)
	}

	hash, err := uc.hasher.Hash(fields.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		ID:           domain.NewUserID(primitive.NewObjectID()),
		Name:         fields.Name,
		Email:        fields.Email,
		PasswordHash: hash,
		Age:          fields.Age,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, u); err != nil {
		// Unique index backstop for a concurrent signup with the same email.
		if errors.Is(err, domerrors.ErrEmailTaken) {
			return nil, domerrors.NewValidation(domerrors.ErrEmailTaken.Error())
		}
		return nil, err
	}

	// Fire-and-forget: a queue failure never fails the signup.
	_ = uc.notify.EnqueueWelcomeEmail(ctx, u.Email, u.Name)

	token, err := uc.issuer.Issue(u.ID.String())
	if err != nil {
		return nil, err
	}
	if err := uc.users.AppendSessionToken(ctx, u.ID, token, uc.maxSessions); err != nil {
		return nil, err
	}
	u.SessionTokens = append(u.SessionTokens, token)
	return &SignUpResult{User: u, Token: token}, nil
}
