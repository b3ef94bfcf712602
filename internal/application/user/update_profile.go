package user

import (
	"context"
	"errors"

	"github.com/juliezimmer/task-manager-api/internal/application/ports"
	"github.com/juliezimmer/task-manager-api/internal/domain"
	domerrors "github.com/juliezimmer/task-manager-api/internal/domain/errors"
)

// UpdateProfileInput holds the allow-listed profile fields. Nil
// pointers mean "leave unchanged". Rejection of keys outside the
// allow-list happens at the handler boundary, before this input is
// built.
type UpdateProfileInput struct {
	Name     *string
	Email    *string
	Password *string
	Age      *int
}

// UpdateProfile mutates the allow-listed fields of the current user,
// re-running every field validation against the resulting state. The
// password hash is recomputed only when the plaintext password is part
// of the update.
type UpdateProfile struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
}

func NewUpdateProfile(users ports.UserRepository, hasher ports.PasswordHasher) *UpdateProfile {
	return &UpdateProfile{users: users, hasher: hasher}
}

func (uc *UpdateProfile) Execute(ctx context.Context, current *domain.User, input UpdateProfileInput) (*domain.User, error) {
	fields := domain.UserFields{
		Name:  current.Name,
		Email: current.Email,
		Age:   current.Age,
	}
	if input.Name != nil {
		fields.Name = *input.Name
	}
	if input.Email != nil {
		fields.Email = *input.Email
	}
	if input.Password != nil {
		fields.Password = *input.Password
	}
	if input.Age != nil {
		fields.Age = *input.Age
	}
	fields = fields.Normalize()

	// Validate everything except the password with a stand-in that
	// always passes, then validate the password only when it changes.
	standIn := fields
	standIn.Password = "stand-in-secret"
	problems := standIn.Problems()
	if input.Password != nil {
		problems = append(problems, domain.PasswordProblems(fields.Password)...)
	}
	if input.Email != nil && fields.Email != current.Email {
		existing, err := uc.users.GetByEmail(ctx, fields.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != current.ID {
			problems = append(problems, domerrors.ErrEmailTaken.Error())
		}
	}
	if len(problems) > 0 {
		return nil, domerrors.NewValidation(problems...)
	}

	upd := ports.UserUpdate{}
	if input.Name != nil {
		upd.Name = &fields.Name
	}
	if input.Email != nil {
		upd.Email = &fields.Email
	}
	if input.Age != nil {
		upd.Age = &fields.Age
	}
	if input.Password != nil {
		hash, err := uc.hasher.Hash(fields.Password)
		if err != nil {
			return nil, err
		}
		upd.PasswordHash = &hash
	}

	updated, err := uc.users.UpdateProfile(ctx, current.ID, upd)
	if err != nil {
		if errors.Is(err, domerrors.ErrEmailTaken) {
			return nil, domerrors.NewValidation(domerrors.ErrEmailTaken.Error())
		}
		return nil, err
	}
	return updated, nil
}
