package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/juliezimmer/task-manager-api/internal/domain/errors"
	"github.com/juliezimmer/task-manager-api/internal/infrastructure/persistence/memory"
)

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	signUp := newSignUp(repo, &spyEnqueuer{}, 10)
	uc := NewUpdateProfile(repo, newTestHasher())

	created, err := signUp.Execute(ctx, SignUpInput{Name: "Julie", Email: "julie@example.com", Password: "red12345", Age: 30})
	require.NoError(t, err)

	name := "  Julia  "
	age := 31
	updated, err := uc.Execute(ctx, created.User, UpdateProfileInput{Name: &name, Age: &age})
	require.NoError(t, err)
	assert.Equal(t, "Julia", updated.Name)
	assert.Equal(t, 31, updated.Age)
	assert.Equal(t, "julie@example.com", updated.Email)
	assert.Equal(t, created.User.PasswordHash, updated.PasswordHash, "hash untouched when the password is not in the update")
}

func TestUpdateProfileRehashesOnPasswordChange(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	signUp := newSignUp(repo, &spyEnqueuer{}, 10)
	hasher := newTestHasher()
	uc := NewUpdateProfile(repo, hasher)

	created, err := signUp.Execute(ctx, SignUpInput{Name: "Julie", Email: "julie@example.com", Password: "red12345"})
	require.NoError(t, err)

	password := "blue6789"
	updated, err := uc.Execute(ctx, created.User, UpdateProfileInput{Password: &password})
	require.NoError(t, err)
	assert.NotEqual(t, created.User.PasswordHash, updated.PasswordHash)
	assert.True(t, hasher.Verify("blue6789", updated.PasswordHash))
	assert.False(t, hasher.Verify("red12345", updated.PasswordHash))
}

func TestUpdateProfileValidatesNewValues(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	signUp := newSignUp(repo, &spyEnqueuer{}, 10)
	uc := NewUpdateProfile(repo, newTestHasher())

	created, err := signUp.Execute(ctx, SignUpInput{Name: "Julie", Email: "julie@example.com", Password: "red12345"})
	require.NoError(t, err)

	bad := "short"
	_, err = uc.Execute(ctx, created.User, UpdateProfileInput{Password: &bad})
	ve, ok := domerrors.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Problems, "password must be at least 7 characters")

	badEmail := "nope"
	_, err = uc.Execute(ctx, created.User, UpdateProfileInput{Email: &badEmail})
	ve, ok = domerrors.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Problems, "email is invalid")
}

func TestUpdateProfileRejectsTakenEmail(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	signUp := newSignUp(repo, &spyEnqueuer{}, 10)
	uc := NewUpdateProfile(repo, newTestHasher())

	_, err := signUp.Execute(ctx, SignUpInput{Name: "Other", Email: "other@example.com", Password: "red12345"})
	require.NoError(t, err)
	created, err := signUp.Execute(ctx, SignUpInput{Name: "Julie", Email: "julie@example.com", Password: "red12345"})
	require.NoError(t, err)

	taken := "Other@Example.com"
	_, err = uc.Execute(ctx, created.User, UpdateProfileInput{Email: &taken})
	ve, ok := domerrors.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Problems, "email is already in use")

	// Re-submitting your own address is not a conflict.
	own := "julie@example.com"
	_, err = uc.Execute(ctx, created.User, UpdateProfileInput{Email: &own})
	require.NoError(t, err)
}
