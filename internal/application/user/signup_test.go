package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/juliezimmer/task-manager-api/internal/domain/errors"
	"github.com/juliezimmer/task-manager-api/internal/infrastructure/persistence/memory"
)

func TestSignUp(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	notify := &spyEnqueuer{}
	uc := newSignUp(repo, notify, 10)

	res, err := uc.Execute(ctx, SignUpInput{
		Name:     "  Julie  ",
		Email:    "Julie@Example.COM",
		Password: "red12345",
		Age:      30,
	})
	require.NoError(t, err)
	require.NotNil(t, res.User)
	require.NotEmpty(t, res.Token)

	assert.Equal(t, "Julie", res.User.Name)
	assert.Equal(t, "julie@example.com", res.User.Email)

	stored, err := repo.GetByEmail(ctx, "julie@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "red12345", stored.PasswordHash)
	assert.True(t, newTestHasher().Verify("red12345", stored.PasswordHash))
	assert.Equal(t, []string{res.Token}, stored.SessionTokens)
	assert.Equal(t, []string{"julie@example.com"}, notify.welcome)

	subject, err := newTestIssuer().Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID.String(), subject)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	uc := newSignUp(repo, &spyEnqueuer{}, 10)

	_, err := uc.Execute(ctx, SignUpInput{Name: "Julie", Email: "julie@example.com", Password: "red12345"})
	require.NoError(t, err)

	// Same address in a different casing is still a duplicate.
	_, err = uc.Execute(ctx, SignUpInput{Name: "Other", Email: "JULIE@example.com", Password: "blue1234"})
	ve, ok := domerrors.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Problems, "email is already in use")
}

func TestSignUpCollectsAllProblems(t *testing.T) {
	uc := newSignUp(memory.NewUserRepository(), &spyEnqueuer{}, 10)

	_, err := uc.Execute(context.Background(), SignUpInput{
		Name:     "   ",
		Email:    "not-an-email",
		Password: "short",
		Age:      -2,
	})
	ve, ok := domerrors.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Problems, "name is required")
	assert.Contains(t, ve.Problems, "email is invalid")
	assert.Contains(t, ve.Problems, "password must be at least 7 characters")
	assert.Contains(t, ve.Problems, "age must be a positive number")
}

func TestSignUpRejectsPasswordContainingPassword(t *testing.T) {
	uc := newSignUp(memory.NewUserRepository(), &spyEnqueuer{}, 10)

	_, err := uc.Execute(context.Background(), SignUpInput{
		Name:     "Julie",
		Email:    "julie@example.com",
		Password: "MyPassword1",
	})
	ve, ok := domerrors.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Problems, `password cannot contain "password"`)
}
