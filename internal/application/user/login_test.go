package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/juliezimmer/task-manager-api/internal/domain/errors"
	"github.com/juliezimmer/task-manager-api/internal/infrastructure/lockout"
	"github.com/juliezimmer/task-manager-api/internal/infrastructure/persistence/memory"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	signUp := newSignUp(repo, &spyEnqueuer{}, 10)
	login := NewLogin(repo, newTestHasher(), newTestIssuer(), nil, 10)

	created, err := signUp.Execute(ctx, SignUpInput{Name: "Julie", Email: "julie@example.com", Password: "red12345"})
	require.NoError(t, err)

	res, err := login.Execute(ctx, LoginInput{Email: " JULIE@example.com ", Password: "red12345"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	assert.NotEqual(t, created.Token, res.Token, "each login opens its own session")

	stored, err := repo.GetByID(ctx, created.User.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{created.Token, res.Token}, stored.SessionTokens)
}

func TestLoginFailureIsOpaque(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	signUp := newSignUp(repo, &spyEnqueuer{}, 10)
	login := NewLogin(repo, newTestHasher(), newTestIssuer(), nil, 10)

	_, err := signUp.Execute(ctx, SignUpInput{Name: "Julie", Email: "julie@example.com", Password: "red12345"})
	require.NoError(t, err)

	_, wrongPassword := login.Execute(ctx, LoginInput{Email: "julie@example.com", Password: "wrong123"})
	_, unknownEmail := login.Execute(ctx, LoginInput{Email: "nobody@example.com", Password: "red12345"})

	require.ErrorIs(t, wrongPassword, domerrors.ErrAuthenticationFailed)
	require.ErrorIs(t, unknownEmail, domerrors.ErrAuthenticationFailed)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLoginLockout(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	signUp := newSignUp(repo, &spyEnqueuer{}, 10)
	store := lockout.NewMemoryStore(3, 900)
	login := NewLogin(repo, newTestHasher(), newTestIssuer(), store, 10)

	_, err := signUp.Execute(ctx, SignUpInput{Name: "Julie", Email: "julie@example.com", Password: "red12345"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := login.Execute(ctx, LoginInput{Email: "julie@example.com", Password: "wrong123"})
		require.ErrorIs(t, err, domerrors.ErrAuthenticationFailed)
	}

	// Even the correct password is refused while locked.
	_, err = login.Execute(ctx, LoginInput{Email: "julie@example.com", Password: "red12345"})
	le, ok := domerrors.AsLocked(err)
	require.True(t, ok)
	assert.Greater(t, le.RetryAfterSeconds, 0)
}

func TestLoginEvictsOldestSessionPastCap(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	signUp := newSignUp(repo, &spyEnqueuer{}, 3)
	login := NewLogin(repo, newTestHasher(), newTestIssuer(), nil, 3)

	created, err := signUp.Execute(ctx, SignUpInput{Name: "Julie", Email: "julie@example.com", Password: "red12345"})
	require.NoError(t, err)

	var tokens []string
	for i := 0; i < 4; i++ {
		res, err := login.Execute(ctx, LoginInput{Email: "julie@example.com", Password: "red12345"})
		require.NoError(t, err, fmt.Sprintf("login %d", i))
		tokens = append(tokens, res.Token)
	}

	stored, err := repo.GetByID(ctx, created.User.ID)
	require.NoError(t, err)
	require.Len(t, stored.SessionTokens, 3)
	assert.False(t, stored.HasSessionToken(created.Token), "signup session evicted first")
	assert.False(t, stored.HasSessionToken(tokens[0]))
	assert.Equal(t, tokens[1:], stored.SessionTokens)
}
