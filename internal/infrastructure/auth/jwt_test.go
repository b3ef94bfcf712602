package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/juliezimmer/task-manager-api/internal/domain/errors"
)

func TestIssueVerifyRoundtrip(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), "task-manager")
	token, err := issuer.Issue("5f2a6f3b9d1c2a0001a3b4c5")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "5f2a6f3b9d1c2a0001a3b4c5", userID)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), "task-manager")
	token, err := issuer.Issue("5f2a6f3b9d1c2a0001a3b4c5")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = issuer.Verify(tampered)
	assert.ErrorIs(t, err, domerrors.ErrInvalidToken)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	a := NewTokenIssuer([]byte("secret-a"), "task-manager")
	b := NewTokenIssuer([]byte("secret-b"), "task-manager")

	token, err := a.Issue("5f2a6f3b9d1c2a0001a3b4c5")
	require.NoError(t, err)

	_, err = b.Verify(token)
	assert.ErrorIs(t, err, domerrors.ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), "task-manager")
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := issuer.Verify(tok)
		assert.ErrorIs(t, err, domerrors.ErrInvalidToken, "token %q", tok)
	}
}
