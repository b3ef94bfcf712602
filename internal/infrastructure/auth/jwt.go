package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/juliezimmer/task-manager-api/internal/application/ports"
	domerrors "github.com/juliezimmer/task-manager-api/internal/domain/errors"
)

// TokenIssuer implements ports.TokenIssuer with HS256 over a
// process-wide secret. Issued tokens carry no expiry claim: a session
// ends when its token is removed from the user's session list, so
// revocation is a plain list removal rather than a blacklist.
type TokenIssuer struct {
	secret []byte
	issuer string
}

func NewTokenIssuer(secret []byte, issuer string) *TokenIssuer {
	return &TokenIssuer{secret: secret, issuer: issuer}
}

func (t *TokenIssuer) Issue(userID string) (string, error) {
	// The jti makes every issued token distinct even for back-to-back
	// logins of the same user, so removing one session from the token
	// list can never revoke another.
	claims := jwt.RegisteredClaims{
		ID:       uuid.NewString(),
		Issuer:   t.issuer,
		Subject:  userID,
		IssuedAt: jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks signature and shape and returns the bound user id. It
// says nothing about whether the session is still active; the caller
// must confirm membership in the user's session list.
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return "", domerrors.ErrInvalidToken
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", domerrors.ErrInvalidToken
	}
	return claims.Subject, nil
}

var _ ports.TokenIssuer = (*TokenIssuer)(nil)
