package middleware

import (
	"context"

	"github.com/juliezimmer/task-manager-api/internal/domain"
)

type contextKey string

const authContextKey contextKey = "auth"

type authValue struct {
	user  *domain.User
	token string
}

// WithAuth injects the resolved user and the exact bearer token that
// authenticated this request. Logout needs the token to close only
// the presented session.
func WithAuth(ctx context.Context, user *domain.User, token string) context.Context {
	return context.WithValue(ctx, authContextKey, authValue{user: user, token: token})
}

// AuthFromContext returns the authenticated user and its token, or
// (nil, "") when the request did not pass the authenticator.
func AuthFromContext(ctx context.Context) (*domain.User, string) {
	v := ctx.Value(authContextKey)
	if v == nil {
		return nil, ""
	}
	a, _ := v.(authValue)
	return a.user, a.token
}
