package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/juliezimmer/task-manager-api/internal/application/ports"
	"github.com/juliezimmer/task-manager-api/internal/domain"
)

// Authenticator resolves an inbound bearer token to a concrete user and
// session. Signature verification alone is not enough: the literal
// token must still be present in the user's session list, so a token
// revoked by logout fails here even though its signature is valid.
type Authenticator struct {
	issuer ports.TokenIssuer
	users  ports.UserRepository
}

func NewAuthenticator(issuer ports.TokenIssuer, users ports.UserRepository) *Authenticator {
	return &Authenticator{issuer: issuer, users: users}
}

func (m *Authenticator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			unauthorized(w)
			return
		}
		token := strings.TrimPrefix(auth, "Bearer ")

		subject, err := m.issuer.Verify(token)
		if err != nil {
			unauthorized(w)
			return
		}
		userID, err := domain.ParseUserID(subject)
		if err != nil {
			unauthorized(w)
			return
		}
		user, err := m.users.GetByIDWithToken(r.Context(), userID, token)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal error"})
			return
		}
		if user == nil {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithAuth(r.Context(), user, token)))
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "please authenticate"})
}
