package user

import (
	"context"
	"sync"

	"github.com/juliezimmer/task-manager-api/internal/infrastructure/auth"
	"github.com/juliezimmer/task-manager-api/internal/infrastructure/persistence/memory"
	"github.com/juliezimmer/task-manager-api/internal/infrastructure/security"
)

func newTestHasher() *security.BcryptHasher {
	// Lowest cost keeps the suite fast.
	return security.NewBcryptHasher(4)
}

func newTestIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer([]byte("test-secret"), "test")
}

// spyEnqueuer records every notification without delivering anything.
type spyEnqueuer struct {
	mu      sync.Mutex
	welcome []string
	goodbye []string
}

func (s *spyEnqueuer) EnqueueWelcomeEmail(ctx context.Context, email, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.welcome = append(s.welcome, email)
	return nil
}

func (s *spyEnqueuer) EnqueueGoodbyeEmail(ctx context.Context, email, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goodbye = append(s.goodbye, email)
	return nil
}

func newSignUp(repo *memory.UserRepository, notify *spyEnqueuer, maxSessions int) *SignUp {
	return NewSignUp(repo, newTestHasher(), newTestIssuer(), notify, maxSessions)
}
