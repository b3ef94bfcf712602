package security

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/juliezimmer/task-manager-api/internal/application/ports"
)

// DefaultBcryptCost trades hashing latency against brute-force
// resistance; raise it as hardware gets faster.
const DefaultBcryptCost = 8

// BcryptHasher implements ports.PasswordHasher. bcrypt output embeds
// its own salt and cost, so digests stay verifiable after the
// configured cost changes.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether password matches digest. A malformed digest
// simply does not match.
func (h *BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

var _ ports.PasswordHasher = (*BcryptHasher)(nil)
