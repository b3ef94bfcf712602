package ports

// PasswordHasher hashes and verifies plaintext secrets (bcrypt). A
// verification mismatch is a boolean false, never an error.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer signs and verifies session bearer tokens (HS256 with a
// process-wide secret). Verification alone does not prove the session
// is still active; callers must also confirm the token is present in
// the user's session list.
type TokenIssuer interface {
	Issue(userID string) (string, error)
	// Verify returns the bound user id, or errors.ErrInvalidToken when
	// the signature or payload is bad.
	Verify(token string) (string, error)
}
